// Comparison operators for rxcore
// 序列比较操作符：双源协调、双侧缓冲与判定状态机
package rxcore

import (
	"sync"
)

// ============================================================================
// SequenceEqual 操作符
// ============================================================================

// sequenceEqualOperator 序列比较操作符配置
// comparator为nil时采用默认相等判断
type sequenceEqualOperator struct {
	compareTo  Observable
	comparator Comparator
}

// Call 构造主源协调订阅者，并把比较源作为其子订阅一并挂入
// 取消输出订阅会同步取消两个源
func (op *sequenceEqualOperator) Call(subscriber *Subscriber, source Observable) SubscriptionLike {
	coordinator := &sequenceEqualCoordinator{
		downstream: subscriber,
		comparator: op.comparator,
	}

	primary := NewOperatorSubscriber(subscriber,
		func(value interface{}) {
			coordinator.nextValue(&coordinator.primarySide, &coordinator.secondarySide, value)
		},
		coordinator.sourceError,
		func() {
			coordinator.sideComplete(&coordinator.primarySide, &coordinator.secondarySide)
		},
	)

	secondary := NewOperatorSubscriber(subscriber,
		func(value interface{}) {
			coordinator.nextValue(&coordinator.secondarySide, &coordinator.primarySide, value)
		},
		coordinator.sourceError,
		func() {
			coordinator.sideComplete(&coordinator.secondarySide, &coordinator.primarySide)
		},
	)

	coordinator.primarySub = primary
	coordinator.secondarySub = secondary

	// 两个源订阅都直接挂为下游的子节点：取消输出连带取消两侧，
	// 而一侧先完成只注销自己那侧，另一侧继续送达直到协调器判定
	subscriber.Add(op.compareTo.Subscribe(secondary))
	return source.Subscribe(primary)
}

// ============================================================================
// 协调状态机
// ============================================================================

// sideState 单侧状态：到达顺序的值缓冲与完成标记
type sideState struct {
	buffer []interface{}
	done   bool
}

// sequenceEqualCoordinator 比较协调器，一次订阅独占一份
// 状态机：Collecting（收集中）--判定--> Decided（已发射唯一布尔结果）
// 所有变更都在通知送达的同步调用内发生，由互斥锁保证两侧转发者串行化
type sequenceEqualCoordinator struct {
	mu            sync.Mutex
	downstream    *Subscriber
	comparator    Comparator
	primarySub    *Subscriber
	secondarySub  *Subscriber
	primarySide   sideState
	secondarySide sideState
	decided       bool
}

// nextValue 一侧到达新值
// 若另一侧已完成且缓冲耗尽，序列不可能再配对，立即判定false；
// 否则入缓冲并排空可配对的值
func (c *sequenceEqualCoordinator) nextValue(self, other *sideState, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.decided {
		return
	}

	if other.done && len(other.buffer) == 0 {
		c.emit(false)
		return
	}

	self.buffer = append(self.buffer, value)
	c.drain()
}

// sideComplete 一侧完成
// 仅当第二个完成到达时做一次收尾判定：两侧缓冲都已耗尽才算相等，
// 任一侧残留未配对的值意味着长度不同
func (c *sequenceEqualCoordinator) sideComplete(self, other *sideState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.decided {
		return
	}

	self.done = true
	if other.done {
		c.emit(len(self.buffer) == 0 && len(other.buffer) == 0)
	}
}

// sourceError 任一源出错：原样转发给下游并进入终态，两个源随下游注销被拆除
func (c *sequenceEqualCoordinator) sourceError(err error) {
	c.mu.Lock()
	if c.decided {
		c.mu.Unlock()
		return
	}
	c.decided = true
	c.primarySide.buffer = nil
	c.secondarySide.buffer = nil
	c.mu.Unlock()

	c.downstream.OnError(err)
	c.stopSides()
}

// stopSides 注销两侧源订阅者，同步生产者据此停止发射
func (c *sequenceEqualCoordinator) stopSides() {
	if c.primarySub != nil {
		c.primarySub.Unsubscribe()
	}
	if c.secondarySub != nil {
		c.secondarySub.Unsubscribe()
	}
}

// drain 排空步骤：两侧缓冲都非空时逐对弹出最旧值比较
// 首个不等对短路判定false，剩余缓冲值被丢弃；比较器故障转为下游错误
func (c *sequenceEqualCoordinator) drain() {
	for len(c.primarySide.buffer) > 0 && len(c.secondarySide.buffer) > 0 {
		a := c.primarySide.buffer[0]
		c.primarySide.buffer = c.primarySide.buffer[1:]
		b := c.secondarySide.buffer[0]
		c.secondarySide.buffer = c.secondarySide.buffer[1:]

		result := tryCompare(c.comparatorOrDefault(), a, b)
		if result.IsError() {
			c.decided = true
			c.primarySide.buffer = nil
			c.secondarySide.buffer = nil
			c.downstream.OnError(result.Error)
			c.stopSides()
			return
		}

		if !result.GetValue().(bool) {
			c.emit(false)
			return
		}
	}
}

// emit 发射唯一的布尔结果并完成下游，进入Decided终态
func (c *sequenceEqualCoordinator) emit(equal bool) {
	c.decided = true
	c.primarySide.buffer = nil
	c.secondarySide.buffer = nil
	c.downstream.OnNext(equal)
	c.downstream.OnComplete()
	c.stopSides()
}

// comparatorOrDefault 返回配置的比较器，未配置时使用默认相等
func (c *sequenceEqualCoordinator) comparatorOrDefault() Comparator {
	if c.comparator != nil {
		return c.comparator
	}
	return defaultComparator
}

// defaultComparator 默认相等判断
// 接口相等语义；动态类型不可比较时的panic由tryCompare捕获并作为下游错误浮出
func defaultComparator(a, b interface{}) bool {
	return a == b
}

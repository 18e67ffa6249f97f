// Observable tests for rxcore
// Observable测试：订阅入口、冷语义、lift组合与工厂函数
package rxcore

import (
	"errors"
	"testing"
	"time"
)

// ============================================================================
// 订阅入口
// ============================================================================

// TestSubscribeWithObserver 测试以完整观察者订阅
func TestSubscribeWithObserver(t *testing.T) {
	observer := &captureObserver{}
	Just(1, 2, 3).Subscribe(observer)

	values, _, completes := observer.snapshot()
	if len(values) != 3 {
		t.Errorf("期望3个值，实际%v", values)
	}
	if completes != 1 {
		t.Errorf("期望完成1次，实际%d次", completes)
	}
}

// TestSubscribeWithCallbacks 测试以部分回调订阅，nil回调被忽略
func TestSubscribeWithCallbacks(t *testing.T) {
	var values []interface{}
	Just(1, 2).SubscribeWithCallbacks(
		func(value interface{}) {
			values = append(values, value)
		},
		nil,
		nil,
	)

	if len(values) != 2 {
		t.Errorf("期望2个值，实际%v", values)
	}
}

// TestSubscribeReturnsCancellationHandle 测试返回的订阅者可作为取消句柄
func TestSubscribeReturnsCancellationHandle(t *testing.T) {
	tornDown := false
	obs := NewObservable(func(subscriber *Subscriber) {
		subscriber.Add(func() {
			tornDown = true
		})
		subscriber.OnNext(1)
	})

	sub := obs.Subscribe(&captureObserver{})
	sub.Unsubscribe()

	if !tornDown {
		t.Errorf("取消句柄应触发生产者注册的清理动作")
	}
}

// ============================================================================
// 冷语义
// ============================================================================

// TestColdSubscriptionsAreIndependent 测试每次订阅都是独立的执行实例
func TestColdSubscriptionsAreIndependent(t *testing.T) {
	executions := 0
	obs := NewObservable(func(subscriber *Subscriber) {
		executions++
		subscriber.OnNext(executions)
		subscriber.OnComplete()
	})

	first := &captureObserver{}
	second := &captureObserver{}
	obs.Subscribe(first)
	obs.Subscribe(second)

	if executions != 2 {
		t.Errorf("期望生产者执行2次，实际%d次", executions)
	}
	firstValues, _, _ := first.snapshot()
	secondValues, _, _ := second.snapshot()
	if firstValues[0] != 1 || secondValues[0] != 2 {
		t.Errorf("两次订阅的状态应互不共享，实际%v与%v", firstValues, secondValues)
	}
}

// ============================================================================
// lift 组合
// ============================================================================

// countingOperator 透传操作符，记录构造次数，验证lift链路
type countingOperator struct {
	calls *int
}

func (op *countingOperator) Call(subscriber *Subscriber, source Observable) SubscriptionLike {
	*op.calls++
	return source.Subscribe(NewOperatorSubscriber(subscriber, nil, nil, nil))
}

// TestLiftComposesOperators 测试lift派生链逐级构造订阅者
func TestLiftComposesOperators(t *testing.T) {
	calls := 0
	observer := &captureObserver{}

	Just(1, 2, 3).
		Lift(&countingOperator{calls: &calls}).
		Lift(&countingOperator{calls: &calls}).
		Subscribe(observer)

	if calls != 2 {
		t.Errorf("期望两级操作符各构造1次，实际共%d次", calls)
	}
	values, _, completes := observer.snapshot()
	if len(values) != 3 || completes != 1 {
		t.Errorf("透传链路应原样送达，实际值%v完成%d次", values, completes)
	}
}

// TestFilterChain 测试过滤操作符级联
func TestFilterChain(t *testing.T) {
	observer := &captureObserver{}
	Range(1, 10).
		Filter(func(value interface{}) bool {
			return value.(int)%2 == 0
		}).
		Filter(func(value interface{}) bool {
			return value.(int) > 4
		}).
		Subscribe(observer)

	values, _, _ := observer.snapshot()
	expected := []interface{}{6, 8, 10}
	if len(values) != len(expected) {
		t.Errorf("期望%v，实际%v", expected, values)
	} else {
		for i, v := range expected {
			if values[i] != v {
				t.Errorf("期望%v，实际%v", expected, values)
				break
			}
		}
	}
}

// ============================================================================
// 工厂函数
// ============================================================================

// TestFactoryBasics 测试基础工厂函数的发射形态
func TestFactoryBasics(t *testing.T) {
	empty := &captureObserver{}
	Empty().Subscribe(empty)
	if values, _, completes := empty.snapshot(); len(values) != 0 || completes != 1 {
		t.Errorf("Empty应只发完成信号")
	}

	failed := &captureObserver{}
	Error(errors.New("坏掉了")).Subscribe(failed)
	if _, errs, completes := failed.snapshot(); len(errs) != 1 || completes != 0 {
		t.Errorf("Error应只发错误信号")
	}

	ranged := &captureObserver{}
	Range(5, 3).Subscribe(ranged)
	if values, _, _ := ranged.snapshot(); len(values) != 3 || values[0] != 5 || values[2] != 7 {
		t.Errorf("Range(5,3)期望[5 6 7]，实际%v", values)
	}

	sliced := &captureObserver{}
	FromSlice([]interface{}{"a", "b"}).Subscribe(sliced)
	if values, _, completes := sliced.snapshot(); len(values) != 2 || completes != 1 {
		t.Errorf("FromSlice期望2个值后完成，实际%v", values)
	}
}

// TestNeverStaysPending 测试Never不发射也不终止
func TestNeverStaysPending(t *testing.T) {
	observer := &captureObserver{}
	sub := Never().Subscribe(observer)

	values, errs, completes := observer.snapshot()
	if len(values) != 0 || len(errs) != 0 || completes != 0 {
		t.Errorf("Never不应产生任何通知")
	}
	if sub.IsStopped() {
		t.Errorf("Never的订阅应保持挂起")
	}
	sub.Unsubscribe()
}

// TestFromChannel 测试channel源的转发与完成
func TestFromChannel(t *testing.T) {
	ch := make(chan interface{}, 3)
	ch <- 1
	ch <- 2
	close(ch)

	observer := &captureObserver{}
	FromChannel(ch).Subscribe(observer)

	// 泵goroutine异步转发，轮询等待完成信号
	deadline := time.Now().Add(time.Second)
	for {
		if _, _, completes := observer.snapshot(); completes == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("FromChannel未在期限内完成")
		}
		time.Sleep(time.Millisecond)
	}

	values, _, _ := observer.snapshot()
	if len(values) != 2 {
		t.Errorf("期望转发2个值，实际%v", values)
	}
}

// TestTimerCancellation 测试取消订阅会停掉底层定时器
func TestTimerCancellation(t *testing.T) {
	observer := &captureObserver{}
	sub := Timer(20 * time.Millisecond).Subscribe(observer)
	sub.Unsubscribe()

	time.Sleep(50 * time.Millisecond)

	values, _, completes := observer.snapshot()
	if len(values) != 0 || completes != 0 {
		t.Errorf("取消后定时器不应再发射，实际值%v完成%d次", values, completes)
	}
}

// TestTimerFires 测试定时器到期发射并完成
func TestTimerFires(t *testing.T) {
	observer := &captureObserver{}
	Timer(5 * time.Millisecond).Subscribe(observer)

	time.Sleep(50 * time.Millisecond)

	values, _, completes := observer.snapshot()
	if len(values) != 1 || completes != 1 {
		t.Errorf("定时器应发射1个值后完成，实际值%v完成%d次", values, completes)
	}
}

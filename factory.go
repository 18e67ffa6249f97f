// Factory functions for rxcore
// 工厂函数：冷生产者，订阅时同步发射；异步发射属于生产者自身的事务
package rxcore

import (
	"time"
)

// ============================================================================
// 基础工厂函数
// ============================================================================

// Just 从给定的值创建Observable
func Just(values ...interface{}) Observable {
	return NewObservable(func(subscriber *Subscriber) {
		for _, value := range values {
			if subscriber.IsStopped() {
				return
			}
			subscriber.OnNext(value)
		}
		subscriber.OnComplete()
	})
}

// Empty 创建一个空的Observable，立即完成
func Empty() Observable {
	return NewObservable(func(subscriber *Subscriber) {
		subscriber.OnComplete()
	})
}

// Never 创建一个永不发射任何值也永不终止的Observable
func Never() Observable {
	return NewObservable(func(subscriber *Subscriber) {
		// 什么都不做，订阅保持挂起直到外部取消
	})
}

// Error 创建一个立即发射错误的Observable
func Error(err error) Observable {
	return NewObservable(func(subscriber *Subscriber) {
		subscriber.OnError(err)
	})
}

// Range 创建发射指定范围整数的Observable
func Range(start, count int) Observable {
	return NewObservable(func(subscriber *Subscriber) {
		for i := 0; i < count; i++ {
			if subscriber.IsStopped() {
				return
			}
			subscriber.OnNext(start + i)
		}
		subscriber.OnComplete()
	})
}

// ============================================================================
// 从数据源创建
// ============================================================================

// FromSlice 从切片创建Observable
func FromSlice(slice []interface{}) Observable {
	return NewObservable(func(subscriber *Subscriber) {
		for _, value := range slice {
			if subscriber.IsStopped() {
				return
			}
			subscriber.OnNext(value)
		}
		subscriber.OnComplete()
	})
}

// FromChannel 从channel创建Observable
// 由泵goroutine异步转发，channel关闭视为完成；取消订阅时停止转发
func FromChannel(ch <-chan interface{}) Observable {
	return NewObservable(func(subscriber *Subscriber) {
		stop := make(chan struct{})
		subscriber.Add(func() {
			close(stop)
		})

		go func() {
			for {
				select {
				case value, ok := <-ch:
					if !ok {
						subscriber.OnComplete()
						return
					}
					subscriber.OnNext(value)
				case <-stop:
					return
				}
			}
		}()
	})
}

// ============================================================================
// 时间相关
// ============================================================================

// Timer 创建延迟后发射单个零值并完成的Observable
// 定时是生产者内部事务；取消订阅会停掉底层定时器
func Timer(duration time.Duration) Observable {
	return NewObservable(func(subscriber *Subscriber) {
		timer := time.AfterFunc(duration, func() {
			subscriber.OnNext(0)
			subscriber.OnComplete()
		})
		subscriber.Add(func() {
			timer.Stop()
		})
	})
}

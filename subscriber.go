// Subscriber implementation for rxcore
// 订阅者：合并Observer与Subscription，维护终态不变量
package rxcore

import (
	"sync/atomic"
)

// ============================================================================
// Subscriber 实现
// ============================================================================

// Subscriber 一次订阅的消费方句柄
// 终态语义：error/complete互斥且至多送达一次，送达后自动注销；
// 停止后到达的任何通知都被静默丢弃
type Subscriber struct {
	subscription *Subscription
	destination  Observer
	stopped      int32

	// 操作符定制的通知处理，nil时直接转发给destination
	nextHandler     func(value interface{})
	errorHandler    func(err error)
	completeHandler func()
}

// NewSubscriber 用目的观察者创建订阅者
func NewSubscriber(destination Observer) *Subscriber {
	return &Subscriber{
		subscription: NewSubscription(),
		destination:  destination,
	}
}

// NewOperatorSubscriber 创建操作符用的上游订阅者
// 非nil的处理函数覆盖默认转发；nil的通知类型原样转发给下游订阅者
func NewOperatorSubscriber(destination *Subscriber, onNext func(interface{}), onError func(error), onComplete func()) *Subscriber {
	return &Subscriber{
		subscription:    NewSubscription(),
		destination:     destination,
		nextHandler:     onNext,
		errorHandler:    onError,
		completeHandler: onComplete,
	}
}

// OnNext 接收下一个值，停止后为空操作
func (s *Subscriber) OnNext(value interface{}) {
	if atomic.LoadInt32(&s.stopped) == 1 {
		return
	}

	if s.nextHandler != nil {
		s.nextHandler(value)
		return
	}
	s.destination.OnNext(value)
}

// OnError 接收错误，进入终态并自动注销；与OnComplete互斥，先到者生效
func (s *Subscriber) OnError(err error) {
	if !atomic.CompareAndSwapInt32(&s.stopped, 0, 1) {
		return
	}

	if s.errorHandler != nil {
		s.errorHandler(err)
	} else {
		s.destination.OnError(err)
	}
	s.Unsubscribe()
}

// OnComplete 接收完成信号，进入终态并自动注销
func (s *Subscriber) OnComplete() {
	if !atomic.CompareAndSwapInt32(&s.stopped, 0, 1) {
		return
	}

	if s.completeHandler != nil {
		s.completeHandler()
	} else {
		s.destination.OnComplete()
	}
	s.Unsubscribe()
}

// IsStopped 检查是否已收到终态通知
func (s *Subscriber) IsStopped() bool {
	return atomic.LoadInt32(&s.stopped) == 1
}

// Add 注册清理动作，见Subscription.Add
func (s *Subscriber) Add(teardown interface{}) *TeardownHandle {
	return s.subscription.Add(teardown)
}

// Remove 移除清理动作，不执行它
func (s *Subscriber) Remove(handle *TeardownHandle) {
	s.subscription.Remove(handle)
}

// Unsubscribe 取消订阅：标记停止并释放全部资源，幂等
func (s *Subscriber) Unsubscribe() {
	atomic.StoreInt32(&s.stopped, 1)
	s.subscription.Unsubscribe()
}

// IsUnsubscribed 检查是否已取消订阅
func (s *Subscriber) IsUnsubscribed() bool {
	return s.subscription.IsUnsubscribed()
}

// ============================================================================
// 回调观察者
// ============================================================================

// callbackObserver 由部分回调组成的观察者，nil回调对应的通知被忽略
type callbackObserver struct {
	onNext     OnNext
	onError    OnError
	onComplete OnComplete
}

// NewCallbackObserver 用回调函数组装观察者，任意回调可为nil
func NewCallbackObserver(onNext OnNext, onError OnError, onComplete OnComplete) Observer {
	return &callbackObserver{
		onNext:     onNext,
		onError:    onError,
		onComplete: onComplete,
	}
}

func (o *callbackObserver) OnNext(value interface{}) {
	if o.onNext != nil {
		o.onNext(value)
	}
}

func (o *callbackObserver) OnError(err error) {
	if o.onError != nil {
		o.onError(err)
	}
}

func (o *callbackObserver) OnComplete() {
	if o.onComplete != nil {
		o.onComplete()
	}
}

// toSubscriber 将观察者包装为订阅者；已是订阅者的原样返回
func toSubscriber(observer Observer) *Subscriber {
	if subscriber, ok := observer.(*Subscriber); ok {
		return subscriber
	}
	return NewSubscriber(observer)
}

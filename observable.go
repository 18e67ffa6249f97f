// Observable implementation for rxcore
// 惰性、可重复订阅的生产者描述，以及lift操作符组合机制
package rxcore

// ============================================================================
// Observable 核心实现
// ============================================================================

// observableImpl Observable的核心实现
// 二者居其一：onSubscribe为生产者逻辑；或source+operator构成lift派生链
type observableImpl struct {
	onSubscribe func(subscriber *Subscriber)
	source      Observable
	operator    Operator
}

// NewObservable 从生产者函数创建Observable
// 生产者在每次Subscribe时同步执行一次，订阅之间互不共享状态
func NewObservable(onSubscribe func(subscriber *Subscriber)) Observable {
	return &observableImpl{onSubscribe: onSubscribe}
}

// Create 从生产者函数创建Observable，NewObservable的别名
func Create(onSubscribe func(subscriber *Subscriber)) Observable {
	return NewObservable(onSubscribe)
}

// Subscribe 订阅观察者
// 观察者被包装为Subscriber后同步交给生产者逻辑；返回该Subscriber作为取消句柄
func (o *observableImpl) Subscribe(observer Observer) *Subscriber {
	subscriber := toSubscriber(observer)

	if o.operator != nil {
		// lift链：操作符构造上游订阅者并订阅到源，上游订阅挂为下游的子节点，
		// 取消输出时随之取消整条链。若源已同步终止，Add会立即执行清理
		subscriber.Add(o.operator.Call(subscriber, o.source))
		return subscriber
	}

	o.onSubscribe(subscriber)
	return subscriber
}

// SubscribeWithCallbacks 使用回调函数订阅，回调可部分为nil
func (o *observableImpl) SubscribeWithCallbacks(onNext OnNext, onError OnError, onComplete OnComplete) *Subscriber {
	return o.Subscribe(NewCallbackObserver(onNext, onError, onComplete))
}

// Lift 通过操作符派生新的Observable
// 派生链上的每个操作符各自构造订阅者，生产者无需感知下游变换
func (o *observableImpl) Lift(operator Operator) Observable {
	return &observableImpl{source: o, operator: operator}
}

// ============================================================================
// 操作符方法
// ============================================================================

// Filter 过滤操作符，保留谓词为真的值
func (o *observableImpl) Filter(predicate Predicate) Observable {
	return o.FilterIndexed(func(value interface{}, _ int) bool {
		return predicate(value)
	})
}

// FilterIndexed 带下标的过滤操作符，下标从0开始计数
func (o *observableImpl) FilterIndexed(predicate IndexedPredicate) Observable {
	return o.Lift(&filterOperator{predicate: predicate})
}

// SequenceEqual 与另一个Observable逐元素比较，发射单个布尔结果
func (o *observableImpl) SequenceEqual(compareTo Observable) Observable {
	return o.SequenceEqualWith(compareTo, nil)
}

// SequenceEqualWith 使用自定义比较器的序列比较，comparator为nil时采用默认相等
func (o *observableImpl) SequenceEqualWith(compareTo Observable, comparator Comparator) Observable {
	return o.Lift(&sequenceEqualOperator{compareTo: compareTo, comparator: comparator})
}

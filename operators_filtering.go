// Filtering operators for rxcore
// 过滤操作符：单源无缓冲，最小的合法操作符形态
package rxcore

// filterOperator 过滤操作符配置，跨订阅无可变状态
type filterOperator struct {
	predicate IndexedPredicate
}

// Call 构造过滤用的上游订阅者并订阅到源
// 每次订阅维护独立的下标计数；谓词故障转为下游错误，之后不再计数
func (op *filterOperator) Call(subscriber *Subscriber, source Observable) SubscriptionLike {
	index := 0
	var upstream *Subscriber
	upstream = NewOperatorSubscriber(subscriber,
		func(value interface{}) {
			result := tryPredicate(op.predicate, value, index)
			index++
			if result.IsError() {
				// 经自身送达错误：上游订阅者进入终态，同步生产者随即停止
				upstream.OnError(result.Error)
				return
			}

			if result.GetValue().(bool) {
				subscriber.OnNext(value)
			}
		},
		nil, // 错误原样转发
		nil, // 完成原样转发
	)
	return source.Subscribe(upstream)
}

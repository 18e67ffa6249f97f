// Package rxcore provides the execution core of a push-based reactive-stream library
// 推送式响应流库的执行核心：Observable/Subscriber/Subscription协议与lift操作符机制
package rxcore

import (
	"fmt"
)

// ============================================================================
// 核心类型定义
// ============================================================================

// Item 表示一次求值的结果，包含值或错误
type Item struct {
	Value interface{} // 数据值
	Error error       // 错误信息
}

// IsError 检查项目是否包含错误
func (item Item) IsError() bool {
	return item.Error != nil
}

// GetValue 获取项目的值，如果是错误则返回nil
func (item Item) GetValue() interface{} {
	if item.IsError() {
		return nil
	}
	return item.Value
}

// CreateItem 创建包含值的项目
func CreateItem(value interface{}) Item {
	return Item{Value: value}
}

// CreateErrorItem 创建包含错误的项目
func CreateErrorItem(err error) Item {
	return Item{Error: err}
}

// ============================================================================
// 函数类型定义
// ============================================================================

// OnNext 处理下一个值的函数
type OnNext func(value interface{})

// OnError 处理错误的函数
type OnError func(err error)

// OnComplete 处理完成的函数
type OnComplete func()

// Predicate 谓词函数，用于过滤
type Predicate func(value interface{}) bool

// IndexedPredicate 带下标的谓词函数，下标从0开始按上游到达顺序递增
type IndexedPredicate func(value interface{}, index int) bool

// Comparator 比较函数，判断两个值是否相等
type Comparator func(a, b interface{}) bool

// Teardown 订阅注销时执行的清理函数
type Teardown func()

// ============================================================================
// 观察者协议
// ============================================================================

// Observer 观察者接口，流的消费方实现的三通知协议
// OnError与OnComplete互斥，每个订阅至多收到其中一个，且最多一次
type Observer interface {
	// OnNext 接收下一个值
	OnNext(value interface{})
	// OnError 接收错误，流终止
	OnError(err error)
	// OnComplete 接收完成信号，流终止
	OnComplete()
}

// ============================================================================
// 生命周期管理
// ============================================================================

// SubscriptionLike 订阅句柄接口，管理订阅的生命周期
type SubscriptionLike interface {
	// Unsubscribe 取消订阅，幂等
	Unsubscribe()
	// IsUnsubscribed 检查是否已取消订阅
	IsUnsubscribed() bool
}

// Disposable 可释放资源的接口
type Disposable interface {
	// Dispose 释放资源
	Dispose()
	// IsDisposed 检查是否已释放
	IsDisposed() bool
}

// ============================================================================
// Observable 核心接口
// ============================================================================

// Operator 操作符接口：给定下游订阅者，构造面向上游的订阅者并完成订阅
// 一个Operator实例不持有可变状态，可同时服务多个订阅
type Operator interface {
	// Call 用下游订阅者构造上游订阅者，订阅到source，返回上游侧的订阅句柄
	Call(subscriber *Subscriber, source Observable) SubscriptionLike
}

// Observable 可观察序列的核心接口
// 冷语义：每次Subscribe都是一次独立执行，订阅之间不共享任何状态
type Observable interface {
	// Subscribe 订阅观察者，返回的Subscriber可作为取消句柄
	Subscribe(observer Observer) *Subscriber

	// SubscribeWithCallbacks 使用回调函数订阅，回调可部分为nil
	SubscribeWithCallbacks(onNext OnNext, onError OnError, onComplete OnComplete) *Subscriber

	// Lift 通过操作符派生新的Observable
	Lift(operator Operator) Observable

	// 过滤操作符
	Filter(predicate Predicate) Observable
	FilterIndexed(predicate IndexedPredicate) Observable

	// 序列比较操作符
	SequenceEqual(compareTo Observable) Observable
	SequenceEqualWith(compareTo Observable, comparator Comparator) Observable
}

// ============================================================================
// 错误类型
// ============================================================================

// UnsubscriptionError 注销过程中清理函数的失败汇总
// 单个清理函数的panic不会阻止同批其他清理函数执行
type UnsubscriptionError struct {
	Failures []interface{}
}

// Error 实现error接口
func (e *UnsubscriptionError) Error() string {
	return fmt.Sprintf("rxcore: %d teardown(s) failed during unsubscription", len(e.Failures))
}

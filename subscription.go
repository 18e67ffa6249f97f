// Subscription implementation for rxcore
// 可组合的取消/资源释放句柄，以显式清理树支持幂等、可重入的注销
package rxcore

import (
	"sync"
	"sync/atomic"
)

// ============================================================================
// Subscription 实现
// ============================================================================

// TeardownHandle 清理动作的注册句柄，可用于Remove
type TeardownHandle struct {
	entry *teardownEntry
}

// teardownEntry 清理树中的一个节点
type teardownEntry struct {
	run Teardown
}

// Subscription 组合式订阅句柄
// 持有零个或多个待执行的清理动作（函数、Disposable或子订阅）
type Subscription struct {
	mu      sync.Mutex
	closed  bool
	entries []*teardownEntry
}

// NewSubscription 创建订阅句柄，可附带初始清理函数
func NewSubscription(teardowns ...Teardown) *Subscription {
	s := &Subscription{}
	for _, teardown := range teardowns {
		s.Add(teardown)
	}
	return s
}

// Add 注册一个清理动作，返回可移除的句柄
// 接受func()、Teardown、Disposable、SubscriptionLike；nil被忽略
// 向已关闭的订阅注册时，清理动作立即执行
func (s *Subscription) Add(teardown interface{}) *TeardownHandle {
	run := asTeardown(teardown)
	if run == nil {
		return &TeardownHandle{}
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		run()
		return &TeardownHandle{}
	}

	entry := &teardownEntry{run: run}
	s.entries = append(s.entries, entry)
	s.mu.Unlock()

	return &TeardownHandle{entry: entry}
}

// Remove 移除一个已注册的清理动作，不执行它
func (s *Subscription) Remove(handle *TeardownHandle) {
	if handle == nil || handle.entry == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, entry := range s.entries {
		if entry == handle.entry {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

// Unsubscribe 执行所有清理动作并关闭订阅，幂等
// 单个清理动作的panic不会阻止其余动作执行；全部执行后以UnsubscriptionError汇总上抛
func (s *Subscription) Unsubscribe() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	entries := s.entries
	s.entries = nil
	s.mu.Unlock()

	var failures []interface{}
	for _, entry := range entries {
		if recovered := SafeExecute(entry.run); recovered != nil {
			failures = append(failures, recovered)
		}
	}

	if failures != nil {
		panic(&UnsubscriptionError{Failures: failures})
	}
}

// IsUnsubscribed 检查是否已取消订阅
func (s *Subscription) IsUnsubscribed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// asTeardown 将支持的清理动作形式统一为Teardown
func asTeardown(teardown interface{}) Teardown {
	switch t := teardown.(type) {
	case nil:
		return nil
	case func():
		return t
	case Teardown:
		return t
	case Disposable:
		return t.Dispose
	case SubscriptionLike:
		return t.Unsubscribe
	default:
		return nil
	}
}

// ============================================================================
// Disposable 实现
// ============================================================================

// baseDisposable 基础可释放资源实现
type baseDisposable struct {
	disposed int32
	action   func()
}

// NewDisposable 创建可释放资源，Dispose至多执行一次action
func NewDisposable(action func()) Disposable {
	return &baseDisposable{action: action}
}

// Dispose 释放资源
func (d *baseDisposable) Dispose() {
	if atomic.CompareAndSwapInt32(&d.disposed, 0, 1) {
		if d.action != nil {
			d.action()
		}
	}
}

// IsDisposed 检查是否已释放
func (d *baseDisposable) IsDisposed() bool {
	return atomic.LoadInt32(&d.disposed) == 1
}

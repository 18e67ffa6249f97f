// Safe invocation helpers for rxcore
// 安全调用用户回调：以哨兵式结果捕获故障，不让panic穿透热路径
package rxcore

import (
	"fmt"
)

// SafeExecute 安全执行函数，捕获panic
func SafeExecute(action func()) (recovered interface{}) {
	defer func() {
		if r := recover(); r != nil {
			recovered = r
		}
	}()

	action()
	return nil
}

// recoveredError 将recover到的任意值转换为error
func recoveredError(recovered interface{}) error {
	if err, ok := recovered.(error); ok {
		return err
	}
	return fmt.Errorf("rxcore: panic: %v", recovered)
}

// tryPredicate 调用谓词并捕获其故障
// 返回Item{Value: bool}或Item{Error}，调用栈不因用户panic而展开
func tryPredicate(predicate IndexedPredicate, value interface{}, index int) (item Item) {
	defer func() {
		if r := recover(); r != nil {
			item = CreateErrorItem(recoveredError(r))
		}
	}()

	return CreateItem(predicate(value, index))
}

// tryCompare 调用比较器并捕获其故障
func tryCompare(comparator Comparator, a, b interface{}) (item Item) {
	defer func() {
		if r := recover(); r != nil {
			item = CreateErrorItem(recoveredError(r))
		}
	}()

	return CreateItem(comparator(a, b))
}

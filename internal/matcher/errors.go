package matcher

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput 输入档案缺失或缺少必填顶层字段。
	// 在任何评分开始前快速失败，不返回部分结果。
	ErrInvalidInput = errors.New("matcher: invalid input")

	// ErrComputation 评分过程中出现未预期的失败(嵌套字段异常等)。
	// 在顶层统一捕获并包装，不向调用方泄漏内部panic。
	ErrComputation = errors.New("matcher: computation failed")
)

// invalidInputError 带缺失字段明细的输入校验错误
func invalidInputError(side string, missing []string) error {
	return fmt.Errorf("%w: %s缺少必填字段 [%s]", ErrInvalidInput, side, strings.Join(missing, ", "))
}

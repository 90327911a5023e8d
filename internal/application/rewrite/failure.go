package rewrite

import (
	"errors"
	"fmt"

	workflowchain "echoverse-api/internal/workflow/chain"
)

// FailureSentinel 字符串接口在失败时返回的固定文案
const FailureSentinel = "Failed to rewrite text. Please check the logs."

// FailureKind 改写失败类别
type FailureKind string

const (
	FailureInvalidInput     FailureKind = "invalid_input"
	FailureModelUnavailable FailureKind = "model_unavailable"
	FailureTokenize         FailureKind = "tokenize"
	FailureGeneration       FailureKind = "generation"
	FailureEmptyOutput      FailureKind = "empty_output"
)

// Failure 改写失败结果
type Failure struct {
	Kind FailureKind
	Err  error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("rewrite failed (%s)", f.Kind)
	}
	return fmt.Sprintf("rewrite failed (%s): %v", f.Kind, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// AsFailure 从错误链中取出 *Failure
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// classify 将工作流阶段错误映射为失败类别
func classify(err error) FailureKind {
	switch {
	case errors.Is(err, workflowchain.ErrInvalidInput):
		return FailureInvalidInput
	case errors.Is(err, workflowchain.ErrModelUnavailable):
		return FailureModelUnavailable
	case errors.Is(err, workflowchain.ErrTokenize):
		return FailureTokenize
	case errors.Is(err, workflowchain.ErrEmptyOutput):
		return FailureEmptyOutput
	default:
		return FailureGeneration
	}
}

func errTextTooLong(limit int) error {
	return fmt.Errorf("%w: text exceeds %d characters", workflowchain.ErrInvalidInput, limit)
}

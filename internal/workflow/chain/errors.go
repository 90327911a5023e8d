package chain

import "errors"

// 工作流阶段错误，调用方通过 errors.Is 区分失败原因
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrModelUnavailable = errors.New("chat model unavailable")
	ErrTokenize         = errors.New("prompt tokenization failed")
	ErrGeneration       = errors.New("generation failed")
	ErrEmptyOutput      = errors.New("empty llm output")
)

// Package audiobook 编排改写、合成、存储的有声书生成流程
package audiobook

import (
	"context"

	"echoverse-api/internal/application/rewrite"
)

// TextRewriter 语气改写
type TextRewriter interface {
	Rewrite(ctx context.Context, req rewrite.Request) (*rewrite.Result, error)
}

// Translator 文本翻译
type Translator interface {
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
}

// TextExtractor 文档文本提取
type TextExtractor interface {
	Extract(filename string, data []byte) (string, error)
}

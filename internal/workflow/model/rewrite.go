package model

import "echoverse-api/internal/domain/entity"

type RewriteInput struct {
	Text string
	Tone entity.Tone

	Provider string
	Model    string

	Temperature *float32
	TopP        *float32
}

type RewriteOutput struct {
	Text string
	Tone entity.Tone

	// PromptTokens 本地分词器统计的 prompt token 数
	PromptTokens int
	// MaxNewTokens 本次调用的生成预算
	MaxNewTokens int

	Meta LLMUsageMeta
}

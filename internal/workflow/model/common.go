package model

import "time"

// LLMUsageMeta 一次模型调用的提供商、采样参数与 token 用量
type LLMUsageMeta struct {
	Provider         string
	Model            string
	PromptTokens     int
	CompletionTokens int
	Temperature      float64
	TopP             float64
	GeneratedAt      time.Time
}

// TotalTokens 返回上游报告的 token 总量，未报告时为 0
func (m LLMUsageMeta) TotalTokens() int {
	return m.PromptTokens + m.CompletionTokens
}

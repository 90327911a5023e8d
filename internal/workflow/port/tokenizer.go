package port

// Tokenizer 统计文本 token 数，用于计算生成预算
type Tokenizer interface {
	CountTokens(text string) (int, error)
}

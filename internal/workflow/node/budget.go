package node

// 默认生成预算：输出最多为输入的 120% 再加 20 个 token
const (
	DefaultExpansionPercent = 120
	DefaultSlackTokens      = 20
)

// BudgetPolicy 根据 prompt token 数计算生成上限
type BudgetPolicy struct {
	ExpansionPercent int
	SlackTokens      int
}

// DefaultBudgetPolicy 返回默认预算策略
func DefaultBudgetPolicy() BudgetPolicy {
	return BudgetPolicy{
		ExpansionPercent: DefaultExpansionPercent,
		SlackTokens:      DefaultSlackTokens,
	}
}

// Normalize 零值策略视为默认策略；其余非法取值替换为默认值
func (p BudgetPolicy) Normalize() BudgetPolicy {
	if p == (BudgetPolicy{}) {
		return DefaultBudgetPolicy()
	}
	if p.ExpansionPercent <= 0 {
		p.ExpansionPercent = DefaultExpansionPercent
	}
	if p.SlackTokens < 0 {
		p.SlackTokens = DefaultSlackTokens
	}
	return p
}

// MaxNewTokens 返回 floor(inputTokens * ExpansionPercent / 100) + SlackTokens
// 整数运算保证向下取整精确，不受浮点误差影响
func (p BudgetPolicy) MaxNewTokens(inputTokens int) int {
	if inputTokens < 0 {
		inputTokens = 0
	}
	return inputTokens*p.ExpansionPercent/100 + p.SlackTokens
}

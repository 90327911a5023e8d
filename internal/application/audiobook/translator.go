package audiobook

import (
	"context"

	"echoverse-api/internal/config"
	workflowchain "echoverse-api/internal/workflow/chain"
	wfmodel "echoverse-api/internal/workflow/model"
	workflowport "echoverse-api/internal/workflow/port"
	workflowprompt "echoverse-api/internal/workflow/prompt"
)

// ChainTranslator 基于翻译工作流的 Translator
type ChainTranslator struct {
	chain    *workflowchain.TranslateChain
	provider string
	model    string
}

// NewChainTranslator 创建翻译器
func NewChainTranslator(factory workflowport.ChatModelFactory, registry *workflowprompt.Registry, provider, model string) *ChainTranslator {
	return &ChainTranslator{
		chain:    workflowchain.NewTranslateChain(factory, registry),
		provider: provider,
		model:    model,
	}
}

// NewChainTranslatorFromConfig 供依赖注入使用
func NewChainTranslatorFromConfig(cfg *config.Config, factory workflowport.ChatModelFactory, registry *workflowprompt.Registry) *ChainTranslator {
	provider := cfg.TranslationProvider()
	var model string
	if p, ok := cfg.LLM.Providers[provider]; ok {
		model = p.Model
	}
	return NewChainTranslator(factory, registry, provider, model)
}

// Translate 实现 Translator
func (t *ChainTranslator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	out, err := t.chain.Invoke(ctx, &wfmodel.TranslateInput{
		Text:           text,
		TargetLanguage: targetLanguage,
		Provider:       t.provider,
		Model:          t.model,
	})
	if err != nil {
		return "", err
	}
	return out.Text, nil
}

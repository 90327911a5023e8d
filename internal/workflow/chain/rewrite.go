package chain

import (
	"context"
	"fmt"
	"strings"
	"time"

	einocallbacks "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"echoverse-api/internal/domain/entity"
	llmctx "echoverse-api/internal/domain/service"
	wfmodel "echoverse-api/internal/workflow/model"
	"echoverse-api/internal/workflow/node"
	workflowport "echoverse-api/internal/workflow/port"
	workflowprompt "echoverse-api/internal/workflow/prompt"
)

// RewritePrompt 格式化后的改写 prompt 及其预算
type RewritePrompt struct {
	ID           workflowprompt.PromptID
	Messages     []*schema.Message
	PromptTokens int
	MaxNewTokens int
}

// Text 返回 prompt 全文（各消息按换行拼接），即参与计数的文本
func (p *RewritePrompt) Text() string {
	if p == nil {
		return ""
	}
	parts := make([]string, 0, len(p.Messages))
	for _, m := range p.Messages {
		if m != nil {
			parts = append(parts, m.Content)
		}
	}
	return strings.Join(parts, "\n")
}

type RewriteChain struct {
	factory   workflowport.ChatModelFactory
	tokenizer workflowport.Tokenizer
	registry  *workflowprompt.Registry
	budget    node.BudgetPolicy
}

func NewRewriteChain(factory workflowport.ChatModelFactory, tokenizer workflowport.Tokenizer, registry *workflowprompt.Registry, budget node.BudgetPolicy) *RewriteChain {
	if registry == nil {
		registry = workflowprompt.NewRegistry()
	}
	return &RewriteChain{
		factory:   factory,
		tokenizer: tokenizer,
		registry:  registry,
		budget:    budget.Normalize(),
	}
}

// BuildPrompt 选择语气模板、替换原文并计算生成预算
func (c *RewriteChain) BuildPrompt(ctx context.Context, tone entity.Tone, text string) (*RewritePrompt, error) {
	if c == nil || c.tokenizer == nil {
		return nil, fmt.Errorf("%w: tokenizer not configured", ErrTokenize)
	}

	id := workflowprompt.RewritePromptFor(tone)
	tpl, err := c.registry.ChatTemplate(id)
	if err != nil {
		return nil, err
	}
	msgs, err := tpl.Format(ctx, map[string]any{"text": text})
	if err != nil {
		return nil, err
	}

	p := &RewritePrompt{ID: id, Messages: msgs}
	n, err := c.tokenizer.CountTokens(p.Text())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenize, err)
	}
	p.PromptTokens = n
	p.MaxNewTokens = c.budget.MaxNewTokens(n)
	return p, nil
}

func (c *RewriteChain) Invoke(ctx context.Context, in *wfmodel.RewriteInput) (*wfmodel.RewriteOutput, error) {
	if c == nil || c.factory == nil {
		return nil, fmt.Errorf("%w: llm factory not configured", ErrModelUnavailable)
	}
	if in == nil {
		return nil, fmt.Errorf("%w: input is nil", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Text) == "" {
		return nil, fmt.Errorf("%w: text is required", ErrInvalidInput)
	}

	tone := entity.ParseTone(string(in.Tone))
	provider := strings.TrimSpace(in.Provider)
	ctx = llmctx.WithWorkflowProvider(ctx, llmctx.WorkflowRewrite, provider)
	ctx = llmctx.WithTone(ctx, tone.String())

	p, err := c.BuildPrompt(ctx, tone, in.Text)
	if err != nil {
		return nil, err
	}

	chatModel, err := c.factory.Get(ctx, provider)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModelUnavailable, err)
	}

	ctx = einocallbacks.InitCallbacks(ctx, &einocallbacks.RunInfo{
		Name:      string(p.ID),
		Type:      "RewriteChain",
		Component: components.ComponentOfChatModel,
	})

	opts := buildRewriteModelOptions(in, p.MaxNewTokens)
	outMsg, err := chatModel.Generate(ctx, p.Messages, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	if outMsg == nil {
		return nil, fmt.Errorf("%w: nil message", ErrEmptyOutput)
	}

	prompts := make([]string, 0, len(p.Messages)+1)
	prompts = append(prompts, p.Text())
	for _, m := range p.Messages {
		prompts = append(prompts, m.Content)
	}
	content := node.ExtractContinuation(outMsg.Content, prompts...)
	if content == "" {
		return nil, fmt.Errorf("%w: model returned no text", ErrEmptyOutput)
	}

	meta := wfmodel.LLMUsageMeta{
		Provider:    provider,
		Model:       strings.TrimSpace(in.Model),
		GeneratedAt: time.Now().UTC(),
	}
	if in.Temperature != nil {
		meta.Temperature = float64(*in.Temperature)
	}
	if in.TopP != nil {
		meta.TopP = float64(*in.TopP)
	}
	if outMsg.ResponseMeta != nil && outMsg.ResponseMeta.Usage != nil {
		meta.PromptTokens = outMsg.ResponseMeta.Usage.PromptTokens
		meta.CompletionTokens = outMsg.ResponseMeta.Usage.CompletionTokens
	}

	return &wfmodel.RewriteOutput{
		Text:         content,
		Tone:         tone,
		PromptTokens: p.PromptTokens,
		MaxNewTokens: p.MaxNewTokens,
		Meta:         meta,
	}, nil
}

func buildRewriteModelOptions(in *wfmodel.RewriteInput, maxNewTokens int) []model.Option {
	opts := make([]model.Option, 0, 4)
	opts = append(opts, model.WithMaxTokens(maxNewTokens))
	if in.Temperature != nil {
		opts = append(opts, model.WithTemperature(*in.Temperature))
	}
	if in.TopP != nil {
		opts = append(opts, model.WithTopP(*in.TopP))
	}
	if strings.TrimSpace(in.Model) != "" {
		opts = append(opts, model.WithModel(strings.TrimSpace(in.Model)))
	}
	return opts
}

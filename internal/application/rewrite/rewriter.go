// Package rewrite 提供按语气改写文本的应用服务
package rewrite

import (
	"context"
	"strings"
	"time"

	"echoverse-api/internal/config"
	"echoverse-api/internal/domain/entity"
	workflowchain "echoverse-api/internal/workflow/chain"
	wfmodel "echoverse-api/internal/workflow/model"
	"echoverse-api/internal/workflow/node"
	workflowport "echoverse-api/internal/workflow/port"
	workflowprompt "echoverse-api/internal/workflow/prompt"
	"echoverse-api/pkg/logger"
	"echoverse-api/pkg/metrics"
)

// Request 改写请求
type Request struct {
	Text string
	Tone string
}

// Result 改写成功结果
type Result struct {
	Text         string
	Tone         entity.Tone
	PromptTokens int
	MaxNewTokens int
	Meta         wfmodel.LLMUsageMeta
}

// Settings 改写调用参数
type Settings struct {
	Provider    string
	Model       string
	Temperature float32
	TopP        float32
	Budget      node.BudgetPolicy
	MaxChars    int
}

// SettingsFromConfig 从配置构造改写参数
func SettingsFromConfig(cfg *config.Config) Settings {
	s := Settings{
		Provider:    cfg.RewriteProvider(),
		Temperature: float32(cfg.Rewrite.Temperature),
		TopP:        float32(cfg.Rewrite.TopP),
		Budget: node.BudgetPolicy{
			ExpansionPercent: cfg.Rewrite.ExpansionPercent,
			SlackTokens:      cfg.Rewrite.SlackTokens,
		},
		MaxChars: cfg.Rewrite.MaxChars,
	}
	if p, ok := cfg.LLM.Providers[s.Provider]; ok {
		s.Model = p.Model
	}
	return s
}

// Rewriter 改写服务，持有注入的模型工厂与分词器，可并发复用
type Rewriter struct {
	chain    *workflowchain.RewriteChain
	settings Settings
}

// NewRewriter 创建改写服务
func NewRewriter(factory workflowport.ChatModelFactory, tokenizer workflowport.Tokenizer, registry *workflowprompt.Registry, settings Settings) *Rewriter {
	settings.Budget = settings.Budget.Normalize()
	return &Rewriter{
		chain:    workflowchain.NewRewriteChain(factory, tokenizer, registry, settings.Budget),
		settings: settings,
	}
}

// NewRewriterFromConfig 供依赖注入使用
func NewRewriterFromConfig(cfg *config.Config, factory workflowport.ChatModelFactory, tokenizer workflowport.Tokenizer, registry *workflowprompt.Registry) *Rewriter {
	return NewRewriter(factory, tokenizer, registry, SettingsFromConfig(cfg))
}

// Rewrite 改写文本；失败时返回 *Failure，不重试
func (r *Rewriter) Rewrite(ctx context.Context, req Request) (*Result, error) {
	tone := entity.ParseTone(req.Tone)
	start := time.Now()

	if strings.TrimSpace(req.Text) == "" {
		return nil, r.fail(ctx, tone, &Failure{Kind: FailureInvalidInput, Err: workflowchain.ErrInvalidInput})
	}
	if r.settings.MaxChars > 0 && len([]rune(req.Text)) > r.settings.MaxChars {
		return nil, r.fail(ctx, tone, &Failure{Kind: FailureInvalidInput, Err: errTextTooLong(r.settings.MaxChars)})
	}

	out, err := r.chain.Invoke(ctx, &wfmodel.RewriteInput{
		Text:        req.Text,
		Tone:        tone,
		Provider:    r.settings.Provider,
		Model:       r.settings.Model,
		Temperature: &r.settings.Temperature,
		TopP:        &r.settings.TopP,
	})
	if err != nil {
		return nil, r.fail(ctx, tone, &Failure{Kind: classify(err), Err: err})
	}

	metrics.RewriteBudgetTokens.WithLabelValues(tone.String()).Observe(float64(out.MaxNewTokens))
	logger.Info(ctx, "text rewritten",
		"tone", tone.String(),
		"prompt_tokens", out.PromptTokens,
		"max_new_tokens", out.MaxNewTokens,
		"output_chars", len(out.Text),
		"total_tokens", out.Meta.TotalTokens(),
		"preview", node.PreviewText(out.Text, 80),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &Result{
		Text:         out.Text,
		Tone:         out.Tone,
		PromptTokens: out.PromptTokens,
		MaxNewTokens: out.MaxNewTokens,
		Meta:         out.Meta,
	}, nil
}

// RewriteText 字符串接口：成功返回改写文本，失败返回 FailureSentinel
func (r *Rewriter) RewriteText(ctx context.Context, text, tone string) string {
	res, err := r.Rewrite(ctx, Request{Text: text, Tone: tone})
	if err != nil {
		return FailureSentinel
	}
	return res.Text
}

// BudgetFor 返回给定 prompt token 数对应的生成预算
func (r *Rewriter) BudgetFor(promptTokens int) int {
	return r.settings.Budget.MaxNewTokens(promptTokens)
}

// Preview 返回某语气下实际发送的 prompt 与预算，不调用模型
func (r *Rewriter) Preview(ctx context.Context, req Request) (*workflowchain.RewritePrompt, error) {
	return r.chain.BuildPrompt(ctx, entity.ParseTone(req.Tone), req.Text)
}

func (r *Rewriter) fail(ctx context.Context, tone entity.Tone, f *Failure) error {
	metrics.RewriteFailuresTotal.WithLabelValues(tone.String(), string(f.Kind)).Inc()
	logger.Error(ctx, "text rewrite failed", f.Err, "tone", tone.String(), "kind", string(f.Kind))
	return f
}

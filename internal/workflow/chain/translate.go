package chain

import (
	"context"
	"fmt"
	"strings"
	"time"

	einocallbacks "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/components/model"

	llmctx "echoverse-api/internal/domain/service"
	wfmodel "echoverse-api/internal/workflow/model"
	"echoverse-api/internal/workflow/node"
	workflowport "echoverse-api/internal/workflow/port"
	workflowprompt "echoverse-api/internal/workflow/prompt"
)

const translateTemperature = float32(0.2)

type TranslateChain struct {
	factory  workflowport.ChatModelFactory
	registry *workflowprompt.Registry
}

func NewTranslateChain(factory workflowport.ChatModelFactory, registry *workflowprompt.Registry) *TranslateChain {
	if registry == nil {
		registry = workflowprompt.NewRegistry()
	}
	return &TranslateChain{factory: factory, registry: registry}
}

func (c *TranslateChain) Invoke(ctx context.Context, in *wfmodel.TranslateInput) (*wfmodel.TranslateOutput, error) {
	if c == nil || c.factory == nil {
		return nil, fmt.Errorf("%w: llm factory not configured", ErrModelUnavailable)
	}
	if in == nil || strings.TrimSpace(in.Text) == "" {
		return nil, fmt.Errorf("%w: text is required", ErrInvalidInput)
	}
	target := strings.TrimSpace(in.TargetLanguage)
	if target == "" {
		return nil, fmt.Errorf("%w: target language is required", ErrInvalidInput)
	}

	provider := strings.TrimSpace(in.Provider)
	ctx = llmctx.WithWorkflowProvider(ctx, llmctx.WorkflowTranslate, provider)

	tpl, err := c.registry.ChatTemplate(workflowprompt.PromptTranslateV1)
	if err != nil {
		return nil, err
	}
	msgs, err := tpl.Format(ctx, map[string]any{
		"text":            strings.TrimSpace(in.Text),
		"target_language": target,
	})
	if err != nil {
		return nil, err
	}

	chatModel, err := c.factory.Get(ctx, provider)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModelUnavailable, err)
	}

	ctx = einocallbacks.InitCallbacks(ctx, &einocallbacks.RunInfo{
		Name:      string(workflowprompt.PromptTranslateV1),
		Type:      "TranslateChain",
		Component: components.ComponentOfChatModel,
	})

	opts := []model.Option{model.WithTemperature(translateTemperature)}
	if strings.TrimSpace(in.Model) != "" {
		opts = append(opts, model.WithModel(strings.TrimSpace(in.Model)))
	}
	outMsg, err := chatModel.Generate(ctx, msgs, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	if outMsg == nil {
		return nil, fmt.Errorf("%w: nil message", ErrEmptyOutput)
	}

	content := node.ExtractContinuation(outMsg.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: model returned no text", ErrEmptyOutput)
	}

	meta := wfmodel.LLMUsageMeta{
		Provider:    provider,
		Model:       strings.TrimSpace(in.Model),
		Temperature: float64(translateTemperature),
		GeneratedAt: time.Now().UTC(),
	}
	if outMsg.ResponseMeta != nil && outMsg.ResponseMeta.Usage != nil {
		meta.PromptTokens = outMsg.ResponseMeta.Usage.PromptTokens
		meta.CompletionTokens = outMsg.ResponseMeta.Usage.CompletionTokens
	}
	return &wfmodel.TranslateOutput{Text: content, Meta: meta}, nil
}

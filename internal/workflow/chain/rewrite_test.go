package chain

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"echoverse-api/internal/domain/entity"
	wfmodel "echoverse-api/internal/workflow/model"
	"echoverse-api/internal/workflow/node"
	"echoverse-api/internal/workflow/workflowtest"
)

func ptr32(v float32) *float32 { return &v }

func newTestRewriteChain(m *workflowtest.ChatModel) *RewriteChain {
	return NewRewriteChain(&workflowtest.Factory{Model: m}, workflowtest.WordTokenizer{}, nil, node.DefaultBudgetPolicy())
}

func TestRewriteChainPassesBudgetAndSampling(t *testing.T) {
	m := &workflowtest.ChatModel{
		Reply: func(_ []*schema.Message, _ *model.Options) (*schema.Message, error) {
			return schema.AssistantMessage("A new dawn lifted the hill into gold.", nil), nil
		},
	}
	c := newTestRewriteChain(m)

	out, err := c.Invoke(context.Background(), &wfmodel.RewriteInput{
		Text:        "The sun rose over the hill.",
		Tone:        entity.ToneInspiring,
		Provider:    "huggingface",
		Temperature: ptr32(0.6),
		TopP:        ptr32(0.8),
	})
	require.NoError(t, err)

	p, err := c.BuildPrompt(context.Background(), entity.ToneInspiring, "The sun rose over the hill.")
	require.NoError(t, err)
	wantTokens := len(strings.Fields(p.Text()))

	assert.Equal(t, "A new dawn lifted the hill into gold.", out.Text)
	assert.Equal(t, entity.ToneInspiring, out.Tone)
	assert.Equal(t, wantTokens, out.PromptTokens)
	assert.Equal(t, wantTokens*12/10+20, out.MaxNewTokens)

	calls := m.Calls()
	require.Len(t, calls, 1)
	opts := calls[0].Options
	require.NotNil(t, opts.MaxTokens)
	assert.Equal(t, out.MaxNewTokens, *opts.MaxTokens)
	require.NotNil(t, opts.Temperature)
	assert.InDelta(t, 0.6, *opts.Temperature, 1e-6)
	require.NotNil(t, opts.TopP)
	assert.InDelta(t, 0.8, *opts.TopP, 1e-6)

	user := m.LastUserContent()
	assert.Contains(t, user, "inspiring and motivational")
	assert.Contains(t, user, "The sun rose over the hill.")
}

func TestRewriteChainZeroBudgetPolicyUsesDefault(t *testing.T) {
	m := &workflowtest.ChatModel{}
	c := NewRewriteChain(&workflowtest.Factory{Model: m}, workflowtest.WordTokenizer{}, nil, node.BudgetPolicy{})

	out, err := c.Invoke(context.Background(), &wfmodel.RewriteInput{
		Text: "The sun rose over the hill.",
		Tone: entity.ToneNeutral,
	})
	require.NoError(t, err)
	assert.Equal(t, out.PromptTokens*12/10+20, out.MaxNewTokens)

	calls := m.Calls()
	require.Len(t, calls, 1)
	require.NotNil(t, calls[0].Options.MaxTokens)
	assert.Equal(t, out.MaxNewTokens, *calls[0].Options.MaxTokens)
}

func TestRewriteChainUnknownToneUsesNeutral(t *testing.T) {
	neutral := &workflowtest.ChatModel{}
	unknown := &workflowtest.ChatModel{}

	_, err := newTestRewriteChain(neutral).Invoke(context.Background(), &wfmodel.RewriteInput{Text: "It rained.", Tone: entity.ToneNeutral})
	require.NoError(t, err)
	out, err := newTestRewriteChain(unknown).Invoke(context.Background(), &wfmodel.RewriteInput{Text: "It rained.", Tone: entity.Tone("Unknown")})
	require.NoError(t, err)

	assert.Equal(t, entity.ToneNeutral, out.Tone)
	assert.Equal(t, neutral.Calls()[0].Messages, unknown.Calls()[0].Messages)
	assert.Equal(t, *neutral.Calls()[0].Options.MaxTokens, *unknown.Calls()[0].Options.MaxTokens)
}

func TestRewriteChainStripsEchoedPrompt(t *testing.T) {
	m := &workflowtest.ChatModel{
		Reply: func(msgs []*schema.Message, _ *model.Options) (*schema.Message, error) {
			return schema.AssistantMessage(msgs[1].Content+" Rain hammered the roof.", nil), nil
		},
	}
	c := newTestRewriteChain(m)

	out, err := c.Invoke(context.Background(), &wfmodel.RewriteInput{Text: "It rained.", Tone: entity.ToneSuspenseful})
	require.NoError(t, err)
	assert.Equal(t, "Rain hammered the roof.", out.Text)
	assert.NotContains(t, out.Text, m.LastUserContent())
}

func TestRewriteChainErrors(t *testing.T) {
	boom := errors.New("boom")

	cases := []struct {
		name  string
		chain *RewriteChain
		in    *wfmodel.RewriteInput
		want  error
	}{
		{
			name:  "empty text",
			chain: newTestRewriteChain(&workflowtest.ChatModel{}),
			in:    &wfmodel.RewriteInput{Text: "  "},
			want:  ErrInvalidInput,
		},
		{
			name:  "factory error",
			chain: NewRewriteChain(&workflowtest.Factory{Err: boom}, workflowtest.WordTokenizer{}, nil, node.BudgetPolicy{}),
			in:    &wfmodel.RewriteInput{Text: "x"},
			want:  ErrModelUnavailable,
		},
		{
			name:  "tokenizer error",
			chain: NewRewriteChain(&workflowtest.Factory{Model: &workflowtest.ChatModel{}}, workflowtest.WordTokenizer{Err: boom}, nil, node.BudgetPolicy{}),
			in:    &wfmodel.RewriteInput{Text: "x"},
			want:  ErrTokenize,
		},
		{
			name: "generation error",
			chain: newTestRewriteChain(&workflowtest.ChatModel{Reply: func([]*schema.Message, *model.Options) (*schema.Message, error) {
				return nil, boom
			}}),
			in:   &wfmodel.RewriteInput{Text: "x"},
			want: ErrGeneration,
		},
		{
			name: "empty output",
			chain: newTestRewriteChain(&workflowtest.ChatModel{Reply: func([]*schema.Message, *model.Options) (*schema.Message, error) {
				return schema.AssistantMessage("Rewritten Text:  ", nil), nil
			}}),
			in:   &wfmodel.RewriteInput{Text: "x"},
			want: ErrEmptyOutput,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.chain.Invoke(context.Background(), tc.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestTranslateChain(t *testing.T) {
	m := &workflowtest.ChatModel{
		Reply: func(_ []*schema.Message, _ *model.Options) (*schema.Message, error) {
			return schema.AssistantMessage("Good morning", nil), nil
		},
	}
	c := NewTranslateChain(&workflowtest.Factory{Model: m}, nil)

	out, err := c.Invoke(context.Background(), &wfmodel.TranslateInput{Text: "Buenos días", TargetLanguage: "en"})
	require.NoError(t, err)
	assert.Equal(t, "Good morning", out.Text)
	assert.Contains(t, m.LastUserContent(), "Target language: en")
	assert.Contains(t, m.LastUserContent(), "Buenos días")

	_, err = c.Invoke(context.Background(), &wfmodel.TranslateInput{Text: "hola"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

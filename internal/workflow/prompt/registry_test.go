package prompt

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"echoverse-api/internal/domain/entity"
)

func TestRewritePromptFor(t *testing.T) {
	assert.Equal(t, PromptRewriteNeutralV1, RewritePromptFor(entity.ToneNeutral))
	assert.Equal(t, PromptRewriteSuspensefulV1, RewritePromptFor(entity.ToneSuspenseful))
	assert.Equal(t, PromptRewriteInspiringV1, RewritePromptFor(entity.ToneInspiring))
	assert.Equal(t, PromptRewriteNeutralV1, RewritePromptFor(entity.Tone("Unknown")))
}

func TestRewriteTemplatesCarryConstraints(t *testing.T) {
	r := NewRegistry()
	for _, id := range []PromptID{PromptRewriteNeutralV1, PromptRewriteSuspensefulV1, PromptRewriteInspiringV1} {
		text, err := r.Instruction(id)
		require.NoError(t, err)
		assert.Contains(t, text, "You MUST NOT add any new information, facts, or events.")
		assert.Contains(t, text, `Original Text: "{text}"`)
		assert.Contains(t, text, "Rewritten Text:")
	}
}

func TestChatTemplateFormat(t *testing.T) {
	r := NewRegistry()
	tpl, err := r.ChatTemplate(PromptRewriteInspiringV1)
	require.NoError(t, err)

	msgs, err := tpl.Format(context.Background(), map[string]any{"text": "The sun rose over the hill."})
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, schema.System, msgs[0].Role)
	assert.Equal(t, schema.User, msgs[1].Role)
	assert.Contains(t, msgs[1].Content, "inspiring and motivational")
	assert.Contains(t, msgs[1].Content, `"The sun rose over the hill."`)

	again, err := r.ChatTemplate(PromptRewriteInspiringV1)
	require.NoError(t, err)
	assert.Same(t, tpl, again)
}

func TestChatTemplateUnknownID(t *testing.T) {
	_, err := NewRegistry().ChatTemplate(PromptID("nope"))
	assert.Error(t, err)
}

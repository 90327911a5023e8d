package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkflowProviderRoundTrip(t *testing.T) {
	ctx := WithWorkflowProvider(context.Background(), WorkflowRewrite, " huggingface ")
	ctx = WithTone(ctx, "Inspiring")

	assert.Equal(t, "rewrite", WorkflowFromContext(ctx))
	assert.Equal(t, "huggingface", ProviderFromContext(ctx))
	assert.Equal(t, "Inspiring", ToneFromContext(ctx))
}

func TestContextDefaults(t *testing.T) {
	ctx := WithWorkflow(context.Background(), "   ")
	assert.Equal(t, "unknown", WorkflowFromContext(ctx))
	assert.Equal(t, "unknown", ProviderFromContext(ctx))
	assert.Equal(t, "unknown", WorkflowFromContext(nil))
}

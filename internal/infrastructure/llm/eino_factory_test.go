package llm

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"echoverse-api/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		LLM: config.LLMConfig{
			DefaultProvider: "huggingface",
			Providers: map[string]config.ProviderConfig{
				"huggingface": {
					APIKey:           "hf_test",
					BaseURL:          "http://127.0.0.1:1/v1",
					Model:            "ibm-granite/granite-3.2-2b-instruct",
					MaxTokens:        512,
					Temperature:      0.6,
					TopP:             0.8,
					FrequencyPenalty: 0.3,
					Timeout:          time.Second,
				},
				"nokey": {BaseURL: "http://127.0.0.1:1/v1", Model: "m"},
			},
		},
	}
}

func TestEinoFactoryCachesModels(t *testing.T) {
	f := NewEinoFactory(testConfig())

	var wg sync.WaitGroup
	results := make(chan any, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m, err := f.Get(context.Background(), "huggingface")
			assert.NoError(t, err)
			results <- m
		}()
	}
	wg.Wait()
	close(results)

	var first any
	for m := range results {
		if first == nil {
			first = m
			continue
		}
		assert.Same(t, first, m)
	}

	def, err := f.Default(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, def)
}

func TestEinoFactoryErrors(t *testing.T) {
	f := NewEinoFactory(testConfig())

	_, err := f.Get(context.Background(), "missing")
	assert.Error(t, err)

	_, err = f.Get(context.Background(), "nokey")
	assert.Error(t, err)
}

func TestChatModelConfig(t *testing.T) {
	cfg := chatModelConfig(testConfig().LLM.Providers["huggingface"])
	require.NotNil(t, cfg.TopP)
	assert.InDelta(t, 0.8, *cfg.TopP, 1e-6)
	require.NotNil(t, cfg.FrequencyPenalty)
	assert.InDelta(t, 0.3, *cfg.FrequencyPenalty, 1e-6)
	require.NotNil(t, cfg.MaxTokens)
	assert.Equal(t, 512, *cfg.MaxTokens)

	bare := chatModelConfig(config.ProviderConfig{APIKey: "k"})
	assert.Nil(t, bare.TopP)
	assert.Nil(t, bare.FrequencyPenalty)
	assert.Nil(t, bare.MaxTokens)
}

package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"echoverse-api/internal/config"
	"echoverse-api/internal/domain/entity"
	"echoverse-api/internal/infrastructure/httpclient"
	"echoverse-api/pkg/tracer"
)

// OpenAI OpenAI 兼容的 /audio/speech 接口（OpenAI、Kokoro 等）
type OpenAI struct {
	cfg      config.OpenAITTSConfig
	maxChars int
	client   *http.Client
}

// NewOpenAI 创建 OpenAI 兼容合成后端
func NewOpenAI(cfg config.OpenAITTSConfig, timeout time.Duration, maxChars int) *OpenAI {
	return &OpenAI{cfg: cfg, maxChars: maxChars, client: httpclient.New(timeout)}
}

// Name 实现 Synthesizer
func (s *OpenAI) Name() string { return "openai" }

type speechRequest struct {
	Model          string  `json:"model"`
	Input          string  `json:"input"`
	Voice          string  `json:"voice"`
	ResponseFormat string  `json:"response_format"`
	Speed          float64 `json:"speed,omitempty"`
}

// Synthesize 实现 Synthesizer
func (s *OpenAI) Synthesize(ctx context.Context, text string, voice entity.VoiceProfile) (*Audio, error) {
	ctx, span := tracer.Start(ctx, "tts.openai.Synthesize")
	defer span.End()
	span.SetAttributes(attribute.String("tts.voice", voice.OpenAI), attribute.Int("tts.chars", len(text)))

	audio, err := synthesizeChunks(ctx, s.Name(), text, s.maxChars, func(ctx context.Context, chunk string) ([]byte, error) {
		return s.speech(ctx, chunk, voice.OpenAI)
	})
	tracer.Fail(span, err)
	return audio, err
}

func (s *OpenAI) speech(ctx context.Context, text, voice string) ([]byte, error) {
	body, err := json.Marshal(speechRequest{
		Model:          s.cfg.Model,
		Input:          text,
		Voice:          voice,
		ResponseFormat: "mp3",
		Speed:          s.cfg.Speed,
	})
	if err != nil {
		return nil, err
	}

	url := strings.TrimRight(s.cfg.BaseURL, "/") + "/audio/speech"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai speech request: %w", err)
	}
	defer resp.Body.Close()

	if err := httpclient.CheckResponse("openai speech", resp); err != nil {
		return nil, err
	}
	return io.ReadAll(resp.Body)
}

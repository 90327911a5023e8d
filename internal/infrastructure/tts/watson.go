package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"echoverse-api/internal/config"
	"echoverse-api/internal/domain/entity"
	"echoverse-api/internal/infrastructure/httpclient"
	"echoverse-api/pkg/tracer"
)

// Watson IBM Watson Text to Speech
type Watson struct {
	cfg      config.WatsonTTSConfig
	maxChars int
	client   *http.Client
}

// NewWatson 创建 Watson 合成后端
func NewWatson(cfg config.WatsonTTSConfig, timeout time.Duration, maxChars int) *Watson {
	return &Watson{cfg: cfg, maxChars: maxChars, client: httpclient.New(timeout)}
}

// Name 实现 Synthesizer
func (s *Watson) Name() string { return "watson" }

// Synthesize 实现 Synthesizer
func (s *Watson) Synthesize(ctx context.Context, text string, voice entity.VoiceProfile) (*Audio, error) {
	ctx, span := tracer.Start(ctx, "tts.watson.Synthesize")
	defer span.End()
	span.SetAttributes(attribute.String("tts.voice", voice.Watson), attribute.Int("tts.chars", len(text)))

	audio, err := synthesizeChunks(ctx, s.Name(), text, s.maxChars, func(ctx context.Context, chunk string) ([]byte, error) {
		return s.synthesize(ctx, chunk, voice.Watson)
	})
	tracer.Fail(span, err)
	return audio, err
}

func (s *Watson) synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, err
	}

	endpoint := strings.TrimRight(s.cfg.URL, "/") + "/v1/synthesize?voice=" + url.QueryEscape(voice)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth("apikey", s.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mp3")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("watson synthesize request: %w", err)
	}
	defer resp.Body.Close()

	if err := httpclient.CheckResponse("watson synthesize", resp); err != nil {
		return nil, err
	}
	return io.ReadAll(resp.Body)
}

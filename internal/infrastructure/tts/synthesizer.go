// Package tts 提供语音合成后端实现
package tts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"echoverse-api/internal/config"
	"echoverse-api/internal/domain/entity"
	"echoverse-api/pkg/metrics"
)

// ContentTypeMP3 合成音频的 MIME 类型
const ContentTypeMP3 = "audio/mpeg"

// ErrEmptyAudio 上游返回了空音频
var ErrEmptyAudio = errors.New("tts: empty audio")

// Audio 合成结果
type Audio struct {
	Data        []byte
	ContentType string
	Provider    string
}

// Synthesizer 语音合成接口
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, voice entity.VoiceProfile) (*Audio, error)
	Name() string
}

// New 按配置创建合成后端
func New(cfg *config.Config) (Synthesizer, error) {
	switch p := strings.ToLower(strings.TrimSpace(cfg.TTS.Provider)); p {
	case "", "openai":
		return NewOpenAI(cfg.TTS.OpenAI, cfg.TTS.Timeout, cfg.TTS.MaxChars), nil
	case "watson":
		return NewWatson(cfg.TTS.Watson, cfg.TTS.Timeout, cfg.TTS.MaxChars), nil
	case "google":
		return NewGoogle(cfg.TTS.Google, cfg.TTS.MaxChars), nil
	default:
		return nil, fmt.Errorf("unknown tts provider: %s", p)
	}
}

// synthesizeChunks 按长度上限切分文本，逐段合成后拼接 MP3 帧
func synthesizeChunks(ctx context.Context, provider, text string, maxChars int, one func(context.Context, string) ([]byte, error)) (*Audio, error) {
	start := time.Now()
	status := "success"
	defer func() {
		metrics.TTSCallTotal.WithLabelValues(provider, status).Inc()
		metrics.TTSCallDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
	}()

	chunks := SplitText(text, maxChars)
	if len(chunks) == 0 {
		status = "error"
		return nil, fmt.Errorf("%s: text is empty", provider)
	}

	var out []byte
	for _, chunk := range chunks {
		data, err := one(ctx, chunk)
		if err != nil {
			status = "error"
			return nil, err
		}
		if len(data) == 0 {
			status = "error"
			return nil, fmt.Errorf("%s: %w", provider, ErrEmptyAudio)
		}
		out = append(out, data...)
	}
	return &Audio{Data: out, ContentType: ContentTypeMP3, Provider: provider}, nil
}

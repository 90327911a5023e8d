package tts

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"echoverse-api/internal/domain/entity"
	"echoverse-api/pkg/logger"
	"echoverse-api/pkg/metrics"
)

// Loader 读穿缓存，由 redis.Cache 实现
type Loader interface {
	GetOrLoadBytes(ctx context.Context, key string, ttl time.Duration, loader func(context.Context) ([]byte, error)) ([]byte, bool, error)
}

// Cached 以 (后端, 声音, 文本) 为键缓存合成结果，并合并并发的相同请求
type Cached struct {
	next  Synthesizer
	cache Loader
	ttl   time.Duration
}

// NewCached 包装合成后端；cache 为空或 ttl 非正时直接返回 next
func NewCached(next Synthesizer, cache Loader, ttl time.Duration) Synthesizer {
	if cache == nil || ttl <= 0 {
		return next
	}
	return &Cached{next: next, cache: cache, ttl: ttl}
}

// Name 实现 Synthesizer
func (c *Cached) Name() string { return c.next.Name() }

// Synthesize 实现 Synthesizer
func (c *Cached) Synthesize(ctx context.Context, text string, voice entity.VoiceProfile) (*Audio, error) {
	key := CacheKey(c.next.Name(), voice.Voice, text)

	data, loaded, err := c.cache.GetOrLoadBytes(ctx, key, c.ttl, func(ctx context.Context) ([]byte, error) {
		audio, err := c.next.Synthesize(ctx, text, voice)
		if err != nil {
			return nil, err
		}
		return audio.Data, nil
	})
	switch {
	case err != nil && loaded:
		return nil, err
	case err != nil:
		// 缓存不可用时直接合成
		metrics.CacheLookupTotal.WithLabelValues("tts", "error").Inc()
		logger.Warn(ctx, "tts cache unavailable", "error", err.Error())
		return c.next.Synthesize(ctx, text, voice)
	}

	result := "hit"
	if loaded {
		result = "miss"
	}
	metrics.CacheLookupTotal.WithLabelValues("tts", result).Inc()

	if len(data) == 0 {
		return nil, ErrEmptyAudio
	}
	return &Audio{Data: data, ContentType: ContentTypeMP3, Provider: c.next.Name()}, nil
}

// CacheKey 构建合成缓存键
func CacheKey(provider string, voice entity.Voice, text string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("tts:%s:%s:%s", provider, voiceSlug(voice), hex.EncodeToString(sum[:16]))
}

func voiceSlug(v entity.Voice) string {
	out := make([]byte, 0, len(v))
	for i := 0; i < len(v); i++ {
		ch := v[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9':
			out = append(out, ch)
		case ch >= 'A' && ch <= 'Z':
			out = append(out, ch+'a'-'A')
		}
	}
	return string(out)
}

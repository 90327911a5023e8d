package wire

import (
	"io"

	"echoverse-api/internal/config"
	"echoverse-api/internal/infrastructure/persistence/redis"
	"echoverse-api/internal/infrastructure/tts"
)

// ProvideRedisClient 提供 Redis 客户端
func ProvideRedisClient(cfg *config.Config) (*redis.Client, func(), error) {
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideSynthesizer 按配置创建合成后端，并套上 Redis 合成缓存
func ProvideSynthesizer(cfg *config.Config, cache *redis.Cache) (tts.Synthesizer, func(), error) {
	backend, err := tts.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if c, ok := backend.(io.Closer); ok {
			_ = c.Close()
		}
	}
	return tts.NewCached(backend, cache, cfg.TTS.CacheTTL), cleanup, nil
}

package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"echoverse-api/internal/config"
	"echoverse-api/internal/domain/entity"
	"echoverse-api/internal/domain/repository"
)

// AudiobookRepository 在 Redis 中保存带过期时间的生成记录
type AudiobookRepository struct {
	cache  *Cache
	prefix string
}

var _ repository.AudiobookRepository = (*AudiobookRepository)(nil)

// NewAudiobookRepository 创建记录仓储
func NewAudiobookRepository(cache *Cache, prefix string) *AudiobookRepository {
	if prefix == "" {
		prefix = "echoverse"
	}
	return &AudiobookRepository{cache: cache, prefix: prefix}
}

// NewAudiobookRepositoryFromConfig 从应用配置创建记录仓储
func NewAudiobookRepositoryFromConfig(cfg *config.Config, cache *Cache) *AudiobookRepository {
	return NewAudiobookRepository(cache, cfg.Audiobook.KeyPrefix)
}

func (r *AudiobookRepository) key(id string) string {
	return fmt.Sprintf("%s:audiobook:%s", r.prefix, id)
}

// Save 实现 repository.AudiobookRepository
func (r *AudiobookRepository) Save(ctx context.Context, book *entity.Audiobook, ttl time.Duration) error {
	if book == nil || book.ID == "" {
		return fmt.Errorf("audiobook id is required")
	}
	if err := r.cache.Set(ctx, r.key(book.ID), book, ttl); err != nil {
		return fmt.Errorf("save audiobook %s: %w", book.ID, err)
	}
	return nil
}

// GetByID 实现 repository.AudiobookRepository
func (r *AudiobookRepository) GetByID(ctx context.Context, id string) (*entity.Audiobook, error) {
	raw, err := r.cache.Get(ctx, r.key(id))
	if err != nil {
		if IsNil(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("load audiobook %s: %w", id, err)
	}

	var book entity.Audiobook
	if err := json.Unmarshal(raw, &book); err != nil {
		return nil, fmt.Errorf("decode audiobook %s: %w", id, err)
	}
	return &book, nil
}

package repository

import (
	"context"
	"time"

	"echoverse-api/internal/domain/entity"
)

// AudiobookRepository 生成结果记录仓储接口
// 记录是短期的，过期后自动清除
type AudiobookRepository interface {
	// Save 保存记录，ttl 为保留时长
	Save(ctx context.Context, book *entity.Audiobook, ttl time.Duration) error

	// GetByID 根据 ID 获取记录，不存在时返回 ErrNotFound
	GetByID(ctx context.Context, id string) (*entity.Audiobook, error)
}

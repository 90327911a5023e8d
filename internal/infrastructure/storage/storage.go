// Package storage 提供音频文件存储实现
package storage

import (
	"fmt"
	"strings"

	"echoverse-api/internal/config"
	"echoverse-api/internal/domain/repository"
)

// New 按配置创建音频存储
func New(cfg *config.Config) (repository.AudioStore, error) {
	switch d := strings.ToLower(strings.TrimSpace(cfg.Storage.Driver)); d {
	case "", "local":
		return NewLocal(cfg.Storage.Local.Dir)
	case "s3":
		return NewS3(cfg.Storage.S3)
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", d)
	}
}

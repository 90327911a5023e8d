package repository

import (
	"context"
	"io"
)

// AudioObject 读取到的音频对象
type AudioObject struct {
	Body        io.ReadCloser
	Size        int64
	ContentType string
}

// AudioStore 音频文件存储接口
type AudioStore interface {
	// Put 写入音频
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// Open 打开音频，不存在时返回 ErrNotFound；调用方负责 Close
	Open(ctx context.Context, key string) (*AudioObject, error)

	// Delete 删除音频
	Delete(ctx context.Context, key string) error
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"echoverse-api/internal/domain/repository"
	"echoverse-api/pkg/tracer"
)

// Local 本地磁盘存储
type Local struct {
	root string
}

var _ repository.AudioStore = (*Local)(nil)

// NewLocal 创建本地存储，目录不存在时自动创建
func NewLocal(dir string) (*Local, error) {
	if dir == "" {
		dir = "data/audio"
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Local{root: abs}, nil
}

func (s *Local) path(key string) (string, error) {
	clean := filepath.Clean("/" + strings.TrimSpace(key))
	if clean == "/" {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}

// Put 实现 repository.AudioStore，先写临时文件再重命名
func (s *Local) Put(ctx context.Context, key string, data []byte, _ string) (err error) {
	_, span := tracer.Start(ctx, "storage.local.Put")
	defer func() {
		tracer.Fail(span, err)
		span.End()
	}()

	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), ".upload-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), p)
}

// Open 实现 repository.AudioStore
func (s *Local) Open(ctx context.Context, key string) (obj *repository.AudioObject, err error) {
	_, span := tracer.Start(ctx, "storage.local.Open")
	defer func() {
		tracer.Fail(span, err)
		span.End()
	}()

	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	contentType := "application/octet-stream"
	if m, err := mimetype.DetectFile(p); err == nil {
		contentType = m.String()
	}
	return &repository.AudioObject{Body: f, Size: info.Size(), ContentType: contentType}, nil
}

// Delete 实现 repository.AudioStore；不存在的键视为已删除
func (s *Local) Delete(ctx context.Context, key string) error {
	_, span := tracer.Start(ctx, "storage.local.Delete")
	defer span.End()

	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		tracer.Fail(span, err)
		return err
	}
	return nil
}

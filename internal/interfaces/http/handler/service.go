package handler

import (
	"context"

	"echoverse-api/internal/application/audiobook"
	"echoverse-api/internal/application/rewrite"
	"echoverse-api/internal/domain/entity"
	"echoverse-api/internal/domain/repository"
)

// AudiobookService 处理器依赖的有声书服务，由 *audiobook.Service 实现
type AudiobookService interface {
	Rewrite(ctx context.Context, text, tone string) (*rewrite.Result, error)
	Generate(ctx context.Context, in audiobook.GenerateInput) (*entity.Audiobook, error)
	GenerateFromDocument(ctx context.Context, filename string, data []byte, tone, voice string) (*entity.Audiobook, error)
	ExtractText(ctx context.Context, filename string, data []byte) (string, error)
	Transcribe(ctx context.Context, audio []byte, contentType string) (*audiobook.Transcription, error)
	Get(ctx context.Context, id string) (*entity.Audiobook, error)
	OpenAudio(ctx context.Context, id string) (*entity.Audiobook, *repository.AudioObject, error)
}

var _ AudiobookService = (*audiobook.Service)(nil)

// Package stt 提供语音转写后端实现
package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.opentelemetry.io/otel/attribute"

	"echoverse-api/internal/config"
	"echoverse-api/internal/infrastructure/httpclient"
	"echoverse-api/pkg/metrics"
	"echoverse-api/pkg/tracer"
)

// ErrEmptyTranscription 转写结果为空
var ErrEmptyTranscription = errors.New("stt: empty transcription")

// Transcriber 语音转写接口
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, contentType string) (string, error)
}

// HuggingFace Hugging Face 托管的 Whisper 推理接口
type HuggingFace struct {
	url    string
	token  string
	client *http.Client
}

// NewHuggingFace 创建转写后端
func NewHuggingFace(cfg config.STTConfig) *HuggingFace {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HuggingFace{url: cfg.URL, token: cfg.Token, client: httpclient.New(timeout)}
}

// NewHuggingFaceFromConfig 从应用配置创建转写后端
func NewHuggingFaceFromConfig(cfg *config.Config) *HuggingFace {
	return NewHuggingFace(cfg.STT)
}

type transcription struct {
	Text string `json:"text"`
}

// Transcribe 实现 Transcriber；contentType 为空时按内容嗅探
func (t *HuggingFace) Transcribe(ctx context.Context, audio []byte, contentType string) (text string, err error) {
	ctx, span := tracer.Start(ctx, "stt.huggingface.Transcribe")
	defer span.End()

	start := time.Now()
	defer func() {
		status := "success"
		if err != nil {
			status = "error"
		}
		metrics.STTCallTotal.WithLabelValues("huggingface", status).Inc()
		tracer.Fail(span, err)
	}()

	if len(audio) == 0 {
		return "", fmt.Errorf("stt: audio is empty")
	}
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = SniffContentType(audio)
	}
	span.SetAttributes(
		attribute.String("stt.content_type", contentType),
		attribute.Int("stt.bytes", len(audio)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(audio))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("whisper request: %w", err)
	}
	defer resp.Body.Close()

	if err := httpclient.CheckResponse("whisper", resp); err != nil {
		return "", err
	}

	var out transcription
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode whisper response: %w", err)
	}
	span.SetAttributes(attribute.Int64("stt.duration_ms", time.Since(start).Milliseconds()))

	text = strings.TrimSpace(out.Text)
	if text == "" {
		return "", ErrEmptyTranscription
	}
	return text, nil
}

// SniffContentType 按内容识别音频 MIME 类型
func SniffContentType(audio []byte) string {
	return mimetype.Detect(audio).String()
}

// IsAudio 判断内容是否为音频
func IsAudio(audio []byte) bool {
	for m := mimetype.Detect(audio); m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "audio/") {
			return true
		}
	}
	return false
}

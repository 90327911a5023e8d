package dto

import (
	"fmt"
	"strings"
	"time"

	"echoverse-api/internal/application/rewrite"
	"echoverse-api/internal/domain/entity"
)

// RewriteResponse 改写响应
type RewriteResponse struct {
	RewrittenText string `json:"rewritten_text"`
	Tone          string `json:"tone"`
	PromptTokens  int    `json:"prompt_tokens"`
	MaxNewTokens  int    `json:"max_new_tokens"`
}

// ToRewriteResponse 转换改写结果
func ToRewriteResponse(res *rewrite.Result) *RewriteResponse {
	if res == nil {
		return nil
	}
	return &RewriteResponse{
		RewrittenText: res.Text,
		Tone:          res.Tone.String(),
		PromptTokens:  res.PromptTokens,
		MaxNewTokens:  res.MaxNewTokens,
	}
}

// AudiobookResponse 有声书响应
type AudiobookResponse struct {
	ID            string `json:"id"`
	OriginalText  string `json:"original_text"`
	RewrittenText string `json:"rewritten_text"`
	Tone          string `json:"tone"`
	Voice         string `json:"voice"`
	Source        string `json:"source"`
	AudioURL      string `json:"audio_url"`
	Filename      string `json:"filename"`
	AudioBytes    int64  `json:"audio_bytes"`
	PromptTokens  int    `json:"prompt_tokens"`
	MaxNewTokens  int    `json:"max_new_tokens"`
	CreatedAt     string `json:"created_at"`
}

// ToAudiobookResponse 转换生成记录，baseURL 为空时返回相对地址
func ToAudiobookResponse(book *entity.Audiobook, baseURL string) *AudiobookResponse {
	if book == nil {
		return nil
	}
	return &AudiobookResponse{
		ID:            book.ID,
		OriginalText:  book.OriginalText,
		RewrittenText: book.RewrittenText,
		Tone:          book.Tone.String(),
		Voice:         string(book.Voice),
		Source:        string(book.Source),
		AudioURL:      AudioURL(baseURL, book.ID),
		Filename:      book.Filename,
		AudioBytes:    book.AudioBytes,
		PromptTokens:  book.PromptTokens,
		MaxNewTokens:  book.MaxNewTokens,
		CreatedAt:     book.CreatedAt.Format(time.RFC3339),
	}
}

// AudioURL 返回音频下载地址
func AudioURL(baseURL, id string) string {
	return fmt.Sprintf("%s/v1/audiobooks/%s/audio", strings.TrimRight(baseURL, "/"), id)
}

// ToneOption 语气选项
type ToneOption struct {
	Label string `json:"label"`
}

// VoiceOption 声音选项
type VoiceOption struct {
	Label  string `json:"label"`
	Gender string `json:"gender"`
}

// CatalogResponse 语气与声音目录
type CatalogResponse struct {
	Tones        []ToneOption  `json:"tones"`
	Voices       []VoiceOption `json:"voices"`
	DefaultTone  string        `json:"default_tone"`
	DefaultVoice string        `json:"default_voice"`
}

// NewCatalogResponse 构建目录响应
func NewCatalogResponse(defaultVoice entity.Voice) *CatalogResponse {
	resp := &CatalogResponse{
		DefaultTone:  entity.ToneNeutral.String(),
		DefaultVoice: string(entity.ResolveVoice(string(defaultVoice), entity.DefaultVoice).Voice),
	}
	for _, t := range entity.Tones() {
		resp.Tones = append(resp.Tones, ToneOption{Label: t.String()})
	}
	for _, v := range entity.Voices() {
		resp.Voices = append(resp.Voices, VoiceOption{Label: string(v.Voice), Gender: v.Gender})
	}
	return resp
}

// TextResponse 文本结果（文档提取）
type TextResponse struct {
	Text  string `json:"text"`
	Chars int    `json:"chars"`
}

// TranscriptionResponse 录音转写响应
type TranscriptionResponse struct {
	Text       string `json:"text"`
	Original   string `json:"original"`
	Translated bool   `json:"translated"`
}

package entity

import (
	"fmt"
	"strings"
	"time"
)

// TextSource 原文来源
type TextSource string

const (
	SourceTyped     TextSource = "typed"
	SourceDocument  TextSource = "document"
	SourceRecording TextSource = "recording"
)

// Audiobook 一次生成的结果
type Audiobook struct {
	ID            string     `json:"id"`
	OriginalText  string     `json:"original_text"`
	RewrittenText string     `json:"rewritten_text"`
	Tone          Tone       `json:"tone"`
	Voice         Voice      `json:"voice"`
	Source        TextSource `json:"source"`
	Synthesizer   string     `json:"synthesizer"`
	AudioKey      string     `json:"audio_key"`
	AudioBytes    int64      `json:"audio_bytes"`
	ContentType   string     `json:"content_type"`
	Filename      string     `json:"filename"`
	PromptTokens  int        `json:"prompt_tokens"`
	MaxNewTokens  int        `json:"max_new_tokens"`
	CreatedAt     time.Time  `json:"created_at"`
}

// AudioKeyFor 返回音频在存储中的键
func AudioKeyFor(id string) string {
	return fmt.Sprintf("audiobooks/%s.mp3", id)
}

// DownloadFilename 返回下载文件名，如 echoverse_suspenseful.mp3
func DownloadFilename(t Tone) string {
	return fmt.Sprintf("echoverse_%s.mp3", strings.ToLower(string(t)))
}

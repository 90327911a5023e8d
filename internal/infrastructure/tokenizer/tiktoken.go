// Package tokenizer 提供 prompt token 计数实现
package tokenizer

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	tiktokenloader "github.com/pkoukk/tiktoken-go-loader"

	"echoverse-api/internal/config"
)

const defaultEncoding = "cl100k_base"

var loaderOnce sync.Once

// Tiktoken 基于 BPE 编码的分词器，编码表在首次使用时加载
type Tiktoken struct {
	encoding string

	once sync.Once
	enc  *tiktoken.Tiktoken
	err  error
}

// NewTiktoken 创建分词器
func NewTiktoken(encoding string) *Tiktoken {
	if encoding == "" {
		encoding = defaultEncoding
	}
	return &Tiktoken{encoding: encoding}
}

// NewTiktokenFromConfig 供依赖注入使用
func NewTiktokenFromConfig(cfg *config.Config) *Tiktoken {
	return NewTiktoken(cfg.Rewrite.Encoding)
}

func (t *Tiktoken) load() (*tiktoken.Tiktoken, error) {
	t.once.Do(func() {
		// 编码表随二进制打包，不在运行时下载
		loaderOnce.Do(func() {
			tiktoken.SetBpeLoader(tiktokenloader.NewOfflineLoader())
		})
		t.enc, t.err = tiktoken.GetEncoding(t.encoding)
		if t.err != nil {
			t.err = fmt.Errorf("load encoding %s: %w", t.encoding, t.err)
		}
	})
	return t.enc, t.err
}

// CountTokens 返回文本的 token 数
func (t *Tiktoken) CountTokens(text string) (int, error) {
	enc, err := t.load()
	if err != nil {
		return 0, err
	}
	// 用户文本可能包含 <|endoftext|> 之类的特殊标记，按特殊 token 计数而不是报错
	return len(enc.Encode(text, []string{"all"}, nil)), nil
}

// Encoding 返回编码名称
func (t *Tiktoken) Encoding() string {
	return t.encoding
}

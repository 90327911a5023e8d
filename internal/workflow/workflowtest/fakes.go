// Package workflowtest 提供工作流测试用的 ChatModel、工厂与分词器替身
package workflowtest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// Call 记录一次 Generate 调用
type Call struct {
	Messages []*schema.Message
	Options  *model.Options
}

// ChatModel 可编程的 ChatModel 替身
type ChatModel struct {
	mu    sync.Mutex
	calls []Call

	// Reply 根据输入消息生成回复；为空时回复 "ok"
	Reply func(msgs []*schema.Message, opts *model.Options) (*schema.Message, error)
}

// Generate 实现 model.BaseChatModel
func (m *ChatModel) Generate(_ context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	o := model.GetCommonOptions(&model.Options{}, opts...)

	m.mu.Lock()
	m.calls = append(m.calls, Call{Messages: input, Options: o})
	m.mu.Unlock()

	if m.Reply == nil {
		return schema.AssistantMessage("ok", nil), nil
	}
	return m.Reply(input, o)
}

// Stream 实现 model.BaseChatModel，测试中不使用流式输出
func (m *ChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

// Calls 返回已记录的调用
func (m *ChatModel) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// LastUserContent 返回最后一次调用中用户消息的内容
func (m *ChatModel) LastUserContent() string {
	calls := m.Calls()
	if len(calls) == 0 {
		return ""
	}
	for _, msg := range calls[len(calls)-1].Messages {
		if msg.Role == schema.User {
			return msg.Content
		}
	}
	return ""
}

// Factory 返回固定 ChatModel 的工厂替身
type Factory struct {
	Model model.BaseChatModel
	Err   error

	mu        sync.Mutex
	providers []string
}

// Get 实现 port.ChatModelFactory
func (f *Factory) Get(_ context.Context, name string) (model.BaseChatModel, error) {
	f.mu.Lock()
	f.providers = append(f.providers, name)
	f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Model == nil {
		return nil, fmt.Errorf("no model for provider %q", name)
	}
	return f.Model, nil
}

// Providers 返回被请求过的 provider 名称
func (f *Factory) Providers() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.providers...)
}

// WordTokenizer 以空白分词计数
type WordTokenizer struct {
	Err error
}

// CountTokens 实现 port.Tokenizer
func (t WordTokenizer) CountTokens(text string) (int, error) {
	if t.Err != nil {
		return 0, t.Err
	}
	return len(strings.Fields(text)), nil
}

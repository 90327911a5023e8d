package prompt

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"echoverse-api/internal/domain/entity"
)

//go:embed templates/*.txt
var templatesFS embed.FS

type PromptID string

const (
	PromptRewriteNeutralV1     PromptID = "rewrite_neutral_v1"
	PromptRewriteSuspensefulV1 PromptID = "rewrite_suspenseful_v1"
	PromptRewriteInspiringV1   PromptID = "rewrite_inspiring_v1"
	PromptTranslateV1          PromptID = "translate_v1"
)

// RewritePromptFor 返回语气对应的改写模板，未知语气使用 Neutral 模板
func RewritePromptFor(tone entity.Tone) PromptID {
	switch tone {
	case entity.ToneSuspenseful:
		return PromptRewriteSuspensefulV1
	case entity.ToneInspiring:
		return PromptRewriteInspiringV1
	default:
		return PromptRewriteNeutralV1
	}
}

type Registry struct {
	mu    sync.RWMutex
	cache map[PromptID]einoprompt.ChatTemplate
}

func NewRegistry() *Registry {
	return &Registry{
		cache: make(map[PromptID]einoprompt.ChatTemplate),
	}
}

func (r *Registry) ChatTemplate(id PromptID) (einoprompt.ChatTemplate, error) {
	if r == nil {
		return nil, fmt.Errorf("prompt registry is nil")
	}

	r.mu.RLock()
	if tpl, ok := r.cache[id]; ok {
		r.mu.RUnlock()
		return tpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if tpl, ok := r.cache[id]; ok {
		return tpl, nil
	}

	system, user, err := r.texts(id)
	if err != nil {
		return nil, err
	}

	tpl := einoprompt.FromMessages(
		schema.FString,
		schema.SystemMessage(system),
		schema.UserMessage(user),
	)
	r.cache[id] = tpl
	return tpl, nil
}

// Instruction 返回模板的用户消息原文（未替换变量），用于调试与测试
func (r *Registry) Instruction(id PromptID) (string, error) {
	_, user, err := r.texts(id)
	return user, err
}

func (r *Registry) texts(id PromptID) (system string, user string, err error) {
	systemPath, userPath, err := resolvePromptFiles(id)
	if err != nil {
		return "", "", err
	}
	if system, err = readEmbeddedText(systemPath); err != nil {
		return "", "", err
	}
	if user, err = readEmbeddedText(userPath); err != nil {
		return "", "", err
	}
	return system, user, nil
}

func resolvePromptFiles(id PromptID) (systemFile string, userFile string, err error) {
	switch id {
	case PromptRewriteNeutralV1, PromptRewriteSuspensefulV1, PromptRewriteInspiringV1, PromptTranslateV1:
		return "templates/" + string(id) + ".system.txt", "templates/" + string(id) + ".user.txt", nil
	default:
		return "", "", fmt.Errorf("unknown prompt id: %s", id)
	}
}

func readEmbeddedText(path string) (string, error) {
	b, err := templatesFS.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

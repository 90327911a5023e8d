package tts

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SplitText 将文本切成不超过 maxChars 个字符的片段
// 优先在句末标点处断开，其次在空白处，最后硬切
func SplitText(text string, maxChars int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if maxChars <= 0 || utf8.RuneCountInString(text) <= maxChars {
		return []string{text}
	}

	var chunks []string
	rest := []rune(text)
	for len(rest) > maxChars {
		cut := cutPoint(rest[:maxChars])
		chunk := strings.TrimSpace(string(rest[:cut]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		rest = []rune(strings.TrimLeftFunc(string(rest[cut:]), unicode.IsSpace))
	}
	if tail := strings.TrimSpace(string(rest)); tail != "" {
		chunks = append(chunks, tail)
	}
	return chunks
}

func cutPoint(window []rune) int {
	for i := len(window) - 1; i > len(window)/2; i-- {
		switch window[i] {
		case '.', '!', '?', '\n', '。', '！', '？':
			return i + 1
		}
	}
	for i := len(window) - 1; i > 0; i-- {
		if unicode.IsSpace(window[i]) {
			return i
		}
	}
	return len(window)
}

package node

import (
	"strings"
	"unicode/utf8"
)

// PreviewText 折叠空白并按字符数截断，超出部分以 "…" 结尾，用于日志预览
func PreviewText(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	n := 0
	for i := range s {
		if n == maxRunes {
			return s[:i] + "…"
		}
		n++
	}
	return s
}

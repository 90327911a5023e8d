package node

import "strings"

const (
	rewrittenLabel = "Rewritten Text:"
	originalLabel  = "Original Text:"
)

// ExtractContinuation 从模型输出中只保留新生成的部分
//
// 部分模型会回显 prompt 或 "Original Text: ... Rewritten Text:" 片段，
// 这里去掉回显内容、开头的标签以及整体包裹的引号。
func ExtractContinuation(output string, prompts ...string) string {
	out := strings.TrimSpace(output)

	for _, p := range prompts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if idx := strings.LastIndex(out, p); idx >= 0 {
			out = strings.TrimSpace(out[idx+len(p):])
		}
	}

	if strings.Contains(out, originalLabel) {
		if idx := strings.LastIndex(out, rewrittenLabel); idx >= 0 {
			out = strings.TrimSpace(out[idx+len(rewrittenLabel):])
		}
	}
	if len(out) >= len(rewrittenLabel) && strings.EqualFold(out[:len(rewrittenLabel)], rewrittenLabel) {
		out = strings.TrimSpace(out[len(rewrittenLabel):])
	}

	return trimWrappingQuotes(out)
}

func trimWrappingQuotes(s string) string {
	pairs := [][2]string{{`"`, `"`}, {"“", "”"}}
	for _, p := range pairs {
		if len(s) > len(p[0])+len(p[1]) && strings.HasPrefix(s, p[0]) && strings.HasSuffix(s, p[1]) {
			inner := s[len(p[0]) : len(s)-len(p[1])]
			if !strings.Contains(inner, p[0]) && !strings.Contains(inner, p[1]) {
				return strings.TrimSpace(inner)
			}
		}
	}
	return s
}

package service

import (
	"regexp"
	"strings"
)

var (
	listMarkerExpr = regexp.MustCompile(`^\s*\d+\.|^\s*[-*]\s*`)
	// 开头的过渡性废话，"Sure, let's start — " 这种，
	// 短语本身加上到下一个分隔符为止的部分
	transitionExpr = regexp.MustCompile(`(?i)^(?:sure|okay|alright|great|i'?ll go ahead|let'?s|get started|here'?s|i will|we will)\b[^?]*?[:,!—–-]\s*`)
	questionExpr   = regexp.MustCompile(`[^?]*\?`)
	sentenceSplit  = regexp.MustCompile(`[\n.!]`)
)

// SanitizeQuestion 把生成内容规整成单独一个完整的问题。
// 入参非空则出参非空，至多包含一个问号结尾的分句
func SanitizeQuestion(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return raw
	}
	text := strings.TrimSpace(listMarkerExpr.ReplaceAllString(raw, ""))
	// 过渡语可能叠好几层，剥到剥不动为止
	for {
		stripped := strings.TrimSpace(transitionExpr.ReplaceAllString(text, ""))
		if stripped == text || stripped == "" {
			break
		}
		text = stripped
	}
	if text == "" {
		text = strings.TrimSpace(raw)
	}

	if q := questionExpr.FindString(text); q != "" {
		// 取到第一个问号为止
		text = strings.TrimSpace(q)
	} else {
		// 没有问号就取第一句，补上问号
		first := strings.TrimSpace(sentenceSplit.Split(text, 2)[0])
		if first == "" {
			first = text
		}
		if !strings.HasSuffix(first, "?") {
			first += "?"
		}
		text = first
	}
	return strings.TrimSpace(listMarkerExpr.ReplaceAllString(text, ""))
}

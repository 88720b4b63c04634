package service

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ecodeclub/mockly/internal/interview/internal/domain"
)

var (
	nameExpr = regexp.MustCompile(`(?i)(?:my name is|i'm|i am|call me)\s+([a-zA-Z\s]+)`)
	roleExpr = regexp.MustCompile(`(?i)(?:role|position|job|targeting|applying for)\s+(?:is\s+)?([a-zA-Z\s]+?(?:developer|engineer|designer|manager|analyst))`)
	// 形如 "only 3 questions"、"ask 5 questions"、"2 questions"
	countExpr = regexp.MustCompile(`(?i)(?:only\s+)?(?:ask\s+)?(\d+)\s+questions?`)
	tokenExpr = regexp.MustCompile(`[\s,;()\\/]+`)
	// 去掉 token 末尾的句读
	trailingPunct = regexp.MustCompile(`[.!?]$`)
)

// techVocabulary 小写 token 到展示名的映射。
// 用 token 精确匹配而不是正则，避免 c++/c# 之类的转义坑和误报
var techVocabulary = []struct {
	token   string
	display string
}{
	{"javascript", "JavaScript"},
	{"react", "React"},
	{"node", "Node"},
	{"python", "Python"},
	{"java", "Java"},
	{"typescript", "TypeScript"},
	{"angular", "Angular"},
	{"vue", "Vue"},
	{"php", "PHP"},
	{"ruby", "Ruby"},
	{"go", "Go"},
	{"rust", "Rust"},
	{"c++", "C++"},
	{"c#", "C#"},
	{"swift", "Swift"},
	{"kotlin", "Kotlin"},
}

// ExtractCandidateInfo 从一句自由回答里提取候选人信息。
// 纯函数，各项独立判断，提取不到就留空
func ExtractCandidateInfo(text string) domain.CandidateInfo {
	var info domain.CandidateInfo

	if match := nameExpr.FindStringSubmatch(text); match != nil {
		info.Name = trimName(match[1])
	}

	if match := roleExpr.FindStringSubmatch(text); match != nil {
		info.Role = strings.TrimSpace(match[1])
	}

	// junior 优先于 senior，senior 优先于 mid
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "junior"):
		info.ExperienceLevel = "Junior"
	case strings.Contains(lower, "senior"):
		info.ExperienceLevel = "Senior"
	case strings.Contains(lower, "mid"):
		info.ExperienceLevel = "Mid-level"
	}

	info.TechStack = extractTechStack(lower)

	if match := countExpr.FindStringSubmatch(text); match != nil {
		count, err := strconv.Atoi(match[1])
		if err == nil {
			info.QuestionCount = count
		}
	}
	return info
}

// nameStopwords 名字捕获组是贪婪的，会把 "Dana applying for ..." 整个吞进来，
// 在第一个引导词处截断
var nameStopwords = map[string]struct{}{
	"and": {}, "applying": {}, "targeting": {}, "looking": {},
	"interested": {}, "here": {}, "for": {},
}

func trimName(raw string) string {
	fields := strings.Fields(raw)
	var kept []string
	for _, f := range fields {
		if _, stop := nameStopwords[strings.ToLower(f)]; stop {
			break
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

func extractTechStack(lower string) []string {
	tokens := make(map[string]struct{})
	for _, tok := range tokenExpr.Split(lower, -1) {
		tok = trailingPunct.ReplaceAllString(tok, "")
		if tok != "" {
			tokens[tok] = struct{}{}
		}
	}
	_, hasJavascript := tokens["javascript"]
	var stack []string
	for _, tech := range techVocabulary {
		if _, ok := tokens[tech.token]; !ok {
			continue
		}
		// 单独说了 javascript 的时候 java 不算数
		if tech.token == "java" && hasJavascript {
			continue
		}
		stack = append(stack, tech.display)
	}
	return stack
}

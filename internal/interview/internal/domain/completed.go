package domain

import "math"

type CategoryScore struct {
	Name    string `json:"name"`
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

// Feedback 大模型对整场面试的评分结果
type Feedback struct {
	TotalScore          int             `json:"totalScore"`
	CategoryScores      []CategoryScore `json:"categoryScores"`
	Strengths           []string        `json:"strengths"`
	AreasForImprovement []string        `json:"areasForImprovement"`
	FinalAssessment     string          `json:"finalAssessment"`
}

// NormalizeTotal 用各分项重新算总分。
// 模型自己给的总分和分项经常对不上，这里一律不信它的
func (f *Feedback) NormalizeTotal() {
	if len(f.CategoryScores) == 0 {
		f.TotalScore = 0
		return
	}
	var sum int
	for _, c := range f.CategoryScores {
		sum += c.Score
	}
	f.TotalScore = int(math.Round(float64(sum) / float64(len(f.CategoryScores))))
}

// CompletedInterview 一场完成的面试，保存之后不再修改。
// 只有创建它的用户能看到
type CompletedInterview struct {
	Id                  int64
	Uid                 int64
	Sid                 string
	CandidateName       string
	TargetRole          string
	ExperienceLevel     string
	TechStack           []string
	TotalScore          int
	CategoryScores      []CategoryScore
	Strengths           []string
	AreasForImprovement []string
	FinalAssessment     string
	ConversationHistory []Message
	// 分钟
	Duration int64
	// 毫秒时间戳
	CompletedAt int64
}

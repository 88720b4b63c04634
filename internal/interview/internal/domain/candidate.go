package domain

// CandidateInfo 从候选人自由回答里逐步提取出来的结构化信息。
// 各字段只会被非空的新值覆盖，不会被清空
type CandidateInfo struct {
	Name            string   `json:"name"`
	Role            string   `json:"role"`
	ExperienceLevel string   `json:"experienceLevel"`
	TechStack       []string `json:"techStack"`
	QuestionCount   int      `json:"questionCount"`
}

func (c CandidateInfo) Merge(other CandidateInfo) CandidateInfo {
	if other.Name != "" {
		c.Name = other.Name
	}
	if other.Role != "" {
		c.Role = other.Role
	}
	if other.ExperienceLevel != "" {
		c.ExperienceLevel = other.ExperienceLevel
	}
	if len(other.TechStack) > 0 {
		c.TechStack = other.TechStack
	}
	if other.QuestionCount > 0 {
		c.QuestionCount = other.QuestionCount
	}
	return c
}

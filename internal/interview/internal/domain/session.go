package domain

import "strings"

type Phase string

const (
	PhaseGreeting    Phase = "greeting"
	PhasePreliminary Phase = "preliminary"
	PhaseInterview   Phase = "interview"
	PhaseFeedback    Phase = "feedback"
)

// DefaultQuestionCount 候选人没有指定题目数量时的默认值
const DefaultQuestionCount = 5

// transitionPhrases 开场信息收集阶段的回复里出现这些短语，
// 就认为面试官宣布正式开始提问了
var transitionPhrases = []string{
	"let's begin",
	"start the interview",
	"first question",
	"move forward with the actual interview",
	"proceed with the",
	"begin the interview",
	"we can proceed",
	"let's go ahead",
	"move on to the",
	"confirmed that i have all",
}

// TransitionSignaled 判断一段回复是否宣布进入正式面试。
// 大小写不敏感的子串匹配，任意一个短语命中即可。
// 靠自由文本匹配不可靠，真正的出路是让生成方返回显式的切换标记，
// TODO 在生成 prompt 里约定结构化的 phase 字段之后删掉这里
func TransitionSignaled(reply string) bool {
	lower := strings.ToLower(reply)
	for _, phrase := range transitionPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// Session 一场进行中的面试。一个会话同一时刻只有一个阶段，
// 阶段单向推进，不会回退
type Session struct {
	Sid string `json:"sid"`
	Uid int64  `json:"uid"`

	Phase Phase `json:"phase"`

	// 创建会话时带进来的默认画像，提取到的信息优先
	Role            string   `json:"role"`
	ExperienceLevel string   `json:"experienceLevel"`
	TechStack       []string `json:"techStack"`

	Candidate CandidateInfo `json:"candidate"`

	History   []Message `json:"history"`
	Questions []string  `json:"questions"`
	Answers   []string  `json:"answers"`

	QuestionIdx int `json:"questionIdx"`
	// 进入 interview 阶段时一次性定死，之后不再变化
	TargetQuestions int `json:"targetQuestions"`

	// 毫秒时间戳
	StartedAt int64 `json:"startedAt"`
}

// TargetRole 提取到的目标岗位优先，否则用会话默认值
func (s *Session) TargetRole() string {
	if s.Candidate.Role != "" {
		return s.Candidate.Role
	}
	return s.Role
}

func (s *Session) Level() string {
	if s.Candidate.ExperienceLevel != "" {
		return s.Candidate.ExperienceLevel
	}
	return s.ExperienceLevel
}

func (s *Session) Stack() []string {
	if len(s.Candidate.TechStack) > 0 {
		return s.Candidate.TechStack
	}
	return s.TechStack
}

// FixTarget 在 preliminary -> interview 切换时调用，
// 把目标题目数定死。之后候选人再提别的数字也不改
func (s *Session) FixTarget() {
	count := s.Candidate.QuestionCount
	if count <= 0 {
		count = DefaultQuestionCount
	}
	if count < 1 {
		count = 1
	}
	s.TargetQuestions = count
	s.QuestionIdx = 0
}

// EnterInterview 是否已经进入正式提问或者之后的阶段
func (s *Session) EnterInterview() bool {
	return s.Phase == PhaseInterview || s.Phase == PhaseFeedback
}

// AppendUser 追加候选人发言
func (s *Session) AppendUser(content string, now int64) {
	s.History = append(s.History, Message{
		Role:      RoleUser,
		Content:   content,
		Timestamp: now,
	})
}

// AppendAssistant 追加面试官发言。
// 和上一条面试官发言去除首尾空白后相同就丢弃，防止重试路径上出现重复记录
func (s *Session) AppendAssistant(content string, now int64) {
	if len(s.History) > 0 {
		last := s.History[len(s.History)-1]
		if last.Role == RoleAssistant &&
			strings.TrimSpace(last.Content) == strings.TrimSpace(content) {
			return
		}
	}
	s.History = append(s.History, Message{
		Role:      RoleAssistant,
		Content:   content,
		Timestamp: now,
	})
}

// HasAnswer 候选人是否说过任何实质内容。
// 一条都没有的会话不允许生成反馈，也不落库
func (s *Session) HasAnswer() bool {
	for _, msg := range s.History {
		if msg.Role == RoleUser && strings.TrimSpace(msg.Content) != "" {
			return true
		}
	}
	return false
}

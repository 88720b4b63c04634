package web

import (
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/mockly/internal/interview/internal/domain"
	"github.com/ecodeclub/mockly/internal/interview/internal/service"
)

type StartReq struct {
	UserName        string   `json:"userName"`
	Role            string   `json:"role"`
	ExperienceLevel string   `json:"experienceLevel"`
	TechStack       []string `json:"techStack"`
}

type AnswerReq struct {
	Sid    string `json:"sid"`
	Answer string `json:"answer"`
}

type EndReq struct {
	Sid string `json:"sid"`
}

type DetailReq struct {
	Id int64 `json:"id"`
}

type ReplyVO struct {
	Sid             string      `json:"sid"`
	Phase           string      `json:"phase"`
	Reply           string      `json:"reply"`
	Question        string      `json:"question,omitempty"`
	QuestionNumber  int         `json:"questionNumber,omitempty"`
	TargetQuestions int         `json:"targetQuestions,omitempty"`
	Completed       bool        `json:"completed"`
	Feedback        *FeedbackVO `json:"feedback,omitempty"`
	InterviewId     int64       `json:"interviewId,omitempty"`
	// 回复文本的合成语音。Engine 为 browser 时 Audio 为空，由客户端本地合成
	Audio  []byte `json:"audio,omitempty"`
	Engine string `json:"engine,omitempty"`
}

type FeedbackVO struct {
	TotalScore          int               `json:"totalScore"`
	CategoryScores      []CategoryScoreVO `json:"categoryScores"`
	Strengths           []string          `json:"strengths"`
	AreasForImprovement []string          `json:"areasForImprovement"`
	FinalAssessment     string            `json:"finalAssessment"`
}

type CategoryScoreVO struct {
	Name    string `json:"name"`
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

type MessageVO struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

type CompletedInterviewVO struct {
	Id                  int64             `json:"id"`
	Sid                 string            `json:"sid"`
	CandidateName       string            `json:"candidateName"`
	TargetRole          string            `json:"targetRole"`
	ExperienceLevel     string            `json:"experienceLevel"`
	TechStack           []string          `json:"techStack"`
	TotalScore          int               `json:"totalScore"`
	CategoryScores      []CategoryScoreVO `json:"categoryScores"`
	Strengths           []string          `json:"strengths"`
	AreasForImprovement []string          `json:"areasForImprovement"`
	FinalAssessment     string            `json:"finalAssessment"`
	ConversationHistory []MessageVO       `json:"conversationHistory"`
	Duration            int64             `json:"duration"`
	CompletedAt         int64             `json:"completedAt"`
}

type CompletedInterviewListVO struct {
	Interviews []CompletedInterviewVO `json:"interviews"`
}

func newReplyVO(r service.Reply) ReplyVO {
	vo := ReplyVO{
		Sid:             r.Sid,
		Phase:           string(r.Phase),
		Reply:           r.Reply,
		Question:        r.Question,
		QuestionNumber:  r.QuestionNumber,
		TargetQuestions: r.TargetQuestions,
		Completed:       r.Completed,
		InterviewId:     r.InterviewId,
	}
	if r.Feedback != nil {
		fb := newFeedbackVO(*r.Feedback)
		vo.Feedback = &fb
	}
	return vo
}

func newFeedbackVO(f domain.Feedback) FeedbackVO {
	return FeedbackVO{
		TotalScore: f.TotalScore,
		CategoryScores: slice.Map(f.CategoryScores, func(idx int, src domain.CategoryScore) CategoryScoreVO {
			return CategoryScoreVO(src)
		}),
		Strengths:           f.Strengths,
		AreasForImprovement: f.AreasForImprovement,
		FinalAssessment:     f.FinalAssessment,
	}
}

func newCompletedInterviewVO(c domain.CompletedInterview) CompletedInterviewVO {
	return CompletedInterviewVO{
		Id:              c.Id,
		Sid:             c.Sid,
		CandidateName:   c.CandidateName,
		TargetRole:      c.TargetRole,
		ExperienceLevel: c.ExperienceLevel,
		TechStack:       c.TechStack,
		TotalScore:      c.TotalScore,
		CategoryScores: slice.Map(c.CategoryScores, func(idx int, src domain.CategoryScore) CategoryScoreVO {
			return CategoryScoreVO(src)
		}),
		Strengths:           c.Strengths,
		AreasForImprovement: c.AreasForImprovement,
		FinalAssessment:     c.FinalAssessment,
		ConversationHistory: slice.Map(c.ConversationHistory, func(idx int, src domain.Message) MessageVO {
			return MessageVO(src)
		}),
		Duration:    c.Duration,
		CompletedAt: c.CompletedAt,
	}
}

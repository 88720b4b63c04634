package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransitionSignaled(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name  string
		reply string
		want  bool
	}{
		{
			name:  "let's begin",
			reply: "Perfect, let's begin with the technical part.",
			want:  true,
		},
		{
			name:  "大小写不敏感",
			reply: "I have confirmed that I have all the details I need.",
			want:  true,
		},
		{
			name:  "first question",
			reply: "Here comes the first question.",
			want:  true,
		},
		{
			name:  "普通追问不算切换",
			reply: "Could you tell me a bit more about your tech stack?",
			want:  false,
		},
		{
			name:  "空串",
			reply: "",
			want:  false,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, TransitionSignaled(tc.reply))
		})
	}
}

func TestSession_FixTarget(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name    string
		session Session
		want    int
	}{
		{
			name:    "没说数量就用默认值",
			session: Session{},
			want:    DefaultQuestionCount,
		},
		{
			name: "说了就用说的",
			session: Session{
				Candidate: CandidateInfo{QuestionCount: 3},
			},
			want: 3,
		},
		{
			name: "非法数量回退默认值",
			session: Session{
				Candidate: CandidateInfo{QuestionCount: -2},
			},
			want: DefaultQuestionCount,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tc.session.QuestionIdx = 7
			tc.session.FixTarget()
			assert.Equal(t, tc.want, tc.session.TargetQuestions)
			assert.Equal(t, 0, tc.session.QuestionIdx)
		})
	}
}

func TestSession_AppendAssistant(t *testing.T) {
	t.Parallel()
	var s Session
	s.AppendAssistant("Welcome to the interview.", 1)
	// 首尾空白不同的重复发言会被丢弃
	s.AppendAssistant("  Welcome to the interview.  ", 2)
	assert.Len(t, s.History, 1)

	s.AppendUser("Thanks.", 3)
	// 中间隔了候选人发言就不算重复
	s.AppendAssistant("Welcome to the interview.", 4)
	assert.Len(t, s.History, 3)
}

func TestSession_HasAnswer(t *testing.T) {
	t.Parallel()
	var s Session
	assert.False(t, s.HasAnswer())

	s.AppendAssistant("Hello!", 1)
	assert.False(t, s.HasAnswer())

	s.AppendUser("   ", 2)
	assert.False(t, s.HasAnswer())

	s.AppendUser("Hi, I'm ready.", 3)
	assert.True(t, s.HasAnswer())
}

func TestSession_Profile(t *testing.T) {
	t.Parallel()
	s := Session{
		Role:            "Front-end Developer",
		ExperienceLevel: "Mid-level",
		TechStack:       []string{"JavaScript", "React"},
	}
	assert.Equal(t, "Front-end Developer", s.TargetRole())
	assert.Equal(t, "Mid-level", s.Level())
	assert.Equal(t, []string{"JavaScript", "React"}, s.Stack())

	// 提取到的信息优先于默认画像
	s.Candidate = CandidateInfo{
		Role:            "Backend Engineer",
		ExperienceLevel: "Senior",
		TechStack:       []string{"Go"},
	}
	assert.Equal(t, "Backend Engineer", s.TargetRole())
	assert.Equal(t, "Senior", s.Level())
	assert.Equal(t, []string{"Go"}, s.Stack())
}

func TestFeedback_NormalizeTotal(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		feedback Feedback
		want     int
	}{
		{
			name: "总分重算为分项均值",
			feedback: Feedback{
				TotalScore: 99,
				CategoryScores: []CategoryScore{
					{Name: "Communication", Score: 70},
					{Name: "Technical Knowledge", Score: 81},
				},
			},
			want: 76,
		},
		{
			name: "四舍五入",
			feedback: Feedback{
				CategoryScores: []CategoryScore{
					{Score: 70},
					{Score: 70},
					{Score: 71},
				},
			},
			want: 70,
		},
		{
			name:     "没有分项就是零分",
			feedback: Feedback{TotalScore: 50},
			want:     0,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tc.feedback.NormalizeTotal()
			assert.Equal(t, tc.want, tc.feedback.TotalScore)
		})
	}
}

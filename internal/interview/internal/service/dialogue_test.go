package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ecodeclub/mockly/internal/ai"
	"github.com/ecodeclub/mockly/internal/interview/internal/domain"
	"github.com/ecodeclub/mockly/internal/interview/internal/event"
	"github.com/ecodeclub/mockly/internal/interview/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUid int64 = 123

func newTestService(llm *fakeLLM,
	feedback *fakeFeedbackService,
	sessions *fakeSessionRepo,
	completed *fakeCompletedRepo,
	producer *fakeProducer) DialogueService {
	return NewDialogueService(llm, feedback, sessions, completed, producer,
		ConversationConfig{Temperature: 0.8, MaxTokens: 200},
		QuestionConfig{Temperature: 0.7, MaxTokens: 300})
}

func TestDialogueService_Start(t *testing.T) {
	t.Parallel()
	t.Run("正常开场", func(t *testing.T) {
		t.Parallel()
		llm := &fakeLLM{answers: map[string]string{
			ai.BizGreeting: "Hello Dana, welcome to your mock interview!",
		}}
		sessions := newFakeSessionRepo()
		svc := newTestService(llm, &fakeFeedbackService{}, sessions, newFakeCompletedRepo(), &fakeProducer{})

		reply, err := svc.Start(context.Background(), testUid, StartParams{UserName: "Dana"})
		require.NoError(t, err)
		assert.NotEmpty(t, reply.Sid)
		// 开场白发出去之后仍然在 greeting 阶段，等候选人第一句话
		assert.Equal(t, domain.PhaseGreeting, reply.Phase)
		assert.Equal(t, "Hello Dana, welcome to your mock interview!", reply.Reply)

		sess := sessions.sessions[reply.Sid]
		assert.Equal(t, testUid, sess.Uid)
		assert.Equal(t, "Dana", sess.Candidate.Name)
		// 没传画像就用默认画像
		assert.Equal(t, "Front-end Developer", sess.Role)
		assert.Equal(t, "Mid-level", sess.ExperienceLevel)
		assert.Equal(t, []string{"JavaScript", "React"}, sess.TechStack)
		require.Len(t, sess.History, 1)
		assert.Equal(t, domain.RoleAssistant, sess.History[0].Role)
	})

	t.Run("生成失败用兜底开场白", func(t *testing.T) {
		t.Parallel()
		llm := &fakeLLM{err: errors.New("mock: llm down")}
		sessions := newFakeSessionRepo()
		svc := newTestService(llm, &fakeFeedbackService{}, sessions, newFakeCompletedRepo(), &fakeProducer{})

		reply, err := svc.Start(context.Background(), testUid, StartParams{})
		require.NoError(t, err)
		assert.Equal(t, fallbackGreeting, reply.Reply)
		assert.Contains(t, sessions.sessions, reply.Sid)
	})
}

func TestDialogueService_Submit(t *testing.T) {
	t.Parallel()
	t.Run("开场回答推进到信息收集阶段", func(t *testing.T) {
		t.Parallel()
		llm := &fakeLLM{answers: map[string]string{
			ai.BizPreliminary: "Nice to meet you! What role are you targeting?",
		}}
		sessions := newFakeSessionRepo()
		sessions.put(domain.Session{Sid: "s1", Uid: testUid, Phase: domain.PhaseGreeting})
		svc := newTestService(llm, &fakeFeedbackService{}, sessions, newFakeCompletedRepo(), &fakeProducer{})

		reply, err := svc.Submit(context.Background(), testUid, "s1", "Hi, my name is Dana")
		require.NoError(t, err)
		assert.Equal(t, domain.PhasePreliminary, reply.Phase)
		assert.Equal(t, "Nice to meet you! What role are you targeting?", reply.Reply)
		assert.Equal(t, "Dana", sessions.sessions["s1"].Candidate.Name)
	})

	t.Run("过渡话术切换阶段且不进历史", func(t *testing.T) {
		t.Parallel()
		llm := &fakeLLM{answers: map[string]string{
			ai.BizPreliminary: "Great, I have everything I need. Let's begin!",
		}}
		sessions := newFakeSessionRepo()
		sessions.put(domain.Session{
			Sid: "s1", Uid: testUid, Phase: domain.PhasePreliminary,
			Candidate: domain.CandidateInfo{QuestionCount: 3},
		})
		svc := newTestService(llm, &fakeFeedbackService{}, sessions, newFakeCompletedRepo(), &fakeProducer{})

		reply, err := svc.Submit(context.Background(), testUid, "s1", "That's all about me")
		require.NoError(t, err)
		assert.Equal(t, domain.PhaseInterview, reply.Phase)
		assert.Equal(t, 3, reply.TargetQuestions)
		assert.Equal(t, "Great, I have everything I need. Let's begin!", reply.Reply)

		sess := sessions.sessions["s1"]
		assert.Equal(t, 3, sess.TargetQuestions)
		// 历史里只有候选人这条，过渡话术没进去
		require.Len(t, sess.History, 1)
		assert.Equal(t, domain.RoleUser, sess.History[0].Role)
	})

	t.Run("收集阶段生成失败直接切到提问", func(t *testing.T) {
		t.Parallel()
		llm := &fakeLLM{
			err: errors.New("mock: llm down"),
			answers: map[string]string{
				ai.BizQuestion: "What is a closure?",
			},
			failBiz: ai.BizPreliminary,
		}
		sessions := newFakeSessionRepo()
		sessions.put(domain.Session{Sid: "s1", Uid: testUid, Phase: domain.PhasePreliminary})
		svc := newTestService(llm, &fakeFeedbackService{}, sessions, newFakeCompletedRepo(), &fakeProducer{})

		reply, err := svc.Submit(context.Background(), testUid, "s1", "I do frontend work")
		require.NoError(t, err)
		assert.Equal(t, domain.PhaseInterview, reply.Phase)
		assert.Equal(t, fallbackPreliminary, reply.Reply)
		assert.Equal(t, "What is a closure?", reply.Question)
		assert.Equal(t, 1, reply.QuestionNumber)
		assert.Equal(t, domain.DefaultQuestionCount, reply.TargetQuestions)
	})

	t.Run("提问阶段逐题推进", func(t *testing.T) {
		t.Parallel()
		llm := &fakeLLM{answers: map[string]string{
			ai.BizQuestion: "Tell me about goroutines?",
		}}
		sessions := newFakeSessionRepo()
		sessions.put(domain.Session{
			Sid: "s1", Uid: testUid, Phase: domain.PhaseInterview,
			TargetQuestions: 2,
		})
		svc := newTestService(llm, &fakeFeedbackService{}, sessions, newFakeCompletedRepo(), &fakeProducer{})

		// 切换后第一轮，生成第一题
		reply, err := svc.Submit(context.Background(), testUid, "s1", "Ready when you are")
		require.NoError(t, err)
		assert.Equal(t, 1, reply.QuestionNumber)
		assert.Equal(t, "Tell me about goroutines?", reply.Question)
		assert.False(t, reply.Completed)
	})

	t.Run("答满目标题数收尾落库", func(t *testing.T) {
		t.Parallel()
		llm := &fakeLLM{answers: map[string]string{}}
		feedback := &fakeFeedbackService{feedback: domain.Feedback{
			TotalScore: 80,
			CategoryScores: []domain.CategoryScore{
				{Name: "Communication", Score: 80},
			},
		}}
		sessions := newFakeSessionRepo()
		sess := domain.Session{
			Sid: "s1", Uid: testUid, Phase: domain.PhaseInterview,
			TargetQuestions: 1,
			Questions:       []string{"What is a closure?"},
			Candidate:       domain.CandidateInfo{Name: "Dana", Role: "Backend Engineer"},
		}
		sess.AppendAssistant("What is a closure?", 1)
		sessions.put(sess)
		completed := newFakeCompletedRepo()
		producer := &fakeProducer{}
		svc := newTestService(llm, feedback, sessions, completed, producer)

		reply, err := svc.Submit(context.Background(), testUid, "s1", "A closure captures variables")
		require.NoError(t, err)
		assert.True(t, reply.Completed)
		assert.Equal(t, domain.PhaseFeedback, reply.Phase)
		require.NotNil(t, reply.Feedback)
		assert.Equal(t, 80, reply.Feedback.TotalScore)
		assert.Equal(t, reply.InterviewId, completed.records[0].Id)
		assert.Equal(t, "Backend Engineer", completed.records[0].TargetRole)
		// 会话删掉了，事件发出去了
		assert.NotContains(t, sessions.sessions, "s1")
		require.Len(t, producer.events, 1)
		assert.Equal(t, reply.InterviewId, producer.events[0].InterviewId)
	})

	t.Run("锁被占用", func(t *testing.T) {
		t.Parallel()
		sessions := newFakeSessionRepo()
		sessions.put(domain.Session{Sid: "s1", Uid: testUid, Phase: domain.PhaseInterview})
		sessions.locked["s1"] = true
		svc := newTestService(&fakeLLM{}, &fakeFeedbackService{}, sessions, newFakeCompletedRepo(), &fakeProducer{})

		_, err := svc.Submit(context.Background(), testUid, "s1", "answer")
		assert.ErrorIs(t, err, ErrAnswerInFlight)
	})

	t.Run("别人的会话当成不存在", func(t *testing.T) {
		t.Parallel()
		sessions := newFakeSessionRepo()
		sessions.put(domain.Session{Sid: "s1", Uid: 999, Phase: domain.PhaseInterview})
		svc := newTestService(&fakeLLM{}, &fakeFeedbackService{}, sessions, newFakeCompletedRepo(), &fakeProducer{})

		_, err := svc.Submit(context.Background(), testUid, "s1", "answer")
		assert.ErrorIs(t, err, ErrSessionNotFound)
		// 锁释放了
		assert.False(t, sessions.locked["s1"])
	})
}

func TestDialogueService_End(t *testing.T) {
	t.Parallel()
	t.Run("一条回答都没有就直接丢弃", func(t *testing.T) {
		t.Parallel()
		sessions := newFakeSessionRepo()
		sess := domain.Session{Sid: "s1", Uid: testUid, Phase: domain.PhaseGreeting}
		sess.AppendAssistant("Welcome!", 1)
		sessions.put(sess)
		completed := newFakeCompletedRepo()
		producer := &fakeProducer{}
		svc := newTestService(&fakeLLM{}, &fakeFeedbackService{}, sessions, completed, producer)

		reply, err := svc.End(context.Background(), testUid, "s1")
		require.NoError(t, err)
		assert.True(t, reply.Completed)
		assert.Nil(t, reply.Feedback)
		assert.Empty(t, completed.records)
		assert.Empty(t, producer.events)
		assert.NotContains(t, sessions.sessions, "s1")
	})

	t.Run("评分失败保留会话可以重试", func(t *testing.T) {
		t.Parallel()
		sessions := newFakeSessionRepo()
		sess := domain.Session{Sid: "s1", Uid: testUid, Phase: domain.PhaseInterview, TargetQuestions: 5}
		sess.AppendUser("My answer", 1)
		sessions.put(sess)
		feedback := &fakeFeedbackService{err: errors.New("mock: parse failed")}
		svc := newTestService(&fakeLLM{}, feedback, sessions, newFakeCompletedRepo(), &fakeProducer{})

		_, err := svc.End(context.Background(), testUid, "s1")
		assert.ErrorIs(t, err, ErrFeedbackFailed)
		assert.Contains(t, sessions.sessions, "s1")
	})
}

type fakeLLM struct {
	answers map[string]string
	err     error
	// failBiz 非空时只有该 biz 返回错误，否则 err 对所有调用生效
	failBiz string
	reqs    []ai.LLMRequest
}

func (f *fakeLLM) Invoke(_ context.Context, req ai.LLMRequest) (ai.LLMResponse, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil && (f.failBiz == "" || f.failBiz == req.Biz) {
		return ai.LLMResponse{}, f.err
	}
	return ai.LLMResponse{Answer: f.answers[req.Biz]}, nil
}

type fakeFeedbackService struct {
	feedback domain.Feedback
	err      error
}

func (f *fakeFeedbackService) Generate(_ context.Context, _ domain.Session) (domain.Feedback, error) {
	return f.feedback, f.err
}

type fakeSessionRepo struct {
	sessions map[string]domain.Session
	locked   map[string]bool
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{
		sessions: make(map[string]domain.Session),
		locked:   make(map[string]bool),
	}
}

func (f *fakeSessionRepo) put(sess domain.Session) {
	f.sessions[sess.Sid] = sess
}

func (f *fakeSessionRepo) Save(_ context.Context, sess domain.Session) error {
	f.sessions[sess.Sid] = sess
	return nil
}

func (f *fakeSessionRepo) Get(_ context.Context, sid string) (domain.Session, error) {
	sess, ok := f.sessions[sid]
	if !ok {
		return domain.Session{}, repository.ErrSessionNotFound
	}
	return sess, nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, sid string) error {
	delete(f.sessions, sid)
	return nil
}

func (f *fakeSessionRepo) Lock(_ context.Context, sid string) (bool, error) {
	if f.locked[sid] {
		return false, nil
	}
	f.locked[sid] = true
	return true, nil
}

func (f *fakeSessionRepo) Unlock(_ context.Context, sid string) error {
	f.locked[sid] = false
	return nil
}

type fakeCompletedRepo struct {
	nextId  int64
	records []domain.CompletedInterview
}

func newFakeCompletedRepo() *fakeCompletedRepo {
	return &fakeCompletedRepo{nextId: 1}
}

func (f *fakeCompletedRepo) Create(_ context.Context, c domain.CompletedInterview) (int64, error) {
	c.Id = f.nextId
	f.nextId++
	f.records = append(f.records, c)
	return c.Id, nil
}

func (f *fakeCompletedRepo) ListByUid(_ context.Context, uid int64, limit int) ([]domain.CompletedInterview, error) {
	var res []domain.CompletedInterview
	for i := len(f.records) - 1; i >= 0 && len(res) < limit; i-- {
		if f.records[i].Uid == uid {
			res = append(res, f.records[i])
		}
	}
	return res, nil
}

func (f *fakeCompletedRepo) GetById(_ context.Context, id, uid int64) (domain.CompletedInterview, error) {
	for _, r := range f.records {
		if r.Id == id && r.Uid == uid {
			return r, nil
		}
	}
	return domain.CompletedInterview{}, repository.ErrInterviewNotFound
}

type fakeProducer struct {
	events []event.InterviewCompletedEvent
	err    error
}

func (f *fakeProducer) Produce(_ context.Context, evt event.InterviewCompletedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, evt)
	return nil
}

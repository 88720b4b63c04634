//go:build e2e

package integration

import (
	"context"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/ecodeclub/ekit/iox"
	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/mockly/internal/ai"
	"github.com/ecodeclub/mockly/internal/interview/internal/integration/startup"
	"github.com/ecodeclub/mockly/internal/interview/internal/web"
	"github.com/ecodeclub/mockly/internal/speech"
	"github.com/ecodeclub/mockly/internal/test"
	testioc "github.com/ecodeclub/mockly/internal/test/ioc"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/server/egin"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

const uid = 2051

// fakeLLM 按 biz 返回预设回答，测试过程中可以改
type fakeLLM struct {
	mu      sync.Mutex
	answers map[string]string
}

func (f *fakeLLM) set(biz, answer string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answers[biz] = answer
}

func (f *fakeLLM) Invoke(_ context.Context, req ai.LLMRequest) (ai.LLMResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return ai.LLMResponse{Answer: f.answers[req.Biz], Tokens: 100}, nil
}

// fakeSpeech 始终降级到浏览器引擎，测试里不真正合成
type fakeSpeech struct{}

func (f *fakeSpeech) Synthesize(_ context.Context, _ speech.SynthesisRequest) (speech.Synthesis, error) {
	return speech.Synthesis{Engine: speech.EngineBrowser}, nil
}

func (f *fakeSpeech) Transcribe(_ context.Context, _ io.Reader, _ string) (speech.Transcription, error) {
	return speech.Transcription{}, nil
}

type InterviewSuite struct {
	suite.Suite
	db     *gorm.DB
	llm    *fakeLLM
	server *egin.Component
}

func (s *InterviewSuite) SetupSuite() {
	s.db = testioc.InitDB()
	s.llm = &fakeLLM{answers: map[string]string{
		ai.BizGreeting:    "Welcome! Tell me a bit about yourself.",
		ai.BizPreliminary: "Got it. What role are you targeting?",
		ai.BizQuestion:    "What is event delegation?",
		ai.BizFeedback:    `{"totalScore": 50, "categoryScores": [{"name": "Communication", "score": 80, "comment": "clear"}, {"name": "Technical Knowledge", "score": 90, "comment": "solid"}], "strengths": ["clarity"], "areasForImprovement": ["depth"], "finalAssessment": "good"}`,
	}}
	hdl, err := startup.InitHandler(s.db, testioc.InitCache(), testioc.InitMQ(), s.llm, &fakeSpeech{})
	require.NoError(s.T(), err)

	econf.Set("server", map[string]any{"contextTimeout": "10s"})
	server := egin.Load("server").Build()
	server.Use(func(ctx *gin.Context) {
		ctx.Set("_session", session.NewMemorySession(session.Claims{
			Uid: uid,
		}))
	})
	hdl.PrivateRoutes(server.Engine)
	s.server = server
}

func (s *InterviewSuite) TearDownSuite() {
	err := s.db.Exec("TRUNCATE TABLE `completed_interviews`").Error
	require.NoError(s.T(), err)
}

func (s *InterviewSuite) TestInterviewFlow() {
	t := s.T()

	// 开场
	start := postJSON[web.ReplyVO](s, "/interview/start", web.StartReq{UserName: "Dana"})
	require.Equal(t, 0, start.Code)
	sid := start.Data.Sid
	require.NotEmpty(t, sid)
	require.Equal(t, "greeting", start.Data.Phase)
	require.Equal(t, "Welcome! Tell me a bit about yourself.", start.Data.Reply)
	require.Equal(t, speech.EngineBrowser, start.Data.Engine)

	// 自我介绍，only 2 questions 会被提取出来
	reply := postJSON[web.ReplyVO](s, "/interview/answer", web.AnswerReq{
		Sid:    sid,
		Answer: "Hi, I am targeting Frontend Developer roles, only 2 questions please",
	})
	require.Equal(t, 0, reply.Code)
	require.Equal(t, "preliminary", reply.Data.Phase)

	// 过渡话术触发阶段切换
	s.llm.set(ai.BizPreliminary, "Perfect, I have everything I need. Let's begin!")
	reply = postJSON[web.ReplyVO](s, "/interview/answer", web.AnswerReq{
		Sid:    sid,
		Answer: "That's all about me",
	})
	require.Equal(t, 0, reply.Code)
	require.Equal(t, "interview", reply.Data.Phase)
	require.Equal(t, 2, reply.Data.TargetQuestions)

	// 第一题
	reply = postJSON[web.ReplyVO](s, "/interview/answer", web.AnswerReq{Sid: sid, Answer: "I'm ready"})
	require.Equal(t, 0, reply.Code)
	require.Equal(t, 1, reply.Data.QuestionNumber)
	require.Equal(t, "What is event delegation?", reply.Data.Question)

	// 第二题
	reply = postJSON[web.ReplyVO](s, "/interview/answer", web.AnswerReq{Sid: sid, Answer: "Events bubble up to a common ancestor"})
	require.Equal(t, 0, reply.Code)
	require.Equal(t, 2, reply.Data.QuestionNumber)

	// 答完最后一题，收尾
	reply = postJSON[web.ReplyVO](s, "/interview/answer", web.AnswerReq{Sid: sid, Answer: "You attach one listener instead of many"})
	require.Equal(t, 0, reply.Code)
	require.True(t, reply.Data.Completed)
	require.NotNil(t, reply.Data.Feedback)
	// 总分是分项均值，模型自己给的 50 不算数
	require.Equal(t, 85, reply.Data.Feedback.TotalScore)
	interviewId := reply.Data.InterviewId
	require.True(t, interviewId > 0)

	// 会话已经删了，再提交按不存在处理
	reply = postJSON[web.ReplyVO](s, "/interview/answer", web.AnswerReq{Sid: sid, Answer: "hello?"})
	require.Equal(t, 517003, reply.Code)

	// 列表里能看到
	list := postJSON[web.CompletedInterviewListVO](s, "/interview/list", struct{}{})
	require.Equal(t, 0, list.Code)
	require.Len(t, list.Data.Interviews, 1)
	require.Equal(t, interviewId, list.Data.Interviews[0].Id)
	require.Equal(t, "Frontend Developer", list.Data.Interviews[0].TargetRole)

	// 详情
	detail := postJSON[web.CompletedInterviewVO](s, "/interview/detail", web.DetailReq{Id: interviewId})
	require.Equal(t, 0, detail.Code)
	require.Equal(t, 85, detail.Data.TotalScore)
	require.NotEmpty(t, detail.Data.ConversationHistory)

	// 不存在的记录
	detail = postJSON[web.CompletedInterviewVO](s, "/interview/detail", web.DetailReq{Id: interviewId + 10000})
	require.Equal(t, 517004, detail.Code)
}

func (s *InterviewSuite) TestEnd_WithoutAnswers() {
	t := s.T()
	start := postJSON[web.ReplyVO](s, "/interview/start", web.StartReq{})
	require.Equal(t, 0, start.Code)

	// 一个字没答就结束，不落库
	reply := postJSON[web.ReplyVO](s, "/interview/end", web.EndReq{Sid: start.Data.Sid})
	require.Equal(t, 0, reply.Code)
	require.True(t, reply.Data.Completed)
	require.Nil(t, reply.Data.Feedback)
	require.Equal(t, int64(0), reply.Data.InterviewId)
}

// Go 不支持泛型方法，只能写成包级函数
func postJSON[T any](s *InterviewSuite, path string, body any) test.Result[T] {
	req, err := http.NewRequest(http.MethodPost, path, iox.NewJSONReader(body))
	require.NoError(s.T(), err)
	req.Header.Set("Content-Type", "application/json")
	recorder := test.NewJSONResponseRecorder[T]()
	s.server.ServeHTTP(recorder, req)
	require.Equal(s.T(), http.StatusOK, recorder.Code)
	return recorder.MustScan()
}

func TestInterviewSuite(t *testing.T) {
	suite.Run(t, new(InterviewSuite))
}

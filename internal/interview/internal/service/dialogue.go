package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ecodeclub/mockly/internal/ai"
	"github.com/ecodeclub/mockly/internal/interview/internal/domain"
	"github.com/ecodeclub/mockly/internal/interview/internal/event"
	"github.com/ecodeclub/mockly/internal/interview/internal/repository"
	"github.com/gotomicro/ego/core/elog"
	"github.com/lithammer/shortuuid/v4"
)

var (
	ErrSessionNotFound = repository.ErrSessionNotFound
	// ErrAnswerInFlight 同一会话上一个回答还没处理完
	ErrAnswerInFlight = errors.New("上一个回答还在处理中")
	// ErrFeedbackFailed 评分生成或者落库失败。会话保留，调用方可以重试
	ErrFeedbackFailed = errors.New("生成面试反馈失败")
)

// 会话默认画像，候选人开场没说清楚时用
const (
	defaultRole  = "Front-end Developer"
	defaultLevel = "Mid-level"
)

var defaultTechStack = []string{"JavaScript", "React"}

type StartParams struct {
	// 候选人的展示名，开场没提取到名字时落库用
	UserName        string
	Role            string
	ExperienceLevel string
	TechStack       []string
}

// Reply 一轮对话的结果
type Reply struct {
	Sid   string
	Phase domain.Phase
	// 面试官这一轮说的话
	Reply string
	// 正式提问阶段的当前问题，和 Reply 可能不同：
	// preliminary 阶段生成失败兜底时，Reply 是过渡话术，Question 是第一个问题
	Question string
	// 1 开始，非提问阶段为 0
	QuestionNumber  int
	TargetQuestions int
	Completed       bool
	// 完成且生成成功时带上评分
	Feedback *domain.Feedback
	// 落库之后的记录 ID
	InterviewId int64
}

//go:generate mockgen -source=./dialogue.go -destination=../../mocks/dialogue.mock.go -package=interviewmocks -typed=true DialogueService
type DialogueService interface {
	Start(ctx context.Context, uid int64, params StartParams) (Reply, error)
	Submit(ctx context.Context, uid int64, sid string, answer string) (Reply, error)
	// End 提前结束。从任何阶段直接跳到 feedback
	End(ctx context.Context, uid int64, sid string) (Reply, error)
}

type dialogueService struct {
	aiSvc         ai.LLMService
	feedbackSvc   FeedbackService
	sessionRepo   repository.SessionRepository
	completedRepo repository.CompletedInterviewRepository
	producer      event.InterviewCompletedProducer

	convCfg     ai.BizConfig
	questionCfg ai.BizConfig

	logger *elog.Component
}

func NewDialogueService(aiSvc ai.LLMService,
	feedbackSvc FeedbackService,
	sessionRepo repository.SessionRepository,
	completedRepo repository.CompletedInterviewRepository,
	producer event.InterviewCompletedProducer,
	convCfg ConversationConfig,
	questionCfg QuestionConfig) DialogueService {
	return &dialogueService{
		aiSvc:         aiSvc,
		feedbackSvc:   feedbackSvc,
		sessionRepo:   sessionRepo,
		completedRepo: completedRepo,
		producer:      producer,
		convCfg:       ai.BizConfig(convCfg),
		questionCfg:   ai.BizConfig(questionCfg),
		logger:        elog.DefaultLogger.With(elog.FieldComponent("interview.dialogue")),
	}
}

func (s *dialogueService) Start(ctx context.Context, uid int64, params StartParams) (Reply, error) {
	now := time.Now().UnixMilli()
	sess := domain.Session{
		Sid:             shortuuid.New(),
		Uid:             uid,
		Phase:           domain.PhaseGreeting,
		Role:            params.Role,
		ExperienceLevel: params.ExperienceLevel,
		TechStack:       params.TechStack,
		StartedAt:       now,
	}
	if sess.Role == "" {
		sess.Role = defaultRole
	}
	if sess.ExperienceLevel == "" {
		sess.ExperienceLevel = defaultLevel
	}
	if len(sess.TechStack) == 0 {
		sess.TechStack = defaultTechStack
	}
	if params.UserName != "" {
		sess.Candidate.Name = params.UserName
	}

	greeting, err := s.converse(ctx, uid, ai.BizGreeting,
		greetingContext, "Starting interview session", domain.PhasePreliminary)
	if err != nil {
		s.logger.Error("生成开场白失败，使用兜底话术",
			elog.String("sid", sess.Sid), elog.FieldErr(err))
		greeting = fallbackGreeting
	}
	sess.AppendAssistant(greeting, now)
	if err = s.sessionRepo.Save(ctx, sess); err != nil {
		return Reply{}, err
	}
	return Reply{
		Sid:   sess.Sid,
		Phase: sess.Phase,
		Reply: greeting,
	}, nil
}

func (s *dialogueService) Submit(ctx context.Context, uid int64, sid string, answer string) (Reply, error) {
	sess, unlock, err := s.acquire(ctx, uid, sid)
	if err != nil {
		return Reply{}, err
	}
	defer unlock()
	if sess.Phase == domain.PhaseFeedback {
		// 已经结束的会话不再接受回答
		return Reply{}, ErrSessionNotFound
	}

	now := time.Now().UnixMilli()
	// preliminary 阶段的 prompt 里对话历史和当前回答是分开的
	prior := sess.History
	sess.AppendUser(answer, now)

	switch sess.Phase {
	case domain.PhaseGreeting:
		return s.onGreetingAnswer(ctx, &sess, answer, now)
	case domain.PhasePreliminary:
		return s.onPreliminaryAnswer(ctx, &sess, prior, answer, now)
	default:
		return s.onInterviewAnswer(ctx, &sess, answer, now)
	}
}

func (s *dialogueService) End(ctx context.Context, uid int64, sid string) (Reply, error) {
	sess, unlock, err := s.acquire(ctx, uid, sid)
	if err != nil {
		return Reply{}, err
	}
	defer unlock()
	return s.finish(ctx, &sess)
}

// acquire 加载会话并抢占处理锁。返回的 unlock 必须调用
func (s *dialogueService) acquire(ctx context.Context, uid int64, sid string) (domain.Session, func(), error) {
	locked, err := s.sessionRepo.Lock(ctx, sid)
	if err != nil {
		return domain.Session{}, nil, err
	}
	if !locked {
		return domain.Session{}, nil, ErrAnswerInFlight
	}
	unlock := func() {
		if err1 := s.sessionRepo.Unlock(ctx, sid); err1 != nil {
			s.logger.Warn("释放会话锁失败", elog.String("sid", sid), elog.FieldErr(err1))
		}
	}
	sess, err := s.sessionRepo.Get(ctx, sid)
	if err != nil {
		unlock()
		return domain.Session{}, nil, err
	}
	// 别人的会话一律当成不存在
	if sess.Uid != uid {
		unlock()
		return domain.Session{}, nil, ErrSessionNotFound
	}
	return sess, unlock, nil
}

func (s *dialogueService) onGreetingAnswer(ctx context.Context,
	sess *domain.Session, answer string, now int64) (Reply, error) {
	sess.Phase = domain.PhasePreliminary
	reply, err := s.converse(ctx, sess.Uid, ai.BizPreliminary,
		greetingReplyContext(answer), answer, domain.PhasePreliminary)
	if err != nil {
		s.logger.Error("生成开场答复失败，使用兜底话术",
			elog.String("sid", sess.Sid), elog.FieldErr(err))
		reply = fallbackGreetingReply
	}
	sess.AppendAssistant(reply, now)
	sess.Candidate = sess.Candidate.Merge(ExtractCandidateInfo(answer))
	if err = s.sessionRepo.Save(ctx, *sess); err != nil {
		return Reply{}, err
	}
	return Reply{Sid: sess.Sid, Phase: sess.Phase, Reply: reply}, nil
}

func (s *dialogueService) onPreliminaryAnswer(ctx context.Context,
	sess *domain.Session, prior []domain.Message, answer string, now int64) (Reply, error) {
	// 先提取，切换时要用提取到的题目数定目标
	sess.Candidate = sess.Candidate.Merge(ExtractCandidateInfo(answer))

	reply, err := s.converse(ctx, sess.Uid, ai.BizPreliminary,
		preliminaryContext(prior, answer), answer, domain.PhasePreliminary)
	if err != nil {
		// 兜底：直接切到正式提问，生成第一个问题
		s.logger.Error("生成收集阶段答复失败，直接进入提问",
			elog.String("sid", sess.Sid), elog.FieldErr(err))
		sess.Phase = domain.PhaseInterview
		sess.FixTarget()
		question := s.generateQuestion(ctx, sess, 1, nil)
		sess.Questions = append(sess.Questions, question)
		sess.AppendAssistant(question, now)
		if err = s.sessionRepo.Save(ctx, *sess); err != nil {
			return Reply{}, err
		}
		return Reply{
			Sid:             sess.Sid,
			Phase:           sess.Phase,
			Reply:           fallbackPreliminary,
			Question:        question,
			QuestionNumber:  1,
			TargetQuestions: sess.TargetQuestions,
		}, nil
	}

	if domain.TransitionSignaled(reply) {
		// 切换点：目标题目数从此定死。
		// 过渡话术本身不进历史记录
		sess.Phase = domain.PhaseInterview
		sess.FixTarget()
		if err = s.sessionRepo.Save(ctx, *sess); err != nil {
			return Reply{}, err
		}
		return Reply{
			Sid:             sess.Sid,
			Phase:           sess.Phase,
			Reply:           reply,
			TargetQuestions: sess.TargetQuestions,
		}, nil
	}

	sess.AppendAssistant(reply, now)
	if err = s.sessionRepo.Save(ctx, *sess); err != nil {
		return Reply{}, err
	}
	return Reply{Sid: sess.Sid, Phase: sess.Phase, Reply: reply}, nil
}

func (s *dialogueService) onInterviewAnswer(ctx context.Context,
	sess *domain.Session, answer string, now int64) (Reply, error) {
	sess.Answers = append(sess.Answers, answer)

	// 切换之后第一轮：还没问过任何问题
	if sess.QuestionIdx == 0 && len(sess.Questions) == 0 {
		question := s.generateQuestion(ctx, sess, 1, nil)
		sess.Questions = append(sess.Questions, question)
		sess.AppendAssistant(question, now)
		if err := s.sessionRepo.Save(ctx, *sess); err != nil {
			return Reply{}, err
		}
		return Reply{
			Sid:             sess.Sid,
			Phase:           sess.Phase,
			Reply:           question,
			Question:        question,
			QuestionNumber:  1,
			TargetQuestions: sess.TargetQuestions,
		}, nil
	}

	// 答够了就收尾，不再提问
	if sess.QuestionIdx+1 >= sess.TargetQuestions {
		return s.finish(ctx, sess)
	}

	next := sess.QuestionIdx + 1
	question := s.generateQuestion(ctx, sess, next+1, sess.Answers)
	sess.QuestionIdx = next
	sess.Questions = append(sess.Questions, question)
	sess.AppendAssistant(question, now)
	if err := s.sessionRepo.Save(ctx, *sess); err != nil {
		return Reply{}, err
	}
	return Reply{
		Sid:             sess.Sid,
		Phase:           sess.Phase,
		Reply:           question,
		Question:        question,
		QuestionNumber:  next + 1,
		TargetQuestions: sess.TargetQuestions,
	}, nil
}

// finish 收尾：生成评分、落库、发事件、清掉会话。
// 一条回答都没有的会话直接丢弃，不落库
func (s *dialogueService) finish(ctx context.Context, sess *domain.Session) (Reply, error) {
	sess.Phase = domain.PhaseFeedback
	if !sess.HasAnswer() {
		if err := s.sessionRepo.Delete(ctx, sess.Sid); err != nil {
			s.logger.Warn("清理空会话失败", elog.String("sid", sess.Sid), elog.FieldErr(err))
		}
		return Reply{
			Sid:       sess.Sid,
			Phase:     sess.Phase,
			Completed: true,
		}, nil
	}

	feedback, err := s.feedbackSvc.Generate(ctx, *sess)
	if err != nil {
		// 评分失败不兜底。会话保留，调用方可以重试 End
		if err1 := s.sessionRepo.Save(ctx, *sess); err1 != nil {
			s.logger.Error("保存会话失败", elog.String("sid", sess.Sid), elog.FieldErr(err1))
		}
		return Reply{}, fmt.Errorf("%w: %w", ErrFeedbackFailed, err)
	}

	now := time.Now().UnixMilli()
	record := domain.CompletedInterview{
		Uid:                 sess.Uid,
		Sid:                 sess.Sid,
		CandidateName:       sess.Candidate.Name,
		TargetRole:          sess.Candidate.Role,
		ExperienceLevel:     sess.Candidate.ExperienceLevel,
		TechStack:           sess.Candidate.TechStack,
		TotalScore:          feedback.TotalScore,
		CategoryScores:      feedback.CategoryScores,
		Strengths:           feedback.Strengths,
		AreasForImprovement: feedback.AreasForImprovement,
		FinalAssessment:     feedback.FinalAssessment,
		ConversationHistory: sess.History,
		Duration:            duration(sess.StartedAt, now),
		CompletedAt:         now,
	}
	id, err := s.completedRepo.Create(ctx, record)
	if err != nil {
		if err1 := s.sessionRepo.Save(ctx, *sess); err1 != nil {
			s.logger.Error("保存会话失败", elog.String("sid", sess.Sid), elog.FieldErr(err1))
		}
		return Reply{}, fmt.Errorf("%w: %w", ErrFeedbackFailed, err)
	}

	evt := event.InterviewCompletedEvent{
		Uid:         sess.Uid,
		Sid:         sess.Sid,
		InterviewId: id,
		TargetRole:  record.TargetRole,
		TotalScore:  record.TotalScore,
		Duration:    record.Duration,
		CompletedAt: now,
	}
	if err = s.producer.Produce(ctx, evt); err != nil {
		// 事件丢了不影响主流程
		s.logger.Error("发送面试完成事件失败",
			elog.String("sid", sess.Sid), elog.FieldErr(err))
	}

	if err = s.sessionRepo.Delete(ctx, sess.Sid); err != nil {
		s.logger.Warn("清理会话失败", elog.String("sid", sess.Sid), elog.FieldErr(err))
	}
	return Reply{
		Sid:         sess.Sid,
		Phase:       sess.Phase,
		Completed:   true,
		Feedback:    &feedback,
		InterviewId: id,
	}, nil
}

func (s *dialogueService) converse(ctx context.Context, uid int64,
	biz, promptCtx string, userMsg string, phase domain.Phase) (string, error) {
	cfg := s.convCfg
	cfg.SystemPrompt = conversationalSystemPrompt(promptCtx, phase)
	resp, err := s.aiSvc.Invoke(ctx, ai.LLMRequest{
		Uid: uid,
		Tid: shortuuid.New(),
		Biz: biz,
		Messages: []ai.Message{
			{Role: ai.RoleUser, Content: userMsg},
		},
		Config: cfg,
	})
	if err != nil {
		return "", err
	}
	return resp.Answer, nil
}

// generateQuestion 生成失败就用兜底问题，单次失败不打断整场面试
func (s *dialogueService) generateQuestion(ctx context.Context,
	sess *domain.Session, number int, previousAnswers []string) string {
	cfg := s.questionCfg
	cfg.SystemPrompt = questionSystemPrompt(sess.TargetRole(), sess.Level(), sess.Stack(),
		previousAnswers, number, sess.TargetQuestions)
	resp, err := s.aiSvc.Invoke(ctx, ai.LLMRequest{
		Uid: sess.Uid,
		Tid: shortuuid.New(),
		Biz: ai.BizQuestion,
		Messages: []ai.Message{
			{Role: ai.RoleUser, Content: questionUserPrompt(sess.TargetRole(), sess.Level(), number, sess.TargetQuestions)},
		},
		Config: cfg,
	})
	if err != nil {
		s.logger.Error("生成面试问题失败，使用兜底问题",
			elog.String("sid", sess.Sid), elog.FieldErr(err))
		return fallbackQuestion
	}
	question := SanitizeQuestion(resp.Answer)
	if question == "" {
		return fallbackQuestion
	}
	return question
}

func duration(startMs, endMs int64) int64 {
	if startMs <= 0 || endMs <= startMs {
		return 0
	}
	return int64(math.Round(float64(endMs-startMs) / 60000))
}

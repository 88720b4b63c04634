package web

import (
	"context"
	"errors"
	"strings"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/mockly/internal/interview/internal/domain"
	"github.com/ecodeclub/mockly/internal/interview/internal/service"
	"github.com/ecodeclub/mockly/internal/speech"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
)

type Handler struct {
	dialogueSvc  service.DialogueService
	completedSvc service.CompletedInterviewService
	speechSvc    speech.Service
	logger       *elog.Component
}

func NewHandler(dialogueSvc service.DialogueService,
	completedSvc service.CompletedInterviewService,
	speechSvc speech.Service) *Handler {
	return &Handler{
		dialogueSvc:  dialogueSvc,
		completedSvc: completedSvc,
		speechSvc:    speechSvc,
		logger:       elog.DefaultLogger.With(elog.FieldComponent("interview.Handler")),
	}
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/interview")
	g.POST("/start", ginx.BS(h.Start))
	g.POST("/answer", ginx.BS(h.Answer))
	g.POST("/end", ginx.BS(h.End))
	g.POST("/list", ginx.S(h.List))
	g.POST("/detail", ginx.BS(h.Detail))
}

func (h *Handler) Start(ctx *ginx.Context, req StartReq, sess session.Session) (ginx.Result, error) {
	uid := sess.Claims().Uid
	reply, err := h.dialogueSvc.Start(ctx, uid, service.StartParams{
		UserName:        req.UserName,
		Role:            req.Role,
		ExperienceLevel: req.ExperienceLevel,
		TechStack:       req.TechStack,
	})
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Data: h.spokenReplyVO(ctx, reply)}, nil
}

func (h *Handler) Answer(ctx *ginx.Context, req AnswerReq, sess session.Session) (ginx.Result, error) {
	if req.Sid == "" || strings.TrimSpace(req.Answer) == "" {
		return invalidInputResult, nil
	}
	uid := sess.Claims().Uid
	reply, err := h.dialogueSvc.Submit(ctx, uid, req.Sid, req.Answer)
	if err != nil {
		return h.dialogueErrResult(err), err
	}
	return ginx.Result{Data: h.spokenReplyVO(ctx, reply)}, nil
}

func (h *Handler) End(ctx *ginx.Context, req EndReq, sess session.Session) (ginx.Result, error) {
	if req.Sid == "" {
		return invalidInputResult, nil
	}
	uid := sess.Claims().Uid
	reply, err := h.dialogueSvc.End(ctx, uid, req.Sid)
	if err != nil {
		return h.dialogueErrResult(err), err
	}
	return ginx.Result{Data: h.spokenReplyVO(ctx, reply)}, nil
}

func (h *Handler) List(ctx *ginx.Context, sess session.Session) (ginx.Result, error) {
	uid := sess.Claims().Uid
	interviews, err := h.completedSvc.List(ctx, uid)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: CompletedInterviewListVO{
			Interviews: slice.Map(interviews, func(idx int, src domain.CompletedInterview) CompletedInterviewVO {
				return newCompletedInterviewVO(src)
			}),
		},
	}, nil
}

func (h *Handler) Detail(ctx *ginx.Context, req DetailReq, sess session.Session) (ginx.Result, error) {
	uid := sess.Claims().Uid
	interview, err := h.completedSvc.Detail(ctx, req.Id, uid)
	if errors.Is(err, service.ErrInterviewNotFound) {
		return interviewNotFoundResult, nil
	}
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Data: newCompletedInterviewVO(interview)}, nil
}

// spokenReplyVO 给每轮回复带上合成好的语音。
// 合成失败只降级为 browser 引擎，绝不影响对话本身。
func (h *Handler) spokenReplyVO(ctx context.Context, r service.Reply) ReplyVO {
	vo := newReplyVO(r)
	text := r.Reply
	if r.Question != "" && !strings.Contains(text, r.Question) {
		text = text + " " + r.Question
	}
	if strings.TrimSpace(text) == "" {
		return vo
	}
	syn, err := h.speechSvc.Synthesize(ctx, speech.SynthesisRequest{Text: text})
	if err != nil {
		h.logger.Warn("语音合成失败，降级到浏览器引擎", elog.FieldErr(err))
		vo.Engine = speech.EngineBrowser
		return vo
	}
	vo.Audio = syn.Audio
	vo.Engine = syn.Engine
	return vo
}

func (h *Handler) dialogueErrResult(err error) ginx.Result {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return sessionNotFoundResult
	case errors.Is(err, service.ErrAnswerInFlight):
		return answerInFlightResult
	case errors.Is(err, service.ErrFeedbackFailed):
		return feedbackFailedResult
	default:
		return systemErrorResult
	}
}

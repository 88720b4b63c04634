package web

import (
	"errors"
	"net/http"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/mockly/internal/ai/internal/domain"
	"github.com/ecodeclub/mockly/internal/ai/internal/service/llm"
	"github.com/gin-gonic/gin"
	"github.com/lithammer/shortuuid/v4"
)

type Handler struct {
	llmSvc llm.Service
	// 直接对话走的配置
	chatConfig domain.BizConfig
}

func NewHandler(llmSvc llm.Service, chatConfig domain.BizConfig) *Handler {
	return &Handler{
		llmSvc:     llmSvc,
		chatConfig: chatConfig,
	}
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	server.POST("/ai/chat", ginx.BS(h.Chat))
}

func (h *Handler) Chat(ctx *ginx.Context, req ChatRequest, sess session.Session) (ginx.Result, error) {
	if len(req.Messages) == 0 {
		return invalidInputResult, nil
	}
	uid := sess.Claims().Uid
	resp, err := h.llmSvc.Invoke(ctx, domain.LLMRequest{
		Uid: uid,
		Tid: shortuuid.New(),
		Biz: domain.BizChat,
		Messages: slice.Map(req.Messages, func(idx int, src Message) domain.Message {
			return domain.Message{Role: src.Role, Content: src.Content}
		}),
		Config: h.chatConfig,
	})
	if err != nil {
		var ve *domain.VendorError
		if errors.As(err, &ve) && ve.StatusCode >= http.StatusBadRequest && ve.StatusCode < http.StatusInternalServerError {
			// 供应商认定是调用方的问题，原样透传状态码
			return ginx.Result{Code: ve.StatusCode, Msg: ve.Msg}, err
		}
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: ChatResponse{
			Answer: resp.Answer,
			Tokens: resp.Tokens,
		},
	}, nil
}

package web

import (
	"errors"
	"strings"

	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/mockly/internal/room/internal/service"
	"github.com/gin-gonic/gin"
)

var _ ginx.Handler = (*Handler)(nil)

type Handler struct {
	svc service.TokenService
}

func NewHandler(svc service.TokenService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PublicRoutes(_ *gin.Engine) {}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	server.POST("/room/token", ginx.BS[TokenReq](h.Token))
}

func (h *Handler) Token(_ *ginx.Context, req TokenReq, sess session.Session) (ginx.Result, error) {
	if strings.TrimSpace(req.RoomName) == "" {
		return invalidInputResult, nil
	}
	token, err := h.svc.IssueToken(req.RoomName, sess.Claims().Uid)
	if err != nil {
		if errors.Is(err, service.ErrNotConfigured) {
			return notConfiguredResult, err
		}
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: TokenResp{
			Token: token.Token,
			URL:   token.URL,
		},
	}, nil
}

package web

import (
	"errors"
	"strings"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/mockly/internal/speech/internal/domain"
	"github.com/ecodeclub/mockly/internal/speech/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
)

var _ ginx.Handler = (*Handler)(nil)

type Handler struct {
	svc    service.Service
	logger *elog.Component
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{
		svc:    svc,
		logger: elog.DefaultLogger.With(elog.FieldComponent("speech.handler")),
	}
}

func (h *Handler) PublicRoutes(_ *gin.Engine) {}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/speech")
	g.POST("/tts", ginx.BS[TTSReq](h.TTS))
	g.POST("/stt", ginx.W(h.STT))
}

func (h *Handler) TTS(ctx *ginx.Context, req TTSReq, _ session.Session) (ginx.Result, error) {
	if strings.TrimSpace(req.Text) == "" {
		return invalidInputResult, nil
	}
	res, err := h.svc.Synthesize(ctx, domain.SynthesisRequest{
		Text:     req.Text,
		VoiceId:  req.VoiceId,
		Language: req.Language,
	})
	if err != nil {
		return h.errResult(err), err
	}
	return ginx.Result{
		Data: TTSResp{
			Audio:  res.Audio,
			Engine: res.Engine,
		},
	}, nil
}

func (h *Handler) STT(ctx *ginx.Context) (ginx.Result, error) {
	file, header, err := ctx.Request.FormFile("audio")
	if err != nil {
		return invalidInputResult, nil
	}
	defer func() {
		_ = file.Close()
	}()
	res, err := h.svc.Transcribe(ctx, file, header.Filename)
	if err != nil {
		return h.errResult(err), err
	}
	return ginx.Result{
		Data: STTResp{
			Text:     res.Text,
			Language: res.Language,
			Duration: res.Duration,
			Words: slice.Map(res.Words, func(_ int, src domain.Word) WordVO {
				return WordVO(src)
			}),
		},
	}, nil
}

func (h *Handler) errResult(err error) ginx.Result {
	if errors.Is(err, service.ErrNotConfigured) {
		return notConfiguredResult
	}
	var ve *service.VendorError
	if errors.As(err, &ve) {
		return ginx.Result{
			Code: ve.StatusCode,
			Msg:  ve.Body,
		}
	}
	return systemErrorResult
}

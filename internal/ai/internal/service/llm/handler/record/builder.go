package record

import (
	"context"

	"github.com/ecodeclub/mockly/internal/ai/internal/domain"
	"github.com/ecodeclub/mockly/internal/ai/internal/repository"
	"github.com/ecodeclub/mockly/internal/ai/internal/service/llm/handler"
	"github.com/gotomicro/ego/core/elog"
)

// HandlerBuilder 落库每一次 LLM 调用，成功失败都记
type HandlerBuilder struct {
	repo   repository.LLMRecordRepo
	logger *elog.Component
}

func NewHandlerBuilder(repo repository.LLMRecordRepo) *HandlerBuilder {
	return &HandlerBuilder{
		repo:   repo,
		logger: elog.DefaultLogger,
	}
}

func (h *HandlerBuilder) Name() string {
	return "record"
}

func (h *HandlerBuilder) Next(next handler.Handler) handler.Handler {
	return handler.HandleFunc(func(ctx context.Context, req domain.LLMRequest) (domain.LLMResponse, error) {
		record := domain.LLMRecord{
			Tid:      req.Tid,
			Uid:      req.Uid,
			Biz:      req.Biz,
			Platform: req.Config.Platform,
			Messages: req.Messages,
			Status:   domain.RecordStatusProcessing,
		}
		defer func() {
			_, err1 := h.repo.Save(ctx, record)
			if err1 != nil {
				h.logger.Error("保存 LLM 调用记录失败", elog.FieldErr(err1))
			}
		}()
		resp, err := next.Handle(ctx, req)
		if err != nil {
			record.Status = domain.RecordStatusFailed
			return domain.LLMResponse{}, err
		}
		record.Tokens = resp.Tokens
		record.Answer = resp.Answer
		record.Status = domain.RecordStatusSuccess
		return resp, err
	})
}

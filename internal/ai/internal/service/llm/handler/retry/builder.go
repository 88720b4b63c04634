package retry

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ecodeclub/ekit/retry"
	"github.com/ecodeclub/mockly/internal/ai/internal/domain"
	"github.com/ecodeclub/mockly/internal/ai/internal/service/llm/handler"
	"github.com/gotomicro/ego/core/elog"
)

var ErrOverRetryTimes = errors.New("超过最大重试次数")

// HandlerBuilder 统一的重试策略：所有出站的 LLM 调用共用一份，
// 不在各个调用点复制重试控制流
type HandlerBuilder struct {
	strategyFac func() retry.Strategy
	// 判定一个错误是否值得重试
	retryable func(err error) bool
	logger    *elog.Component
}

var _ handler.Builder = &HandlerBuilder{}

func NewHandlerBuilder(fac func() retry.Strategy, retryable func(err error) bool) *HandlerBuilder {
	return &HandlerBuilder{
		strategyFac: fac,
		retryable:   retryable,
		logger:      elog.DefaultLogger.With(elog.FieldComponent("llm.retry")),
	}
}

func (h *HandlerBuilder) Name() string {
	return "retry"
}

func (h *HandlerBuilder) Next(next handler.Handler) handler.Handler {
	return handler.HandleFunc(func(ctx context.Context, req domain.LLMRequest) (domain.LLMResponse, error) {
		strategy := h.strategyFac()
		var retryTimer *time.Timer
		defer func() {
			if retryTimer != nil {
				retryTimer.Stop()
			}
		}()
		for {
			resp, err := next.Handle(ctx, req)
			if err == nil {
				return resp, nil
			}
			// 调用者已经取消或者超时，重试没有意义
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return resp, err
			}
			if !h.retryable(err) {
				return resp, err
			}
			interval, ok := strategy.Next()
			if !ok {
				return resp, errors.Join(ErrOverRetryTimes, err)
			}
			h.logger.Warn("LLM 调用被限流，稍后重试",
				elog.String("tid", req.Tid),
				elog.Any("interval", interval),
				elog.FieldErr(err))
			if retryTimer == nil {
				retryTimer = time.NewTimer(interval)
			} else {
				retryTimer.Reset(interval)
			}
			select {
			case <-ctx.Done():
				return resp, ctx.Err()
			case <-retryTimer.C:
			}
		}
	})
}

// RateLimited 默认的重试判定：供应商返回 429 或者明确提示限流
func RateLimited(err error) bool {
	var ve *domain.VendorError
	if errors.As(err, &ve) {
		return ve.StatusCode == http.StatusTooManyRequests
	}
	return strings.Contains(strings.ToLower(err.Error()), "rate limit")
}

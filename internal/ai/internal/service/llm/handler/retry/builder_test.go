package retry

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/ecodeclub/ekit/retry"
	"github.com/ecodeclub/mockly/internal/ai/internal/domain"
	"github.com/ecodeclub/mockly/internal/ai/internal/service/llm/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFastStrategy(t *testing.T, retries int32) func() retry.Strategy {
	t.Helper()
	return func() retry.Strategy {
		strategy, err := retry.NewExponentialBackoffRetryStrategy(time.Millisecond, time.Millisecond, retries)
		require.NoError(t, err)
		return strategy
	}
}

func TestHandlerBuilder_Next(t *testing.T) {
	t.Parallel()
	rateLimited := &domain.VendorError{StatusCode: http.StatusTooManyRequests, Msg: "rate limit exceeded"}

	t.Run("第一次就成功", func(t *testing.T) {
		t.Parallel()
		var calls int
		next := handler.HandleFunc(func(ctx context.Context, req domain.LLMRequest) (domain.LLMResponse, error) {
			calls++
			return domain.LLMResponse{Answer: "ok"}, nil
		})
		h := NewHandlerBuilder(newFastStrategy(t, 3), RateLimited).Next(next)
		resp, err := h.Handle(context.Background(), domain.LLMRequest{})
		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Answer)
		assert.Equal(t, 1, calls)
	})

	t.Run("限流重试后成功", func(t *testing.T) {
		t.Parallel()
		var calls int
		next := handler.HandleFunc(func(ctx context.Context, req domain.LLMRequest) (domain.LLMResponse, error) {
			calls++
			if calls < 3 {
				return domain.LLMResponse{}, rateLimited
			}
			return domain.LLMResponse{Answer: "ok"}, nil
		})
		h := NewHandlerBuilder(newFastStrategy(t, 3), RateLimited).Next(next)
		resp, err := h.Handle(context.Background(), domain.LLMRequest{})
		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Answer)
		assert.Equal(t, 3, calls)
	})

	t.Run("重试次数耗尽", func(t *testing.T) {
		t.Parallel()
		var calls int
		next := handler.HandleFunc(func(ctx context.Context, req domain.LLMRequest) (domain.LLMResponse, error) {
			calls++
			return domain.LLMResponse{}, rateLimited
		})
		h := NewHandlerBuilder(newFastStrategy(t, 2), RateLimited).Next(next)
		_, err := h.Handle(context.Background(), domain.LLMRequest{})
		assert.ErrorIs(t, err, ErrOverRetryTimes)
		// 首次调用加两次重试
		assert.Equal(t, 3, calls)
	})

	t.Run("不可重试的错误直接返回", func(t *testing.T) {
		t.Parallel()
		var calls int
		badReq := &domain.VendorError{StatusCode: http.StatusBadRequest, Msg: "bad request"}
		next := handler.HandleFunc(func(ctx context.Context, req domain.LLMRequest) (domain.LLMResponse, error) {
			calls++
			return domain.LLMResponse{}, badReq
		})
		h := NewHandlerBuilder(newFastStrategy(t, 3), RateLimited).Next(next)
		_, err := h.Handle(context.Background(), domain.LLMRequest{})
		assert.ErrorIs(t, err, badReq)
		assert.Equal(t, 1, calls)
	})

	t.Run("调用方取消就不再重试", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		next := handler.HandleFunc(func(ctx context.Context, req domain.LLMRequest) (domain.LLMResponse, error) {
			return domain.LLMResponse{}, rateLimited
		})
		h := NewHandlerBuilder(newFastStrategy(t, 3), RateLimited).Next(next)
		_, err := h.Handle(ctx, domain.LLMRequest{})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRateLimited(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "供应商 429",
			err:  &domain.VendorError{StatusCode: http.StatusTooManyRequests},
			want: true,
		},
		{
			name: "供应商 500",
			err:  &domain.VendorError{StatusCode: http.StatusInternalServerError},
			want: false,
		},
		{
			name: "错误信息提示限流",
			err:  errors.New("openai: Rate Limit reached for model"),
			want: true,
		},
		{
			name: "普通错误",
			err:  errors.New("connection refused"),
			want: false,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, RateLimited(tc.err))
		})
	}
}

package cerebras

import (
	"testing"

	"github.com/ecodeclub/mockly/internal/ai/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_buildParams(t *testing.T) {
	t.Parallel()
	h := NewHandler("test-key")
	req := domain.LLMRequest{
		Messages: []domain.Message{
			{Role: domain.RoleUser, Content: "hello"},
			{Role: domain.RoleAssistant, Content: "hi, tell me more"},
			{Role: domain.RoleUser, Content: "sure"},
		},
		Config: domain.BizConfig{
			Model:        "llama-3.3-70b",
			SystemPrompt: "You are an interviewer",
			Temperature:  0.7,
			MaxTokens:    300,
		},
	}
	params := h.buildParams(req)

	assert.Equal(t, "llama-3.3-70b", string(params.Model.Value))
	// 系统 prompt 放在最前面
	require.Len(t, params.Messages.Value, 4)
	assert.Equal(t, 0.7, params.Temperature.Value)
	assert.Equal(t, int64(300), params.MaxTokens.Value)
	// 没配置的参数不下发
	assert.False(t, params.TopP.Present)
}

package cerebras

import (
	"context"
	"errors"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/mockly/internal/ai/internal/domain"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	// Cerebras 提供 OpenAI 兼容接口
	baseUrl = "https://api.cerebras.ai/v1/"
)

type Handler struct {
	client *openai.Client
}

func NewHandler(apikey string) *Handler {
	client := openai.NewClient(
		option.WithBaseURL(baseUrl),
		option.WithAPIKey(apikey),
	)
	return &Handler{
		client: client,
	}
}

func (h *Handler) Name() string {
	return "cerebras"
}

func (h *Handler) Handle(ctx context.Context, req domain.LLMRequest) (domain.LLMResponse, error) {
	// 这边它不会调用 next，因为它是最终的出口
	completion, err := h.client.Chat.Completions.New(ctx, h.buildParams(req))
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return domain.LLMResponse{}, &domain.VendorError{
				StatusCode: apiErr.StatusCode,
				Msg:        apiErr.Message,
			}
		}
		return domain.LLMResponse{}, err
	}
	resp := domain.LLMResponse{
		Tokens: completion.Usage.TotalTokens,
	}
	if len(completion.Choices) > 0 {
		resp.Answer = completion.Choices[0].Message.Content
	}
	return resp, nil
}

func (h *Handler) buildParams(req domain.LLMRequest) openai.ChatCompletionNewParams {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	if req.Config.SystemPrompt != "" {
		msgs = append(msgs, openai.SystemMessage(req.Config.SystemPrompt))
	}
	msgs = append(msgs, slice.Map(req.Messages, func(idx int, src domain.Message) openai.ChatCompletionMessageParamUnion {
		switch src.Role {
		case domain.RoleSystem:
			return openai.SystemMessage(src.Content)
		case domain.RoleAssistant:
			return openai.AssistantMessage(src.Content)
		default:
			return openai.UserMessage(src.Content)
		}
	})...)

	params := openai.ChatCompletionNewParams{
		Messages: openai.F(msgs),
		Model:    openai.F(openai.ChatModel(req.Config.Model)),
	}
	if req.Config.Temperature > 0 {
		params.Temperature = openai.F(req.Config.Temperature)
	}
	if req.Config.TopP > 0 {
		params.TopP = openai.F(req.Config.TopP)
	}
	if req.Config.MaxTokens > 0 {
		params.MaxTokens = openai.F(req.Config.MaxTokens)
	}
	return params
}

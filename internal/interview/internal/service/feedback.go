package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ecodeclub/mockly/internal/ai"
	"github.com/ecodeclub/mockly/internal/interview/internal/domain"
	"github.com/lithammer/shortuuid/v4"
)

// ErrInvalidFeedback 评分结果解析失败。
// 这类失败不做兜底，宁可明确报错也不要编造一个分数
var ErrInvalidFeedback = errors.New("无法解析面试评分结果")

var jsonExpr = regexp.MustCompile(`(?s)\{.*\}`)

//go:generate mockgen -source=./feedback.go -destination=../../mocks/feedback.mock.go -package=interviewmocks -typed=true FeedbackService
type FeedbackService interface {
	Generate(ctx context.Context, sess domain.Session) (domain.Feedback, error)
}

type llmFeedbackService struct {
	aiSvc ai.LLMService
	cfg   ai.BizConfig
}

func NewFeedbackService(aiSvc ai.LLMService, cfg FeedbackConfig) FeedbackService {
	return &llmFeedbackService{
		aiSvc: aiSvc,
		cfg:   ai.BizConfig(cfg),
	}
}

func (s *llmFeedbackService) Generate(ctx context.Context, sess domain.Session) (domain.Feedback, error) {
	cfg := s.cfg
	cfg.SystemPrompt = feedbackSystemPrompt(sess.TargetRole(), sess.Level(), sess.Stack())
	resp, err := s.aiSvc.Invoke(ctx, ai.LLMRequest{
		Uid: sess.Uid,
		Tid: shortuuid.New(),
		Biz: ai.BizFeedback,
		Messages: []ai.Message{
			{Role: ai.RoleUser, Content: feedbackUserPrompt(sess.History)},
		},
		Config: cfg,
	})
	if err != nil {
		return domain.Feedback{}, err
	}
	feedback, err := parseFeedback(resp.Answer)
	if err != nil {
		return domain.Feedback{}, err
	}
	// 总分一律重新计算，不信模型自己给的
	feedback.NormalizeTotal()
	return feedback, nil
}

func parseFeedback(raw string) (domain.Feedback, error) {
	clean := strings.ReplaceAll(raw, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	if match := jsonExpr.FindString(clean); match != "" {
		clean = match
	}
	var feedback domain.Feedback
	if err := json.Unmarshal([]byte(clean), &feedback); err != nil {
		// 原始输出带上，排查的时候要用
		return domain.Feedback{}, fmt.Errorf("%w: %s, 原始输出: %s", ErrInvalidFeedback, err.Error(), raw)
	}
	return feedback, nil
}

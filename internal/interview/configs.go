package interview

import (
	"github.com/ecodeclub/mockly/internal/ai"
	"github.com/ecodeclub/mockly/internal/interview/internal/service"
	"github.com/gotomicro/ego/core/econf"
)

func InitConversationConfig() service.ConversationConfig {
	return service.ConversationConfig(loadBizConfig("interview.conversation", ai.BizConfig{
		Temperature: 0.8,
		MaxTokens:   200,
	}))
}

func InitQuestionConfig() service.QuestionConfig {
	return service.QuestionConfig(loadBizConfig("interview.question", ai.BizConfig{
		Temperature: 0.7,
		MaxTokens:   300,
	}))
}

func InitFeedbackConfig() service.FeedbackConfig {
	return service.FeedbackConfig(loadBizConfig("interview.feedback", ai.BizConfig{
		Temperature: 0.3,
		MaxTokens:   2000,
	}))
}

func loadBizConfig(key string, def ai.BizConfig) ai.BizConfig {
	cfg := def
	// 配置缺省就用默认值
	_ = econf.UnmarshalKey(key, &cfg)
	return cfg
}

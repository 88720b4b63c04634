package service

import "github.com/ecodeclub/mockly/internal/ai"

// 三类生成调用各有自己的模型参数，类型区分开方便依赖注入

// ConversationConfig 开场和信息收集阶段的生成配置
type ConversationConfig ai.BizConfig

// QuestionConfig 正式提问的生成配置
type QuestionConfig ai.BizConfig

// FeedbackConfig 评分生成配置，温度调低保证评估稳定
type FeedbackConfig ai.BizConfig

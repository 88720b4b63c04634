package startup

import (
	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/mockly/internal/ai"
	"github.com/ecodeclub/mockly/internal/interview/internal/event"
	"github.com/ecodeclub/mockly/internal/interview/internal/repository"
	"github.com/ecodeclub/mockly/internal/interview/internal/repository/cache"
	"github.com/ecodeclub/mockly/internal/interview/internal/repository/dao"
	"github.com/ecodeclub/mockly/internal/interview/internal/service"
	"github.com/ecodeclub/mockly/internal/interview/internal/web"
	"github.com/ecodeclub/mockly/internal/speech"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
)

// InitHandler 手工组装，方便测试里替换掉 LLM 和语音服务
func InitHandler(db *egorm.Component,
	ec ecache.Cache,
	q mq.MQ,
	aiSvc ai.LLMService,
	speechSvc speech.Service) (*web.Handler, error) {
	if err := dao.InitTables(db); err != nil {
		return nil, err
	}
	sessionRepo := repository.NewSessionRepository(cache.NewSessionECache(ec))
	completedRepo := repository.NewCompletedInterviewRepository(dao.NewGORMCompletedInterviewDAO(db))
	producer, err := event.NewInterviewCompletedProducer(q)
	if err != nil {
		return nil, err
	}
	feedbackSvc := service.NewFeedbackService(aiSvc, service.FeedbackConfig{})
	dialogueSvc := service.NewDialogueService(aiSvc, feedbackSvc,
		sessionRepo, completedRepo, producer,
		service.ConversationConfig{}, service.QuestionConfig{})
	return web.NewHandler(dialogueSvc, service.NewCompletedInterviewService(completedRepo), speechSvc), nil
}

//go:build wireinject

package interview

import (
	"sync"

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
	"github.com/google/wire"
	"gorm.io/gorm"
)

func InitModule(db *egorm.Component,
	ec ecache.Cache,
	q mq.MQ,
	aiModule *ai.Module,
	speechModule *speech.Module) (*Module, error) {
	wire.Build(
		service.NewDialogueService,
		service.NewFeedbackService,
		service.NewCompletedInterviewService,

		repository.NewSessionRepository,
		repository.NewCompletedInterviewRepository,
		cache.NewSessionECache,
		InitCompletedInterviewDAO,

		event.NewInterviewCompletedProducer,

		InitConversationConfig,
		InitQuestionConfig,
		InitFeedbackConfig,

		web.NewHandler,

		wire.Struct(new(Module), "*"),
		wire.FieldsOf(new(*ai.Module), "Svc"),
		wire.FieldsOf(new(*speech.Module), "Svc"),
	)
	return new(Module), nil
}

var daoOnce = sync.Once{}

func InitTableOnce(db *gorm.DB) {
	daoOnce.Do(func() {
		err := dao.InitTables(db)
		if err != nil {
			panic(err)
		}
	})
}

func InitCompletedInterviewDAO(db *egorm.Component) dao.CompletedInterviewDAO {
	InitTableOnce(db)
	return dao.NewGORMCompletedInterviewDAO(db)
}

//go:build wireinject

package ai

import (
	"sync"

	"github.com/ecodeclub/mockly/internal/ai/internal/repository"
	"github.com/ecodeclub/mockly/internal/ai/internal/repository/dao"
	"github.com/ecodeclub/mockly/internal/ai/internal/service/llm"
	"github.com/ecodeclub/mockly/internal/ai/internal/service/llm/handler/log"
	"github.com/ecodeclub/mockly/internal/ai/internal/service/llm/handler/record"
	"github.com/ecodeclub/mockly/internal/ai/internal/web"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
	"gorm.io/gorm"
)

func InitModule(db *egorm.Component) (*Module, error) {
	wire.Build(
		llm.NewLLMService,
		repository.NewLLMRecordRepo,
		InitLLMRecordDAO,

		log.NewHandler,
		record.NewHandlerBuilder,
		InitRetryHandlerBuilder,

		InitRootHandler,
		InitCommonHandlers,
		InitFacadeHandler,
		InitCerebras,
		InitZhipu,
		InitChatConfig,

		web.NewHandler,

		wire.Struct(new(Module), "*"),
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

func InitLLMRecordDAO(db *egorm.Component) dao.LLMRecordDAO {
	InitTableOnce(db)
	return dao.NewGORMLLMRecordDAO(db)
}

//go:build wireinject

package ioc

import (
	"github.com/ecodeclub/mockly/internal/ai"
	"github.com/ecodeclub/mockly/internal/interview"
	"github.com/ecodeclub/mockly/internal/room"
	"github.com/ecodeclub/mockly/internal/speech"
	"github.com/ecodeclub/mockly/internal/user"
	"github.com/google/wire"
)

var BaseSet = wire.NewSet(InitDB, InitCache, InitRedis, InitMQ)

func InitApp() (*App, error) {
	wire.Build(wire.Struct(new(App), "*"),
		BaseSet,
		InitSession,
		ai.InitModule,
		wire.FieldsOf(new(*ai.Module), "Hdl"),
		interview.InitModule,
		wire.FieldsOf(new(*interview.Module), "Hdl"),
		speech.InitModule,
		wire.FieldsOf(new(*speech.Module), "Hdl"),
		room.InitModule,
		wire.FieldsOf(new(*room.Module), "Hdl"),
		user.InitModule,
		wire.FieldsOf(new(*user.Module), "Hdl"),
		initGinxServer)
	return new(App), nil
}

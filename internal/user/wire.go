//go:build wireinject

package user

import (
	"github.com/ecodeclub/mockly/internal/user/internal/web"
	"github.com/google/wire"
	"github.com/gotomicro/ego/core/econf"
)

func InitModule() *Module {
	wire.Build(
		initHandler,
		wire.Struct(new(Module), "*"),
	)
	return new(Module)
}

func initHandler() *web.Handler {
	return web.NewHandler(econf.GetString("session.cookie.domain"))
}

//go:build wireinject

package room

import (
	"github.com/ecodeclub/mockly/internal/room/internal/service"
	"github.com/ecodeclub/mockly/internal/room/internal/web"
	"github.com/google/wire"
	"github.com/gotomicro/ego/core/econf"
)

func InitModule() *Module {
	wire.Build(
		initService,
		web.NewHandler,
		wire.Struct(new(Module), "*"),
	)
	return new(Module)
}

func initService() service.TokenService {
	type Config struct {
		APIKey    string `yaml:"apikey"`
		APISecret string `yaml:"apisecret"`
		WsURL     string `yaml:"wsUrl"`
	}
	var cfg Config
	// 密钥可以为空，此时签发请求返回未配置错误
	_ = econf.UnmarshalKey("livekit", &cfg)
	return service.NewTokenService(cfg.APIKey, cfg.APISecret, cfg.WsURL)
}

//go:build wireinject

package speech

import (
	"net/http"
	"time"

	"github.com/ecodeclub/mockly/internal/speech/internal/service"
	"github.com/ecodeclub/mockly/internal/speech/internal/web"
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

func initService() service.Service {
	type Config struct {
		BaseURL string `yaml:"baseUrl"`
		APIKey  string `yaml:"apikey"`
	}
	var cfg Config
	// apikey 可以为空，此时 TTS/STT 返回未配置错误，前端降级
	_ = econf.UnmarshalKey("cartesia", &cfg)
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.cartesia.ai"
	}
	return service.NewCartesiaService(cfg.BaseURL, cfg.APIKey, &http.Client{
		Timeout: 30 * time.Second,
	})
}

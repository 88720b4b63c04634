package ioc

import (
	"net/http"
	"strings"

	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/mockly/internal/ai"
	"github.com/ecodeclub/mockly/internal/interview"
	"github.com/ecodeclub/mockly/internal/pkg/middleware"
	"github.com/ecodeclub/mockly/internal/room"
	"github.com/ecodeclub/mockly/internal/speech"
	"github.com/ecodeclub/mockly/internal/user"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/server/egin"
)

func initGinxServer(sp session.Provider,
	ivhdl *interview.Handler,
	aihdl *ai.Handler,
	sphdl *speech.Handler,
	rmhdl *room.Handler,
	uhdl *user.Handler,
) *egin.Component {
	session.SetDefaultProvider(sp)
	res := egin.Load("web").Build()
	res.Use(middleware.NewMetricsBuilder().Build())
	res.Use(cors.New(cors.Config{
		ExposeHeaders:    []string{"X-Refresh-Token", "X-Access-Token"},
		AllowCredentials: true,
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowOriginFunc: func(origin string) bool {
			if strings.HasPrefix(origin, "http://localhost") {
				return true
			}
			// 只允许我的域名过来的
			return strings.Contains(origin, "mockly.dev")
		},
	}))
	res.GET("/hello", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "hello, world!")
	})
	uhdl.PublicRoutes(res.Engine)
	// 登录校验
	res.Use(session.CheckLoginMiddleware())
	uhdl.PrivateRoutes(res.Engine)
	ivhdl.PrivateRoutes(res.Engine)
	aihdl.PrivateRoutes(res.Engine)
	sphdl.PrivateRoutes(res.Engine)
	rmhdl.PrivateRoutes(res.Engine)
	return res
}

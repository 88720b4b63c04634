package room

import (
	"github.com/ecodeclub/mockly/internal/room/internal/web"
)

type Module struct {
	Svc TokenService
	Hdl *web.Handler
}

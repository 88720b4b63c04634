package user

import (
	"github.com/ecodeclub/mockly/internal/user/internal/web"
)

type Module struct {
	Hdl *web.Handler
}

package speech

import (
	"github.com/ecodeclub/mockly/internal/speech/internal/web"
)

type Module struct {
	Svc Service
	Hdl *web.Handler
}

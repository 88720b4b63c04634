package interview

import "github.com/ecodeclub/mockly/internal/interview/internal/web"

type Module struct {
	Svc DialogueService
	Hdl *web.Handler
}

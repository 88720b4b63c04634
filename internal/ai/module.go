package ai

import "github.com/ecodeclub/mockly/internal/ai/internal/web"

type Module struct {
	Svc LLMService
	Hdl *web.Handler
}

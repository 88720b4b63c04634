package ai

import (
	"github.com/ecodeclub/mockly/internal/ai/internal/domain"
	"github.com/ecodeclub/mockly/internal/ai/internal/service/llm"
	"github.com/ecodeclub/mockly/internal/ai/internal/web"
)

type LLMRequest = domain.LLMRequest
type LLMResponse = domain.LLMResponse
type Message = domain.Message
type BizConfig = domain.BizConfig
type VendorError = domain.VendorError
type LLMService = llm.Service
type Handler = web.Handler

const (
	RoleSystem    = domain.RoleSystem
	RoleUser      = domain.RoleUser
	RoleAssistant = domain.RoleAssistant

	BizChat        = domain.BizChat
	BizGreeting    = domain.BizGreeting
	BizPreliminary = domain.BizPreliminary
	BizQuestion    = domain.BizQuestion
	BizFeedback    = domain.BizFeedback
)

package speech

import (
	"github.com/ecodeclub/mockly/internal/speech/internal/domain"
	"github.com/ecodeclub/mockly/internal/speech/internal/service"
	"github.com/ecodeclub/mockly/internal/speech/internal/web"
)

type Service = service.Service

type Handler = web.Handler

type SynthesisRequest = domain.SynthesisRequest
type Synthesis = domain.Synthesis
type Transcription = domain.Transcription
type Word = domain.Word

const (
	EngineCartesia = domain.EngineCartesia
	EngineBrowser  = domain.EngineBrowser
)

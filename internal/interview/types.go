package interview

import (
	"github.com/ecodeclub/mockly/internal/interview/internal/domain"
	"github.com/ecodeclub/mockly/internal/interview/internal/service"
	"github.com/ecodeclub/mockly/internal/interview/internal/web"
)

type Session = domain.Session
type CandidateInfo = domain.CandidateInfo
type Message = domain.Message
type Feedback = domain.Feedback
type CompletedInterview = domain.CompletedInterview
type Phase = domain.Phase

type DialogueService = service.DialogueService
type CompletedInterviewService = service.CompletedInterviewService
type StartParams = service.StartParams
type Reply = service.Reply
type Handler = web.Handler

const (
	PhaseGreeting    = domain.PhaseGreeting
	PhasePreliminary = domain.PhasePreliminary
	PhaseInterview   = domain.PhaseInterview
	PhaseFeedback    = domain.PhaseFeedback
)

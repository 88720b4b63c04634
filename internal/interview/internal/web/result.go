package web

import (
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/mockly/internal/interview/internal/errs"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
	invalidInputResult = ginx.Result{
		Code: errs.InvalidInput.Code,
		Msg:  errs.InvalidInput.Msg,
	}
	sessionNotFoundResult = ginx.Result{
		Code: errs.SessionNotFound.Code,
		Msg:  errs.SessionNotFound.Msg,
	}
	interviewNotFoundResult = ginx.Result{
		Code: errs.InterviewNotFound.Code,
		Msg:  errs.InterviewNotFound.Msg,
	}
	answerInFlightResult = ginx.Result{
		Code: errs.AnswerInFlight.Code,
		Msg:  errs.AnswerInFlight.Msg,
	}
	feedbackFailedResult = ginx.Result{
		Code: errs.FeedbackFailed.Code,
		Msg:  errs.FeedbackFailed.Msg,
	}
)

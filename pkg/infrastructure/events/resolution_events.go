package events

import (
	"github.com/vsinha/wavecalc/pkg/application/dto"
)

const (
	ResolutionStartedEvent  = "resolution.started"
	CandidateAppliedEvent   = "candidate.applied"
	CandidateFailedEvent    = "candidate.failed"
	QuantityExhaustedEvent  = "quantity.exhausted"
	ResolutionFinishedEvent = "resolution.finished"
)

type ResolutionStarted struct {
	Known []string `json:"known"`
}

type CandidateApplied struct {
	Attempt dto.Attempt `json:"attempt"`
}

type CandidateFailed struct {
	Attempt dto.Attempt `json:"attempt"`
}

type QuantityExhausted struct {
	Attempt dto.Attempt `json:"attempt"`
}

type ResolutionFinished struct {
	Derived    []string `json:"derived"`
	Unresolved []string `json:"unresolved"`
}

func NewResolutionStartedEvent(runID string, known []string) Event {
	return NewEvent(ResolutionStartedEvent, runID, ResolutionStarted{Known: known})
}

// NewAttemptEvent maps an attempt to the event type matching its outcome
func NewAttemptEvent(runID string, attempt dto.Attempt) Event {
	switch attempt.Outcome {
	case dto.Applied:
		return NewEvent(CandidateAppliedEvent, runID, CandidateApplied{Attempt: attempt})
	case dto.Failed:
		return NewEvent(CandidateFailedEvent, runID, CandidateFailed{Attempt: attempt})
	default:
		return NewEvent(QuantityExhaustedEvent, runID, QuantityExhausted{Attempt: attempt})
	}
}

func NewResolutionFinishedEvent(runID string, derived, unresolved []string) Event {
	return NewEvent(ResolutionFinishedEvent, runID, ResolutionFinished{
		Derived:    derived,
		Unresolved: unresolved,
	})
}

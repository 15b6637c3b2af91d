// Package query owns the search state machine.
//
// A Controller holds the single QueryState: the raw input, the phase, and
// either an error message or a result, never both. Submissions move
// Idle/Success/Failed to Loading, issue exactly one backend request, and
// move Loading to Success or Failed exactly once. While Loading, further
// submissions are rejected rather than queued.
//
//	Idle    --submit(valid)--> Loading
//	Loading --success--------> Success
//	Loading --any failure----> Failed
//	Success --submit(valid)--> Loading
//	Failed  --submit(valid)--> Loading
//
// Rejected submissions (blank input, or a search already loading) are
// no-ops: no transition, no request, no message.
package query

import (
	"fmt"

	"github.com/Iron-Ham/moviefinder/internal/search"
)

// Phase is the coarse state of the controller.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseFailed
)

// String returns the lower-case phase name used in logs and events.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// State is a value snapshot of the controller. Err is set only in
// PhaseFailed and Result only in PhaseSuccess.
type State struct {
	Input  string
	Phase  Phase
	Err    string
	Result *search.Result
	// RequestID identifies the most recent accepted submission.
	RequestID string
}

// HasError reports whether an error message is present.
func (s State) HasError() bool { return s.Err != "" }

// HasResult reports whether a result is present.
func (s State) HasResult() bool { return s.Result != nil }

// CanSubmit reports whether a submission would be accepted right now.
func (s State) CanSubmit() bool {
	return s.Phase != PhaseLoading && !isBlank(s.Input)
}

// DefaultFailureMessage is shown for every backend failure when no
// endpoint-specific message is configured.
const DefaultFailureMessage = "Failed to search. Make sure the movie finder backend is running."

// FailureMessage returns the fixed failure text naming the backend host.
// It never includes error details.
func FailureMessage(host string) string {
	if host == "" {
		return DefaultFailureMessage
	}
	return fmt.Sprintf("Failed to search. Make sure the movie finder backend is running at %s.", host)
}

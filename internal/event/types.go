// Package event defines event types for decoupling components in moviefinder.
// These events let the query controller report what happened without knowing
// whether a TUI, a CLI command, a logger or a metrics collector is listening.
package event

import "time"

// Event type names.
const (
	TypePhaseChanged       = "phase.changed"
	TypeSearchStarted      = "search.started"
	TypeSearchCompleted    = "search.completed"
	TypeSubmissionRejected = "submission.rejected"
)

// Event is the interface that all events must implement.
// It provides a common way to identify and timestamp events.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "search.started", "phase.changed")
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// -----------------------------------------------------------------------------
// State Events
// -----------------------------------------------------------------------------

// PhaseChangedEvent is emitted exactly once per query phase transition,
// after the transition is visible to readers.
type PhaseChangedEvent struct {
	baseEvent
	RequestID string // Search that caused the transition
	From      string // Phase before the transition
	To        string // Phase after the transition
	// Snapshot is the post-transition state. Publishers put a value copy
	// here so handlers never observe later mutations.
	Snapshot any
}

// NewPhaseChangedEvent creates a PhaseChangedEvent.
func NewPhaseChangedEvent(requestID, from, to string, snapshot any) PhaseChangedEvent {
	return PhaseChangedEvent{
		baseEvent: newBaseEvent(TypePhaseChanged),
		RequestID: requestID,
		From:      from,
		To:        to,
		Snapshot:  snapshot,
	}
}

// -----------------------------------------------------------------------------
// Search Events
// -----------------------------------------------------------------------------

// SearchStartedEvent is emitted when a submission is accepted and its
// request is about to be sent.
type SearchStartedEvent struct {
	baseEvent
	RequestID string
	QueryLen  int // Length of the raw query; the text itself stays out of events
}

// NewSearchStartedEvent creates a SearchStartedEvent.
func NewSearchStartedEvent(requestID string, queryLen int) SearchStartedEvent {
	return SearchStartedEvent{
		baseEvent: newBaseEvent(TypeSearchStarted),
		RequestID: requestID,
		QueryLen:  queryLen,
	}
}

// SearchCompletedEvent is emitted when a search leaves the loading phase.
type SearchCompletedEvent struct {
	baseEvent
	RequestID  string
	Success    bool
	MovieCount int           // Number of movies on success
	ErrorKind  string        // Backend error kind on failure ("unreachable", "rejected", "malformed")
	Duration   time.Duration // Time from request start to completion
}

// NewSearchCompletedEvent creates a SearchCompletedEvent.
func NewSearchCompletedEvent(requestID string, success bool, movieCount int, errorKind string, duration time.Duration) SearchCompletedEvent {
	return SearchCompletedEvent{
		baseEvent:  newBaseEvent(TypeSearchCompleted),
		RequestID:  requestID,
		Success:    success,
		MovieCount: movieCount,
		ErrorKind:  errorKind,
		Duration:   duration,
	}
}

// SubmissionRejectedEvent is emitted when a submit is refused without a
// transition. It is diagnostic only; nothing is shown to the user.
type SubmissionRejectedEvent struct {
	baseEvent
	Reason string // "empty_input" or "in_flight"
}

// NewSubmissionRejectedEvent creates a SubmissionRejectedEvent.
func NewSubmissionRejectedEvent(reason string) SubmissionRejectedEvent {
	return SubmissionRejectedEvent{
		baseEvent: newBaseEvent(TypeSubmissionRejected),
		Reason:    reason,
	}
}

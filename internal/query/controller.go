package query

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/panics"

	"github.com/Iron-Ham/moviefinder/internal/errors"
	"github.com/Iron-Ham/moviefinder/internal/event"
	"github.com/Iron-Ham/moviefinder/internal/logging"
	"github.com/Iron-Ham/moviefinder/internal/search"
)

// Rejection reasons carried by event.SubmissionRejectedEvent.
const (
	ReasonEmptyInput = "empty_input"
	ReasonInFlight   = "in_flight"
)

// Pending is an accepted submission waiting for Resolve.
type Pending struct {
	RequestID string
	// Query is the raw input at submission time, untrimmed.
	Query   string
	started time.Time
}

// Controller owns the query state. It is safe for concurrent use.
//
// Every phase transition publishes one event.PhaseChangedEvent on the bus,
// carrying a State snapshot. Events are published in transition order.
// Handlers run synchronously and must not call Begin, Resolve or Submit.
type Controller struct {
	mu       sync.Mutex
	state    State
	inflight string // request ID while Loading

	// notifyMu is held across a transition and its publication so events
	// keep transition order. Lock order: notifyMu, then mu.
	notifyMu sync.Mutex

	searcher       search.Searcher
	bus            *event.Bus
	logger         *logging.Logger
	failureMessage string
	newID          func() string
	now            func() time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithBus sets the bus that receives state events.
func WithBus(bus *event.Bus) Option {
	return func(c *Controller) {
		c.bus = bus
	}
}

// WithLogger sets the logger.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithFailureMessage sets the fixed message shown for every failure.
func WithFailureMessage(msg string) Option {
	return func(c *Controller) {
		c.failureMessage = msg
	}
}

// WithIDGenerator replaces the request ID generator.
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) {
		c.newID = fn
	}
}

// NewController creates a controller in PhaseIdle.
func NewController(searcher search.Searcher, opts ...Option) *Controller {
	c := &Controller{
		searcher:       searcher,
		logger:         logging.NopLogger(),
		failureMessage: DefaultFailureMessage,
		newID:          uuid.NewString,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.bus == nil {
		c.bus = event.NewBus(c.logger)
	}
	c.logger = c.logger.WithComponent("query")
	return c
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetInputText stores text as typed. It is allowed in every phase and has
// no effect on a search already in flight.
func (c *Controller) SetInputText(text string) {
	c.mu.Lock()
	c.state.Input = text
	c.mu.Unlock()
}

// Submit accepts the current input and resolves it synchronously. A
// rejected submission returns the unchanged state and an error for which
// errors.IsRejection is true.
func (c *Controller) Submit(ctx context.Context) (State, error) {
	p, err := c.Begin()
	if err != nil {
		return c.Snapshot(), err
	}
	return c.Resolve(ctx, p), nil
}

// Begin validates and accepts a submission: it clears any previous error
// or result, enters PhaseLoading and returns the pending search. The caller
// must pass it to Resolve exactly once.
//
// Blank input and an in-flight search are rejected with no transition.
func (c *Controller) Begin() (*Pending, error) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()

	var reason string
	var cause error
	switch {
	case c.state.Phase == PhaseLoading:
		reason, cause = ReasonInFlight, errors.ErrSearchInFlight
	case isBlank(c.state.Input):
		reason, cause = ReasonEmptyInput, errors.ErrEmptyQuery
	}
	if cause != nil {
		c.mu.Unlock()
		c.logger.Debug("submission rejected", "reason", reason)
		c.bus.Publish(event.NewSubmissionRejectedEvent(reason))
		return nil, errors.NewValidationError("submission rejected").WithField("input").WithCause(cause)
	}

	p := &Pending{
		RequestID: c.newID(),
		Query:     c.state.Input,
		started:   c.now(),
	}
	from := c.state.Phase
	c.state.Phase = PhaseLoading
	c.state.Err = ""
	c.state.Result = nil
	c.state.RequestID = p.RequestID
	c.inflight = p.RequestID
	snap := c.state
	c.mu.Unlock()

	c.logger.WithRequest(p.RequestID).Info("search submitted", "query_len", len(p.Query))
	c.bus.Publish(event.NewPhaseChangedEvent(p.RequestID, from.String(), PhaseLoading.String(), snap))
	c.bus.Publish(event.NewSearchStartedEvent(p.RequestID, len(p.Query)))

	return p, nil
}

// Resolve issues the single request for p and applies its outcome. It
// always leaves PhaseLoading for the current submission, whatever the
// searcher does, including panicking. A p that is not the current
// in-flight search is ignored.
func (c *Controller) Resolve(ctx context.Context, p *Pending) State {
	if p == nil {
		return c.Snapshot()
	}
	c.mu.Lock()
	current := c.inflight == p.RequestID
	c.mu.Unlock()
	if !current {
		c.logger.WithRequest(p.RequestID).Warn("ignoring stale pending search")
		return c.Snapshot()
	}

	result, err := c.search(ctx, p)
	return c.complete(p, result, err)
}

func (c *Controller) search(ctx context.Context, p *Pending) (result *search.Result, err error) {
	var pc panics.Catcher
	pc.Try(func() {
		result, err = c.searcher.Search(ctx, p.RequestID, p.Query)
	})
	if r := pc.Recovered(); r != nil {
		return nil, errors.NewBackendError(errors.KindUnreachable, "searcher panicked", r.AsError()).
			WithRequestID(p.RequestID).
			WithSeverity(errors.SeverityCritical)
	}
	if err == nil && result == nil {
		err = errors.NewBackendError(errors.KindMalformed, "searcher returned no result", nil).
			WithRequestID(p.RequestID)
	}
	return result, err
}

func (c *Controller) complete(p *Pending, result *search.Result, err error) State {
	log := c.logger.WithRequest(p.RequestID)
	elapsed := c.now().Sub(p.started)

	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	if c.state.Phase != PhaseLoading || c.inflight != p.RequestID {
		snap := c.state
		c.mu.Unlock()
		log.Warn("ignoring stale search completion", "phase", snap.Phase.String())
		return snap
	}

	c.inflight = ""
	if err != nil {
		c.state.Phase = PhaseFailed
		c.state.Err = c.failureMessage
		c.state.Result = nil
	} else {
		c.state.Phase = PhaseSuccess
		c.state.Err = ""
		c.state.Result = result
	}
	snap := c.state
	c.mu.Unlock()

	var kind string
	if err != nil {
		kind = "unknown"
		if k, ok := errors.KindOf(err); ok {
			kind = k.String()
		}
		severity := errors.GetSeverity(err)
		attrs := []any{
			"kind", kind,
			"severity", severity.String(),
			"retryable", errors.IsRetryable(err),
			"elapsed_ms", elapsed.Milliseconds(),
			"error", err.Error(),
		}
		// Transport failures carry SeverityWarning; backend faults and
		// searcher panics are errors.
		if severity >= errors.SeverityError {
			log.Error("search failed", attrs...)
		} else {
			log.Warn("search failed", attrs...)
		}
	} else {
		log.Info("search succeeded",
			"movies", len(result.Movies),
			"has_analysis", result.Analysis != "",
			"elapsed_ms", elapsed.Milliseconds(),
		)
	}

	movies := 0
	if err == nil {
		movies = len(result.Movies)
	}
	c.bus.Publish(event.NewPhaseChangedEvent(p.RequestID, PhaseLoading.String(), snap.Phase.String(), snap))
	c.bus.Publish(event.NewSearchCompletedEvent(p.RequestID, err == nil, movies, kind, elapsed))

	return snap
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

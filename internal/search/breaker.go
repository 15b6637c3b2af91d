package search

import (
	"context"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/Iron-Ham/moviefinder/internal/errors"
	"github.com/Iron-Ham/moviefinder/internal/logging"
)

// Compile-time check.
var _ Searcher = (*BreakerSearcher)(nil)

// BreakerSettings configures a BreakerSearcher.
type BreakerSettings struct {
	// MaxFailures is the number of consecutive transport failures that opens the breaker.
	MaxFailures uint32
	// OpenTimeout is how long the breaker stays open before one trial request.
	OpenTimeout time.Duration
	// OnStateChange, if set, is called on every breaker transition.
	OnStateChange func(from, to string)
}

// BreakerSearcher wraps a Searcher with a circuit breaker. While open,
// searches fail immediately with an unreachable backend error wrapping
// errors.ErrCircuitOpen. Only retryable failures (transport errors, 5xx,
// 429) count against the backend; malformed bodies and 4xx do not.
type BreakerSearcher struct {
	next   Searcher
	cb     *gobreaker.CircuitBreaker[*Result]
	logger *logging.Logger
}

// NewBreakerSearcher wraps next with a circuit breaker.
func NewBreakerSearcher(next Searcher, s BreakerSettings, logger *logging.Logger) *BreakerSearcher {
	if logger == nil {
		logger = logging.NopLogger()
	}
	if s.MaxFailures == 0 {
		s.MaxFailures = 5
	}
	b := &BreakerSearcher{
		next:   next,
		logger: logger.WithComponent("breaker"),
	}

	b.cb = gobreaker.NewCircuitBreaker[*Result](gobreaker.Settings{
		Name:        "search-backend",
		MaxRequests: 1,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.MaxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !errors.IsRetryable(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			b.logger.Warn("circuit breaker state change",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
			if s.OnStateChange != nil {
				s.OnStateChange(from.String(), to.String())
			}
		},
	})

	return b
}

// Search runs the wrapped search through the breaker.
func (b *BreakerSearcher) Search(ctx context.Context, requestID, query string) (*Result, error) {
	result, err := b.cb.Execute(func() (*Result, error) {
		return b.next.Search(ctx, requestID, query)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, errors.NewBackendError(errors.KindUnreachable, "search refused", errors.Join(errors.ErrCircuitOpen, err)).
				WithRequestID(requestID).
				WithSeverity(errors.SeverityWarning)
		}
		return nil, err
	}
	return result, nil
}

// State returns the breaker state name: "closed", "half-open" or "open".
func (b *BreakerSearcher) State() string {
	return b.cb.State().String()
}

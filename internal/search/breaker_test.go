package search

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iron-Ham/moviefinder/internal/errors"
)

// stubSearcher returns queued errors in order, then successes.
type stubSearcher struct {
	mu    sync.Mutex
	errs  []error
	calls int
}

func (s *stubSearcher) Search(ctx context.Context, requestID, query string) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		return nil, err
	}
	return &Result{Movies: []MovieCard{}}, nil
}

func unreachable() error {
	return errors.NewBackendError(errors.KindUnreachable, "send request", errors.New("connection refused"))
}

func TestBreakerSearcher_OpensAfterConsecutiveFailures(t *testing.T) {
	stub := &stubSearcher{errs: []error{unreachable(), unreachable(), unreachable()}}

	var transitions []string
	b := NewBreakerSearcher(stub, BreakerSettings{
		MaxFailures:   2,
		OpenTimeout:   time.Hour,
		OnStateChange: func(from, to string) { transitions = append(transitions, from+"->"+to) },
	}, nil)

	for range 2 {
		_, err := b.Search(context.Background(), "req", "q")
		require.ErrorIs(t, err, errors.ErrBackendUnreachable)
	}
	assert.Equal(t, "open", b.State())
	assert.Equal(t, []string{"closed->open"}, transitions)

	_, err := b.Search(context.Background(), "req-3", "q")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrCircuitOpen)
	assert.ErrorIs(t, err, errors.ErrBackendUnreachable)
	assert.Equal(t, 2, stub.calls, "open breaker must not call the backend")

	var backendErr *errors.BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, "req-3", backendErr.RequestID)
	assert.Equal(t, errors.SeverityWarning, errors.GetSeverity(err))
}

func TestBreakerSearcher_NonRetryableFailuresDoNotTrip(t *testing.T) {
	malformed := errors.NewBackendError(errors.KindMalformed, "decode response", nil)
	badRequest := errors.NewBackendError(errors.KindRejected, "search failed", nil).WithStatus(400)
	stub := &stubSearcher{errs: []error{malformed, badRequest, malformed}}

	b := NewBreakerSearcher(stub, BreakerSettings{MaxFailures: 1, OpenTimeout: time.Hour}, nil)

	for range 3 {
		_, err := b.Search(context.Background(), "", "q")
		require.Error(t, err)
		assert.NotErrorIs(t, err, errors.ErrCircuitOpen)
	}
	assert.Equal(t, "closed", b.State())
}

func TestBreakerSearcher_HalfOpenRecovers(t *testing.T) {
	stub := &stubSearcher{errs: []error{unreachable()}}
	b := NewBreakerSearcher(stub, BreakerSettings{MaxFailures: 1, OpenTimeout: 20 * time.Millisecond}, nil)

	_, err := b.Search(context.Background(), "", "q")
	require.Error(t, err)
	require.Equal(t, "open", b.State())

	require.Eventually(t, func() bool { return b.State() == "half-open" }, time.Second, 5*time.Millisecond)

	result, err := b.Search(context.Background(), "", "q")
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "closed", b.State())
}

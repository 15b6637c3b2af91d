package msg

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/moviefinder/internal/errors"
	"github.com/Iron-Ham/moviefinder/internal/query"
	"github.com/Iron-Ham/moviefinder/internal/search"
)

// Resolver completes an accepted submission.
type Resolver interface {
	Resolve(ctx context.Context, p *query.Pending) query.State
}

// HealthChecker probes the backend.
type HealthChecker interface {
	Health(ctx context.Context) (*search.HealthStatus, error)
}

// ResolveSearch returns a command that runs the single request for p off
// the event loop and reports the resulting state.
func ResolveSearch(ctx context.Context, r Resolver, p *query.Pending) tea.Cmd {
	return func() tea.Msg {
		return SearchResolvedMsg{State: r.Resolve(ctx, p)}
	}
}

// CheckHealth returns a command that probes the backend once. A nil
// checker yields no command.
func CheckHealth(ctx context.Context, hc HealthChecker, timeout time.Duration) tea.Cmd {
	if hc == nil {
		return nil
	}
	return func() tea.Msg {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		status, err := hc.Health(ctx)
		if err == nil && status == nil {
			status = &search.HealthStatus{}
		}
		switch {
		case err == nil && status.Healthy():
			return HealthMsg{State: HealthHealthy, Message: status.Message}
		case err == nil:
			return HealthMsg{State: HealthUnhealthy, Message: status.Message}
		case errors.Is(err, errors.ErrBackendUnreachable):
			return HealthMsg{State: HealthUnreachable, Err: err}
		default:
			return HealthMsg{State: HealthUnhealthy, Err: err}
		}
	}
}

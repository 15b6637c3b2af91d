package msg

import "github.com/Iron-Ham/moviefinder/internal/query"

// SearchResolvedMsg carries the controller state after a search left
// the loading phase.
type SearchResolvedMsg struct {
	State query.State
}

// Backend health states reported by HealthMsg.
const (
	HealthUnknown     = "unknown"
	HealthHealthy     = "healthy"
	HealthUnhealthy   = "unhealthy"
	HealthUnreachable = "unreachable"
)

// HealthMsg reports the result of a backend health probe.
type HealthMsg struct {
	State   string
	Message string
	Err     error
}

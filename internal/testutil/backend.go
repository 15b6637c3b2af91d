// Package testutil provides testing utilities for moviefinder tests.
package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// Canned search bodies.
const (
	// ScenarioA has an analysis and one card without a rating.
	ScenarioA = `{"analysis":"Warm, low-stakes picks.","movies":[{"title":"Movie1","imdbRating":"N/A","genre":"Comedy,Romance"}],"query":"cozy romantic comedy"}`
	// NoMovies is a successful search with an empty movie list.
	NoMovies = `{"analysis":"Nothing fits.","movies":[]}`
	// Healthy is the health endpoint body of a running backend.
	Healthy = `{"status":"healthy","message":"Movie service is running"}`
)

// Backend is a fake recommendation service serving /api/search and
// /api/health. It records every search body it receives.
type Backend struct {
	URL string

	mu           sync.Mutex
	searchBody   string
	searchStatus int
	healthBody   string
	healthStatus int
	gate         chan struct{}
	bodies       []string
}

// NewBackend starts a Backend that answers searches with ScenarioA and
// reports itself healthy. It is closed when the test completes.
func NewBackend(t *testing.T) *Backend {
	t.Helper()

	b := &Backend{
		searchBody: ScenarioA,
		healthBody: Healthy,
	}
	srv := httptest.NewServer(b)
	t.Cleanup(func() {
		b.Release()
		srv.Close()
	})
	b.URL = srv.URL
	return b
}

// UnreachableURL returns the URL of a server that has already been shut
// down, so connecting to it fails.
func UnreachableURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url
}

// Host returns the host:port part of URL.
func (b *Backend) Host() string {
	return strings.TrimPrefix(b.URL, "http://")
}

// ReplySearch sets the status and body returned for searches.
func (b *Backend) ReplySearch(status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.searchStatus = status
	b.searchBody = body
}

// ReplyHealth sets the status and body returned by the health endpoint.
func (b *Backend) ReplyHealth(status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.healthStatus = status
	b.healthBody = body
}

// Hold makes searches block after they are recorded until Release.
func (b *Backend) Hold() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.gate == nil {
		b.gate = make(chan struct{})
	}
}

// Release unblocks held searches.
func (b *Backend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.gate != nil {
		close(b.gate)
		b.gate = nil
	}
}

// Requests returns the search bodies received so far.
func (b *Backend) Requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.bodies...)
}

// ServeHTTP implements http.Handler.
func (b *Backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/search":
		b.serveSearch(w, r)
	case "/api/health":
		b.mu.Lock()
		status, body := b.healthStatus, b.healthBody
		b.mu.Unlock()
		reply(w, status, body)
	default:
		http.NotFound(w, r)
	}
}

func (b *Backend) serveSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	data, _ := io.ReadAll(r.Body)

	b.mu.Lock()
	b.bodies = append(b.bodies, string(data))
	gate := b.gate
	status, body := b.searchStatus, b.searchBody
	b.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-r.Context().Done():
			return
		}
	}
	reply(w, status, body)
}

func reply(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_, _ = io.WriteString(w, body)
}

// Package search is the transport to the movie recommendation backend.
//
// The backend accepts POST {"query": "..."} and answers with an optional AI
// analysis plus an ordered list of movie candidates. Every failure is
// returned as an *errors.BackendError so callers can classify it without
// inspecting transport details.
package search

import (
	"context"
	"strconv"
)

// NotAvailable is the backend's marker for a field it has no value for.
const NotAvailable = "N/A"

// Searcher sends one query to the backend.
type Searcher interface {
	// Search issues exactly one request for query. requestID is sent as
	// X-Request-ID for log correlation on both ends.
	Search(ctx context.Context, requestID, query string) (*Result, error)
}

// Request is the search request body. Query is sent exactly as typed,
// untrimmed.
type Request struct {
	Query string `json:"query"`
}

// Result is a parsed successful search response. It is built once from a
// single response body and not modified afterwards.
type Result struct {
	// Analysis is the backend's free-text commentary; empty when absent.
	Analysis string `json:"analysis,omitempty"`
	// Movies is in relevance order as returned. It is never nil for a
	// parsed result, but may be empty.
	Movies []MovieCard `json:"movies"`
	// Query is the backend's echo of the request query.
	Query string `json:"query,omitempty"`
}

// MovieCard is one candidate. Every field may be empty or NotAvailable.
type MovieCard struct {
	IMDbID     string `json:"imdbID,omitempty"`
	Title      string `json:"title,omitempty"`
	Year       string `json:"year,omitempty"`
	Rated      string `json:"rated,omitempty"`
	Runtime    string `json:"runtime,omitempty"`
	Genre      string `json:"genre,omitempty"`
	Language   string `json:"language,omitempty"`
	Director   string `json:"director,omitempty"`
	Actors     string `json:"actors,omitempty"`
	Plot       string `json:"plot,omitempty"`
	Poster     string `json:"poster,omitempty"`
	IMDbRating string `json:"imdbRating,omitempty"`
}

// Key identifies the card within its result: the IMDb ID when known,
// otherwise the position. It is for list keys only.
func (m MovieCard) Key(index int) string {
	if m.IMDbID != "" && m.IMDbID != NotAvailable {
		return m.IMDbID
	}
	return "#" + strconv.Itoa(index)
}

// HealthStatus is the body of the backend health endpoint.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Healthy reports whether the backend described itself as healthy.
func (h HealthStatus) Healthy() bool {
	return h.Status == "healthy"
}

// wireResult distinguishes a missing or null movies field from an empty list.
type wireResult struct {
	Analysis *string      `json:"analysis"`
	Movies   *[]MovieCard `json:"movies"`
	Query    string       `json:"query"`
}

// errorBody is what the backend sends with a non-success status.
type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

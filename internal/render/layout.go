// Package render turns a query.State into a Layout: the declarative
// description of what the screen shows. Build is pure; drawing the layout
// with terminal styles is the tui/view package's job.
package render

import (
	"strings"

	"github.com/Iron-Ham/moviefinder/internal/query"
	"github.com/Iron-Ham/moviefinder/internal/search"
)

// Fixed screen copy.
const (
	Title         = "AI Movie Finder"
	Subtitle      = "Powered by Groq AI - Describe what you want to watch"
	Placeholder   = "e.g., 'A mind-bending sci-fi thriller like Inception' or 'Cozy romantic comedy from the 90s'"
	AnalysisTitle = "AI Analysis"
	NoResultsText = "No movies found. Try a different search!"
	SubmitLabel   = "Find Movies"
	BusyLabel     = "Searching..."
	DirectorLabel = "Director:"
)

// MaxGenres is the number of genre tags shown per card.
const MaxGenres = 3

// Layout describes one frame. Zero-valued fields are not shown.
type Layout struct {
	// Busy shows the progress indicator in place of the submit label.
	Busy          bool
	InputDisabled bool
	SubmitEnabled bool

	Error     string
	Analysis  string
	Cards     []Card
	NoResults bool
}

// Card is one movie as displayed. Fields holding the "N/A" sentinel or an
// empty value are left empty.
type Card struct {
	// Key is the imdbID, or the positional index when there is none.
	Key      string
	Title    string
	Poster   string
	Rating   string
	Year     string
	Runtime  string
	Language string
	Genres   []string
	Plot     string
	Director string
}

// HasPoster reports whether the card has a real poster URL.
func (c Card) HasPoster() bool { return c.Poster != "" }

// SubmitLabel returns the label for the submit affordance.
func (l Layout) SubmitLabel() string {
	if l.Busy {
		return BusyLabel
	}
	return SubmitLabel
}

// Build derives the layout for s. It does not modify s and returns equal
// layouts for equal states.
func Build(s query.State) Layout {
	l := Layout{
		SubmitEnabled: s.CanSubmit(),
	}

	switch s.Phase {
	case query.PhaseLoading:
		l.Busy = true
		l.InputDisabled = true
	case query.PhaseFailed:
		l.Error = s.Err
	case query.PhaseSuccess:
		if !s.HasResult() {
			break
		}
		// Whitespace-only analysis counts as absent.
		l.Analysis = strings.TrimSpace(s.Result.Analysis)
		if len(s.Result.Movies) == 0 {
			l.NoResults = true
			break
		}
		l.Cards = make([]Card, len(s.Result.Movies))
		for i, m := range s.Result.Movies {
			l.Cards[i] = BuildCard(i, m)
		}
	}

	return l
}

// BuildCard converts the movie at position index.
func BuildCard(index int, m search.MovieCard) Card {
	return Card{
		Key:      m.Key(index),
		Title:    present(m.Title),
		Poster:   present(m.Poster),
		Rating:   present(m.IMDbRating),
		Year:     present(m.Year),
		Runtime:  present(m.Runtime),
		Language: firstLanguage(m.Language),
		Genres:   genres(m.Genre),
		Plot:     present(m.Plot),
		Director: present(m.Director),
	}
}

func present(v string) string {
	v = strings.TrimSpace(v)
	if v == search.NotAvailable {
		return ""
	}
	return v
}

func firstLanguage(v string) string {
	v = present(v)
	if v == "" {
		return ""
	}
	first, _, _ := strings.Cut(v, ",")
	return strings.TrimSpace(first)
}

func genres(v string) []string {
	v = present(v)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	if len(parts) > MaxGenres {
		parts = parts[:MaxGenres]
	}
	var out []string
	for _, g := range parts {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}

package view

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/Iron-Ham/moviefinder/internal/query"
	"github.com/Iron-Ham/moviefinder/internal/render"
	"github.com/Iron-Ham/moviefinder/internal/search"
	"github.com/Iron-Ham/moviefinder/internal/tui/keymap"
)

func plain(s string) string {
	return ansi.Strip(s)
}

func TestResultsView_Idle(t *testing.T) {
	v := NewResultsView(nil, 0)
	if got := v.Render(render.Build(query.State{}), 80); got != "" {
		t.Errorf("idle layout should render nothing, got %q", got)
	}
}

func TestResultsView_Error(t *testing.T) {
	v := NewResultsView(nil, 0)
	got := plain(v.Render(render.Layout{Error: "Failed to search."}, 80))

	if !strings.Contains(got, "Failed to search.") {
		t.Errorf("error message missing from %q", got)
	}
	if strings.Contains(got, render.NoResultsText) || strings.Contains(got, render.AnalysisTitle) {
		t.Error("error layout should show nothing else")
	}
}

func TestResultsView_ScenarioA(t *testing.T) {
	layout := render.Build(query.State{
		Input: "cozy romantic comedy",
		Phase: query.PhaseSuccess,
		Result: &search.Result{
			Analysis: "Warm picks.",
			Movies:   []search.MovieCard{{Title: "Movie1", IMDbRating: "N/A", Genre: "Comedy,Romance"}},
		},
	})

	got := plain(NewResultsView(nil, 0).Render(layout, 80))

	for _, want := range []string{render.AnalysisTitle, "Warm picks.", "Movie1", "Comedy", "Romance"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "★") || strings.Contains(got, "N/A") {
		t.Errorf("N/A rating should not render a badge:\n%s", got)
	}
}

func TestResultsView_ScenarioB(t *testing.T) {
	layout := render.Build(query.State{
		Phase:  query.PhaseSuccess,
		Result: &search.Result{Analysis: "No match", Movies: []search.MovieCard{}},
	})

	got := plain(NewResultsView(nil, 0).Render(layout, 80))
	if !strings.Contains(got, render.NoResultsText) {
		t.Errorf("no-results placeholder missing:\n%s", got)
	}
}

func TestResultsView_CardsInOrder(t *testing.T) {
	layout := render.Layout{Cards: []render.Card{
		{Key: "a", Title: "First"},
		{Key: "b", Title: "Second"},
		{Key: "c", Title: "Third"},
	}}

	got := plain(NewResultsView(nil, 0).Render(layout, 60))
	first := strings.Index(got, "First")
	second := strings.Index(got, "Second")
	third := strings.Index(got, "Third")
	if first < 0 || !(first < second && second < third) {
		t.Errorf("cards out of order:\n%s", got)
	}
}

func TestResultsView_RenderCard(t *testing.T) {
	card := render.Card{
		Title:    "Inception",
		Rating:   "8.8",
		Year:     "2010",
		Runtime:  "148 min",
		Language: "English",
		Genres:   []string{"Action", "Sci-Fi"},
		Plot:     "A thief who steals corporate secrets through dream-sharing technology is given the inverse task.",
		Director: "Christopher Nolan",
		Poster:   "https://img.example/inception.jpg",
	}

	v := NewResultsView(nil, 40)
	got := plain(v.RenderCard(card, 70))

	for _, want := range []string{"Inception", "★ 8.8", "2010", "148 min", "English", "Action", "Sci-Fi", "Director:", "Christopher Nolan", "Poster:"} {
		if !strings.Contains(got, want) {
			t.Errorf("card missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "inverse task") {
		t.Errorf("plot should be truncated to 40 chars:\n%s", got)
	}
	for _, line := range strings.Split(got, "\n") {
		if w := ansi.StringWidth(line); w > 70 {
			t.Errorf("line wider than 70 columns (%d): %q", w, line)
		}
	}
}

func TestResultsView_RenderCardMinimal(t *testing.T) {
	got := plain(NewResultsView(nil, 0).RenderCard(render.Card{Title: "Obscure"}, 60))

	if !strings.Contains(got, "Obscure") {
		t.Errorf("title missing:\n%s", got)
	}
	for _, absent := range []string{"★", "Director:", "Poster:", "🌐"} {
		if strings.Contains(got, absent) {
			t.Errorf("empty fields should be omitted, found %q:\n%s", absent, got)
		}
	}
}

func TestResultsView_RenderCardWithoutTitle(t *testing.T) {
	got := plain(NewResultsView(nil, 0).RenderCard(render.Card{Genres: []string{"Comedy", "Romance"}}, 60))

	lines := strings.Split(got, "\n")
	if len(lines) < 2 || !strings.Contains(lines[1], "Comedy") {
		t.Errorf("genres should be the first line when there is no title or rating:\n%s", got)
	}
	if strings.Contains(got, "★") {
		t.Errorf("rating badge should be omitted:\n%s", got)
	}
}

func TestMarkdownRenderer(t *testing.T) {
	md := NewMarkdownRenderer("notty", 60)
	got := md.Render("Some **bold** picks")
	if !strings.Contains(plain(got), "bold") {
		t.Errorf("rendered markdown lost text: %q", got)
	}

	var nilRenderer *MarkdownRenderer
	if got := nilRenderer.Render("plain"); got != "plain" {
		t.Errorf("nil renderer should return input, got %q", got)
	}
	if got := md.Render(""); got != "" {
		t.Errorf("empty content should stay empty, got %q", got)
	}
}

func TestSearchBarView(t *testing.T) {
	v := NewSearchBarView()

	idle := plain(v.Render(render.Layout{SubmitEnabled: true}, "noir", "", 80))
	if !strings.Contains(idle, render.SubmitLabel) || !strings.Contains(idle, "noir") {
		t.Errorf("idle search bar = %q", idle)
	}

	busy := plain(v.Render(render.Layout{Busy: true, InputDisabled: true}, "noir", "⣾", 80))
	if !strings.Contains(busy, render.BusyLabel) || !strings.Contains(busy, "⣾") {
		t.Errorf("busy search bar = %q", busy)
	}
	if strings.Contains(busy, render.SubmitLabel) {
		t.Errorf("busy search bar should not offer submit: %q", busy)
	}
}

func TestHeaderView(t *testing.T) {
	got := plain(NewHeaderView().Render(80, "healthy", "localhost:5000"))
	for _, want := range []string{render.Title, render.Subtitle, "localhost:5000", "●"} {
		if !strings.Contains(got, want) {
			t.Errorf("header missing %q:\n%s", want, got)
		}
	}

	noHost := plain(NewHeaderView().Render(0, "unknown", ""))
	if strings.Contains(noHost, "○") {
		t.Errorf("status indicator should be hidden without a host:\n%s", noHost)
	}
}

func TestHelpBarView(t *testing.T) {
	km := keymap.DefaultKeymap()
	v := NewHelpBarView()

	editing := plain(v.Render(km.HelpKeys(keymap.ModeEditing), 200))
	if !strings.Contains(editing, "find movies") || !strings.Contains(editing, "quit") {
		t.Errorf("editing help = %q", editing)
	}

	busy := plain(v.Render(km.HelpKeys(keymap.ModeBusy), 200))
	if strings.Contains(busy, "find movies") {
		t.Errorf("busy help should not offer submit: %q", busy)
	}
}

package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/moviefinder/internal/render"
	"github.com/Iron-Ham/moviefinder/internal/tui/styles"
	"github.com/Iron-Ham/moviefinder/internal/util"
)

// ResultsView renders the part of a layout below the search bar: the error
// message, the analysis, the movie cards or the no-results placeholder.
type ResultsView struct {
	// Markdown renders the analysis; nil shows it as plain text.
	Markdown *MarkdownRenderer
	// MaxPlotChars shortens card plots; 0 shows them in full.
	MaxPlotChars int
}

// NewResultsView creates a ResultsView.
func NewResultsView(md *MarkdownRenderer, maxPlotChars int) *ResultsView {
	return &ResultsView{Markdown: md, MaxPlotChars: maxPlotChars}
}

// Render returns the content for the given width. An idle layout renders
// as the empty string.
func (v *ResultsView) Render(layout render.Layout, width int) string {
	var sections []string

	if layout.Error != "" {
		sections = append(sections, v.renderError(layout.Error, width))
	}
	if layout.Analysis != "" {
		sections = append(sections, v.renderAnalysis(layout.Analysis, width))
	}
	for _, card := range layout.Cards {
		sections = append(sections, v.RenderCard(card, width))
	}
	if layout.NoResults {
		sections = append(sections, styles.NoResults.Render("🎞  "+render.NoResultsText))
	}

	return strings.Join(sections, "\n")
}

func (v *ResultsView) renderError(msg string, width int) string {
	box := styles.ErrorBox
	if width > 4 {
		box = box.Width(width - 2)
	}
	return box.Render(msg)
}

func (v *ResultsView) renderAnalysis(text string, width int) string {
	inner := width - 4
	body := util.WrapANSI(text, inner)
	if v.Markdown != nil {
		v.Markdown.SetWidth(inner)
		body = v.Markdown.Render(text)
	}

	box := styles.AnalysisBox
	if width > 4 {
		box = box.Width(width - 2)
	}
	return box.Render(styles.AnalysisTitle.Render("✨ "+render.AnalysisTitle) + "\n" + body)
}

// RenderCard renders one movie card.
func (v *ResultsView) RenderCard(card render.Card, width int) string {
	inner := width - 4
	var lines []string

	var heading []string
	if card.Title != "" {
		heading = append(heading, styles.CardTitle.Render(card.Title))
	}
	if card.Rating != "" {
		heading = append(heading, styles.RatingBadge.Render("★ "+card.Rating))
	}
	if len(heading) > 0 {
		lines = append(lines, strings.Join(heading, "  "))
	}

	var meta []string
	if card.Year != "" {
		meta = append(meta, card.Year)
	}
	if card.Runtime != "" {
		meta = append(meta, card.Runtime)
	}
	if card.Language != "" {
		meta = append(meta, "🌐 "+card.Language)
	}
	if len(meta) > 0 {
		lines = append(lines, styles.Meta.Render(strings.Join(meta, " · ")))
	}

	if len(card.Genres) > 0 {
		tags := make([]string, len(card.Genres))
		for i, g := range card.Genres {
			tags[i] = styles.GenreTag.Render(g)
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, tags...))
	}

	if card.Plot != "" {
		lines = append(lines, util.WrapANSI(util.TruncateWords(card.Plot, v.MaxPlotChars), inner))
	}

	if card.Director != "" {
		lines = append(lines, styles.DirectorLabel.Render(render.DirectorLabel)+" "+card.Director)
	}

	if card.HasPoster() && inner > 0 {
		lines = append(lines, styles.Meta.Render(util.TruncateANSI("Poster: "+card.Poster, inner)))
	}

	box := styles.Card
	if width > 4 {
		box = box.Width(width - 2)
	}
	return box.Render(strings.Join(lines, "\n"))
}

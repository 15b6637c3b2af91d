package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/moviefinder/internal/render"
)

// Layout constants
const (
	MinContentWidth  = 20
	MinContentHeight = 3
)

// CalculateResultsHeight returns the height left for the results viewport
// after the fixed chrome is drawn.
func CalculateResultsHeight(termHeight int, chrome ...string) int {
	h := termHeight
	for _, c := range chrome {
		h -= lipgloss.Height(c)
	}
	return max(h, MinContentHeight)
}

// resize fits the viewport between the search bar and the help bar.
func (m *Model) resize() {
	m.viewport.Width = max(m.width, MinContentWidth)

	layout := render.Build(m.state)
	m.viewport.Height = CalculateResultsHeight(m.height,
		m.renderHeader(),
		m.renderSearchBar(layout),
		m.renderHelp(),
	)
	m.input.Width = max(m.width-30, MinContentWidth)
	m.refreshResults()
}

// refreshResults redraws the viewport content from the current state.
func (m *Model) refreshResults() {
	m.viewport.SetContent(m.results.Render(render.Build(m.state), m.viewport.Width))
}

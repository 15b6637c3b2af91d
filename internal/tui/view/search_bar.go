package view

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/moviefinder/internal/render"
	"github.com/Iron-Ham/moviefinder/internal/tui/styles"
)

// SearchBarView renders the query input and the submit affordance.
type SearchBarView struct{}

// NewSearchBarView creates a new SearchBarView instance.
func NewSearchBarView() *SearchBarView {
	return &SearchBarView{}
}

// Render draws input (the rendered text input) beside the submit button.
// While the layout is busy the button shows spinner and the busy label.
func (v *SearchBarView) Render(layout render.Layout, input, spinner string, width int) string {
	label := layout.SubmitLabel()
	if layout.Busy && spinner != "" {
		label = spinner + " " + label
	}

	button := styles.SubmitButtonDisabled.Render(label)
	if layout.SubmitEnabled {
		button = styles.SubmitButton.Render(label)
	}

	box := styles.SearchBox
	if layout.InputDisabled {
		box = styles.SearchBoxDisabled
	}
	if width > 0 {
		// Border and padding take four columns; keep one for the gap.
		boxWidth := width - lipgloss.Width(button) - 5
		if boxWidth > 10 {
			box = box.Width(boxWidth)
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, box.Render(input), " ", button)
}

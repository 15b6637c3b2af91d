package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/moviefinder/internal/render"
	"github.com/Iron-Ham/moviefinder/internal/tui/styles"
)

// HeaderView renders the title block and the backend status indicator.
type HeaderView struct{}

// NewHeaderView creates a new HeaderView instance.
func NewHeaderView() *HeaderView {
	return &HeaderView{}
}

// Render renders the header for the given width. backend is a health state
// name and host the backend address shown next to it.
func (v *HeaderView) Render(width int, backend, host string) string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("🎬 " + render.Title))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render(render.Subtitle))

	if host != "" {
		status := lipgloss.NewStyle().
			Foreground(styles.BackendStatusColor(backend)).
			Render(styles.BackendStatusIcon(backend) + " " + host)
		b.WriteString("\n")
		b.WriteString(status)
	}

	if width > 0 {
		return styles.Header.Width(width).Render(b.String())
	}
	return styles.Header.Render(b.String())
}

package view

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders analysis text as terminal markdown, falling back
// to the plain text when glamour fails or panics.
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
	style    string
	width    int
}

// NewMarkdownRenderer creates a renderer wrapping at width columns. style
// is a glamour standard style name, or "auto" to follow the terminal
// background.
func NewMarkdownRenderer(style string, width int) *MarkdownRenderer {
	m := &MarkdownRenderer{style: style}
	m.SetWidth(width)
	return m
}

// SetWidth rebuilds the renderer when the wrap width changes.
func (m *MarkdownRenderer) SetWidth(width int) {
	if width <= 0 || (width == m.width && m.renderer != nil) {
		return
	}
	m.width = width

	styleOpt := glamour.WithStandardStyle(m.style)
	if m.style == "" || m.style == "auto" {
		styleOpt = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		m.renderer = nil
		return
	}
	m.renderer = r
}

// Render renders content. It never fails.
func (m *MarkdownRenderer) Render(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()

	if m == nil || m.renderer == nil || content == "" {
		return content
	}
	rendered, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(rendered, "\n")
}

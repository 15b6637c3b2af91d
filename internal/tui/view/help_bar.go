package view

import (
	"github.com/charmbracelet/bubbles/help"

	"github.com/Iron-Ham/moviefinder/internal/tui/styles"
)

// HelpBarView renders the key hints for the active mode.
type HelpBarView struct {
	help help.Model
}

// NewHelpBarView creates a new HelpBarView instance.
func NewHelpBarView() *HelpBarView {
	h := help.New()
	h.Styles.ShortKey = styles.HelpKey
	h.Styles.ShortDesc = styles.Muted
	h.Styles.ShortSeparator = styles.Muted
	h.Styles.FullKey = styles.HelpKey
	h.Styles.FullDesc = styles.Muted
	return &HelpBarView{help: h}
}

// Render renders the short help for keys, truncated to width.
func (v *HelpBarView) Render(keys help.KeyMap, width int) string {
	v.help.Width = width
	return styles.HelpBar.Render(v.help.View(keys))
}

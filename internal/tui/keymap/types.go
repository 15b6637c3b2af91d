// Package keymap provides key binding definitions and lookup for the TUI.
// Bindings are declared per mode so the Update loop maps a tea.KeyMsg to a
// Command instead of switching on raw keys.
package keymap

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Mode represents the current input mode of the TUI.
// Different modes have different key bindings active.
type Mode string

const (
	ModeEditing Mode = "editing" // Search input focused
	ModeBusy    Mode = "busy"    // A search is loading; input is disabled
)

// Command represents a named action that can be triggered by a key binding.
type Command string

const (
	CmdSubmit Command = "submit"
	CmdQuit   Command = "quit"

	// Result scrolling
	CmdScrollUp         Command = "scroll_up"
	CmdScrollDown       Command = "scroll_down"
	CmdScrollHalfPageUp Command = "scroll_half_page_up"
	CmdScrollHalfPageDn Command = "scroll_half_page_down"
	CmdScrollPageUp     Command = "scroll_page_up"
	CmdScrollPageDown   Command = "scroll_page_down"
	CmdScrollToTop      Command = "scroll_to_top"
	CmdScrollToBottom   Command = "scroll_to_bottom"

	// Input editing
	CmdClearInput Command = "clear_input"
)

// Modifier represents keyboard modifiers (Ctrl, Alt, Shift).
type Modifier uint8

const (
	ModNone Modifier = 0
	ModCtrl Modifier = 1 << iota
	ModAlt
	ModShift
)

// String returns a human-readable representation of modifiers.
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}
	var s string
	if m&ModCtrl != 0 {
		s += "ctrl+"
	}
	if m&ModAlt != 0 {
		s += "alt+"
	}
	if m&ModShift != 0 {
		s += "shift+"
	}
	return s
}

// KeyBinding represents a single key binding configuration.
type KeyBinding struct {
	// KeyType is the key for this binding. For rune keys, use tea.KeyRunes
	// and set Rune.
	KeyType tea.KeyType

	// Rune is the character for rune-based keys (when KeyType is tea.KeyRunes).
	Rune rune

	// Modifiers contains the modifier keys that must be pressed.
	Modifiers Modifier

	Command     Command
	Description string

	// Category groups related bindings together in help display.
	Category string

	// Hidden bindings work but are left out of the help bar.
	Hidden bool
}

// Matches checks if a tea.KeyMsg matches this binding.
func (kb KeyBinding) Matches(msg tea.KeyMsg) bool {
	wantAlt := kb.Modifiers&ModAlt != 0
	if msg.Alt != wantAlt {
		return false
	}

	if kb.KeyType != tea.KeyRunes {
		return msg.Type == kb.KeyType
	}

	if msg.Type != tea.KeyRunes || len(msg.Runes) == 0 {
		return false
	}
	return msg.Runes[0] == kb.Rune
}

// String returns a human-readable representation of the key binding.
func (kb KeyBinding) String() string {
	prefix := kb.Modifiers.String()

	if kb.KeyType != tea.KeyRunes {
		return prefix + kb.KeyType.String()
	}

	switch kb.Rune {
	case ' ':
		return prefix + "space"
	default:
		return prefix + string(kb.Rune)
	}
}

// ModeBindings holds all key bindings for a specific mode.
type ModeBindings struct {
	Mode     Mode
	Bindings []KeyBinding
}

// GetBinding looks up a command for a key in this mode.
func (mb *ModeBindings) GetBinding(msg tea.KeyMsg) (Command, bool) {
	for _, binding := range mb.Bindings {
		if binding.Matches(msg) {
			return binding.Command, true
		}
	}
	return "", false
}

// Keymap contains all key bindings organized by mode.
type Keymap struct {
	Name        string
	Description string
	Modes       map[Mode]*ModeBindings
}

// GetBinding looks up a command for a key in a specific mode.
// Returns the command and true if found, or empty command and false if not.
func (km *Keymap) GetBinding(msg tea.KeyMsg, mode Mode) (Command, bool) {
	mb, ok := km.Modes[mode]
	if !ok {
		return "", false
	}
	return mb.GetBinding(msg)
}

// GetModeBindings returns all bindings for a specific mode.
func (km *Keymap) GetModeBindings(mode Mode) []KeyBinding {
	mb, ok := km.Modes[mode]
	if !ok {
		return nil
	}
	return mb.Bindings
}

// HelpKeys adapts the bindings of one mode to bubbles/help. Bindings for
// the same command are merged into one entry; hidden bindings are skipped.
func (km *Keymap) HelpKeys(mode Mode) HelpKeyMap {
	var order []Command
	keys := make(map[Command][]string)
	descs := make(map[Command]string)
	categories := make(map[Command]string)

	for _, binding := range km.GetModeBindings(mode) {
		if binding.Hidden {
			continue
		}
		if _, ok := keys[binding.Command]; !ok {
			order = append(order, binding.Command)
			descs[binding.Command] = binding.Description
			categories[binding.Command] = binding.Category
		}
		keys[binding.Command] = append(keys[binding.Command], binding.String())
	}

	h := HelpKeyMap{byCategory: make(map[string][]key.Binding)}
	for _, cmd := range order {
		b := key.NewBinding(
			key.WithKeys(keys[cmd]...),
			key.WithHelp(strings.Join(keys[cmd], "/"), descs[cmd]),
		)
		h.short = append(h.short, b)
		cat := categories[cmd]
		if _, ok := h.byCategory[cat]; !ok {
			h.categories = append(h.categories, cat)
		}
		h.byCategory[cat] = append(h.byCategory[cat], b)
	}
	return h
}

// HelpKeyMap implements help.KeyMap for one mode.
type HelpKeyMap struct {
	short      []key.Binding
	categories []string
	byCategory map[string][]key.Binding
}

// ShortHelp returns every visible binding in declaration order.
func (h HelpKeyMap) ShortHelp() []key.Binding {
	return h.short
}

// FullHelp returns one column per category.
func (h HelpKeyMap) FullHelp() [][]key.Binding {
	columns := make([][]key.Binding, 0, len(h.categories))
	for _, cat := range h.categories {
		columns = append(columns, h.byCategory[cat])
	}
	return columns
}

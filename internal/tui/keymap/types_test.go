package keymap

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestKeyBindingMatches(t *testing.T) {
	tests := []struct {
		name     string
		binding  KeyBinding
		msg      tea.KeyMsg
		expected bool
	}{
		{
			name:     "special key match",
			binding:  KeyBinding{KeyType: tea.KeyEnter},
			msg:      tea.KeyMsg{Type: tea.KeyEnter},
			expected: true,
		},
		{
			name:     "special key mismatch",
			binding:  KeyBinding{KeyType: tea.KeyEnter},
			msg:      tea.KeyMsg{Type: tea.KeyEsc},
			expected: false,
		},
		{
			name:     "rune match",
			binding:  KeyBinding{KeyType: tea.KeyRunes, Rune: 'x'},
			msg:      tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}},
			expected: true,
		},
		{
			name:     "rune mismatch",
			binding:  KeyBinding{KeyType: tea.KeyRunes, Rune: 'x'},
			msg:      tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}},
			expected: false,
		},
		{
			name:     "rune binding does not match empty runes",
			binding:  KeyBinding{KeyType: tea.KeyRunes, Rune: 'x'},
			msg:      tea.KeyMsg{Type: tea.KeyRunes},
			expected: false,
		},
		{
			name:     "alt modifier match",
			binding:  KeyBinding{KeyType: tea.KeyRunes, Rune: 'x', Modifiers: ModAlt},
			msg:      tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true},
			expected: true,
		},
		{
			name:     "alt pressed but not wanted",
			binding:  KeyBinding{KeyType: tea.KeyEnter},
			msg:      tea.KeyMsg{Type: tea.KeyEnter, Alt: true},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.binding.Matches(tt.msg); got != tt.expected {
				t.Errorf("Matches() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDefaultKeymap_GetBinding(t *testing.T) {
	km := DefaultKeymap()

	tests := []struct {
		name    string
		mode    Mode
		msg     tea.KeyMsg
		wantCmd Command
		wantOK  bool
	}{
		{"enter submits while editing", ModeEditing, tea.KeyMsg{Type: tea.KeyEnter}, CmdSubmit, true},
		{"enter unbound while busy", ModeBusy, tea.KeyMsg{Type: tea.KeyEnter}, "", false},
		{"ctrl+c quits while editing", ModeEditing, tea.KeyMsg{Type: tea.KeyCtrlC}, CmdQuit, true},
		{"esc quits while busy", ModeBusy, tea.KeyMsg{Type: tea.KeyEsc}, CmdQuit, true},
		{"page down scrolls while busy", ModeBusy, tea.KeyMsg{Type: tea.KeyPgDown}, CmdScrollPageDown, true},
		{"ctrl+u scrolls", ModeEditing, tea.KeyMsg{Type: tea.KeyCtrlU}, CmdScrollHalfPageUp, true},
		{"question mark goes to input", ModeEditing, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}}, "", false},
		{"q goes to input", ModeEditing, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, "", false},
		{"unknown mode", Mode("nope"), tea.KeyMsg{Type: tea.KeyEnter}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, ok := km.GetBinding(tt.msg, tt.mode)
			if ok != tt.wantOK || cmd != tt.wantCmd {
				t.Errorf("GetBinding() = (%q, %v), want (%q, %v)", cmd, ok, tt.wantCmd, tt.wantOK)
			}
		})
	}
}

func TestModifiersString(t *testing.T) {
	tests := []struct {
		mod  Modifier
		want string
	}{
		{ModNone, ""},
		{ModCtrl, "ctrl+"},
		{ModAlt, "alt+"},
		{ModCtrl | ModShift, "ctrl+shift+"},
	}
	for _, tt := range tests {
		if got := tt.mod.String(); got != tt.want {
			t.Errorf("Modifier(%d).String() = %q, want %q", tt.mod, got, tt.want)
		}
	}
}

func TestKeyBindingString(t *testing.T) {
	tests := []struct {
		binding KeyBinding
		want    string
	}{
		{KeyBinding{KeyType: tea.KeyEnter}, "enter"},
		{KeyBinding{KeyType: tea.KeyCtrlC}, "ctrl+c"},
		{KeyBinding{KeyType: tea.KeyPgUp}, "pgup"},
		{KeyBinding{KeyType: tea.KeyRunes, Rune: ' '}, "space"},
		{KeyBinding{KeyType: tea.KeyRunes, Rune: 'x', Modifiers: ModAlt}, "alt+x"},
	}
	for _, tt := range tests {
		if got := tt.binding.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestHelpKeys(t *testing.T) {
	km := DefaultKeymap()

	h := km.HelpKeys(ModeEditing)
	short := h.ShortHelp()

	var quitHelp string
	for _, b := range short {
		if b.Help().Desc == "quit" {
			if quitHelp != "" {
				t.Error("quit bindings should be merged into one help entry")
			}
			quitHelp = b.Help().Key
		}
		if b.Help().Desc == "scroll up" {
			t.Error("hidden bindings should not appear in help")
		}
	}
	if quitHelp != "ctrl+c/esc" {
		t.Errorf("quit help key = %q, want %q", quitHelp, "ctrl+c/esc")
	}

	if cols := h.FullHelp(); len(cols) != 3 {
		t.Errorf("FullHelp() returned %d columns, want 3", len(cols))
	}

	busy := km.HelpKeys(ModeBusy).ShortHelp()
	for _, b := range busy {
		if b.Help().Desc == "find movies" {
			t.Error("submit should not be offered while busy")
		}
	}
}

func TestDefaultKeymapCompleteness(t *testing.T) {
	km := DefaultKeymap()
	for _, mode := range []Mode{ModeEditing, ModeBusy} {
		bindings := km.GetModeBindings(mode)
		if len(bindings) == 0 {
			t.Errorf("mode %q has no bindings", mode)
		}
		for _, b := range bindings {
			if b.Description == "" || b.Category == "" {
				t.Errorf("mode %q binding %s lacks description or category", mode, b)
			}
			if b.KeyType == tea.KeyRunes {
				t.Errorf("mode %q binds printable key %s; it would shadow input", mode, b)
			}
		}
	}
}

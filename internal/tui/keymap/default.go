package keymap

import tea "github.com/charmbracelet/bubbletea"

// DefaultKeymap returns the built-in bindings. Printable keys are not bound
// in either mode so they always reach the search input.
func DefaultKeymap() *Keymap {
	return &Keymap{
		Name:        "default",
		Description: "Default movie finder key bindings",
		Modes: map[Mode]*ModeBindings{
			ModeEditing: defaultEditingBindings(),
			ModeBusy:    defaultBusyBindings(),
		},
	}
}

func scrollBindings() []KeyBinding {
	return []KeyBinding{
		{KeyType: tea.KeyPgUp, Command: CmdScrollPageUp, Description: "page up", Category: "Results"},
		{KeyType: tea.KeyPgDown, Command: CmdScrollPageDown, Description: "page down", Category: "Results"},
		{KeyType: tea.KeyCtrlU, Command: CmdScrollHalfPageUp, Description: "half page up", Category: "Results"},
		{KeyType: tea.KeyCtrlD, Command: CmdScrollHalfPageDn, Description: "half page down", Category: "Results"},
		{KeyType: tea.KeyUp, Command: CmdScrollUp, Description: "scroll up", Category: "Results", Hidden: true},
		{KeyType: tea.KeyDown, Command: CmdScrollDown, Description: "scroll down", Category: "Results", Hidden: true},
		{KeyType: tea.KeyCtrlHome, Command: CmdScrollToTop, Description: "top", Category: "Results", Hidden: true},
		{KeyType: tea.KeyCtrlEnd, Command: CmdScrollToBottom, Description: "bottom", Category: "Results", Hidden: true},
	}
}

func quitBindings() []KeyBinding {
	return []KeyBinding{
		{KeyType: tea.KeyCtrlC, Command: CmdQuit, Description: "quit", Category: "Application"},
		{KeyType: tea.KeyEsc, Command: CmdQuit, Description: "quit", Category: "Application"},
	}
}

func defaultEditingBindings() *ModeBindings {
	bindings := []KeyBinding{
		{KeyType: tea.KeyEnter, Command: CmdSubmit, Description: "find movies", Category: "Search"},
		{KeyType: tea.KeyCtrlL, Command: CmdClearInput, Description: "clear", Category: "Search"},
	}
	bindings = append(bindings, scrollBindings()...)
	bindings = append(bindings, quitBindings()...)
	return &ModeBindings{Mode: ModeEditing, Bindings: bindings}
}

// Enter is deliberately unbound while busy; the controller would reject
// the submission anyway.
func defaultBusyBindings() *ModeBindings {
	bindings := append(scrollBindings(), quitBindings()...)
	return &ModeBindings{Mode: ModeBusy, Bindings: bindings}
}

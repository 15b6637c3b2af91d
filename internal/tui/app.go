package tui

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/moviefinder/internal/errors"
	"github.com/Iron-Ham/moviefinder/internal/query"
	"github.com/Iron-Ham/moviefinder/internal/render"
	"github.com/Iron-Ham/moviefinder/internal/tui/keymap"
	"github.com/Iron-Ham/moviefinder/internal/tui/msg"
)

// App wraps the Bubbletea program
type App struct {
	program   *tea.Program
	model     Model
	altScreen bool
}

// New creates a new TUI application driving ctrl.
func New(ctrl Controller, opts Options) *App {
	return &App{
		model:     NewModel(ctrl, opts),
		altScreen: opts.AltScreen,
	}
}

// Run starts the TUI and blocks until the user quits or ctx is canceled.
func (a *App) Run(ctx context.Context) error {
	a.model.ctx = ctx

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if a.altScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	a.program = tea.NewProgram(a.model, progOpts...)

	// Ctrl+C arrives as a key in raw mode; these arrive from outside.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			a.program.Send(tea.Quit())
		case <-ctx.Done():
		}
	}()

	_, err := a.program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Init starts cursor blinking and the startup health probe.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.healthChecker != nil {
		cmds = append(cmds, msg.CheckHealth(m.ctx, m.healthChecker, m.healthTimeout))
	}
	return tea.Batch(cmds...)
}

// Update handles a message.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		return m.handleKeypress(message)

	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		m.ready = true
		m.resize()
		return m, nil

	case msg.SearchResolvedMsg:
		m.state = message.State
		m.refreshResults()
		m.viewport.GotoTop()
		return m, m.input.Focus()

	case msg.HealthMsg:
		m.health = message.State
		if message.Err != nil {
			m.logger.Warn("backend health check failed", "state", message.State, "error", message.Err.Error())
		} else {
			m.logger.Debug("backend health checked", "state", message.State, "message", message.Message)
		}
		return m, nil

	case spinner.TickMsg:
		if m.state.Phase != query.PhaseLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(message)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(message)
	return m, cmd
}

func (m Model) handleKeypress(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	command, ok := m.keymap.GetBinding(key, m.mode())
	if !ok {
		if m.state.Phase == query.PhaseLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(key)
		m.syncInput()
		return m, cmd
	}

	switch command {
	case keymap.CmdQuit:
		m.quitting = true
		return m, tea.Quit
	case keymap.CmdSubmit:
		return m.submit()
	case keymap.CmdClearInput:
		m.input.SetValue("")
		m.syncInput()
	case keymap.CmdScrollUp:
		m.viewport.LineUp(1)
	case keymap.CmdScrollDown:
		m.viewport.LineDown(1)
	case keymap.CmdScrollHalfPageUp:
		m.viewport.HalfViewUp()
	case keymap.CmdScrollHalfPageDn:
		m.viewport.HalfViewDown()
	case keymap.CmdScrollPageUp:
		m.viewport.ViewUp()
	case keymap.CmdScrollPageDown:
		m.viewport.ViewDown()
	case keymap.CmdScrollToTop:
		m.viewport.GotoTop()
	case keymap.CmdScrollToBottom:
		m.viewport.GotoBottom()
	}
	return m, nil
}

// submit is the commit key's path into the controller. A rejected
// submission changes nothing on screen.
func (m Model) submit() (tea.Model, tea.Cmd) {
	m.syncInput()
	p, err := m.ctrl.Begin()
	if err != nil {
		if !errors.IsRejection(err) {
			m.logger.Error("submission failed", "error", err.Error())
		}
		return m, nil
	}

	m.state = m.ctrl.Snapshot()
	m.input.Blur()
	m.refreshResults()
	return m, tea.Batch(m.spinner.Tick, msg.ResolveSearch(m.ctx, m.ctrl, p))
}

// syncInput pushes the typed text to the controller.
func (m *Model) syncInput() {
	m.ctrl.SetInputText(m.input.Value())
	m.state = m.ctrl.Snapshot()
}

// View renders the screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}

	layout := render.Build(m.state)
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderSearchBar(layout),
		m.viewport.View(),
		m.renderHelp(),
	)
}

func (m Model) renderHeader() string {
	return m.header.Render(m.width, m.health, m.host)
}

func (m Model) renderSearchBar(layout render.Layout) string {
	return m.searchBar.Render(layout, m.input.View(), m.spinner.View(), m.width)
}

func (m Model) renderHelp() string {
	return m.helpBar.Render(m.keymap.HelpKeys(m.mode()), m.width)
}

package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/Iron-Ham/moviefinder/internal/logging"
	"github.com/Iron-Ham/moviefinder/internal/query"
	"github.com/Iron-Ham/moviefinder/internal/render"
	"github.com/Iron-Ham/moviefinder/internal/tui/keymap"
	"github.com/Iron-Ham/moviefinder/internal/tui/msg"
	"github.com/Iron-Ham/moviefinder/internal/tui/styles"
	"github.com/Iron-Ham/moviefinder/internal/tui/view"
)

// Controller is the query state the TUI drives. *query.Controller
// implements it.
type Controller interface {
	Snapshot() query.State
	SetInputText(text string)
	Begin() (*query.Pending, error)
	Resolve(ctx context.Context, p *query.Pending) query.State
}

// Options configures the TUI.
type Options struct {
	// Host is shown in the header next to the backend status.
	Host string
	// Health, when set, is probed once at startup.
	Health        msg.HealthChecker
	HealthTimeout time.Duration

	MarkdownAnalysis bool
	// MarkdownStyle is a glamour style name; empty follows the terminal.
	MarkdownStyle string
	MaxPlotChars  int
	AltScreen     bool

	Keymap *keymap.Keymap
	Logger *logging.Logger
}

// Model holds the TUI state. The query state itself lives in the
// controller; state is the last snapshot taken from it.
type Model struct {
	ctx    context.Context
	ctrl   Controller
	keymap *keymap.Keymap
	logger *logging.Logger

	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model

	header    *view.HeaderView
	searchBar *view.SearchBarView
	results   *view.ResultsView
	helpBar   *view.HelpBarView

	state query.State

	host          string
	health        string
	healthChecker msg.HealthChecker
	healthTimeout time.Duration

	width    int
	height   int
	ready    bool
	quitting bool
}

// NewModel creates a model bound to ctrl.
func NewModel(ctrl Controller, opts Options) Model {
	km := opts.Keymap
	if km == nil {
		km = keymap.DefaultKeymap()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}

	ti := textinput.New()
	ti.Placeholder = render.Placeholder
	ti.Prompt = "🔍 "
	ti.PromptStyle = styles.Primary
	ti.PlaceholderStyle = styles.Muted
	ti.CharLimit = 500

	state := ctrl.Snapshot()
	ti.SetValue(state.Input)
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Primary

	var md *view.MarkdownRenderer
	if opts.MarkdownAnalysis {
		md = view.NewMarkdownRenderer(opts.MarkdownStyle, 76)
	}

	return Model{
		ctx:           context.Background(),
		ctrl:          ctrl,
		keymap:        km,
		logger:        logger.WithComponent("tui"),
		input:         ti,
		spinner:       sp,
		viewport:      viewport.New(80, 20),
		header:        view.NewHeaderView(),
		searchBar:     view.NewSearchBarView(),
		results:       view.NewResultsView(md, opts.MaxPlotChars),
		helpBar:       view.NewHelpBarView(),
		state:         state,
		host:          opts.Host,
		health:        msg.HealthUnknown,
		healthChecker: opts.Health,
		healthTimeout: opts.HealthTimeout,
	}
}

// State returns the last controller snapshot the model rendered.
func (m Model) State() query.State {
	return m.state
}

// Quitting reports whether the user asked to quit.
func (m Model) Quitting() bool {
	return m.quitting
}

func (m Model) mode() keymap.Mode {
	if m.state.Phase == query.PhaseLoading {
		return keymap.ModeBusy
	}
	return keymap.ModeEditing
}

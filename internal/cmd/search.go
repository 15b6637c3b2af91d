package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/moviefinder/internal/errors"
	"github.com/Iron-Ham/moviefinder/internal/query"
	"github.com/Iron-Ham/moviefinder/internal/render"
	"github.com/Iron-Ham/moviefinder/internal/tui/view"
)

// maxStdinQuery caps how much of a piped query is read.
const maxStdinQuery = 64 * 1024

// outputWidth is the card width used for one-shot output.
const outputWidth = 80

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Run one search and print the recommendations",
	Long: `Run a single search against the backend and print the result.

The query is the arguments joined by spaces. With no arguments the query
is read from standard input when it is not a terminal.

Examples:
  moviefinder search a cozy romantic comedy for a rainy day
  echo "heist movies with a twist" | moviefinder search
  moviefinder search --json 90s sci-fi`,
	RunE: runSearch,
}

var searchJSON bool

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "print the raw result as JSON")
}

func runSearch(cmd *cobra.Command, args []string) error {
	input, err := readQuery(cmd.InOrStdin(), args)
	if err != nil {
		return fmt.Errorf("failed to read query: %w", err)
	}
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("a search query is required")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	logger, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	svc := newServices(cfg, logger)
	svc.ctrl.SetInputText(input)

	state, err := svc.ctrl.Submit(cmd.Context())
	if err != nil {
		if errors.IsRejection(err) {
			return fmt.Errorf("search not started: %w", err)
		}
		return err
	}

	if state.HasError() {
		return errors.New(state.Err)
	}

	out := cmd.OutOrStdout()
	if searchJSON {
		return writeJSON(out, state)
	}
	_, err = fmt.Fprintln(out, formatLayout(render.Build(state), cfg.TUI.MaxPlotChars))
	return err
}

// readQuery joins args, or reads the query from in when no args are given
// and in is not a terminal.
func readQuery(in io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if f, ok := in.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return "", nil
	}
	data, err := io.ReadAll(io.LimitReader(in, maxStdinQuery))
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func writeJSON(w io.Writer, state query.State) error {
	data, err := json.MarshalIndent(state.Result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// formatLayout renders the results region the same way the TUI does,
// without the interactive chrome.
func formatLayout(layout render.Layout, maxPlotChars int) string {
	return view.NewResultsView(nil, maxPlotChars).Render(layout, outputWidth)
}

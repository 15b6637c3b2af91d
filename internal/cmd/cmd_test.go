package cmd

import (
	"bytes"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iron-Ham/moviefinder/internal/config"
	"github.com/Iron-Ham/moviefinder/internal/query"
	"github.com/Iron-Ham/moviefinder/internal/render"
	"github.com/Iron-Ham/moviefinder/internal/search"
	"github.com/Iron-Ham/moviefinder/internal/testutil"
)

// executeCommand runs a cobra command with args and returns captured output
func executeCommand(root *cobra.Command, stdin string, args ...string) (output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err = root.Execute()
	return ansi.Strip(buf.String()), err
}

// setupTestEnvironment isolates viper, the config directory and the log
// directory, and points the backend at backendURL.
func setupTestEnvironment(t *testing.T, backendURL string) (logDir string) {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	viper.Reset()
	t.Cleanup(viper.Reset)

	logDir = t.TempDir()
	viper.Set("backend.url", backendURL)
	viper.Set("logging.dir", logDir)

	searchJSON = false
	logsTail, logsLevel, logsSince, logsGrep, logsRequest = 50, "", "", "", ""
	return logDir
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "moviefinder" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "moviefinder")
	}

	cmdMap := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		cmdMap[cmd.Name()] = true
	}
	for _, expected := range []string{"search", "health", "config", "logs"} {
		if !cmdMap[expected] {
			t.Errorf("expected subcommand %q not found", expected)
		}
	}

	if rootCmd.Flags().Lookup("metrics-addr") == nil {
		t.Error("root command should have a --metrics-addr flag")
	}
	if rootCmd.PersistentFlags().Lookup("config") == nil {
		t.Error("root command should have a --config flag")
	}
}

func TestSearchCommand(t *testing.T) {
	b := testutil.NewBackend(t)
	setupTestEnvironment(t, b.URL)

	output, err := executeCommand(rootCmd, "", "search", "cozy", "romantic", "comedy")
	require.NoError(t, err)

	for _, want := range []string{render.AnalysisTitle, "Warm, low-stakes picks.", "Movie1", "Comedy", "Romance"} {
		assert.Contains(t, output, want)
	}
	assert.NotContains(t, output, "N/A")
	assert.Equal(t, []string{`{"query":"cozy romantic comedy"}`}, b.Requests())
}

func TestSearchCommand_JSON(t *testing.T) {
	b := testutil.NewBackend(t)
	setupTestEnvironment(t, b.URL)

	output, err := executeCommand(rootCmd, "", "search", "--json", "cozy romantic comedy")
	require.NoError(t, err)

	var result search.Result
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	require.Len(t, result.Movies, 1)
	assert.Equal(t, "Movie1", result.Movies[0].Title)
	assert.Equal(t, "Warm, low-stakes picks.", result.Analysis)
}

func TestSearchCommand_NoResults(t *testing.T) {
	b := testutil.NewBackend(t)
	b.ReplySearch(http.StatusOK, testutil.NoMovies)
	setupTestEnvironment(t, b.URL)

	output, err := executeCommand(rootCmd, "", "search", "xyzzy")
	require.NoError(t, err)
	assert.Contains(t, output, render.NoResultsText)
}

func TestSearchCommand_Stdin(t *testing.T) {
	b := testutil.NewBackend(t)
	setupTestEnvironment(t, b.URL)

	_, err := executeCommand(rootCmd, "  heist movies with a twist\n", "search")
	require.NoError(t, err)
	assert.Equal(t, []string{`{"query":"  heist movies with a twist"}`}, b.Requests())
}

func TestSearchCommand_BlankQuery(t *testing.T) {
	b := testutil.NewBackend(t)
	setupTestEnvironment(t, b.URL)

	_, err := executeCommand(rootCmd, "", "search", "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a search query is required")
	assert.Empty(t, b.Requests(), "a blank query must not reach the backend")
}

func TestSearchCommand_Unreachable(t *testing.T) {
	url := testutil.UnreachableURL(t)
	host := strings.TrimPrefix(url, "http://")
	setupTestEnvironment(t, url)

	_, err := executeCommand(rootCmd, "", "search", "noir")
	require.Error(t, err)
	assert.Equal(t, query.FailureMessage(host), err.Error())
	assert.NotContains(t, err.Error(), "connection refused")
}

func TestHealthCommand(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr bool
		want    string
	}{
		{
			name: "healthy",
			body: testutil.Healthy,
			want: "Movie service is running",
		},
		{
			name:    "degraded",
			body:    `{"status":"degraded"}`,
			wantErr: true,
			want:    "degraded",
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `{"error":"boom"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := testutil.NewBackend(t)
			b.ReplyHealth(tt.status, tt.body)
			setupTestEnvironment(t, b.URL)

			output, err := executeCommand(rootCmd, "", "health")
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Contains(t, output, b.URL+"/api/health")
			if tt.want != "" {
				assert.Contains(t, output, tt.want)
			}
		})
	}
}

func TestHealthCommand_Unreachable(t *testing.T) {
	setupTestEnvironment(t, testutil.UnreachableURL(t))

	_, err := executeCommand(rootCmd, "", "health")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend unreachable")
}

func TestConfigShow(t *testing.T) {
	setupTestEnvironment(t, "http://films.local:5000")

	output, err := executeCommand(rootCmd, "", "config")
	require.NoError(t, err)

	assert.Contains(t, output, "(none - using defaults)")
	assert.Contains(t, output, "url: http://films.local:5000")
	assert.Contains(t, output, "search_path: /api/search")
}

func TestConfigShow_InvalidConfig(t *testing.T) {
	setupTestEnvironment(t, "not a url")

	_, err := executeCommand(rootCmd, "", "config", "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend.url")
}

func TestConfigInit(t *testing.T) {
	setupTestEnvironment(t, "http://localhost:5000")

	output, err := executeCommand(rootCmd, "", "config", "init")
	require.NoError(t, err)
	assert.Contains(t, output, config.ConfigFile())

	data, err := os.ReadFile(config.ConfigFile())
	require.NoError(t, err)
	assert.Contains(t, string(data), "search_path: /api/search")

	_, err = executeCommand(rootCmd, "", "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestConfigSet(t *testing.T) {
	setupTestEnvironment(t, "http://localhost:5000")

	output, err := executeCommand(rootCmd, "", "config", "set", "logging.level", "debug")
	require.NoError(t, err)
	assert.Contains(t, output, "Set logging.level = debug")

	data, err := os.ReadFile(config.ConfigFile())
	require.NoError(t, err)
	assert.Contains(t, string(data), "level: debug")
}

func TestConfigSet_Rejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown key", []string{"backend.password", "x"}, "unknown configuration key"},
		{"bad bool", []string{"tui.alt_screen", "maybe"}, "expected true or false"},
		{"bad int", []string{"tui.max_plot_chars", "lots"}, "expected integer"},
		{"negative", []string{"backend.timeout_seconds", "-1"}, "must be non-negative"},
		{"fails validation", []string{"backend.search_path", "api/search"}, "backend.search_path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestEnvironment(t, "http://localhost:5000")

			_, err := executeCommand(rootCmd, "", append([]string{"config", "set"}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)

			_, statErr := os.Stat(config.ConfigFile())
			assert.True(t, os.IsNotExist(statErr), "rejected value must not be written")
		})
	}
}

func TestConfigPath(t *testing.T) {
	setupTestEnvironment(t, "http://localhost:5000")

	output, err := executeCommand(rootCmd, "", "config", "path")
	require.NoError(t, err)
	assert.Contains(t, output, "not created")
	assert.Contains(t, output, "MOVIEFINDER_")
}

func TestReadQuery(t *testing.T) {
	got, err := readQuery(strings.NewReader("ignored"), []string{"sci-fi", "from", "the", "90s"})
	require.NoError(t, err)
	assert.Equal(t, "sci-fi from the 90s", got)

	got, err = readQuery(strings.NewReader(" noir \r\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, " noir ", got)
}

const sampleLog = `{"time":"2026-10-17T10:00:00Z","level":"INFO","msg":"search submitted","component":"query","request_id":"r1","query_len":4}
{"time":"2026-10-17T10:00:01Z","level":"WARN","msg":"search failed","component":"query","request_id":"r1","kind":"unreachable"}
not json at all
{"time":"2026-10-17T10:00:02Z","level":"DEBUG","msg":"phase changed","component":"query","request_id":"r2","phase":"loading"}
`

func TestDisplayLogs(t *testing.T) {
	tests := []struct {
		name    string
		tail    int
		filter  logFilter
		want    []string
		notWant []string
	}{
		{
			name:   "all",
			filter: logFilter{minLevel: -1},
			want:   []string{"search submitted", "search failed", "not json at all", "phase changed", "kind=unreachable"},
		},
		{
			name:    "min level warn",
			filter:  logFilter{minLevel: levelPriority("warn")},
			want:    []string{"search failed"},
			notWant: []string{"search submitted", "phase changed"},
		},
		{
			name:    "by request",
			filter:  logFilter{minLevel: -1, requestID: "r2"},
			want:    []string{"phase changed", "phase=loading"},
			notWant: []string{"search submitted", "search failed"},
		},
		{
			name:    "grep extra fields",
			filter:  logFilter{minLevel: -1, grep: regexp.MustCompile("unreach")},
			want:    []string{"search failed"},
			notWant: []string{"phase changed"},
		},
		{
			name:    "since",
			filter:  logFilter{minLevel: -1, since: time.Date(2026, 10, 17, 10, 0, 1, 500, time.UTC)},
			want:    []string{"phase changed"},
			notWant: []string{"search submitted"},
		},
		{
			name:    "tail",
			tail:    1,
			filter:  logFilter{minLevel: -1},
			want:    []string{"phase changed"},
			notWant: []string{"search failed"},
		},
		{
			name:   "nothing matches",
			filter: logFilter{minLevel: -1, requestID: "missing"},
			want:   []string{"No matching log entries found."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, displayLogs(&buf, strings.NewReader(sampleLog), tt.tail, tt.filter))
			out := ansi.Strip(buf.String())
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, nw := range tt.notWant {
				assert.NotContains(t, out, nw)
			}
		})
	}
}

func TestLogsCommand(t *testing.T) {
	logDir := setupTestEnvironment(t, "http://localhost:5000")

	output, err := executeCommand(rootCmd, "", "logs")
	require.NoError(t, err)
	assert.Contains(t, output, "No logs found.")

	require.NoError(t, os.WriteFile(filepath.Join(logDir, "debug.log"), []byte(sampleLog), 0644))

	output, err = executeCommand(rootCmd, "", "logs", "--level", "warn")
	require.NoError(t, err)
	assert.Contains(t, output, "search failed")
	assert.NotContains(t, output, "search submitted")
}

func TestSearchCommand_WritesDebugLog(t *testing.T) {
	b := testutil.NewBackend(t)
	logDir := setupTestEnvironment(t, b.URL)
	viper.Set("logging.level", "debug")

	_, err := executeCommand(rootCmd, "", "search", "noir")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(logDir, "debug.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"request_id"`)
}

package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete moviefinder configuration
type Config struct {
	Backend BackendConfig `mapstructure:"backend" yaml:"backend"`
	TUI     TUIConfig     `mapstructure:"tui" yaml:"tui"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// BackendConfig locates the recommendation service. It is read once at
// startup; edits to these keys take effect on the next launch.
type BackendConfig struct {
	// URL is the scheme and host of the service, e.g. http://localhost:5000
	URL string `mapstructure:"url" yaml:"url" validate:"required,url"`
	// SearchPath is the POST endpoint for searches
	SearchPath string `mapstructure:"search_path" yaml:"search_path" validate:"required,startswith=/"`
	// HealthPath is the GET endpoint probed by `moviefinder health`
	HealthPath string `mapstructure:"health_path" yaml:"health_path" validate:"required,startswith=/"`
	// TimeoutSeconds bounds one request at the transport level (0 = no limit)
	TimeoutSeconds int `mapstructure:"timeout_seconds" yaml:"timeout_seconds" validate:"gte=0,lte=600"`
	// CircuitBreaker fails searches fast after repeated transport failures
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker" yaml:"circuit_breaker"`
}

// CircuitBreakerConfig controls the optional breaker around the search client
type CircuitBreakerConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// MaxFailures is the number of consecutive failures that opens the breaker
	MaxFailures uint32 `mapstructure:"max_failures" yaml:"max_failures" validate:"gte=1,lte=100"`
	// OpenSeconds is how long the breaker stays open before a trial request
	OpenSeconds int `mapstructure:"open_seconds" yaml:"open_seconds" validate:"gte=1,lte=3600"`
}

// TUIConfig controls the terminal UI behavior
type TUIConfig struct {
	// MarkdownAnalysis renders the AI analysis as markdown
	MarkdownAnalysis bool `mapstructure:"markdown_analysis" yaml:"markdown_analysis"`
	// MaxPlotChars truncates plot text on cards (0 = no truncation)
	MaxPlotChars int `mapstructure:"max_plot_chars" yaml:"max_plot_chars" validate:"gte=0"`
	// AltScreen runs the TUI in the terminal's alternate screen
	AltScreen bool `mapstructure:"alt_screen" yaml:"alt_screen"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Level is one of debug, info, warn, error. It is hot-reloaded.
	Level string `mapstructure:"level" yaml:"level"`
	// Dir holds debug.log; empty means the config directory
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// MetricsConfig controls the optional Prometheus listener
type MetricsConfig struct {
	// ListenAddr is host:port for /metrics; empty disables the listener
	ListenAddr string `mapstructure:"listen_addr" yaml:"listen_addr" validate:"omitempty,hostname_port"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			URL:            "http://localhost:5000",
			SearchPath:     "/api/search",
			HealthPath:     "/api/health",
			TimeoutSeconds: 60,
			CircuitBreaker: CircuitBreakerConfig{
				Enabled:     false,
				MaxFailures: 5,
				OpenSeconds: 30,
			},
		},
		TUI: TUIConfig{
			MarkdownAnalysis: true,
			MaxPlotChars:     240,
			AltScreen:        true,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
			Dir:     "",
		},
		Metrics: MetricsConfig{
			ListenAddr: "",
		},
	}
}

// Timeout returns the request timeout as a time.Duration (0 means disabled)
func (c *BackendConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SearchURL joins the base URL and the search path
func (c *BackendConfig) SearchURL() string {
	return joinURL(c.URL, c.SearchPath)
}

// HealthURL joins the base URL and the health path
func (c *BackendConfig) HealthURL() string {
	return joinURL(c.URL, c.HealthPath)
}

// Host returns the host:port part of the base URL, or the raw URL if it
// does not parse.
func (c *BackendConfig) Host() string {
	u, err := url.Parse(c.URL)
	if err != nil || u.Host == "" {
		return c.URL
	}
	return u.Host
}

// OpenTimeout returns how long an open circuit breaker waits before a trial request
func (c *CircuitBreakerConfig) OpenTimeout() time.Duration {
	return time.Duration(c.OpenSeconds) * time.Second
}

// ResolveDir returns the log directory, defaulting to the config directory.
func (c *LoggingConfig) ResolveDir() string {
	if c.Dir == "" {
		return ConfigDir()
	}
	if strings.HasPrefix(c.Dir, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(c.Dir, "~"))
		}
	}
	return c.Dir
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Backend defaults
	viper.SetDefault("backend.url", defaults.Backend.URL)
	viper.SetDefault("backend.search_path", defaults.Backend.SearchPath)
	viper.SetDefault("backend.health_path", defaults.Backend.HealthPath)
	viper.SetDefault("backend.timeout_seconds", defaults.Backend.TimeoutSeconds)
	viper.SetDefault("backend.circuit_breaker.enabled", defaults.Backend.CircuitBreaker.Enabled)
	viper.SetDefault("backend.circuit_breaker.max_failures", defaults.Backend.CircuitBreaker.MaxFailures)
	viper.SetDefault("backend.circuit_breaker.open_seconds", defaults.Backend.CircuitBreaker.OpenSeconds)

	// TUI defaults
	viper.SetDefault("tui.markdown_analysis", defaults.TUI.MarkdownAnalysis)
	viper.SetDefault("tui.max_plot_chars", defaults.TUI.MaxPlotChars)
	viper.SetDefault("tui.alt_screen", defaults.TUI.AltScreen)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)

	// Metrics defaults
	viper.SetDefault("metrics.listen_addr", defaults.Metrics.ListenAddr)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "moviefinder")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".moviefinder"
	}
	return filepath.Join(home, ".config", "moviefinder")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

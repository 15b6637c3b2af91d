package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/Iron-Ham/moviefinder/internal/config"
	"github.com/Iron-Ham/moviefinder/internal/event"
	"github.com/Iron-Ham/moviefinder/internal/logging"
	"github.com/Iron-Ham/moviefinder/internal/metrics"
	"github.com/Iron-Ham/moviefinder/internal/query"
	"github.com/Iron-Ham/moviefinder/internal/search"
	"github.com/Iron-Ham/moviefinder/internal/tui"
)

// healthTimeout bounds the startup health probe.
const healthTimeout = 3 * time.Second

var rootCmd = &cobra.Command{
	Use:   "moviefinder",
	Short: "Find movies by describing what you want to watch",
	Long: `moviefinder is a terminal client for an AI movie recommendation
service. Describe the movie night you have in mind and it returns an
analysis of your request along with matching movies.

Run without arguments to start the interactive interface.`,
	RunE: runTUI,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/moviefinder/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	rootCmd.Flags().String("metrics-addr", "", "serve Prometheus metrics on host:port while the TUI runs")
	_ = viper.BindPFlag("metrics.listen_addr", rootCmd.Flags().Lookup("metrics-addr"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/moviefinder")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("MOVIEFINDER")
	// e.g., MOVIEFINDER_BACKEND_URL for backend.url
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// services is the object graph shared by the interactive and one-shot paths.
type services struct {
	cfg     *config.Config
	logger  *logging.Logger
	client  *search.HTTPClient
	bus     *event.Bus
	metrics *metrics.Collector
	ctrl    *query.Controller
}

func newServices(cfg *config.Config, logger *logging.Logger) *services {
	client := search.NewHTTPClient(cfg.Backend.SearchURL(),
		search.WithTimeout(cfg.Backend.Timeout()),
		search.WithHealthURL(cfg.Backend.HealthURL()),
		search.WithLogger(logger),
	)

	bus := event.NewBus(logger)
	collector := metrics.NewCollector(prometheus.NewRegistry())
	collector.Subscribe(bus)

	var searcher search.Searcher = client
	if cb := cfg.Backend.CircuitBreaker; cb.Enabled {
		searcher = search.NewBreakerSearcher(client, search.BreakerSettings{
			MaxFailures: cb.MaxFailures,
			OpenTimeout: cb.OpenTimeout(),
			OnStateChange: func(_, to string) {
				collector.SetBreakerState(to)
			},
		}, logger)
	}

	ctrl := query.NewController(searcher,
		query.WithBus(bus),
		query.WithLogger(logger),
		query.WithFailureMessage(query.FailureMessage(cfg.Backend.Host())),
	)

	return &services{
		cfg:     cfg,
		logger:  logger,
		client:  client,
		bus:     bus,
		metrics: collector,
		ctrl:    ctrl,
	}
}

// loadConfig reads and validates the effective configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// openLogger returns the debug log for cfg. The terminal belongs to the
// TUI or to command output, so logs only ever go to the log file.
func openLogger(cfg *config.Config) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	logger, err := logging.NewLogger(cfg.Logging.ResolveDir(), cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to open debug log: %w", err)
	}
	return logger, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
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

	config.WatchLogLevel(logger.SetLevel, func(err error) {
		logger.Warn("config reload rejected", "error", err.Error())
	})

	svc := newServices(cfg, logger)
	logger.Info("starting",
		"backend", cfg.Backend.SearchURL(),
		"breaker", cfg.Backend.CircuitBreaker.Enabled,
		"metrics_addr", cfg.Metrics.ListenAddr,
	)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	if addr := cfg.Metrics.ListenAddr; addr != "" {
		g.Go(func() error {
			return svc.metrics.Serve(gctx, addr, logger)
		})
	}

	g.Go(func() error {
		// Quitting the TUI stops everything else.
		defer cancel()
		app := tui.New(svc.ctrl, tui.Options{
			Host:             cfg.Backend.Host(),
			Health:           svc.client,
			HealthTimeout:    healthTimeout,
			MarkdownAnalysis: cfg.TUI.MarkdownAnalysis,
			MaxPlotChars:     cfg.TUI.MaxPlotChars,
			AltScreen:        cfg.TUI.AltScreen,
			Logger:           logger,
		})
		return app.Run(gctx)
	})

	err = g.Wait()
	logger.Info("exiting", "error", errString(err))
	return err
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/moviefinder/internal/errors"
	"github.com/Iron-Ham/moviefinder/internal/search"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the recommendation backend is reachable",
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
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

	client := search.NewHTTPClient(cfg.Backend.SearchURL(),
		search.WithHealthURL(cfg.Backend.HealthURL()),
		search.WithLogger(logger),
	)

	ctx, cancel := context.WithTimeout(cmd.Context(), healthTimeout)
	defer cancel()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Backend: %s\n", cfg.Backend.HealthURL())

	status, err := client.Health(ctx)
	if err != nil {
		logger.Warn("health check failed", "error", err.Error())
		if errors.Is(err, errors.ErrBackendUnreachable) {
			return fmt.Errorf("backend unreachable at %s", cfg.Backend.Host())
		}
		return fmt.Errorf("backend unhealthy: %w", err)
	}

	fmt.Fprintf(out, "Status:  %s\n", status.Status)
	if status.Message != "" {
		fmt.Fprintf(out, "Message: %s\n", status.Message)
	}
	if !status.Healthy() {
		return fmt.Errorf("backend reported status %q", status.Status)
	}
	return nil
}

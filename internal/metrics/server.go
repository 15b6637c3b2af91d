package metrics

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/Iron-Ham/moviefinder/internal/errors"
	"github.com/Iron-Ham/moviefinder/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// Serve exposes /metrics on addr until ctx is canceled. It returns nil on
// a clean shutdown.
func (c *Collector) Serve(ctx context.Context, addr string, logger *logging.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", addr)
	}
	return c.serve(ctx, ln, logger)
}

func (c *Collector) serve(ctx context.Context, ln net.Listener, logger *logging.Logger) error {
	if logger == nil {
		logger = logging.NopLogger()
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics server listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "metrics server")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown metrics server")
	}
	<-errCh
	logger.Debug("metrics server stopped")
	return nil
}

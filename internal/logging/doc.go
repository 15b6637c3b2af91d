// Package logging provides structured logging for moviefinder.
//
// The TUI owns the terminal, so log output goes to a JSON-lines file in the
// configured log directory. Each search is correlated by its request ID,
// which is also sent to the backend as the X-Request-ID header.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("/path/to/logs", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.Info("search submitted", "query_len", 21)
//
// # Context Propagation
//
//	reqLogger := logger.WithComponent("query").WithRequest(id)
//	reqLogger.Warn("search failed", "kind", "unreachable", "error", err.Error())
//
// Output:
//
//	{"time":"...","level":"WARN","msg":"search failed","component":"query","request_id":"...","kind":"unreachable","error":"..."}
//
// # Live Level Changes
//
// All loggers derived from one root share a [log/slog.LevelVar]. Calling
// [Logger.SetLevel] on any of them takes effect immediately, which is how a
// config file edit changes verbosity without a restart.
package logging

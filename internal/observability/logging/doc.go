// Package logging builds the service's JSON slog logger and derives
// request-scoped loggers carrying the request id.
//
//	logger := logging.NewLogger(cfg.LogLevel)
//	logging.WithRequestID(r.Context(), logger).Info("article created")
package logging

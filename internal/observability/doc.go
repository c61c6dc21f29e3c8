// Package observability groups the service's logging and tracing helpers.
//
// Subpackages:
//   - logging: JSON slog logger and request-scoped loggers
//   - tracing: OpenTelemetry provider setup and HTTP span middleware
//
// Prometheus collectors live next to the HTTP layer that records them.
package observability

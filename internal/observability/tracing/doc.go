// Package tracing provides OpenTelemetry tracing for HTTP requests.
//
// Init installs the global tracer provider and propagators, and Middleware
// opens a server span per request named after the normalized route, e.g.
// "GET /articles/:id". The trace id is echoed in the X-Trace-Id header.
package tracing

// Package observability groups the logging, metrics and tracing
// infrastructure of the service.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus registry, build info and database pool collectors
//   - tracing: OpenTelemetry tracer and HTTP middleware
package observability

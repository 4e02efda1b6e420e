// Package observe provides cor.Observer implementations: structured logging
// with log/slog, Prometheus counters and OpenTelemetry span events. They are
// diagnostic only and never influence an outcome.
package observe

package observe

import (
	"context"
	"log/slog"

	"github.com/ib-77/cor3/pkg/cor"
)

// Logger writes one record per chain event. Forwarding is logged at debug,
// everything else at info; rejected requests at warn.
type Logger struct {
	logger *slog.Logger
}

func NewLogger(logger *slog.Logger) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logger{logger: logger}
}

func (l *Logger) Observe(ctx context.Context, e cor.Event) {
	attrs := []any{
		"request_id", e.RequestId.String(),
		"hop", e.Hop,
	}
	if e.Handler != "" {
		attrs = append(attrs, "handler", e.Handler)
	}

	switch e.Kind {
	case cor.EventForwarded:
		l.logger.DebugContext(ctx, "passing request on", append(attrs, "next", e.Next)...)
	case cor.EventResolved:
		l.logger.InfoContext(ctx, "request resolved", attrs...)
	case cor.EventExhausted:
		l.logger.InfoContext(ctx, "chain exhausted, request unresolved", attrs...)
	case cor.EventRejected:
		l.logger.WarnContext(ctx, "request rejected", append(attrs, "error", e.Err)...)
	}
}

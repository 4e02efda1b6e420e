package pipeline

import (
	"log/slog"

	"github.com/ib-77/cor3/pkg/cor"
	"go.opentelemetry.io/otel/trace"
)

type Option[V any] func(*Pipeline[V])

// WithValidator rejects requests before traversal. Several validators run in
// the order they were given.
func WithValidator[V any](v cor.Validator[V]) Option[V] {
	return func(p *Pipeline[V]) {
		if !cor.IsNil(v) {
			p.validators = append(p.validators, v)
		}
	}
}

func WithObserver[V any](o cor.Observer) Option[V] {
	return func(p *Pipeline[V]) {
		if !cor.IsNil(o) {
			p.observers = append(p.observers, o)
		}
	}
}

// WithTracer starts one span per Submit.
func WithTracer[V any](t trace.Tracer) Option[V] {
	return func(p *Pipeline[V]) {
		if t != nil {
			p.tracer = t
		}
	}
}

func WithLogger[V any](l *slog.Logger) Option[V] {
	return func(p *Pipeline[V]) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithName labels spans and log records.
func WithName[V any](name string) Option[V] {
	return func(p *Pipeline[V]) {
		p.name = name
	}
}

package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ib-77/cor3/pkg/cor"
	"github.com/ib-77/cor3/pkg/cor/chain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const defaultName = "cor"

// Pipeline submits requests to a chain rooted at head. It keeps no state
// between submissions.
type Pipeline[V any] struct {
	name       string
	head       *cor.Handler[V]
	validators []cor.Validator[V]
	observers  []cor.Observer
	observer   cor.Observer
	tracer     trace.Tracer
	logger     *slog.Logger

	freeze    sync.Once
	freezeErr error
}

// New validates the chain rooted at head. The chain may still be relinked
// until the first Submit, which validates it again and freezes it.
func New[V any](head *cor.Handler[V], opts ...Option[V]) (*Pipeline[V], error) {
	if err := chain.Validate(head); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	p := &Pipeline[V]{
		name:   defaultName,
		head:   head,
		tracer: noop.NewTracerProvider().Tracer(defaultName),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if len(p.observers) > 0 {
		p.observer = cor.Observers(p.observers...)
	}

	return p, nil
}

// FromHandlers links handlers in order and builds a Pipeline over them.
func FromHandlers[V any](handlers []*cor.Handler[V], opts ...Option[V]) (*Pipeline[V], error) {
	head, err := chain.Of(handlers...)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	return New(head, opts...)
}

func (p *Pipeline[V]) Name() string {
	return p.name
}

func (p *Pipeline[V]) Head() *cor.Handler[V] {
	return p.head
}

func (p *Pipeline[V]) Len() int {
	return chain.Len(p.head)
}

// Frozen reports whether the first Submit has happened.
func (p *Pipeline[V]) Frozen() bool {
	return p.head.Frozen()
}

// Submit walks the chain for one request and returns the outcome. The error is
// a *cor.ConfigurationError when the chain was broken between New and the
// first Submit, or wraps cor.ErrInvalidRequest when a validator rejected the
// request; in both cases the chain is not entered.
func (p *Pipeline[V]) Submit(ctx context.Context, req cor.Request[V]) (cor.Outcome, error) {
	if err := p.freezeChain(); err != nil {
		return cor.Outcome{}, err
	}

	ctx, span := p.tracer.Start(ctx, p.name+".submit",
		trace.WithAttributes(attribute.String("cor.request_id", req.Id().String())))
	defer span.End()

	if p.observer != nil {
		ctx = cor.WithObserver(ctx, cor.Observers(cor.ObserverFrom(ctx), p.observer))
	}

	if err := p.validate(ctx, req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid request")
		p.logger.DebugContext(ctx, "request rejected",
			"pipeline", p.name, "request_id", req.Id(), "error", err)
		return cor.Outcome{}, err
	}

	out := p.head.Handle(ctx, req)

	span.SetAttributes(
		attribute.String("cor.status", out.Status().String()),
		attribute.String("cor.resolved_by", out.By()),
		attribute.Int("cor.hops", out.Hops()),
	)
	return out, nil
}

func (p *Pipeline[V]) validate(ctx context.Context, req cor.Request[V]) error {
	for _, v := range p.validators {
		if err := v.Validate(ctx, req); err != nil {
			if o := cor.ObserverFrom(ctx); o != nil {
				o.Observe(ctx, cor.Event{
					Kind: cor.EventRejected, RequestId: req.Id(), Err: err,
				})
			}
			return cor.Invalid(req.Id(), err)
		}
	}
	return nil
}

func (p *Pipeline[V]) freezeChain() error {
	p.freeze.Do(func() {
		if err := chain.Freeze(p.head); err != nil {
			p.freezeErr = fmt.Errorf("pipeline: %w", err)
			p.logger.Error("chain rejected on first submit", "pipeline", p.name, "error", err)
			return
		}
		p.logger.Debug("chain frozen", "pipeline", p.name, "handlers", chain.Len(p.head))
	})
	return p.freezeErr
}

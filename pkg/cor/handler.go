package cor

import (
	"context"
	"sync"
	"sync/atomic"
)

// Handler is one link of a chain: a named acceptance rule and at most one
// successor. The successor is a reference only, the chain owns every handler.
type Handler[V any] struct {
	name   string
	rule   Rule[V]
	next   atomic.Pointer[Handler[V]]
	frozen atomic.Bool

	mu  sync.Mutex
	err error
}

func NewHandler[V any](name string, rule Rule[V]) *Handler[V] {
	return &Handler[V]{name: name, rule: rule}
}

// HandlerFunc builds a handler from a bare predicate.
func HandlerFunc[V any](name string, accept Predicate[V]) *Handler[V] {
	return NewHandler(name, Match(name, accept))
}

func (h *Handler[V]) Name() string {
	return h.name
}

func (h *Handler[V]) Rule() Rule[V] {
	return h.rule
}

// Next returns the successor, nil at the tail.
func (h *Handler[V]) Next() *Handler[V] {
	return h.next.Load()
}

// CanHandle evaluates the acceptance rule. A handler without a predicate
// rejects everything.
func (h *Handler[V]) CanHandle(req Request[V]) bool {
	if h.rule.Accept == nil {
		return false
	}
	return h.rule.Accept(req.Class())
}

// Handle resolves the request here or forwards it down the chain. An outcome
// produced downstream is returned unchanged.
func (h *Handler[V]) Handle(ctx context.Context, req Request[V]) Outcome {
	return h.handle(ctx, req, 1)
}

func (h *Handler[V]) handle(ctx context.Context, req Request[V], hop int) Outcome {
	if h.CanHandle(req) {
		emit(ctx, Event{Kind: EventResolved, RequestId: req.Id(), Handler: h.name, Hop: hop})
		return Resolved(req.Id(), h.name, hop)
	}

	next := h.next.Load()
	if next == nil {
		emit(ctx, Event{Kind: EventExhausted, RequestId: req.Id(), Handler: h.name, Hop: hop})
		return Unresolved(req.Id(), hop)
	}

	emit(ctx, Event{Kind: EventForwarded, RequestId: req.Id(), Handler: h.name, Next: next.name, Hop: hop})
	return next.handle(ctx, req, hop+1)
}

// Link sets the successor and returns it, so a.Link(b).Link(c) builds a -> b -> c.
// Re-linking overwrites the previous successor. On a frozen handler the link is
// dropped and ErrFrozen is recorded, see Err.
func (h *Handler[V]) Link(next *Handler[V]) *Handler[V] {
	h.record(h.SetNext(next))
	return next
}

// SetNext is Link with an explicit error. Linking a handler to itself is
// applied (the chain validation reports it) but still returns ErrSelfLink.
func (h *Handler[V]) SetNext(next *Handler[V]) error {
	if h.frozen.Load() {
		return Misconfigured(h.name, ErrFrozen)
	}
	h.next.Store(next)
	if next == h {
		return Misconfigured(h.name, ErrSelfLink)
	}
	h.record(nil)
	return nil
}

// Unlink turns the handler into a tail.
func (h *Handler[V]) Unlink() error {
	return h.SetNext(nil)
}

// Freeze forbids further linking. It cannot be undone.
func (h *Handler[V]) Freeze() {
	h.frozen.Store(true)
}

func (h *Handler[V]) Frozen() bool {
	return h.frozen.Load()
}

// Err returns the error of the last Link call, nil once a later link has
// been applied cleanly. Chain validation inspects the links themselves.
func (h *Handler[V]) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

func (h *Handler[V]) record(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.err = err
}

func (h *Handler[V]) String() string {
	return h.name
}

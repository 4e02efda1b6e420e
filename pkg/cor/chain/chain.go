package chain

import (
	"github.com/ib-77/cor3/pkg/cor"
)

// Of links handlers left to right and returns the head of the validated chain.
// Handlers are only linked once the whole list has been checked, so a failed
// call leaves every handler as it was.
func Of[V any](handlers ...*cor.Handler[V]) (*cor.Handler[V], error) {
	if len(handlers) == 0 {
		return nil, cor.Misconfigured("", cor.ErrEmptyChain)
	}

	seen := make(map[*cor.Handler[V]]struct{}, len(handlers))
	for _, h := range handlers {
		if h == nil {
			return nil, cor.Misconfigured("", cor.ErrEmptyChain)
		}
		if _, ok := seen[h]; ok {
			return nil, cor.Misconfigured(h.Name(), cor.ErrCycle)
		}
		seen[h] = struct{}{}
		if h.Frozen() {
			return nil, cor.Misconfigured(h.Name(), cor.ErrFrozen)
		}
	}

	// the last handler always becomes the tail, dropping any earlier link
	for i, h := range handlers {
		var next *cor.Handler[V]
		if i+1 < len(handlers) {
			next = handlers[i+1]
		}
		if err := h.SetNext(next); err != nil {
			return nil, err
		}
	}

	head := handlers[0]
	if err := Validate(head); err != nil {
		return nil, err
	}
	return head, nil
}

// Builder collects handlers for Of.
type Builder[V any] struct {
	handlers []*cor.Handler[V]
}

func New[V any]() *Builder[V] {
	return &Builder[V]{}
}

// Then appends a handler to the tail.
func (b *Builder[V]) Then(h *cor.Handler[V]) *Builder[V] {
	b.handlers = append(b.handlers, h)
	return b
}

// ThenRule appends a new handler built from name and rule.
func (b *Builder[V]) ThenRule(name string, rule cor.Rule[V]) *Builder[V] {
	return b.Then(cor.NewHandler(name, rule))
}

func (b *Builder[V]) Build() (*cor.Handler[V], error) {
	return Of(b.handlers...)
}

// Walk visits handlers from head in chain order until fn returns false, the
// tail is reached or a handler is seen twice.
func Walk[V any](head *cor.Handler[V], fn func(pos int, h *cor.Handler[V]) bool) {
	seen := make(map[*cor.Handler[V]]struct{})
	for pos, h := 0, head; h != nil; pos, h = pos+1, h.Next() {
		if _, ok := seen[h]; ok {
			return
		}
		seen[h] = struct{}{}
		if !fn(pos, h) {
			return
		}
	}
}

// Handlers returns the chain as a slice, head first.
func Handlers[V any](head *cor.Handler[V]) []*cor.Handler[V] {
	out := make([]*cor.Handler[V], 0)
	Walk(head, func(_ int, h *cor.Handler[V]) bool {
		out = append(out, h)
		return true
	})
	return out
}

func Len[V any](head *cor.Handler[V]) int {
	return len(Handlers(head))
}

// Validate checks that head starts a finite, acyclic chain of uniquely named
// handlers with acceptance predicates. Errors are *cor.ConfigurationError.
func Validate[V any](head *cor.Handler[V]) error {
	if head == nil {
		return cor.Misconfigured("", cor.ErrEmptyChain)
	}

	seen := make(map[*cor.Handler[V]]struct{})
	names := make(map[string]struct{})

	for h := head; h != nil; h = h.Next() {
		if _, ok := seen[h]; ok {
			return cor.Misconfigured(h.Name(), cor.ErrCycle)
		}
		seen[h] = struct{}{}

		if h.Next() == h {
			return cor.Misconfigured(h.Name(), cor.ErrSelfLink)
		}
		if h.Rule().Accept == nil {
			return cor.Misconfigured(h.Name(), cor.ErrNilRule)
		}
		if _, ok := names[h.Name()]; ok {
			return cor.Misconfigured(h.Name(), cor.ErrDuplicateName)
		}
		names[h.Name()] = struct{}{}
	}

	return nil
}

// Freeze validates the chain and then freezes every handler in it.
func Freeze[V any](head *cor.Handler[V]) error {
	if err := Validate(head); err != nil {
		return err
	}
	Walk(head, func(_ int, h *cor.Handler[V]) bool {
		h.Freeze()
		return true
	})
	return nil
}

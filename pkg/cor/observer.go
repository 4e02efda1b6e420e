package cor

import (
	"context"

	"github.com/google/uuid"
)

type EventKind int

const (
	// EventForwarded is emitted by a handler passing a request to its successor.
	EventForwarded EventKind = iota
	EventResolved
	// EventExhausted is emitted by a rejecting tail handler.
	EventExhausted
	// EventRejected is emitted when a request fails validation.
	EventRejected
)

func (k EventKind) String() string {
	switch k {
	case EventForwarded:
		return "forwarded"
	case EventResolved:
		return "resolved"
	case EventExhausted:
		return "exhausted"
	case EventRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Event is a diagnostic record of one traversal step.
type Event struct {
	Kind      EventKind
	RequestId uuid.UUID
	Handler   string
	Next      string
	// Hop is the 1-based position of Handler in the chain.
	Hop int
	Err error
}

// Observer receives traversal events. It must not influence the outcome.
type Observer interface {
	Observe(ctx context.Context, e Event)
}

type ObserverFunc func(ctx context.Context, e Event)

func (f ObserverFunc) Observe(ctx context.Context, e Event) {
	f(ctx, e)
}

type observers []Observer

func (o observers) Observe(ctx context.Context, e Event) {
	for _, obs := range o {
		obs.Observe(ctx, e)
	}
}

// Observers fans events out to every non-nil observer in order.
func Observers(list ...Observer) Observer {
	out := make(observers, 0, len(list))
	for _, o := range list {
		if !IsNil(o) {
			out = append(out, o)
		}
	}
	return out
}

type OptionKey string

const ObserverOptionKey OptionKey = "observer"

func WithObserver(ctx context.Context, o Observer) context.Context {
	return context.WithValue(ctx, ObserverOptionKey, o)
}

// ObserverFrom returns the observer carried by ctx, or nil.
func ObserverFrom(ctx context.Context) Observer {
	o, ok := ctx.Value(ObserverOptionKey).(Observer)
	if ok {
		return o
	}
	return nil
}

func emit(ctx context.Context, e Event) {
	if o := ObserverFrom(ctx); o != nil {
		o.Observe(ctx, e)
	}
}

package mass

import (
	"context"
	"errors"
	"sort"

	"github.com/ib-77/cor3/pkg/cor"
	"github.com/ib-77/cor3/pkg/cor/core"
	"github.com/ib-77/cor3/pkg/cor/solo"
)

const DefaultWorkers = 4

// ErrNotSubmitted marks a request that was never handed to the chain because
// the batch was cancelled first.
var ErrNotSubmitted = errors.New("not submitted")

// Settled is one finished submission.
type Settled[V any] struct {
	Index   int
	Request cor.Request[V]
	Outcome cor.Outcome
	Err     error
}

func (s Settled[V]) IsResolved() bool {
	return s.Err == nil && s.Outcome.IsResolved()
}

// Submitting lifts a single submission onto a channel. The channel is closed
// without a value when ctx is done first.
func Submitting[V any](ctx context.Context, s cor.Submitter[V], req cor.Request[V]) <-chan Settled[V] {
	out := make(chan Settled[V], 1)

	go func() {
		defer close(out)

		if ctx.Err() != nil {
			return
		}
		o, err := s.Submit(ctx, req)
		out <- Settled[V]{Request: req, Outcome: o, Err: err}
	}()

	return out
}

// Settling starts workers reading from inputCh. The worker count comes from
// core.WithWorkerOptions, DefaultWorkers otherwise.
func Settling[V any](ctx context.Context, s cor.Submitter[V],
	inputCh <-chan core.Indexed[cor.Request[V]],
	onSettled func(ctx context.Context, settled Settled[V])) <-chan Settled[V] {

	engine := func(ctx context.Context, in core.Indexed[cor.Request[V]]) Settled[V] {
		o, err := s.Submit(ctx, in.Value)
		return Settled[V]{Index: in.Index, Request: in.Value, Outcome: o, Err: err}
	}

	return core.Run(ctx, inputCh, engine, onSettled, core.GetWorkerMaxCount(ctx, DefaultWorkers))
}

// SubmitMany resolves every request and returns the results in input order.
// Requests not yet picked up when ctx is done are left out.
func SubmitMany[V any](ctx context.Context, s cor.Submitter[V], reqs []cor.Request[V]) []Settled[V] {
	settled := core.FromChanMany(ctx, Settling(ctx, s, core.ToChanManyIndexed(ctx, reqs), nil))
	sort.Slice(settled, func(i, j int) bool { return settled[i].Index < settled[j].Index })
	return settled
}

type FinallyHandlers[V, Out any] struct {
	OnResolved   func(ctx context.Context, req cor.Request[V], out cor.Outcome) Out
	OnUnresolved func(ctx context.Context, req cor.Request[V], out cor.Outcome) Out
	OnInvalid    func(ctx context.Context, req cor.Request[V], err error) Out
}

// Finalizing reduces each settled submission through handlers, preserving
// the order of inputCh.
func Finalizing[V, Out any](ctx context.Context, inputCh <-chan Settled[V],
	handlers FinallyHandlers[V, Out]) <-chan Out {

	out := make(chan Out)

	go func() {
		defer close(out)

		for {
			select {
			case <-ctx.Done():
				return
			case in, ok := <-inputCh:
				if !ok {
					return
				}

				res := finally(ctx, in, handlers)

				select {
				case <-ctx.Done():
					return
				case out <- res:
				}
			}
		}
	}()

	return out
}

func finally[V, Out any](ctx context.Context, in Settled[V], handlers FinallyHandlers[V, Out]) Out {
	var onResolved, onUnresolved func(context.Context, cor.Outcome) Out
	var onInvalid func(context.Context, error) Out

	if handlers.OnResolved != nil {
		onResolved = func(ctx context.Context, o cor.Outcome) Out { return handlers.OnResolved(ctx, in.Request, o) }
	}
	if handlers.OnUnresolved != nil {
		onUnresolved = func(ctx context.Context, o cor.Outcome) Out { return handlers.OnUnresolved(ctx, in.Request, o) }
	}
	if handlers.OnInvalid != nil {
		onInvalid = func(ctx context.Context, err error) Out { return handlers.OnInvalid(ctx, in.Request, err) }
	}

	return solo.Finally(ctx, in.Outcome, in.Err, onResolved, onUnresolved, onInvalid)
}

// Summary counts settled submissions by kind.
type Summary struct {
	Resolved   int
	Unresolved int
	Invalid    int
	Skipped    int
	ByHandler  map[string]int
}

func Summarize[V any](settled []Settled[V]) Summary {
	sum := Summary{ByHandler: make(map[string]int)}
	for _, s := range settled {
		switch {
		case errors.Is(s.Err, ErrNotSubmitted):
			sum.Skipped++
		case s.Err != nil:
			sum.Invalid++
		case s.Outcome.IsResolved():
			sum.Resolved++
			sum.ByHandler[s.Outcome.By()]++
		default:
			sum.Unresolved++
		}
	}
	return sum
}

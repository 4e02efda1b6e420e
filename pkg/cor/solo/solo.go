package solo

import (
	"context"

	"github.com/ib-77/cor3/pkg/cor"
)

// Finally collapses a submission result. A non-nil err selects onInvalid
// whatever the outcome holds.
func Finally[Out any](ctx context.Context, out cor.Outcome, err error,
	onResolved func(ctx context.Context, out cor.Outcome) Out,
	onUnresolved func(ctx context.Context, out cor.Outcome) Out,
	onInvalid func(ctx context.Context, err error) Out) Out {

	var zero Out
	switch {
	case err != nil:
		if onInvalid != nil {
			return onInvalid(ctx, err)
		}
	case out.IsResolved():
		if onResolved != nil {
			return onResolved(ctx, out)
		}
	default:
		if onUnresolved != nil {
			return onUnresolved(ctx, out)
		}
	}
	return zero
}

// Submit sends req through s and collapses the result with Finally.
func Submit[V, Out any](ctx context.Context, s cor.Submitter[V], req cor.Request[V],
	onResolved func(ctx context.Context, out cor.Outcome) Out,
	onUnresolved func(ctx context.Context, out cor.Outcome) Out,
	onInvalid func(ctx context.Context, err error) Out) Out {

	out, err := s.Submit(ctx, req)
	return Finally(ctx, out, err, onResolved, onUnresolved, onInvalid)
}

func Tee(ctx context.Context, out cor.Outcome, err error,
	onResolved func(ctx context.Context, out cor.Outcome)) (cor.Outcome, error) {

	if err == nil && out.IsResolved() && onResolved != nil {
		onResolved(ctx, out)
	}
	return out, err
}

func DoubleTee(ctx context.Context, out cor.Outcome, err error,
	onResolved func(ctx context.Context, out cor.Outcome),
	onUnresolved func(ctx context.Context, out cor.Outcome),
	onInvalid func(ctx context.Context, err error)) (cor.Outcome, error) {

	Finally(ctx, out, err,
		func(ctx context.Context, out cor.Outcome) struct{} {
			if onResolved != nil {
				onResolved(ctx, out)
			}
			return struct{}{}
		},
		func(ctx context.Context, out cor.Outcome) struct{} {
			if onUnresolved != nil {
				onUnresolved(ctx, out)
			}
			return struct{}{}
		},
		func(ctx context.Context, err error) struct{} {
			if onInvalid != nil {
				onInvalid(ctx, err)
			}
			return struct{}{}
		})
	return out, err
}

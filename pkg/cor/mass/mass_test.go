package mass

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/ib-77/cor3/pkg/cor"
	"github.com/ib-77/cor3/pkg/cor/core"
	"github.com/ib-77/cor3/pkg/cor/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approval(t *testing.T, opts ...pipeline.Option[float64]) *pipeline.Pipeline[float64] {
	t.Helper()
	p, err := pipeline.FromHandlers([]*cor.Handler[float64]{
		cor.NewHandler("Supervisor", cor.AtMost(1000.0)),
		cor.NewHandler("Manager", cor.AtMost(5000.0)),
		cor.NewHandler("Director", cor.AtMost(100000.0)),
	}, opts...)
	require.NoError(t, err)
	return p
}

func requests(amounts ...float64) []cor.Request[float64] {
	out := make([]cor.Request[float64], 0, len(amounts))
	for _, a := range amounts {
		out = append(out, cor.Of(a))
	}
	return out
}

func TestSubmitMany_OrderedResults(t *testing.T) {
	t.Parallel()
	ctx := core.WithWorkerOptions(context.Background(), 3)
	p := approval(t)

	amounts := make([]float64, 0, 60)
	for i := 0; i < 20; i++ {
		amounts = append(amounts, 500, 3000, 1e6)
	}
	reqs := requests(amounts...)

	settled := SubmitMany[float64](ctx, p, reqs)
	require.Len(t, settled, len(reqs))

	want := []string{"Supervisor", "Manager", ""}
	for i, s := range settled {
		assert.Equal(t, i, s.Index)
		assert.Equal(t, reqs[i].Id(), s.Request.Id())
		assert.Equal(t, reqs[i].Id(), s.Outcome.RequestId())
		assert.NoError(t, s.Err)
		assert.Equal(t, want[i%3], s.Outcome.By(), "index %d", i)
	}

	sum := Summarize(settled)
	assert.Equal(t, 40, sum.Resolved)
	assert.Equal(t, 20, sum.Unresolved)
	assert.Equal(t, 0, sum.Invalid)
	assert.Equal(t, 20, sum.ByHandler["Manager"])
}

func TestSubmitMany_InvalidRequests(t *testing.T) {
	t.Parallel()
	p := approval(t, pipeline.WithValidator[float64](cor.ValidatorFunc[float64](
		func(_ context.Context, req cor.Request[float64]) error {
			if req.Class() < 0 {
				return errors.New("negative")
			}
			return nil
		})))

	settled := SubmitMany[float64](context.Background(), p, requests(10, -1, 20))
	require.Len(t, settled, 3)
	assert.True(t, settled[0].IsResolved())
	assert.True(t, cor.IsInvalidRequest(settled[1].Err))
	assert.False(t, settled[1].IsResolved())
	assert.Equal(t, 1, Summarize(settled).Invalid)
}

func TestSummarize_Skipped(t *testing.T) {
	t.Parallel()
	sum := Summarize([]Settled[float64]{
		{Index: 0, Err: ErrNotSubmitted},
		{Index: 1, Err: cor.Invalid(cor.Of(1.0).Id(), errors.New("bad"))},
	})
	assert.Equal(t, 1, sum.Skipped)
	assert.Equal(t, 1, sum.Invalid)
	assert.Equal(t, 0, sum.Resolved+sum.Unresolved)
}

func TestSubmitMany_Empty(t *testing.T) {
	t.Parallel()
	assert.Empty(t, SubmitMany[float64](context.Background(), approval(t), nil))
}

func TestSubmitMany_CancelledBeforeStart(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Empty(t, SubmitMany[float64](ctx, approval(t), requests(1, 2, 3)))
}

func TestSettling_OnSettledCalledPerRequest(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	var n atomic.Int32
	out := Settling[float64](ctx, approval(t),
		core.ToChanManyIndexed(ctx, requests(1, 2, 3, 4)),
		func(context.Context, Settled[float64]) { n.Add(1) })

	got := core.FromChanMany(ctx, out)
	assert.Len(t, got, 4)
	assert.EqualValues(t, 4, n.Load())
}

func TestSubmitting(t *testing.T) {
	t.Parallel()
	p := approval(t)

	s, ok := <-Submitting[float64](context.Background(), p, cor.Of(3000.0))
	require.True(t, ok)
	assert.Equal(t, "Manager", s.Outcome.By())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, ok = <-Submitting[float64](ctx, p, cor.Of(3000.0))
	assert.False(t, ok)
}

func TestFinalizing(t *testing.T) {
	t.Parallel()
	ctx := core.WithWorkerOptions(context.Background(), 1)
	p := approval(t, pipeline.WithValidator[float64](cor.ValidatorFunc[float64](
		func(_ context.Context, req cor.Request[float64]) error {
			if req.Class() == 0 {
				return errors.New("zero")
			}
			return nil
		})))

	handlers := FinallyHandlers[float64, string]{
		OnResolved: func(_ context.Context, req cor.Request[float64], out cor.Outcome) string {
			return fmt.Sprintf("%v:%s", req.Class(), out.By())
		},
		OnUnresolved: func(_ context.Context, req cor.Request[float64], _ cor.Outcome) string {
			return fmt.Sprintf("%v:unresolved", req.Class())
		},
		OnInvalid: func(_ context.Context, req cor.Request[float64], _ error) string {
			return fmt.Sprintf("%v:invalid", req.Class())
		},
	}

	out := core.FromChanMany(ctx, Finalizing(ctx,
		Settling[float64](ctx, p, core.ToChanManyIndexed(ctx, requests(500, 0, 1e9)), nil),
		handlers))

	assert.Equal(t, []string{"500:Supervisor", "0:invalid", "1e+09:unresolved"}, out)
}

package core

import (
	"context"
	"sort"
	"sync/atomic"
	"testing"
)

func TestGetWorkerMaxCount(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	if got := GetWorkerMaxCount(ctx, 4); got != 4 {
		t.Fatalf("expected default 4, got %d", got)
	}
	if got := GetWorkerMaxCount(WithWorkerOptions(ctx, 2), 4); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	if got := GetWorkerMaxCount(WithWorkerOptions(ctx, 0), 4); got != 4 {
		t.Fatalf("expected default for non-positive option, got %d", got)
	}
}

func TestToChanMany_FromChanMany(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	got := FromChanMany(ctx, ToChanMany(ctx, []int{1, 2, 3}))
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("expected [1 2 3], got %v", got)
	}
}

func TestToChanMany_CancelledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := FromChanMany(context.Background(), ToChanMany(ctx, []int{1, 2, 3}))
	if len(got) != 0 {
		t.Fatalf("expected nothing from a cancelled feed, got %v", got)
	}
}

func TestToChanManyIndexed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	got := FromChanMany(ctx, ToChanManyIndexed(ctx, []string{"a", "b"}))
	if len(got) != 2 || got[0].Index != 0 || got[1].Value != "b" {
		t.Fatalf("unexpected %v", got)
	}
}

func TestRun_ProcessesEverything(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	var delivered atomic.Int32

	out := Run(ctx, ToChanMany(ctx, []int{1, 2, 3, 4, 5}),
		func(_ context.Context, v int) int { return v * 10 },
		func(context.Context, int) { delivered.Add(1) },
		3)

	got := FromChanMany(ctx, out)
	sort.Ints(got)
	want := []int{10, 20, 30, 40, 50}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if delivered.Load() != 5 {
		t.Fatalf("expected 5 deliveries, got %d", delivered.Load())
	}
}

func TestRun_ZeroLinesStillRuns(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	got := FromChanMany(ctx, Run(ctx, ToChanMany(ctx, []int{7}),
		func(_ context.Context, v int) int { return v }, nil, 0))
	if len(got) != 1 || got[0] != 7 {
		t.Fatalf("expected [7], got %v", got)
	}
}

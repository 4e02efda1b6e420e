package pipeline

import (
	"context"
	"fmt"
	"testing"

	"github.com/ib-77/cor3/pkg/cor"
	"pgregory.net/rapid"
)

// thresholdChain draws a chain of AtMost handlers named h0..hN-1.
func thresholdChain(t *rapid.T, tail cor.Rule[int]) ([]int, []*cor.Handler[int]) {
	ceilings := rapid.SliceOfN(rapid.IntRange(-50, 50), 1, 8).Draw(t, "ceilings")
	handlers := make([]*cor.Handler[int], 0, len(ceilings)+1)
	for i, c := range ceilings {
		handlers = append(handlers, cor.NewHandler(fmt.Sprintf("h%d", i), cor.AtMost(c)))
	}
	if tail.Accept != nil {
		handlers = append(handlers, cor.NewHandler("tail", tail))
	}
	return ceilings, handlers
}

func firstAccepting(ceilings []int, v int) (int, bool) {
	for i, c := range ceilings {
		if v <= c {
			return i, true
		}
	}
	return 0, false
}

func TestFirstMatchWinsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ceilings, handlers := thresholdChain(t, cor.Rule[int]{})
		p, err := FromHandlers(handlers)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		v := rapid.IntRange(-60, 60).Draw(t, "v")

		out, err := p.Submit(context.Background(), cor.Of(v))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		idx, ok := firstAccepting(ceilings, v)
		if !ok {
			if !out.IsUnresolved() || out.Hops() != len(ceilings) {
				t.Fatalf("expected Unresolved after %d hops, got %s after %d", len(ceilings), out, out.Hops())
			}
			return
		}
		if want := fmt.Sprintf("h%d", idx); out.By() != want || out.Hops() != idx+1 {
			t.Fatalf("expected Resolved(%s) at hop %d, got %s at hop %d", want, idx+1, out, out.Hops())
		}
	})
}

func TestDeterminismProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		_, handlers := thresholdChain(t, cor.Rule[int]{})
		p, err := FromHandlers(handlers)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		v := rapid.IntRange(-60, 60).Draw(t, "v")

		first, _ := p.Submit(context.Background(), cor.Of(v))
		for i := 0; i < 3; i++ {
			again, _ := p.Submit(context.Background(), cor.Of(v))
			if !first.Same(again) || first.Hops() != again.Hops() {
				t.Fatalf("submission %d differs: %s vs %s", i, first, again)
			}
		}
	})
}

func TestCatchAllTailProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ceilings, handlers := thresholdChain(t, cor.Always[int]())
		p, err := FromHandlers(handlers)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		v := rapid.IntRange(-60, 60).Draw(t, "v")

		out, err := p.Submit(context.Background(), cor.Of(v))
		if err != nil || !out.IsResolved() {
			t.Fatalf("catch-all chain must resolve, got %s (%v)", out, err)
		}
		if _, ok := firstAccepting(ceilings, v); !ok && out.By() != "tail" {
			t.Fatalf("expected Resolved(tail), got %s", out)
		}
	})
}

func TestUnresolvedTailProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 10).Draw(t, "n")
		handlers := make([]*cor.Handler[string], 0, n)
		for i := 0; i < n; i++ {
			handlers = append(handlers, cor.NewHandler(fmt.Sprintf("h%d", i), cor.Equals(fmt.Sprintf("level-%d", i))))
		}
		p, err := FromHandlers(handlers)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		label := rapid.StringMatching(`^other-[a-z]{1,6}$`).Draw(t, "label")
		out, err := p.Submit(context.Background(), cor.Of(label))
		if err != nil || !out.IsUnresolved() {
			t.Fatalf("expected Unresolved for %q, got %s (%v)", label, out, err)
		}
	})
}

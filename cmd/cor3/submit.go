package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ib-77/cor3/pkg/cor"
	"github.com/ib-77/cor3/pkg/cor/config"
	"github.com/ib-77/cor3/pkg/cor/core"
	"github.com/ib-77/cor3/pkg/cor/mass"
	"github.com/ib-77/cor3/pkg/cor/observe"
	"github.com/ib-77/cor3/pkg/cor/solo"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

func newSubmitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit VALUE...",
		Short: "Submit one request per value and print each outcome",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSubmit,
	}
	cmd.Flags().IntP("workers", "w", 1, "Requests resolved concurrently")
	cmd.Flags().Bool("metrics", false, "Print Prometheus metrics after the outcomes")
	return cmd
}

func runSubmit(cmd *cobra.Command, args []string) error {
	cfg, err := parseCLIConfig(cmd)
	if err != nil {
		return err
	}
	workers, err := cmd.Flags().GetInt("workers")
	if err != nil {
		return fmt.Errorf("failed to get workers flag: %w", err)
	}
	withMetrics, err := cmd.Flags().GetBool("metrics")
	if err != nil {
		return fmt.Errorf("failed to get metrics flag: %w", err)
	}

	logger := newLogger(cmd, cfg)
	def, err := config.Load(cfg.Chain)
	if err != nil {
		logger.Error("failed to load chain", "path", cfg.Chain, "error", err)
		return err
	}

	ctx := core.WithWorkerOptions(cmd.Context(), workers)
	metrics := observe.NewMetrics("cor")
	out := cmd.OutOrStdout()

	switch def.Kind {
	case config.KindCategory:
		handlers, err := def.CategoryHandlers()
		if err != nil {
			return err
		}
		p, err := build(ctx, def, handlers, logger, metrics)
		if err != nil {
			return err
		}
		reqs, errs := parseCategories(args)
		printSettled(out, args, settle[string](ctx, p, reqs, errs))
	default:
		handlers, err := def.AmountHandlers()
		if err != nil {
			return err
		}
		p, err := build(ctx, def, handlers, logger, metrics)
		if err != nil {
			return err
		}
		reqs, errs := parseAmounts(args)
		printSettled(out, args, settle[float64](ctx, p, reqs, errs))
	}

	if withMetrics {
		return writeMetrics(out, metrics)
	}
	return nil
}

// settle submits the well-formed requests and merges the parse errors back in
// at their original positions. Requests dropped by a cancelled batch keep
// mass.ErrNotSubmitted.
func settle[V any](ctx context.Context, s cor.Submitter[V], reqs []cor.Request[V], errs []error) []mass.Settled[V] {
	valid := make([]cor.Request[V], 0, len(reqs))
	positions := make([]int, 0, len(reqs))
	for i, req := range reqs {
		if errs[i] == nil {
			valid = append(valid, req)
			positions = append(positions, i)
		}
	}

	out := make([]mass.Settled[V], len(reqs))
	for i, err := range errs {
		if err != nil {
			out[i] = mass.Settled[V]{Index: i, Err: err}
		} else {
			out[i] = mass.Settled[V]{Index: i, Request: reqs[i], Err: mass.ErrNotSubmitted}
		}
	}
	for _, st := range mass.SubmitMany(ctx, s, valid) {
		pos := positions[st.Index]
		st.Index = pos
		out[pos] = st
	}
	return out
}

func printSettled[V any](w io.Writer, args []string, settled []mass.Settled[V]) {
	for i, s := range settled {
		fmt.Fprintf(w, "%s: %s\n", args[i], describe(s))
	}
	sum := mass.Summarize(settled)
	fmt.Fprintf(w, "resolved=%d unresolved=%d invalid=%d", sum.Resolved, sum.Unresolved, sum.Invalid)
	if sum.Skipped > 0 {
		fmt.Fprintf(w, " skipped=%d", sum.Skipped)
	}
	fmt.Fprintln(w)
}

func describe[V any](s mass.Settled[V]) string {
	return solo.Finally(context.Background(), s.Outcome, s.Err,
		func(_ context.Context, out cor.Outcome) string {
			return fmt.Sprintf("resolved by %s (%s)", out.By(), hops(out.Hops()))
		},
		func(_ context.Context, out cor.Outcome) string {
			return fmt.Sprintf("unresolved (%s)", hops(out.Hops()))
		},
		func(_ context.Context, err error) string {
			if errors.Is(err, mass.ErrNotSubmitted) {
				return "not submitted"
			}
			return "rejected: " + err.Error()
		})
}

func hops(n int) string {
	if n == 1 {
		return "1 hop"
	}
	return fmt.Sprintf("%d hops", n)
}

func writeMetrics(w io.Writer, m *observe.Metrics) error {
	families, err := m.Registry().Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}

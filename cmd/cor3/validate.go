package main

import (
	"fmt"

	"github.com/ib-77/cor3/pkg/cor"
	"github.com/ib-77/cor3/pkg/cor/chain"
	"github.com/ib-77/cor3/pkg/cor/config"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a chain definition and print the chain in order",
		Args:  cobra.NoArgs,
		RunE:  runValidate,
	}
}

func runValidate(cmd *cobra.Command, _ []string) error {
	cfg, err := parseCLIConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd, cfg)

	def, err := config.Load(cfg.Chain)
	if err != nil {
		return err
	}

	var lines []string
	switch def.Kind {
	case config.KindCategory:
		handlers, err := def.CategoryHandlers()
		if err != nil {
			return err
		}
		p, err := build(cmd.Context(), def, handlers, logger)
		if err != nil {
			return err
		}
		lines = describeChain(p.Head())
	default:
		handlers, err := def.AmountHandlers()
		if err != nil {
			return err
		}
		p, err := build(cmd.Context(), def, handlers, logger)
		if err != nil {
			return err
		}
		lines = describeChain(p.Head())
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "chain %q (%s) is valid\n", def.Name, def.Kind)
	for _, l := range lines {
		fmt.Fprintln(out, l)
	}
	if def.Admission != nil {
		fmt.Fprintf(out, "admission: %s\n", def.Admission.Query)
	}
	return nil
}

func describeChain[V any](head *cor.Handler[V]) []string {
	lines := make([]string, 0)
	chain.Walk(head, func(pos int, h *cor.Handler[V]) bool {
		lines = append(lines, fmt.Sprintf("%d. %s [%s]", pos+1, h.Name(), h.Rule()))
		return true
	})
	return lines
}

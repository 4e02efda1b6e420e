package main

import (
	"fmt"

	"github.com/ib-77/cor3/pkg/cor/chain"
	"github.com/ib-77/cor3/pkg/cor/config"
	"github.com/ib-77/cor3/pkg/cor/graph"
	"github.com/spf13/cobra"
)

func newGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph",
		Short: "Print the chain as a Graphviz DOT digraph",
		Args:  cobra.NoArgs,
		RunE:  runGraph,
	}
}

func runGraph(cmd *cobra.Command, _ []string) error {
	cfg, err := parseCLIConfig(cmd)
	if err != nil {
		return err
	}

	def, err := config.Load(cfg.Chain)
	if err != nil {
		return err
	}

	var dot string
	switch def.Kind {
	case config.KindCategory:
		handlers, err := def.CategoryHandlers()
		if err != nil {
			return err
		}
		head, err := chain.Of(handlers...)
		if err != nil {
			return err
		}
		dot, err = graph.DOT(def.Name, head)
		if err != nil {
			return err
		}
	default:
		handlers, err := def.AmountHandlers()
		if err != nil {
			return err
		}
		head, err := chain.Of(handlers...)
		if err != nil {
			return err
		}
		dot, err = graph.DOT(def.Name, head)
		if err != nil {
			return err
		}
	}

	fmt.Fprint(cmd.OutOrStdout(), dot)
	return nil
}

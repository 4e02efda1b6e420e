// Package graph renders a chain as a Graphviz DOT digraph.
package graph

import (
	"fmt"
	"strconv"

	gographviz "github.com/awalterschulze/gographviz"
	"github.com/ib-77/cor3/pkg/cor"
	"github.com/ib-77/cor3/pkg/cor/chain"
)

const unresolvedLabel = "unresolved"

// DOT returns the chain rooted at head as a left-to-right digraph. Each handler
// is a box labelled with its name and rule; the tail points to an
// "unresolved" sink unless its rule is cor.Always.
func DOT[V any](name string, head *cor.Handler[V]) (string, error) {
	if err := chain.Validate(head); err != nil {
		return "", err
	}

	graphName := strconv.Quote(name)
	g := gographviz.NewGraph()
	if err := g.SetName(graphName); err != nil {
		return "", fmt.Errorf("dot name: %w", err)
	}
	if err := g.SetDir(true); err != nil {
		return "", fmt.Errorf("dot dir: %w", err)
	}
	if err := g.AddAttr(graphName, "rankdir", "LR"); err != nil {
		return "", fmt.Errorf("dot attr: %w", err)
	}

	handlers := chain.Handlers(head)
	for _, h := range handlers {
		attrs := map[string]string{
			"shape": "box",
			"label": strconv.Quote(fmt.Sprintf("%s\n%s", h.Name(), h.Rule())),
		}
		if err := g.AddNode(graphName, strconv.Quote(h.Name()), attrs); err != nil {
			return "", fmt.Errorf("dot node %q: %w", h.Name(), err)
		}
	}

	for _, h := range handlers {
		if next := h.Next(); next != nil {
			if err := g.AddEdge(strconv.Quote(h.Name()), strconv.Quote(next.Name()), true,
				map[string]string{"label": strconv.Quote("pass")}); err != nil {
				return "", fmt.Errorf("dot edge %q: %w", h.Name(), err)
			}
		}
	}

	tail := handlers[len(handlers)-1]
	if !tail.Rule().CatchAll() {
		sink := sinkID(handlers)
		if err := g.AddNode(graphName, sink, map[string]string{
			"shape": "doublecircle",
			"label": strconv.Quote(unresolvedLabel),
		}); err != nil {
			return "", fmt.Errorf("dot node: %w", err)
		}
		if err := g.AddEdge(strconv.Quote(tail.Name()), sink, true,
			map[string]string{"style": "dashed"}); err != nil {
			return "", fmt.Errorf("dot edge: %w", err)
		}
	}

	return g.String(), nil
}

// sinkID returns a quoted node id no handler uses.
func sinkID[V any](handlers []*cor.Handler[V]) string {
	taken := make(map[string]struct{}, len(handlers))
	for _, h := range handlers {
		taken[h.Name()] = struct{}{}
	}
	id := unresolvedLabel
	for {
		if _, ok := taken[id]; !ok {
			return strconv.Quote(id)
		}
		id = "_" + id
	}
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ib-77/cor3/pkg/cor"
	"gopkg.in/yaml.v3"
)

type Kind string

const (
	// KindAmount classifies requests by a float64 value.
	KindAmount   Kind = "amount"
	KindCategory Kind = "category"
)

var ErrInvalidDefinition = errors.New("invalid chain definition")

// Definition is one chain as written in YAML.
type Definition struct {
	Name      string              `yaml:"name"`
	Kind      Kind                `yaml:"kind"`
	Handlers  []HandlerDefinition `yaml:"handlers"`
	Admission *Admission          `yaml:"admission,omitempty"`
}

// HandlerDefinition carries a name and exactly one rule.
type HandlerDefinition struct {
	Name    string   `yaml:"name"`
	AtMost  *float64 `yaml:"at_most,omitempty"`
	Below   *float64 `yaml:"below,omitempty"`
	AtLeast *float64 `yaml:"at_least,omitempty"`
	Equals  *string  `yaml:"equals,omitempty"`
	OneOf   []string `yaml:"one_of,omitempty"`
	Always  bool     `yaml:"always,omitempty"`
	Never   bool     `yaml:"never,omitempty"`
}

// Admission is a Rego module and the boolean query that admits a request.
type Admission struct {
	Query  string `yaml:"query"`
	Module string `yaml:"module"`
}

// Load reads path, expands environment variables and parses the definition.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chain file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Definition, error) {
	expanded := []byte(os.ExpandEnv(string(data)))

	var def Definition
	if err := yaml.Unmarshal(expanded, &def); err != nil {
		return nil, fmt.Errorf("failed to parse chain YAML: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

func (d *Definition) Validate() error {
	switch d.Kind {
	case KindAmount, KindCategory:
	case "":
		d.Kind = KindAmount
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidDefinition, d.Kind)
	}

	if len(d.Handlers) == 0 {
		return fmt.Errorf("%w: no handlers", ErrInvalidDefinition)
	}

	for i, h := range d.Handlers {
		if strings.TrimSpace(h.Name) == "" {
			return fmt.Errorf("%w: handler %d has no name", ErrInvalidDefinition, i)
		}
		if n := h.ruleCount(); n != 1 {
			return fmt.Errorf("%w: handler %q must set exactly one rule, found %d", ErrInvalidDefinition, h.Name, n)
		}
		if err := h.checkKind(d.Kind); err != nil {
			return err
		}
	}

	if d.Admission != nil && strings.TrimSpace(d.Admission.Module) == "" {
		return fmt.Errorf("%w: admission without module", ErrInvalidDefinition)
	}
	return nil
}

func (h HandlerDefinition) ruleCount() int {
	n := 0
	for _, set := range []bool{
		h.AtMost != nil, h.Below != nil, h.AtLeast != nil,
		h.Equals != nil, len(h.OneOf) > 0, h.Always, h.Never,
	} {
		if set {
			n++
		}
	}
	return n
}

func (h HandlerDefinition) checkKind(kind Kind) error {
	numeric := h.AtMost != nil || h.Below != nil || h.AtLeast != nil
	label := h.Equals != nil || len(h.OneOf) > 0
	switch {
	case kind == KindCategory && numeric:
		return fmt.Errorf("%w: handler %q uses a numeric rule on a category chain", ErrInvalidDefinition, h.Name)
	case kind == KindAmount && label:
		return fmt.Errorf("%w: handler %q uses a category rule on an amount chain", ErrInvalidDefinition, h.Name)
	}
	return nil
}

// AmountHandlers builds unlinked handlers for an amount chain.
func (d *Definition) AmountHandlers() ([]*cor.Handler[float64], error) {
	if d.Kind != KindAmount {
		return nil, fmt.Errorf("%w: chain %q is %s, not amount", ErrInvalidDefinition, d.Name, d.Kind)
	}

	out := make([]*cor.Handler[float64], 0, len(d.Handlers))
	for _, h := range d.Handlers {
		var rule cor.Rule[float64]
		switch {
		case h.AtMost != nil:
			rule = cor.AtMost(*h.AtMost)
		case h.Below != nil:
			rule = cor.Below(*h.Below)
		case h.AtLeast != nil:
			rule = cor.AtLeast(*h.AtLeast)
		case h.Always:
			rule = cor.Always[float64]()
		case h.Never:
			rule = cor.Never[float64]()
		default:
			return nil, fmt.Errorf("%w: handler %q has no amount rule", ErrInvalidDefinition, h.Name)
		}
		out = append(out, cor.NewHandler(h.Name, rule))
	}
	return out, nil
}

func (d *Definition) CategoryHandlers() ([]*cor.Handler[string], error) {
	if d.Kind != KindCategory {
		return nil, fmt.Errorf("%w: chain %q is %s, not category", ErrInvalidDefinition, d.Name, d.Kind)
	}

	out := make([]*cor.Handler[string], 0, len(d.Handlers))
	for _, h := range d.Handlers {
		var rule cor.Rule[string]
		switch {
		case h.Equals != nil:
			rule = cor.Equals(*h.Equals)
		case len(h.OneOf) > 0:
			rule = cor.OneOf(h.OneOf...)
		case h.Always:
			rule = cor.Always[string]()
		case h.Never:
			rule = cor.Never[string]()
		default:
			return nil, fmt.Errorf("%w: handler %q has no category rule", ErrInvalidDefinition, h.Name)
		}
		out = append(out, cor.NewHandler(h.Name, rule))
	}
	return out, nil
}

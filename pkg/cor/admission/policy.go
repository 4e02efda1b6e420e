package admission

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ib-77/cor3/pkg/cor"
	"github.com/open-policy-agent/opa/v1/rego"
)

const (
	DefaultQuery  = "data.cor.allow"
	defaultModule = "admission.rego"
)

var (
	ErrDenied    = errors.New("denied by admission policy")
	ErrUndefined = errors.New("admission policy decision undefined")
)

// Policy is a prepared Rego query. It is safe for concurrent use.
type Policy struct {
	query    string
	prepared rego.PreparedEvalQuery
}

// New compiles module and prepares query against it. An empty query selects
// DefaultQuery. Compilation failures are configuration errors.
func New(ctx context.Context, module, query string) (*Policy, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		query = DefaultQuery
	}

	r := rego.New(
		rego.Query(query),
		rego.Module(defaultModule, module),
	)

	prepared, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, cor.Misconfigured("admission", fmt.Errorf("failed to prepare %s: %w", query, err))
	}

	return &Policy{query: query, prepared: prepared}, nil
}

func (p *Policy) Query() string {
	return p.query
}

// Allow evaluates the query with input {"class": class, "payload": payload}.
// Anything but a single true result is an error.
func (p *Policy) Allow(ctx context.Context, class, payload any) error {
	input := map[string]any{
		"class":   class,
		"payload": payload,
	}

	rs, err := p.prepared.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return fmt.Errorf("admission evaluation failed: %w", err)
	}
	if len(rs) == 0 || len(rs[0].Expressions) == 0 {
		return ErrUndefined
	}

	allowed, ok := rs[0].Expressions[0].Value.(bool)
	if !ok {
		return fmt.Errorf("%w: %s returned %T", ErrUndefined, p.query, rs[0].Expressions[0].Value)
	}
	if !allowed {
		return ErrDenied
	}
	return nil
}

// Validator adapts p to a cor.Validator for requests classified by V.
func Validator[V any](p *Policy) cor.Validator[V] {
	return cor.ValidatorFunc[V](func(ctx context.Context, req cor.Request[V]) error {
		return p.Allow(ctx, req.Class(), req.Payload())
	})
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/ib-77/cor3/pkg/cor"
	"github.com/ib-77/cor3/pkg/cor/admission"
	"github.com/ib-77/cor3/pkg/cor/config"
	"github.com/ib-77/cor3/pkg/cor/observe"
	"github.com/ib-77/cor3/pkg/cor/pipeline"
)

// build assembles a pipeline from handlers and the definition's admission
// policy, reporting to the given observers.
func build[V any](ctx context.Context, def *config.Definition, handlers []*cor.Handler[V],
	logger *slog.Logger, observers ...cor.Observer) (*pipeline.Pipeline[V], error) {

	opts := []pipeline.Option[V]{
		pipeline.WithName[V](def.Name),
		pipeline.WithLogger[V](logger),
		pipeline.WithObserver[V](observe.NewLogger(logger)),
	}
	for _, o := range observers {
		opts = append(opts, pipeline.WithObserver[V](o))
	}

	if def.Admission != nil {
		policy, err := admission.New(ctx, def.Admission.Module, def.Admission.Query)
		if err != nil {
			return nil, err
		}
		opts = append(opts, pipeline.WithValidator(admission.Validator[V](policy)))
	}

	return pipeline.FromHandlers(handlers, opts...)
}

// parseAmounts turns arguments into requests. An argument that is not a
// number becomes an error at its position instead of a request.
func parseAmounts(args []string) ([]cor.Request[float64], []error) {
	reqs := make([]cor.Request[float64], len(args))
	errs := make([]error, len(args))
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			errs[i] = fmt.Errorf("%w: %q is not an amount", cor.ErrInvalidRequest, arg)
			continue
		}
		reqs[i] = cor.NewRequest(v, arg)
	}
	return reqs, errs
}

func parseCategories(args []string) ([]cor.Request[string], []error) {
	reqs := make([]cor.Request[string], len(args))
	for i, arg := range args {
		reqs[i] = cor.NewRequest(arg, arg)
	}
	return reqs, make([]error, len(args))
}

package cor

import (
	"context"
	"time"
)

type OutcomeProvider interface {
	// Status returns whether the request was resolved
	Status() Status
	// By returns the resolving handler name
	By() string
	// CreatedAt time creation (UTC)
	CreatedAt() time.Time
}

// Submitter resolves one request per call. A nil error means the request
// entered the chain; Unresolved is reported through the Outcome.
type Submitter[V any] interface {
	Submit(ctx context.Context, req Request[V]) (Outcome, error)
}

// Validator rejects malformed requests before they enter a chain.
type Validator[V any] interface {
	Validate(ctx context.Context, req Request[V]) error
}

type ValidatorFunc[V any] func(ctx context.Context, req Request[V]) error

func (f ValidatorFunc[V]) Validate(ctx context.Context, req Request[V]) error {
	return f(ctx, req)
}

package cor

import (
	"time"

	"github.com/google/uuid"
)

// Request is an opaque payload plus the scalar classification handlers inspect.
type Request[V any] struct {
	id        uuid.UUID
	createdAt time.Time
	class     V
	payload   any
}

func NewRequest[V any](class V, payload any) Request[V] {
	return Request[V]{
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
		class:     class,
		payload:   payload,
	}
}

// Of is NewRequest without a payload.
func Of[V any](class V) Request[V] {
	return NewRequest(class, nil)
}

func (r Request[V]) Id() uuid.UUID {
	return r.id
}

func (r Request[V]) CreatedAt() time.Time {
	return r.createdAt
}

func (r Request[V]) Class() V {
	return r.class
}

func (r Request[V]) Payload() any {
	return r.payload
}

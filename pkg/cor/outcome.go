package cor

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the kind of an Outcome.
type Status int

const (
	// StatusUnresolved means the chain was exhausted without a handler accepting.
	StatusUnresolved Status = iota
	StatusResolved
)

func (s Status) String() string {
	switch s {
	case StatusResolved:
		return "resolved"
	default:
		return "unresolved"
	}
}

// Outcome is the result of one submission: Resolved(by) or Unresolved.
type Outcome struct {
	requestId uuid.UUID
	createdAt time.Time
	status    Status
	by        string
	hops      int
}

func Resolved(requestId uuid.UUID, by string, hops int) Outcome {
	return Outcome{
		requestId: requestId,
		createdAt: time.Now().UTC(),
		status:    StatusResolved,
		by:        by,
		hops:      hops,
	}
}

func Unresolved(requestId uuid.UUID, hops int) Outcome {
	return Outcome{
		requestId: requestId,
		createdAt: time.Now().UTC(),
		status:    StatusUnresolved,
		hops:      hops,
	}
}

func (o Outcome) Status() Status {
	return o.status
}

// By returns the name of the resolving handler, empty when unresolved.
func (o Outcome) By() string {
	return o.by
}

func (o Outcome) IsResolved() bool {
	return o.status == StatusResolved
}

func (o Outcome) IsUnresolved() bool {
	return o.status == StatusUnresolved
}

// Hops is the number of handlers evaluated, the resolver included.
func (o Outcome) Hops() int {
	return o.hops
}

func (o Outcome) RequestId() uuid.UUID {
	return o.requestId
}

func (o Outcome) CreatedAt() time.Time {
	return o.createdAt
}

// Same reports whether both outcomes carry the same decision.
func (o Outcome) Same(other Outcome) bool {
	return o.status == other.status && o.by == other.by
}

func (o Outcome) String() string {
	if o.IsResolved() {
		return fmt.Sprintf("Resolved(%s)", o.by)
	}
	return "Unresolved"
}

package cor

import (
	"cmp"
	"fmt"
	"slices"
)

// Predicate decides whether a handler can resolve a classification value.
// It must be pure and total.
type Predicate[V any] func(class V) bool

// Rule is a predicate plus a human readable description of it.
type Rule[V any] struct {
	Name   string
	Accept Predicate[V]

	catchAll bool
}

func (r Rule[V]) String() string {
	return r.Name
}

// CatchAll reports whether the rule was built by Always.
func (r Rule[V]) CatchAll() bool {
	return r.catchAll
}

// Match wraps an arbitrary predicate.
func Match[V any](name string, accept Predicate[V]) Rule[V] {
	return Rule[V]{Name: name, Accept: accept}
}

func AtMost[V cmp.Ordered](ceiling V) Rule[V] {
	return Rule[V]{
		Name:   fmt.Sprintf("<= %v", ceiling),
		Accept: func(class V) bool { return class <= ceiling },
	}
}

func Below[V cmp.Ordered](limit V) Rule[V] {
	return Rule[V]{
		Name:   fmt.Sprintf("< %v", limit),
		Accept: func(class V) bool { return class < limit },
	}
}

func AtLeast[V cmp.Ordered](floor V) Rule[V] {
	return Rule[V]{
		Name:   fmt.Sprintf(">= %v", floor),
		Accept: func(class V) bool { return class >= floor },
	}
}

func Equals[V comparable](want V) Rule[V] {
	return Rule[V]{
		Name:   fmt.Sprintf("== %v", want),
		Accept: func(class V) bool { return class == want },
	}
}

func OneOf[V comparable](values ...V) Rule[V] {
	set := slices.Clone(values)
	return Rule[V]{
		Name:   fmt.Sprintf("in %v", set),
		Accept: func(class V) bool { return slices.Contains(set, class) },
	}
}

// Always accepts every request. At the tail it turns the chain into a catch-all.
func Always[V any]() Rule[V] {
	return Rule[V]{
		Name:     "always",
		Accept:   func(V) bool { return true },
		catchAll: true,
	}
}

func Never[V any]() Rule[V] {
	return Rule[V]{
		Name:   "never",
		Accept: func(V) bool { return false },
	}
}

package core

import (
	"context"
)

// Indexed pairs a value with its position in the input slice.
type Indexed[T any] struct {
	Index int
	Value T
}

// ToChanMany feeds values into a channel until they run out or ctx is done.
func ToChanMany[T any](ctx context.Context, values []T) <-chan T {
	in := make(chan T)

	go func() {
		defer close(in)

		for _, v := range values {
			if ctx.Err() != nil {
				return
			}

			select {
			case in <- v:
			case <-ctx.Done():
				return
			}
		}
	}()

	return in
}

// ToChanManyIndexed is ToChanMany that remembers each value's position.
func ToChanManyIndexed[T any](ctx context.Context, values []T) <-chan Indexed[T] {
	indexed := make([]Indexed[T], len(values))
	for i, v := range values {
		indexed[i] = Indexed[T]{Index: i, Value: v}
	}
	return ToChanMany(ctx, indexed)
}

// FromChanMany drains out until it is closed or ctx is done.
func FromChanMany[T any](ctx context.Context, out <-chan T) []T {
	res := make([]T, 0)

	for {
		select {
		case v, ok := <-out:
			if !ok {
				return res
			}
			res = append(res, v)
		case <-ctx.Done():
			return res
		}
	}
}

package core

import (
	"context"
	"sync"
)

// Locomotive is one worker: it runs engine over every input until inputCh is
// closed or ctx is done. A result that cannot be sent before ctx is done is
// dropped.
func Locomotive[In, Out any](ctx context.Context, inputCh <-chan In, outCh chan<- Out,
	engine func(ctx context.Context, input In) Out,
	onSuccess func(ctx context.Context, out Out), wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case in, ok := <-inputCh:
			if !ok {
				return
			}

			pr := engine(ctx, in)

			select {
			case outCh <- pr:
				if onSuccess != nil {
					onSuccess(ctx, pr)
				}
			case <-ctx.Done():
				return
			}
		}
	}
}

// Run starts lines workers over inputCh and closes the returned channel when
// all of them have stopped.
func Run[In, Out any](ctx context.Context, inputCh <-chan In,
	engine func(ctx context.Context, input In) Out,
	onSuccess func(ctx context.Context, out Out), lines int) <-chan Out {

	if lines < 1 {
		lines = 1
	}

	out := make(chan Out)
	wg := &sync.WaitGroup{}

	for range lines {
		wg.Add(1)
		go Locomotive(ctx, inputCh, out, engine, onSuccess, wg)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

package parallel

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ErrPanic wraps a value recovered from a panicking item.
var ErrPanic = errors.New("item panicked")

// Result summarises a ForEach run.
type Result struct {
	Attempted int
	Failed    int
}

// Succeeded returns the number of items that completed without error.
func (r Result) Succeeded() int {
	return r.Attempted - r.Failed
}

// ForEach runs fn for every item with at most limit invocations in flight and
// returns once all of them have finished. A limit of zero or less means no bound.
//
// A failing item never cancels its siblings. Its error, including a recovered
// panic wrapped in ErrPanic, is handed to onError, which may be called
// concurrently and may be nil. Items not yet started when ctx is cancelled fail
// with the context error.
func ForEach[T any](ctx context.Context, items []T, limit int, fn func(ctx context.Context, item T) error, onError func(item T, err error)) Result {
	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	var failed atomic.Int64
	for _, item := range items {
		g.Go(func() error {
			if err := run(ctx, item, fn); err != nil {
				failed.Add(1)
				if onError != nil {
					onError(item, err)
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	return Result{Attempted: len(items), Failed: int(failed.Load())}
}

func run[T any](ctx context.Context, item T, fn func(ctx context.Context, item T) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, item)
}

// Package fanout runs a function across a slice of items on a bounded number
// of goroutines and returns the results in input order. The status command
// uses it to probe every emulator at once without opening an unbounded
// number of connections.
package fanout

import (
	"context"
	"sync"
)

// Result holds the outcome of processing a single item.
// Either Value is populated (on success) or Err is non-nil (on failure).
type Result[R any] struct {
	Value R
	Err   error
}

// Failed returns the results that carry an error.
func Failed[R any](results []Result[R]) []Result[R] {
	var out []Result[R]
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

// Run executes fn for each item using at most maxWorkers goroutines at a
// time. Results are returned in the same order as items.
//
// An item still waiting for a slot when ctx is canceled records ctx.Err()
// and fn is not called for it. Items already running finish; fn must honor
// ctx itself if it blocks.
//
// Run blocks until every item is done. A maxWorkers below 1 is treated as 1.
func Run[T, R any](ctx context.Context, maxWorkers int, items []T, fn func(context.Context, T) (R, error)) []Result[R] {
	if len(items) == 0 {
		return []Result[R]{}
	}
	if maxWorkers < 1 {
		maxWorkers = 1
	}

	results := make([]Result[R], len(items))
	sem := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	for i, item := range items {
		wg.Add(1)
		go func(idx int, it T) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[idx] = Result[R]{Err: ctx.Err()}
				return
			}

			val, err := fn(ctx, it)
			results[idx] = Result[R]{Value: val, Err: err}
		}(i, item)
	}

	wg.Wait()
	return results
}

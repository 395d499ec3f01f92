// Package workerpool provides simple concurrent processing utilities.
package workerpool

import (
	"context"
	"errors"
	"sync"
)

// ProcessAll runs process for every item regardless of failures of other items.
// All errors are joined into the result; a canceled context stops dispatching new items.
func ProcessAll[T any](
	ctx context.Context,
	workerCount int,
	items []T,
	process func(context.Context, T) error,
) error {
	var (
		mu   sync.Mutex
		errs []error
	)
	run(ctx, workerCount, items, func(ctx context.Context, item T) {
		if err := process(ctx, item); err != nil {
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}
	})

	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// run feeds items to workerCount goroutines until the items are exhausted or the context is done.
func run[T any](ctx context.Context, workerCount int, items []T, handle func(context.Context, T)) {
	if workerCount <= 0 {
		workerCount = 1
	}

	tasks := make(chan T, workerCount)
	wg := sync.WaitGroup{}
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case item, ok := <-tasks:
					if !ok {
						return
					}
					handle(ctx, item)
				}
			}
		}()
	}

	go func() {
		defer close(tasks)
		for _, item := range items {
			select {
			case <-ctx.Done():
				return
			case tasks <- item:
			}
		}
	}()

	wg.Wait()
}

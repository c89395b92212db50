package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// forEachBatch splits items into batches of at most size and runs fn on each,
// with no more than workers calls in flight. The first failure stops batches
// that have not started; calls already running see a cancelled context.
func forEachBatch[T any](ctx context.Context, items []T, size, workers int, fn func(context.Context, []T) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, batch := range chunk(items, size) {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := fn(gctx, batch); err != nil {
				return fmt.Errorf("batch %d: %w", i, err)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	return ctx.Err()
}

// chunk splits items into consecutive slices of at most size elements.
func chunk[T any](items []T, size int) [][]T {
	batches := make([][]T, 0, (len(items)+size-1)/size)

	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		batches = append(batches, items[start:end])
	}

	return batches
}

package crawler

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Map runs fn over items with at most width calls in flight. out[i] always
// holds the result for items[i], whatever order the calls complete in.
// fn must handle its own failures; Map only stops early when ctx is done,
// leaving zero values in the slots that never ran.
func Map[T, R any](ctx context.Context, width int, items []T, fn func(context.Context, T) R) []R {
	if width <= 0 {
		width = 1
	}
	out := make([]R, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(width)
	for i, it := range items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			out[i] = fn(gctx, it)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

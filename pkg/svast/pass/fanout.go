package pass

import (
	"context"

	"golang.org/x/sync/errgroup"

	"svdata-hq/svast/pkg/svast/concrete"
)

// Analysis is a read-only computation over a tree.
type Analysis[T any] func(ctx context.Context, tree concrete.Node) (T, error)

// FanOut runs analyses concurrently on one tree and returns their results
// in input order. The first error cancels the context handed to the
// remaining analyses and is returned.
func FanOut[T any](ctx context.Context, tree concrete.Node, analyses ...Analysis[T]) ([]T, error) {
	results := make([]T, len(analyses))
	g, ctx := errgroup.WithContext(ctx)
	for i, a := range analyses {
		g.Go(func() error {
			r, err := a(ctx, tree)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

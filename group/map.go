package group

import (
	"context"

	"github.com/ygrebnov/corotask"
)

// Map fans out items through fn, one task tree per item, and returns their
// results in input order alongside the aggregated error.
func Map[T, R any](
	ctx context.Context,
	items []T,
	fn func(context.Context, T) (R, error),
	opts ...Option,
) ([]R, error) {
	if len(items) == 0 {
		return nil, nil
	}
	handles := make([]*corotask.Handle[R], len(items))
	for i := range items {
		item := items[i]
		handles[i] = corotask.New(func(c *corotask.Coroutine[R]) (R, error) {
			return fn(c.Context(), item)
		})
	}
	return RunAll[R](ctx, handles, opts...)
}

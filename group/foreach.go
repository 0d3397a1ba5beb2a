package group

import (
	"context"

	"github.com/ygrebnov/corotask"
)

// ForEach applies fn to each item concurrently, one task tree per item, and
// returns the aggregated error (errors.Join) or nil when all succeed.
func ForEach[T any](ctx context.Context, items []T, fn func(context.Context, T) error, opts ...Option) error {
	if len(items) == 0 {
		return nil
	}
	handles := make([]*corotask.Handle[struct{}], len(items))
	for i := range items {
		item := items[i]
		handles[i] = corotask.New(func(c *corotask.Coroutine[struct{}]) (struct{}, error) {
			return struct{}{}, fn(c.Context(), item)
		})
	}
	_, err := RunAll[struct{}](ctx, handles, opts...)
	return err
}

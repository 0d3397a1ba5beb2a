package group

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/ygrebnov/corotask"
)

// RunAll starts every handle against a shared pool scheduler sized per opts,
// waits for all of them, and returns their results indexed exactly as
// handles was (RunAll always knows each handle's index, so ordering here
// needs no reorderer) plus errors.Join of every failing tree's error.
func RunAll[T any](ctx context.Context, handles []*corotask.Handle[T], opts ...Option) ([]T, error) {
	cfg := buildConfig(opts)
	scheduler := newScheduler(cfg)

	n := len(handles)
	results := make([]T, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	wg.Add(n)
	for i, h := range handles {
		i, h := i, h
		id := uuid.New()
		go func() {
			defer wg.Done()
			v, err := h.SyncWait(ctx, scheduler)
			if err != nil && cfg.ErrorTagging {
				err = newTaggedError(err, id, i)
			}
			results[i] = v
			errs[i] = err
		}()
	}
	wg.Wait()

	nonNil := make([]error, 0, n)
	for _, e := range errs {
		if e != nil {
			nonNil = append(nonNil, e)
		}
	}
	return results, errors.Join(nonNil...)
}

package group

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/ygrebnov/corotask"
)

// Stream consumes handles as they arrive and runs each as its own task
// tree, emitting results and errors on two channels that are closed once
// handles is closed and every started tree has completed. With
// WithPreserveOrder, out delivers results in the order handles were
// received rather than completion order (the one case in this module where
// reordering has a genuine job: RunAll/ForEach/Map always know each item's
// final index up front and never need it).
func Stream[T any](
	ctx context.Context,
	handles <-chan *corotask.Handle[T],
	opts ...Option,
) (<-chan T, <-chan error) {
	cfg := buildConfig(opts)
	scheduler := newScheduler(cfg)

	out := make(chan T)
	errs := make(chan error)

	go func() {
		defer close(out)
		defer close(errs)

		if cfg.PreserveOrder {
			runPreserveOrder(ctx, handles, scheduler, cfg, out, errs)
			return
		}
		runCompletionOrder(ctx, handles, scheduler, cfg, out, errs)
	}()

	return out, errs
}

func runCompletionOrder[T any](
	ctx context.Context,
	handles <-chan *corotask.Handle[T],
	scheduler *corotask.PoolScheduler,
	cfg Config,
	out chan<- T,
	errs chan<- error,
) {
	var wg sync.WaitGroup
	idx := 0
	for h := range handles {
		h, i := h, idx
		idx++
		id := uuid.New()
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := h.SyncWait(ctx, scheduler)
			if err != nil {
				if cfg.ErrorTagging {
					err = newTaggedError(err, id, i)
				}
				errs <- err
				return
			}
			out <- v
		}()
	}
	wg.Wait()
}

func runPreserveOrder[T any](
	ctx context.Context,
	handles <-chan *corotask.Handle[T],
	scheduler *corotask.PoolScheduler,
	cfg Config,
	out chan<- T,
	errs chan<- error,
) {
	events := make(chan completionEvent[T])
	r := newReorderer(events, out, errs)

	var wg sync.WaitGroup
	n := 0
	for h := range handles {
		h, i := h, n
		n++
		id := uuid.New()
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := h.SyncWait(ctx, scheduler)
			if err != nil && cfg.ErrorTagging {
				err = newTaggedError(err, id, i)
			}
			events <- completionEvent[T]{idx: i, value: v, err: err}
		}()
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()

	go func() {
		<-done
		close(events)
	}()

	r.run(n)
}

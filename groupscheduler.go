package corotask

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// GroupScheduler dispatches work via golang.org/x/sync/errgroup. Scheduled
// work always reports success to the group; the shared context is cancelled
// only by Cancel, after which every Schedule call fails. Work that is already
// running is not interrupted.
//
// Schedule returns an error immediately if ctx is already done: the caller
// sees the failure at its very next Await (or at SyncWait, for a top-level
// task) because the frame completes immediately with that error instead of
// ever running its body.
type GroupScheduler struct {
	ctx context.Context
	g   *errgroup.Group
}

// NewGroupScheduler builds a GroupScheduler whose errgroup derives its
// context from ctx, and returns that derived context. Since Schedule's work
// func has no error return of its own, cancellation is driven by Cancel.
func NewGroupScheduler(ctx context.Context) (*GroupScheduler, context.Context) {
	g, gctx := errgroup.WithContext(ctx)
	return &GroupScheduler{ctx: gctx, g: g}, gctx
}

func (s *GroupScheduler) Schedule(work func()) error {
	if err := s.ctx.Err(); err != nil {
		return err
	}
	s.g.Go(func() error {
		work()
		return nil
	})
	return nil
}

// Cancel fails every future Schedule call and the shared context, the
// mechanism frame bodies use to notice a sibling's scheduling failure: call
// it from a body after observing an error it wants to propagate as a group-
// wide cancellation.
func (s *GroupScheduler) Cancel(err error) {
	s.g.Go(func() error { return err })
}

// Wait blocks until every scheduled unit of work returns, and reports the
// first non-nil error any of them (or Cancel) produced.
func (s *GroupScheduler) Wait() error { return s.g.Wait() }

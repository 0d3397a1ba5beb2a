package corotask

import (
	"context"
	"sync/atomic"
)

// Handle is a move-only reference to a not-yet-started frame. Exactly one
// of RunAsync, SyncWait, or Discard may be called on a given Handle; any
// further call panics with ErrHandleConsumed,
// the idiomatic Go substitute for a move-only C++ type whose use-after-move
// is undefined behavior there and a checked panic here.
type Handle[T any] struct {
	frame    *frame[T]
	consumed atomic.Bool
}

// New builds a Handle around a coroutine body. fn receives the *Coroutine[T]
// that lets it Await or AwaitTail child tasks.
func New[T any](fn func(*Coroutine[T]) (T, error)) *Handle[T] {
	return &Handle[T]{frame: newFrame(fn)}
}

func (h *Handle[T]) take() *frame[T] {
	if !h.consumed.CompareAndSwap(false, true) {
		panic(ErrHandleConsumed)
	}
	return h.frame
}

// RunAsync schedules the frame and discards its result: nothing observes
// completion except whatever the body itself Awaits or signals externally.
func (h *Handle[T]) RunAsync(ctx context.Context, scheduler Scheduler) {
	f := h.take()
	f.externallyReferenced = false
	f.sink = newResultSink[T]()
	f.scheduler = scheduler
	f.start(ctx)
}

// SyncWait schedules the frame, blocks until it completes, and destroys it.
// Destroying a never-scheduled Handle (via Discard) destroys the underlying
// frame without ever running its body.
func (h *Handle[T]) SyncWait(ctx context.Context, scheduler Scheduler) (T, error) {
	f := h.take()
	f.externallyReferenced = true
	f.sink = newResultSink[T]()
	f.scheduler = scheduler
	f.start(ctx)
	value, err := f.sink.wait()
	f.destroy()
	return value, err
}

// Discard destroys the handle's frame without ever scheduling its body.
func (h *Handle[T]) Discard() {
	f := h.take()
	f.destroy()
}

// startNested is used by Await/AwaitTail: the started frame is not
// externally referenced (no caller ever calls SyncWait on it, since the
// awaiting coroutine reads its result directly through the continuation
// chain) but it is internallyReferenced, since awaitFrame is about to
// register a continuation against its chain.
func (h *Handle[T]) startNested(ctx context.Context, scheduler Scheduler) *frame[T] {
	f := h.take()
	f.externallyReferenced = false
	f.internallyReferenced.Store(true)
	f.scheduler = scheduler
	f.start(ctx)
	return f
}

// Coroutine is passed to a frame's body function and is the coroutine-
// author-facing handle for awaiting children.
type Coroutine[T any] struct {
	ctx       context.Context
	scheduler Scheduler
	self      *frame[T]
}

// Context returns the context the coroutine tree was started with.
func (c *Coroutine[T]) Context() context.Context { return c.ctx }

// Scheduler returns the scheduler driving this coroutine tree, so a body can
// start further children against the same scheduler without threading it
// through explicitly.
func (c *Coroutine[T]) Scheduler() Scheduler { return c.scheduler }

// Await starts h against the coroutine's scheduler and blocks until it
// completes.
func Await[T, R any](c *Coroutine[T], h *Handle[R]) (R, error) {
	cf := h.startNested(c.ctx, c.scheduler)
	return awaitFrame(cf)
}

// AwaitTail awaits h exactly like Await, but in tail position: c's own
// pending continuation (whoever is waiting on c's frame, plus anything
// already forwarded to it) is moved directly onto h's frame, so that h's
// completion resumes that ultimate waiter without first waking c's frame's
// own parked goroutine. Use this only when the body does nothing further
// after the await but return its result.
func AwaitTail[T any](c *Coroutine[T], h *Handle[T]) (T, error) {
	cf := h.startNested(c.ctx, c.scheduler)
	c.self.chain.moveInto(cf.chain)
	return awaitFrame(cf)
}

// Package corotask drives asynchronous task trees using goroutine-backed
// coroutine frames instead of callback chains.
//
// A task body receives a *Coroutine[T] and calls Await (or AwaitTail, in
// tail position) to run a child task and obtain its result before
// continuing. Every frame is driven by its own goroutine; Await blocks that
// goroutine on a channel until the awaited frame publishes its result or the
// frame turns out to already be done, in which case Await returns inline
// without ever blocking.
//
// Constructors
//   - New(fn): builds a *Handle[T] around a coroutine body. The handle is
//     move-only: exactly one of RunAsync, SyncWait or Discard may be called
//     on it.
//
// Schedulers
//   - InlineScheduler: runs scheduled work synchronously, on the caller's
//     own goroutine. Useful for tests and for deterministic, single-threaded
//     execution.
//   - PoolScheduler: dispatches onto a recycled worker drawn from a
//     corotask/pool.Pool.
//   - GroupScheduler: dispatches via golang.org/x/sync/errgroup; Cancel
//     cancels its shared context, after which Schedule fails.
//
// Task trees are single-consumer and strictly tree-shaped: one frame is
// awaited by at most one caller over its lifetime. Concurrent fan-out over
// independent task trees is provided by the corotask/group subpackage, not
// by the core engine.
package corotask

package corotask

import (
	"context"
	"fmt"
	"sync/atomic"
)

// frameState tracks a frame through its lifecycle:
// Created -> Scheduled -> Running -> Completed -> Published -> Destroyed.
// frameSuspended is declared but never stored: a frame blocked in Await or
// AwaitTail still reports frameRunning.
type frameState int32

const (
	frameCreated frameState = iota
	frameScheduled
	frameRunning
	frameSuspended
	frameCompleted
	framePublished
	frameDestroyed
)

// frame is the Task Frame & Promise: the generic unit of work this module
// drives via a dedicated goroutine instead of a compiler-generated coroutine
// frame. It is created by New, started by Handle.RunAsync/SyncWait or (for a
// nested await) by Await/AwaitTail, and destroyed at most once.
type frame[T any] struct {
	fn        func(*Coroutine[T]) (T, error)
	scheduler Scheduler

	value T
	err   error

	chain *continuationChain

	// internallyReferenced is true for frames started via startNested
	// (Await/AwaitTail): a caller may register against this frame's chain,
	// so its completion path must service that chain. It is false for root
	// frames started directly via RunAsync/SyncWait, which never have a
	// caller registered against their chain — their result travels through
	// resultSink instead — so their completion path must not touch the
	// chain at all.
	internallyReferenced atomic.Bool

	externallyReferenced bool
	destroyed            atomic.Bool
	state                atomic.Int32

	sink *resultSink[T]
}

func newFrame[T any](fn func(*Coroutine[T]) (T, error)) *frame[T] {
	return &frame[T]{
		fn:    fn,
		chain: newContinuationChain(),
	}
}

func (f *frame[T]) readResult() (T, error) {
	return f.value, f.err
}

// start schedules the frame's body exactly once. scheduler must already be
// set; externallyReferenced and sink (if any) must already be configured.
func (f *frame[T]) start(ctx context.Context) {
	f.state.Store(int32(frameScheduled))
	err := f.scheduler.Schedule(func() {
		f.state.Store(int32(frameRunning))
		f.runBody(ctx)
	})
	if err != nil {
		var zero T
		f.complete(zero, fmt.Errorf("%w: %v", ErrSchedulingFailed, err))
	}
}

func (f *frame[T]) runBody(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			f.complete(zero, fmt.Errorf("%w: %v", ErrTaskPanicked, r))
		}
	}()

	co := &Coroutine[T]{ctx: ctx, scheduler: f.scheduler, self: f}
	value, err := f.fn(co)
	f.complete(value, err)
}

// complete stores the result, transitions to Completed, resolves the race
// against any awaiting caller, and runs the Final Trampoline. The chain is
// only serviced for frames a caller can actually be registered against
// (internallyReferenced); a root frame's chain is never touched by anyone,
// so onComplete must never be called for it.
func (f *frame[T]) complete(value T, err error) {
	f.value, f.err = value, err
	f.state.Store(int32(frameCompleted))
	if f.internallyReferenced.Load() {
		f.chain.onComplete()
	}
	f.publish()
}

// publish is the final trampoline: it hands the result to the sink, then
// either destroys the frame immediately (fall-through) or leaves it alive
// for SyncWait to destroy once it has read the sink.
func (f *frame[T]) publish() {
	f.state.Store(int32(framePublished))
	if f.sink != nil {
		f.sink.write(f.value, f.err)
	}
	if !f.externallyReferenced {
		f.destroy()
	}
}

func (f *frame[T]) destroy() {
	if !f.destroyed.CompareAndSwap(false, true) {
		panic(ErrFrameDestroyed)
	}
	f.state.Store(int32(frameDestroyed))
}

// awaitFrame implements the caller-side half of the completion race: it
// registers a continuation against cf's chain, and if cf turns out to have
// already completed (including synchronously, before this call was ever
// reached — the case when cf's scheduler, such as InlineScheduler, ran its
// whole body inline during startNested) reads the result immediately
// instead of waiting on a resume that already happened or will never come
// (see DESIGN.md).
func awaitFrame[T any](cf *frame[T]) (T, error) {
	resumeCh := make(chan struct{})
	done := cf.chain.awaitOrRegister(continuationHandle{
		valid:  true,
		resume: func() { close(resumeCh) },
	})
	if done {
		return cf.readResult()
	}
	<-resumeCh
	return cf.readResult()
}

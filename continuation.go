package corotask

// continuationHandle is a type-erased reference to "whoever is waiting on a
// frame". It never names the waiter's own result type, so a *continuationChain*
// belonging to a frame[R] can hold a reference to a caller frame[T] without
// either generic instantiation knowing about the other.
//
// A plain parked handle (registered by awaitFrame) just unblocks the waiting
// goroutine; once resumed, that goroutine runs independently and nothing
// further needs to happen here.
//
// A forwarded handle (installed by continuationChain.moveInto) is different:
// its resume closure is ordinary Go code, run synchronously by whichever
// goroutine calls onComplete on the chain it was installed into, and it may
// itself resume a stored handle and walk a further forwarded continuation.
type continuationHandle struct {
	valid  bool
	resume func()
}

package corotask

import "sync"

// continuationChain belongs to a single nested frame (one reached through
// Await/AwaitTail) and coordinates the race between that frame's completion
// and its caller's attempt to await it. Root frames, driven directly by
// Handle.RunAsync/SyncWait, never service a continuationChain: their result
// travels through resultSink instead, so nothing ever registers against
// their chain and nothing must ever wait on it (see frame.internallyReferenced).
// See DESIGN.md's Open Question entry for the exact resolution this module
// applies.
type continuationChain struct {
	mu        sync.Mutex
	done      bool
	suspended continuationHandle
	next      continuationHandle
}

func newContinuationChain() *continuationChain {
	return &continuationChain{}
}

// awaitOrRegister is the caller side of the completion race. If the frame
// has already completed it reports done so the caller can read the result
// inline. Otherwise it records h as the pending continuation and reports
// not done; h.resume is called once the frame completes. Neither branch
// blocks: there is no interleaving in which the caller must wait here for
// something the completing side hasn't done yet.
func (c *continuationChain) awaitOrRegister(h continuationHandle) (done bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return true
	}
	c.suspended = h
	return false
}

// onComplete is called exactly once, by the completing frame, after its
// result has been stored. It never blocks: whatever continuation is
// pending — a genuinely parked caller, or one forwarded onto this chain via
// moveInto — is resumed immediately, and the chain is marked done so any
// caller that arrives afterward reads the result inline instead of
// registering.
func (c *continuationChain) onComplete() {
	c.mu.Lock()
	c.done = true
	suspended := c.suspended
	c.suspended = continuationHandle{}
	next := c.next
	c.next = continuationHandle{}
	c.mu.Unlock()

	if suspended.valid {
		suspended.resume()
	}
	if next.valid {
		next.resume()
	}
}

// moveInto transfers c's currently pending obligations (its stored suspended
// handle, if any, plus anything already forwarded onto it) into target's
// pending continuation slot. Used by AwaitTail so that target's completion
// resumes the ultimate waiter directly, without first waking c's own parked
// goroutine and waiting for it to run its own completion.
//
// target may have already completed by the time this is called — its
// scheduler may have run it synchronously to completion before AwaitTail
// got back from startNested, so target.onComplete may already have run with
// nothing pending. moveInto must not install a forwarded continuation that
// onComplete will never look at again; if target is already done, the
// forwarded obligations are resumed immediately instead.
func (c *continuationChain) moveInto(target *continuationChain) {
	c.mu.Lock()
	suspended := c.suspended
	c.suspended = continuationHandle{}
	next := c.next
	c.next = continuationHandle{}
	c.mu.Unlock()

	if !suspended.valid && !next.valid {
		return
	}

	forwarded := continuationHandle{
		valid: true,
		resume: func() {
			if suspended.valid {
				suspended.resume()
			}
			if next.valid {
				next.resume()
			}
		},
	}

	target.mu.Lock()
	alreadyDone := target.done
	if !alreadyDone {
		target.next = forwarded
	}
	target.mu.Unlock()

	if alreadyDone {
		forwarded.resume()
	}
}

package forkpool

import "sync"

// eventCount is folly's event_count adapted to Go: a no-lost-wakeup idle
// signal for the worker loop's final "nothing to steal" step. The
// original packs an epoch and a waiter count into one atomic word and
// parks on a futex; Go exposes no futex-level atomic wait/notify to user
// code, so the same prepare/check/wait protocol is reproduced with a
// mutex-guarded epoch and sync.Cond, which gives the identical guarantee:
// a notify that happens after PrepareWait but before Wait is never missed.
type eventCount struct {
	mu      sync.Mutex
	cond    *sync.Cond
	epoch   uint64
	waiters int
}

func newEventCount() *eventCount {
	ec := &eventCount{}
	ec.cond = sync.NewCond(&ec.mu)
	return ec
}

// waitKey is the epoch observed by PrepareWait; Wait blocks only while
// the epoch hasn't advanced past it.
type waitKey struct {
	epoch uint64
}

// PrepareWait must be called before re-checking whether work is
// available. If a Notify happens after this call, Wait returns
// immediately rather than missing the wakeup.
func (e *eventCount) PrepareWait() waitKey {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.waiters++
	return waitKey{epoch: e.epoch}
}

// CancelWait undoes a PrepareWait when the caller found work before
// calling Wait, so it never blocks on a stale waiter count.
func (e *eventCount) CancelWait() {
	e.mu.Lock()
	e.waiters--
	e.mu.Unlock()
}

// Wait blocks until a Notify advances the epoch past the one observed by
// the matching PrepareWait.
func (e *eventCount) Wait(k waitKey) {
	e.mu.Lock()
	for e.epoch == k.epoch {
		e.cond.Wait()
	}
	e.waiters--
	e.mu.Unlock()
}

// NotifyOne wakes at most one parked waiter.
func (e *eventCount) NotifyOne() {
	e.mu.Lock()
	e.epoch++
	hasWaiters := e.waiters > 0
	e.mu.Unlock()
	if hasWaiters {
		e.cond.Signal()
	}
}

// NotifyAll wakes every parked waiter, used on shutdown.
func (e *eventCount) NotifyAll() {
	e.mu.Lock()
	e.epoch++
	hasWaiters := e.waiters > 0
	e.mu.Unlock()
	if hasWaiters {
		e.cond.Broadcast()
	}
}

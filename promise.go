// Fork/Call/Join implement suspension without coroutines. A forked child
// is pushed onto the worker's deque and left there — not run inline — so
// the deque entry stays stealable for as long as the parent keeps making
// progress on its own remaining forks and calls, rather than for the
// handful of instructions around a push. Join is where deferred work
// actually gets reclaimed: it pops back whichever of its own children a
// peer never took and runs them itself, then busy-waits, interleaving
// steal attempts and submission draining, for any that a peer did take.
// Because a *Worker's identity never changes hands — there is no
// coroutine handle to steal, only a goroutine that keeps being itself —
// Fork, Call, and Join always return the same *Worker they were given.
package forkpool

import "runtime"

// Task is a suspendable unit of work: a function that runs to completion
// against the Worker it's given, which it may thread Fork/Call/Join calls
// through to spawn and await its own children.
type Task[T any] func(w *Worker) (T, error)

// frameSlotBytes is the arena reservation each Fork/Call's activation
// makes on the worker's async stack, bookkeeping fidelity for the
// original's coroutine-frame allocation rather than real backing storage
// Go itself needs (Go's GC already owns the *Frame struct).
const frameSlotBytes = 64

// Fork registers f as a child of the frame currently executing on w and
// makes it available for a peer to steal, without running it. It always
// returns w unchanged. *slot and *errp are not valid to read until a
// subsequent Join on the same w has returned.
func Fork[T any](w *Worker, slot *T, errp *error, f Task[T]) *Worker {
	parent := w.frame
	child := newFrame(KindFork, parent)
	child.run = func(w *Worker) {
		prev := w.frame
		w.frame = child
		ck := w.stk.Mark()
		buf, allocErr := w.stk.Allocate(frameSlotBytes)
		if allocErr != nil {
			w.frame = prev
			var zero T
			*slot = zero
			child.err = wrapTaskErr("fork", ErrAllocationFailed)
			*errp = child.err
			return
		}
		_ = buf
		v, err := f(w)
		w.stk.Deallocate(ck)
		w.frame = prev
		*slot = v
		child.err = wrapTaskErr("fork", err)
		*errp = child.err
	}

	parent.forkCount++
	w.deque.Push(child)
	return w
}

// Call runs f synchronously as a child of the frame currently executing
// on w. Unlike Fork, it never touches the deque and can never be stolen —
// it is indistinguishable from a direct call except that Fork/Join calls
// inside f account against a frame of their own.
func Call[T any](w *Worker, slot *T, errp *error, f Task[T]) *Worker {
	parent := w.frame
	child := newFrame(KindCall, parent)

	prev := w.frame
	w.frame = child
	ck := w.stk.Mark()
	buf, allocErr := w.stk.Allocate(frameSlotBytes)
	if allocErr != nil {
		w.frame = prev
		var zero T
		*slot = zero
		child.err = wrapTaskErr("call", ErrAllocationFailed)
		*errp = child.err
		return w
	}
	_ = buf

	v, err := f(w)
	w.stk.Deallocate(ck)
	w.frame = prev

	*slot = v
	child.err = wrapTaskErr("call", err)
	*errp = child.err
	return w
}

// Join waits for every fork launched by the frame currently executing on
// w to finish, returning w unchanged once they have. It first reclaims
// whatever children nobody stole, popping and running each itself — the
// common case when no peer got a chance to race it away, since the pool
// always has at least as many workers busy as there are runnable frames.
// For any that were genuinely taken by a peer, it keeps w productive
// (draining submissions, running its own further work, attempting steals
// of its own) until the last one signals completion, rather than parking
// the goroutine and handing w's identity to a replacement.
func Join(w *Worker) *Worker {
	f := w.frame

	var reclaimed uint32
	for {
		popped, ok := w.deque.Pop()
		if !ok {
			break
		}
		if popped.parent != f {
			// An entry forked by an enclosing frame marks the end of f's own
			// children: put it back for that frame's Join. Anything else is
			// a scheduler bug.
			enclosing := false
			for a := f.parent; a != nil; a = a.parent {
				if a == popped.parent {
					enclosing = true
					break
				}
			}
			if !enclosing {
				panic(ErrInvariantViolation)
			}
			w.deque.Push(popped)
			break
		}
		resumeFrame(w, popped, false)
		reclaimed++
	}

	stolen := f.forkCount - reclaimed
	f.forkCount = 0
	if stolen == 0 {
		return w
	}

	f.resumeCh = make(chan struct{})

	// The two contributions to joins — this subtraction and each stolen
	// child's fetch_sub(1) in finishStolenFork — always sum to exactly
	// maxJoins removed in total, regardless of the order they occur in;
	// whichever one brings the counter to zero is the one responsible
	// for letting Join return.
	delta := maxJoins - stolen
	newVal := f.joins.Add(^(delta - 1)) // two's complement for -delta
	if newVal == 0 {
		f.joins.Store(maxJoins)
		return w
	}

	pool := w.pool
	for {
		select {
		case <-f.resumeCh:
			return w
		default:
		}
		pool.drainSubmissions(w)
		if popped, ok := w.deque.Pop(); ok {
			resumeFrame(w, popped, false)
			continue
		}
		if pool.trySteal(w) {
			continue
		}
		runtime.Gosched()
	}
}

// finishStolenFork runs after a stolen KindFork frame's body returns. It
// is the only place outside Join that touches joins, and it is always
// exactly one fetch_sub(1), regardless of whether the parent has already
// called Join.
func finishStolenFork(child *Frame) {
	parent := child.parent
	newVal := parent.joins.Add(^uint32(0)) // -1
	if newVal == 0 {
		parent.joins.Store(maxJoins)
		if parent.resumeCh != nil {
			close(parent.resumeCh)
		}
	}
}

// resumeFrame runs f's body against w and, if f was obtained via a
// successful Steal of a KindFork frame (stolen == true), drives the
// completion protocol for it afterward.
func resumeFrame(w *Worker, f *Frame, stolen bool) {
	f.run(w)
	if stolen && f.kind == KindFork {
		finishStolenFork(f)
	}
}

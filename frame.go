package forkpool

import (
	"math"
	"sync/atomic"
)

// Kind distinguishes the three ways a Frame can have been entered.
type Kind int

const (
	// KindRoot is a frame submitted from outside any task, via SyncWait
	// or SyncWaitAll. It has no parent and releases a semaphore instead
	// of decrementing a parent's joins counter when it finishes.
	KindRoot Kind = iota
	// KindCall is a synchronous call: never pushed to a deque, never
	// stealable, indistinguishable from a plain function call except
	// that it still forms a node in the frame tree so nested Fork/Join
	// calls inside it account against the right parent.
	KindCall
	// KindFork is pushed to the forking worker's deque and may be
	// stolen by a peer before the forking worker can self-pop it.
	KindFork
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindCall:
		return "call"
	case KindFork:
		return "fork"
	default:
		return "unknown"
	}
}

// maxJoins is the sentinel a freshly constructed frame's join counter
// starts at: math.MaxUint16, so that "no forks were stolen" is
// indistinguishable, bit for bit, from "every stolen fork already
// finished" until Join's own subtraction resolves the difference.
const maxJoins uint32 = math.MaxUint16

// Frame is one node of the fork/call tree rooted at a task submitted via
// SyncWait/SyncWaitAll: everything a suspended task needs to resume is
// reachable from its Frame, since Go gives us a real goroutine stack
// instead of a hand-rolled one.
type Frame struct {
	kind   Kind
	parent *Frame

	// joins starts at maxJoins. Each stolen fork's completion (see
	// finishStolenFork) subtracts 1 from it, in any order relative to
	// Join's own one-time subtraction of (maxJoins - stolen); whichever
	// subtraction brings the total to exactly zero is the one that
	// either returns control immediately (if it's Join itself) or wakes
	// the waiting owner via resumeCh (if it's a child).
	joins atomic.Uint32

	// forkCount is the number of children this frame has pushed via
	// Fork since its last Join, regardless of whether a peer ends up
	// stealing any of them. Only the frame's owning goroutine ever
	// touches it, so it needs no synchronization of its own —
	// synchronization rides on joins instead. Join compares it against
	// how many of its own pushes it can still reclaim locally to learn
	// how many were stolen, and resets it to zero.
	forkCount uint32

	// resumeCh is created lazily, only when Join finds that some of its
	// children were genuinely stolen and have not all finished yet. Closing it lets a busy-waiting Join stop polling;
	// see Join in promise.go.
	resumeCh chan struct{}

	// run executes this frame's task body against whichever *Worker ends
	// up hosting it (the original worker for a self-popped fork, a
	// thief's worker for a stolen one). It is set by Fork/SyncWait/
	// SyncWaitAll (Call runs its body directly and leaves it nil) to a
	// closure that calls the user's Task[T], writes the result and
	// error into the caller-provided slots, and — for Root frames —
	// releases the completion semaphore.
	run func(w *Worker)

	// err is the wrapped error this frame's Fork or Call also wrote into
	// the caller's errp slot. Join does not read it: the parent sees a
	// child's error only through that errp slot.
	err error
}

func newFrame(kind Kind, parent *Frame) *Frame {
	f := &Frame{kind: kind, parent: parent}
	f.joins.Store(maxJoins)
	return f
}

// depth counts the distance to the root, for diagnostics only (not on any
// hot path).
func (f *Frame) depth() int {
	d := 0
	for p := f.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

package forkpool

import (
	"sync"
	"sync/atomic"

	"pgregory.net/rand"

	"github.com/go-foundations/forkpool/deque"
	"github.com/go-foundations/forkpool/stack"
)

// Worker is the explicit execution context threaded through every
// Fork/Call/Join call, since Go has no per-goroutine-local storage a task
// can cheaply reach for without passing it along. A *Worker belongs to
// exactly one goroutine for its entire lifetime — Fork, Call, and Join
// all return the same *Worker they were given, so there is never a
// second goroutine that might drive its deque concurrently.
type Worker struct {
	id          int
	pool        *Pool
	deque       *deque.Deque[*Frame]
	stk         *stack.Stack
	rng         *rand.Rand
	submissions submissionQueue

	// frame is whichever Frame is currently executing on this goroutine's
	// call stack. Fork/Call save and restore it around each nested call.
	frame *Frame
}

func newWorker(id int, p *Pool) *Worker {
	var limit int
	if p != nil {
		limit = p.cfg.MaxStackBytes
	}
	return &Worker{
		id:    id,
		pool:  p,
		deque: deque.New[*Frame](256),
		stk:   stack.NewWithLimit(limit),
		rng:   rand.New(rand.NewSource(int64(id)*0x51_ED_27_0B_39_09_11_01 + 1)),
	}
}

// peerList is the pool's set of steal targets: exactly the N fixed
// workers registered once, at NewPool time. It is copy-on-write so
// stealing (the hot path) never takes a lock.
type peerList struct {
	mu   sync.Mutex
	list atomic.Pointer[[]*Worker]
}

func (p *peerList) snapshot() []*Worker {
	if l := p.list.Load(); l != nil {
		return *l
	}
	return nil
}

func (p *peerList) register(w *Worker) {
	p.mu.Lock()
	defer p.mu.Unlock()
	cur := p.snapshot()
	next := make([]*Worker, len(cur), len(cur)+1)
	copy(next, cur)
	next = append(next, w)
	p.list.Store(&next)
}

// randomPeer returns a uniformly random worker other than w to attempt a
// steal against, or nil if w is the only registered peer.
func (w *Worker) randomPeer() *Worker {
	peers := w.pool.peers.snapshot()
	if len(peers) <= 1 {
		return nil
	}
	for {
		idx := w.rng.Intn(len(peers))
		if peers[idx] != w {
			return peers[idx]
		}
	}
}

package forkpool

import (
	"sync"
	"sync/atomic"

	"github.com/go-foundations/forkpool/deque"
)

// Metrics is a snapshot of simple running counters useful for observing
// a pool from the outside.
type Metrics struct {
	Submitted  uint64
	Completed  uint64
	Steals     uint64
	StealsLost uint64
}

// Pool is a fixed-size work-stealing scheduler, always busy-polling
// rather than lazily spinning up workers on demand. Every worker loop
// goroutine is always either running a frame, attempting steals, or
// parked on the shared event count — never blocked on I/O outside of
// shutdown.
type Pool struct {
	cfg     Config
	workers []*Worker
	peers   peerList
	notify  *eventCount

	submitted atomic.Uint64
	completed atomic.Uint64
	steals    atomic.Uint64
	stealsLst atomic.Uint64

	stopping atomic.Bool
	wg       sync.WaitGroup
}

// NewPool starts cfg.NumWorkers worker loop goroutines (or
// runtime.GOMAXPROCS(0) many, if cfg is the zero value) and returns once
// they are all registered as steal targets.
func NewPool(cfg Config) *Pool {
	cfg = cfg.withDefaults()
	p := &Pool{cfg: cfg, notify: newEventCount()}

	p.workers = make([]*Worker, cfg.NumWorkers)
	for i := range p.workers {
		p.workers[i] = newWorker(i, p)
	}
	for _, w := range p.workers {
		p.peers.register(w)
	}

	p.wg.Add(len(p.workers))
	for _, w := range p.workers {
		go func(w *Worker) {
			defer p.wg.Done()
			p.runWorkerLoop(w)
		}(w)
	}

	cfg.Logger.Debugw("pool started", "workers", len(p.workers), "steal_attempts", cfg.StealAttempts)
	return p
}

// Stop signals every worker loop to exit once its current frame (if any)
// finishes and no more work is found, then waits for them to drain.
// Outstanding root tasks already submitted are allowed to run to
// completion; SyncWait/SyncWaitAll called after Stop return
// ErrPoolStopped without submitting.
func (p *Pool) Stop() {
	if !p.stopping.CompareAndSwap(false, true) {
		return
	}
	p.notify.NotifyAll()
	p.wg.Wait()
	p.cfg.Logger.Debugw("pool stopped", "completed", p.completed.Load())
}

// GetMetrics returns a snapshot of the pool's running counters.
func (p *Pool) GetMetrics() Metrics {
	return Metrics{
		Submitted:  p.submitted.Load(),
		Completed:  p.completed.Load(),
		Steals:     p.steals.Load(),
		StealsLost: p.stealsLst.Load(),
	}
}

// routeTarget picks which worker's submission queue a new root frame
// lands on via the pool's configured Router.
func (p *Pool) routeTarget(priority int) *Worker {
	ordinal := p.submitted.Add(1) - 1
	idx := p.cfg.SubmissionRouter.Route(RouteContext{
		NumWorkers: len(p.workers),
		Ordinal:    ordinal,
		Priority:   priority,
	})
	if idx < 0 || idx >= len(p.workers) {
		idx = 0
	}
	return p.workers[idx]
}

func (p *Pool) submit(f *Frame, priority int) {
	target := p.routeTarget(priority)
	target.submissions.push(f)
	p.notify.NotifyOne()
}

// runWorkerLoop is the body every dedicated worker goroutine executes
// for its entire lifetime: drain local submissions, pop local deque
// work, then attempt randomized steals, parking on the event count only
// once both come up empty.
func (p *Pool) runWorkerLoop(w *Worker) {
	for {
		p.drainSubmissions(w)

		for {
			f, ok := w.deque.Pop()
			if !ok {
				break
			}
			resumeFrame(w, f, false)
			p.completed.Add(1)
			p.drainSubmissions(w)
		}

		if p.trySteal(w) {
			continue
		}

		key := p.notify.PrepareWait()
		if !w.submissions.empty() || !w.deque.Empty() {
			p.notify.CancelWait()
			continue
		}
		if p.stopping.Load() {
			p.notify.CancelWait()
			return
		}
		p.notify.Wait(key)
	}
}

func (p *Pool) drainSubmissions(w *Worker) {
	for _, f := range w.submissions.drain() {
		resumeFrame(w, f, false)
		p.completed.Add(1)
	}
}

// trySteal attempts up to cfg.StealAttempts randomized steals against
// peers, retrying immediately (without consuming the budget) on a lost
// race, and consuming one attempt per observed-empty peer.
func (p *Pool) trySteal(w *Worker) bool {
	attempts := 0
	for attempts < p.cfg.StealAttempts {
		victim := w.randomPeer()
		if victim == nil {
			attempts++
			continue
		}
		switch res := victim.deque.Steal(); res.Code {
		case deque.StealOK:
			p.steals.Add(1)
			resumeFrame(w, res.Val, true)
			p.completed.Add(1)
			return true
		case deque.StealLost:
			p.stealsLst.Add(1)
			continue
		default: // StealEmpty
			attempts++
		}
	}
	return false
}

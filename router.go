package forkpool

import "sync/atomic"

// RouteContext is what a Router sees when asked to place a newly
// submitted root task. NumWorkers is the pool's current worker count;
// Ordinal is a monotonically increasing submission counter; Priority is
// whatever the caller passed to SyncWaitPriority (0 for plain SyncWait).
type RouteContext struct {
	NumWorkers int
	Ordinal    uint64
	Priority   int
}

// Router decides which worker's submission queue an externally submitted
// root task lands on. A Router never touches task execution — once a
// root frame is queued, the work-stealing deque is the only execution
// engine.
type Router interface {
	Route(ctx RouteContext) int
	Name() string
}

type roundRobinRouter struct {
	next atomic.Uint64
}

// RoundRobin distributes root tasks evenly across workers in submission
// order, ignoring Priority. It is the default Router.
func RoundRobin() Router { return &roundRobinRouter{} }

func (r *roundRobinRouter) Route(ctx RouteContext) int {
	n := r.next.Add(1) - 1
	return int(n % uint64(ctx.NumWorkers))
}

func (r *roundRobinRouter) Name() string { return "round-robin" }

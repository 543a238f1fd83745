package strategies

import (
	"sync"

	"github.com/go-foundations/forkpool"
)

// PriorityBased routes a root task to whichever worker currently carries
// the least priority-weighted load, so high-priority submissions
// preferentially land on workers with the fewest other high-priority
// tasks already admitted. It orders a binary min-heap of per-worker load
// records rather than jobs, since a Router picks a WORKER for one
// submission at a time rather than draining a shared queue of many jobs
// through a pool of identical workers — the pool's own work-stealing
// deques already provide that draining behavior once a task is admitted.
type PriorityBased struct {
	mu   sync.Mutex
	heap loadHeap
}

// NewPriorityBased builds a PriorityBased router tracking numWorkers
// independent load counters.
func NewPriorityBased(numWorkers int) *PriorityBased {
	if numWorkers < 1 {
		numWorkers = 1
	}
	pb := &PriorityBased{}
	for i := 0; i < numWorkers; i++ {
		pb.heap.push(workerLoad{worker: i})
	}
	return pb
}

func (pb *PriorityBased) Name() string { return "priority-based" }

// Route pops the currently least-loaded worker, charges it for this
// submission's priority (higher priority charges more, so it takes longer
// for that worker to be picked again), and pushes the updated record back.
func (pb *PriorityBased) Route(ctx forkpool.RouteContext) int {
	pb.mu.Lock()
	defer pb.mu.Unlock()

	rec, ok := pb.heap.pop()
	if !ok {
		return ctx.Priority % maxInt(1, ctx.NumWorkers)
	}
	rec.load += ctx.Priority + 1
	rec.assignments++
	pb.heap.push(rec)
	return rec.worker
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

var _ forkpool.Router = (*PriorityBased)(nil)

// workerLoad is one node of the load-balancing heap: worker identifies
// which pool worker this record tracks, load is its accumulated
// priority-weighted charge, and assignments breaks ties between equally
// loaded workers in round-robin order, preventing one worker or one
// priority band from starving.
type workerLoad struct {
	worker      int
	load        int
	assignments int
}

// loadHeap is a minimal binary min-heap over workerLoad by (load,
// assignments): lowest load wins, fewer assignments breaks a tie.
type loadHeap struct {
	items []workerLoad
}

func (h *loadHeap) push(rec workerLoad) {
	h.items = append(h.items, rec)
	h.bubbleUp(len(h.items) - 1)
}

func (h *loadHeap) pop() (workerLoad, bool) {
	if len(h.items) == 0 {
		return workerLoad{}, false
	}
	top := h.items[0]
	last := len(h.items) - 1
	h.items[0] = h.items[last]
	h.items = h.items[:last]
	if len(h.items) > 0 {
		h.bubbleDown(0)
	}
	return top, true
}

func (h *loadHeap) bubbleUp(index int) {
	for index > 0 {
		parent := (index - 1) / 2
		if h.shouldSwap(parent, index) {
			h.items[parent], h.items[index] = h.items[index], h.items[parent]
			index = parent
		} else {
			break
		}
	}
}

func (h *loadHeap) bubbleDown(index int) {
	for {
		left := 2*index + 1
		right := 2*index + 2
		smallest := index

		if left < len(h.items) && h.shouldSwap(smallest, left) {
			smallest = left
		}
		if right < len(h.items) && h.shouldSwap(smallest, right) {
			smallest = right
		}
		if smallest == index {
			break
		}
		h.items[index], h.items[smallest] = h.items[smallest], h.items[index]
		index = smallest
	}
}

// shouldSwap reports whether child should move above parent: lower load
// wins, and among equal loads, fewer prior assignments wins (fairness).
func (h *loadHeap) shouldSwap(parent, child int) bool {
	p, c := h.items[parent], h.items[child]
	if p.load != c.load {
		return c.load < p.load
	}
	return c.assignments < p.assignments
}

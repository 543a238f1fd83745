package strategies

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/go-foundations/forkpool"
)

type PriorityBasedTestSuite struct {
	suite.Suite
}

func TestPriorityBasedTestSuite(t *testing.T) {
	suite.Run(t, new(PriorityBasedTestSuite))
}

func (ts *PriorityBasedTestSuite) TestFreshRouterDistributesAcrossAllWorkers() {
	pb := NewPriorityBased(3)
	ts.Equal("priority-based", pb.Name())

	seen := make(map[int]bool)
	for i := 0; i < 3; i++ {
		seen[pb.Route(forkpool.RouteContext{NumWorkers: 3})] = true
	}
	ts.Len(seen, 3, "three submissions against three untouched workers must hit each exactly once")
}

func (ts *PriorityBasedTestSuite) TestHigherPriorityChargesMoreLoad() {
	pb := NewPriorityBased(2)

	charged := pb.Route(forkpool.RouteContext{NumWorkers: 2, Priority: 10})

	// Route again: the next submission should prefer the untouched
	// worker instead.
	next := pb.Route(forkpool.RouteContext{NumWorkers: 2, Priority: 0})
	ts.NotEqual(charged, next, "the heavily-charged worker must not be picked again while an untouched peer remains")

	// Both workers now have one assignment each; the priority-10 charge
	// (11) outweighs the priority-0 one (1), so the lighter worker wins.
	third := pb.Route(forkpool.RouteContext{NumWorkers: 2, Priority: 0})
	ts.Equal(next, third, "a priority-10 submission must weigh more than a priority-0 one")
}

func (ts *PriorityBasedTestSuite) TestLoadHeapOrdersByLoadThenFairness() {
	var h loadHeap
	h.push(workerLoad{worker: 0, load: 5})
	h.push(workerLoad{worker: 1, load: 1})
	h.push(workerLoad{worker: 2, load: 3})

	first, ok := h.pop()
	ts.True(ok)
	ts.Equal(1, first.worker)

	second, ok := h.pop()
	ts.True(ok)
	ts.Equal(2, second.worker)

	third, ok := h.pop()
	ts.True(ok)
	ts.Equal(0, third.worker)

	_, ok = h.pop()
	ts.False(ok)
}

func (ts *PriorityBasedTestSuite) TestLoadHeapTieBreaksOnFewerAssignments() {
	var h loadHeap
	h.push(workerLoad{worker: 0, load: 1, assignments: 5})
	h.push(workerLoad{worker: 1, load: 1, assignments: 2})

	first, ok := h.pop()
	ts.True(ok)
	ts.Equal(1, first.worker)
}

func (ts *PriorityBasedTestSuite) TestEmptyHeapFallsBackToPriorityModulo() {
	pb := &PriorityBased{}
	got := pb.Route(forkpool.RouteContext{NumWorkers: 4, Priority: 9})
	ts.Equal(9%4, got)
}

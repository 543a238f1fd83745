package forkpool

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ScenarioTestSuite struct {
	suite.Suite
}

func TestScenarioTestSuite(t *testing.T) {
	suite.Run(t, new(ScenarioTestSuite))
}

// fib is the canonical fork/call/join benchmark task: the left branch is
// forked (eligible for stealing by a peer worker), the right branch is
// called synchronously, and Join waits for whichever branches actually
// left the local deque.
func fib(n int) Task[int] {
	return func(w *Worker) (int, error) {
		if n < 2 {
			return n, nil
		}

		var a, b int
		var errA, errB error
		w = Fork(w, &a, &errA, fib(n-1))
		w = Call(w, &b, &errB, fib(n-2))
		w = Join(w)

		if err := firstError(errA, errB); err != nil {
			return 0, err
		}
		return a + b, nil
	}
}

func (ts *ScenarioTestSuite) TestFibTen() {
	p := NewPool(Config{NumWorkers: 4})
	defer p.Stop()

	v, err := SyncWait(p, fib(10))
	ts.NoError(err)
	ts.Equal(55, v)
}

func (ts *ScenarioTestSuite) TestFibTwenty() {
	p := NewPool(Config{NumWorkers: 4})
	defer p.Stop()

	v, err := SyncWait(p, fib(20))
	ts.NoError(err)
	ts.Equal(6765, v)
}

func (ts *ScenarioTestSuite) TestFibTwentyFiveOnEightWorkers() {
	p := NewPool(Config{NumWorkers: 8})
	defer p.Stop()

	v, err := SyncWait(p, fib(25))
	ts.NoError(err)
	ts.Equal(75025, v)
}

// deepChain recurses purely through Call, so each level is a genuine
// nested Go function call against the same worker's async stack rather
// than a fork that might be stolen — it exercises the segmented stack's
// geometric growth under deep, strictly LIFO allocation/deallocation.
func deepChain(depth int) Task[int] {
	return func(w *Worker) (int, error) {
		if depth == 0 {
			return 0, nil
		}
		var v int
		var errp error
		w = Call(w, &v, &errp, deepChain(depth-1))
		if errp != nil {
			return 0, errp
		}
		return v + 1, nil
	}
}

func (ts *ScenarioTestSuite) TestDeepCallChainDoesNotOverflow() {
	p := NewPool(Config{NumWorkers: 2})
	defer p.Stop()

	const depth = 100000
	v, err := SyncWait(p, deepChain(depth))
	ts.NoError(err)
	ts.Equal(depth, v)
}

// wideFork forks every one of width children from the same frame before
// joining, maximizing the chance that at least one is actually stolen by
// a peer rather than reclaimed locally by Join's own pop loop.
func wideFork(width int) Task[int] {
	return func(w *Worker) (int, error) {
		slots := make([]int, width)
		errs := make([]error, width)
		for i := 0; i < width; i++ {
			w = Fork(w, &slots[i], &errs[i], func(w *Worker) (int, error) {
				return fib(18)(w)
			})
		}
		w = Join(w)

		if err := firstError(errs...); err != nil {
			return 0, err
		}
		sum := 0
		for _, v := range slots {
			sum += v
		}
		return sum, nil
	}
}

// TestWideForkAcrossManyWorkersProducesConsistentSums exercises real
// steals at scale: many small-grained forks and enough workers that a
// good fraction are actually taken by a peer, while the result stays
// fully deterministic regardless of which worker ends up running which
// fork.
func (ts *ScenarioTestSuite) TestWideForkAcrossManyWorkersProducesConsistentSums() {
	p := NewPool(Config{NumWorkers: 8})
	defer p.Stop()

	const width = 64
	v, err := SyncWait(p, wideFork(width))
	ts.NoError(err)
	ts.Equal(width*fibValue(18), v)
}

func fibValue(n int) int {
	if n < 2 {
		return n
	}
	a, b := 0, 1
	for i := 2; i <= n; i++ {
		a, b = b, a+b
	}
	return b
}

func (ts *ScenarioTestSuite) TestSyncWaitAllRunsBatchOfFibs() {
	p := NewPool(Config{NumWorkers: 4})
	defer p.Stop()

	inputs := []int{5, 10, 15, 20}
	tasks := make([]Task[int], len(inputs))
	for i, n := range inputs {
		tasks[i] = fib(n)
	}

	results, errs := SyncWaitAll(p, tasks...)
	for i, n := range inputs {
		ts.NoError(errs[i])
		ts.Equal(fibValue(n), results[i])
	}
}

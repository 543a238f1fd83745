package forkpool

// Discard returns a fresh pair of throwaway slots for Fork/Call callers
// that don't need a child's result or error, e.g.
// slot, errp := Discard[int](); Fork(w, slot, errp, childTask). It exists
// so "I don't care about this one" doesn't require declaring named
// variables at every call site.
func Discard[T any]() (*T, *error) {
	var v T
	var err error
	return &v, &err
}

// SyncWait submits f as a new root task and blocks the calling goroutine
// (not a pool worker) until it completes, returning its result and error.
// This is the entry point external code uses to get work onto the pool;
// task bodies themselves use Fork/Call/Join instead.
func SyncWait[T any](p *Pool, f Task[T]) (T, error) {
	return SyncWaitPriority(p, 0, f)
}

// SyncWaitPriority is SyncWait with an explicit priority, consulted by
// Routers that care about it (strategies.PriorityBased); RoundRobin and
// Chunked ignore it.
func SyncWaitPriority[T any](p *Pool, priority int, f Task[T]) (T, error) {
	var zero T
	if p.stopping.Load() {
		return zero, ErrPoolStopped
	}

	var result T
	var taskErr error
	done := make(chan struct{})

	root := newFrame(KindRoot, nil)
	root.run = func(w *Worker) {
		prev := w.frame
		w.frame = root
		v, err := f(w)
		w.frame = prev
		result = v
		taskErr = err
		close(done)
	}

	p.submit(root, priority)
	<-done
	return result, taskErr
}

// SyncWaitAll is the supplemented batch form: it submits every task in
// fs concurrently and waits for all of them, preserving input order in
// the returned results. A single pool-stopped check guards the whole
// batch rather than racing per-task checks against a concurrent Stop.
func SyncWaitAll[T any](p *Pool, fs ...Task[T]) ([]T, []error) {
	results := make([]T, len(fs))
	errs := make([]error, len(fs))
	if p.stopping.Load() {
		for i := range errs {
			errs[i] = ErrPoolStopped
		}
		return results, errs
	}

	done := make(chan struct{}, len(fs))
	for i, f := range fs {
		i, f := i, f
		root := newFrame(KindRoot, nil)
		root.run = func(w *Worker) {
			prev := w.frame
			w.frame = root
			v, err := f(w)
			w.frame = prev
			results[i] = v
			errs[i] = err
			done <- struct{}{}
		}
		p.submit(root, 0)
	}
	for range fs {
		<-done
	}
	return results, errs
}

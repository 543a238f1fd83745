package forkpool

import "errors"

// ErrAllocationFailed is the error a Task's errp slot carries when its
// own Fork/Call activation couldn't grow the worker's async stack
// because doing so would exceed Config.MaxStackBytes (the stack reported
// stack.ErrLimitExceeded, which is not wrapped). With no limit configured
// (the default), a stack simply keeps growing and this is never returned.
var ErrAllocationFailed = errors.New("forkpool: stack allocation failed")

// ErrPoolStopped is returned by SyncWait/SyncWaitAll once Stop has been
// called and no further root tasks are being accepted.
var ErrPoolStopped = errors.New("forkpool: pool is stopped")

// ErrInvariantViolation marks a condition the scheduler itself should
// never produce (Join popping a frame forked neither by the frame it is
// joining nor by one of that frame's ancestors). Unlike
// ErrAllocationFailed and ErrPoolStopped, it is never returned to a task
// author; a corrupted scheduler invariant is grounds for a panic, not a
// recoverable error, since continuing to schedule after one of these is
// detected would only corrupt further work.
var ErrInvariantViolation = errors.New("forkpool: scheduler invariant violation")

// TaskError annotates an error returned from a Fork'd or Call'd Task with
// which of the two suspend points raised it. Fork and Call always wrap a
// non-nil error this way before writing it to the caller's errp slot.
//
// Join itself does not aggregate sibling errors — a stolen fork runs to
// completion regardless of an already-failed sibling, and writes
// straight into its own errp slot. A task author who forked several
// children reads each slot after Join returns and combines them with
// firstError, in the program order of the fork/call sites rather than
// completion order.
type TaskError struct {
	Op  string // "fork" or "call"
	Err error
}

func (e *TaskError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *TaskError) Unwrap() error { return e.Err }

func wrapTaskErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &TaskError{Op: op, Err: err}
}

// firstError returns the first non-nil error among errs, in the order
// given — the helper a task author calls after Join to combine several
// forked children's errp slots.
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

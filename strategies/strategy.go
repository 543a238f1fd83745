// Package strategies provides pluggable admission policies for routing
// externally submitted root tasks onto a forkpool.Pool's workers. Unlike
// a policy that decides how to execute a batch of jobs, a Router only
// decides WHERE a root task is admitted — the pool's work-stealing
// deques are always what actually run it, so there is only ever a
// pluggable admission policy, never a pluggable execution one.
package strategies

import "github.com/go-foundations/forkpool"

// Kind names a routing policy.
type Kind int

const (
	KindRoundRobin Kind = iota
	KindChunked
	KindPriorityBased
)

func (k Kind) String() string {
	switch k {
	case KindRoundRobin:
		return "round-robin"
	case KindChunked:
		return "chunked"
	case KindPriorityBased:
		return "priority-based"
	default:
		return "unknown"
	}
}

// Factory builds a forkpool.Router for a given Kind and worker count.
type Factory struct{}

// NewFactory constructs a Factory.
func NewFactory() *Factory { return &Factory{} }

// New builds the named routing policy.
func (f *Factory) New(kind Kind, numWorkers int) forkpool.Router {
	switch kind {
	case KindChunked:
		return NewChunked(numWorkers, defaultChunkSize)
	case KindPriorityBased:
		return NewPriorityBased(numWorkers)
	default:
		return forkpool.RoundRobin()
	}
}

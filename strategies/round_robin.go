package strategies

import "github.com/go-foundations/forkpool"

// RoundRobin re-exports the pool's built-in round-robin Router so callers
// that enumerate strategies by Kind (via Factory) don't need a special
// case for the default — kept here rather than only in the root package
// so strategies.Factory is a complete, self-contained catalogue listing
// every policy alongside its siblings, even though this one is also the
// zero-value default.
func RoundRobin() forkpool.Router { return forkpool.RoundRobin() }

package strategies

import "github.com/go-foundations/forkpool"

const defaultChunkSize = 32

// Chunked assigns contiguous bands of submission ordinals to each
// worker: chunkSize consecutive submissions land on the same worker
// before moving on to the next, rather than spreading every submission
// across workers individually the way RoundRobin does.
type Chunked struct {
	numWorkers int
	chunkSize  int
}

// NewChunked builds a Chunked router. chunkSize must be positive; numWorkers
// is only a fallback used if RouteContext ever reports a different,
// unexpected worker count (it always defers to ctx.NumWorkers otherwise).
func NewChunked(numWorkers, chunkSize int) *Chunked {
	if chunkSize < 1 {
		chunkSize = defaultChunkSize
	}
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &Chunked{numWorkers: numWorkers, chunkSize: chunkSize}
}

func (c *Chunked) Name() string { return "chunked" }

func (c *Chunked) Route(ctx forkpool.RouteContext) int {
	n := ctx.NumWorkers
	if n <= 0 {
		n = c.numWorkers
	}
	band := ctx.Ordinal / uint64(c.chunkSize)
	return int(band % uint64(n))
}

var _ forkpool.Router = (*Chunked)(nil)

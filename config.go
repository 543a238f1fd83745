package forkpool

import (
	"os"
	"runtime"
	"strconv"
)

// Config controls pool construction. Zero-value fields fall back to
// DefaultConfig's values, with environment-variable overrides applied
// for the knobs that have one.
type Config struct {
	// NumWorkers is the number of worker goroutines the pool starts with.
	// Defaults to runtime.GOMAXPROCS(0).
	NumWorkers int

	// StealAttempts bounds how many randomized steal attempts a worker
	// makes against peers before it parks on the event count.
	StealAttempts int

	// SubmissionRouter decides which worker's submission queue an
	// external SyncWait/SyncWaitAll lands on. Defaults to a round-robin
	// router.
	SubmissionRouter Router

	// Logger receives structured diagnostics (pool start and stop). A nil
	// Logger is replaced by the zap-backed default.
	Logger Logger

	// MaxStackBytes caps a single stacklet chain's total size; 0 means
	// unbounded, matching the original's default of no hard ceiling.
	MaxStackBytes int
}

const (
	envInitStackSize  = "LF_FIBRE_INIT_SIZE"
	envStealAttempts  = "LF_STEAL_ATTEMPTS"
	envMaxStackBytes  = "LF_ASYNC_STACK_SIZE"
	defaultStealTries = 32
)

// DefaultConfig returns the configuration NewPool uses when called with a
// zero-value Config, with LF_* environment overrides applied exactly as
// the stack package applies LF_FIBRE_INIT_SIZE for initial stacklet size.
func DefaultConfig() Config {
	cfg := Config{
		NumWorkers:       runtime.GOMAXPROCS(0),
		StealAttempts:    defaultStealTries,
		SubmissionRouter: RoundRobin(),
		Logger:           newZapLogger(),
	}
	if v := os.Getenv(envStealAttempts); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.StealAttempts = n
		}
	}
	if v := os.Getenv(envMaxStackBytes); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxStackBytes = n
		}
	}
	return cfg
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.NumWorkers <= 0 {
		c.NumWorkers = d.NumWorkers
	}
	if c.StealAttempts <= 0 {
		c.StealAttempts = d.StealAttempts
	}
	if c.SubmissionRouter == nil {
		c.SubmissionRouter = d.SubmissionRouter
	}
	if c.Logger == nil {
		c.Logger = d.Logger
	}
	if c.MaxStackBytes <= 0 {
		c.MaxStackBytes = d.MaxStackBytes
	}
	return c
}

package group

import "github.com/ygrebnov/corotask/metrics"

// Config tunes how a group of independent task trees is run: pool sizing,
// ordering, error correlation, and observability for a fan-out layer over
// corotask.
type Config struct {
	// PoolCapacity bounds concurrent frames in flight. Zero (default) means
	// a dynamic, sync.Pool-backed scheduler with no fixed cap.
	PoolCapacity uint

	// PreserveOrder reorders Stream's output back into submission order.
	// RunAll/ForEach/Map are unaffected: they already know each item's index
	// and place results there regardless of completion order.
	PreserveOrder bool

	// ErrorTagging wraps a failing tree's error with the index/ID of the
	// handle that produced it (see TaggedError, ExtractTaskID, ExtractTaskIndex).
	ErrorTagging bool

	// Metrics receives scheduling counters and latency for the pool backing
	// this group. Default: metrics.NoopProvider.
	Metrics metrics.Provider
}

func defaultConfig() Config {
	return Config{
		PoolCapacity:  0,
		PreserveOrder: false,
		ErrorTagging:  false,
		Metrics:       metrics.NewNoopProvider(),
	}
}

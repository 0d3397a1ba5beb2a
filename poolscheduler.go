package corotask

import (
	"time"

	"github.com/ygrebnov/corotask/metrics"
	"github.com/ygrebnov/corotask/pool"
)

// PoolScheduler dispatches frame bodies onto goroutines backed by a
// corotask/pool.Pool, recording scheduling counters and latency on a
// metrics.Provider.
type PoolScheduler struct {
	inner     *pool.Scheduler
	provider  metrics.Provider
	scheduled metrics.Counter
	inFlight  metrics.UpDownCounter
	latency   metrics.Histogram
}

// PoolSchedulerOption configures a PoolScheduler.
type PoolSchedulerOption func(*PoolScheduler)

// WithMetrics attaches a metrics.Provider. The default is metrics.NoopProvider.
func WithMetrics(p metrics.Provider) PoolSchedulerOption {
	return func(s *PoolScheduler) { s.provider = p }
}

// NewFixedPoolScheduler builds a PoolScheduler backed by a fixed-capacity pool.
func NewFixedPoolScheduler(capacity uint, opts ...PoolSchedulerOption) *PoolScheduler {
	return newPoolScheduler(pool.NewFixedScheduler(capacity), opts)
}

// NewDynamicPoolScheduler builds a PoolScheduler backed by a sync.Pool-based pool.
func NewDynamicPoolScheduler(opts ...PoolSchedulerOption) *PoolScheduler {
	return newPoolScheduler(pool.NewDynamicScheduler(), opts)
}

func newPoolScheduler(inner *pool.Scheduler, opts []PoolSchedulerOption) *PoolScheduler {
	s := &PoolScheduler{inner: inner, provider: metrics.NewNoopProvider()}
	for _, opt := range opts {
		opt(s)
	}
	s.scheduled = s.provider.Counter("corotask_frames_scheduled")
	s.inFlight = s.provider.UpDownCounter("corotask_frames_in_flight")
	s.latency = s.provider.Histogram("corotask_schedule_latency_seconds", metrics.WithUnit("seconds"))
	return s
}

func (s *PoolScheduler) Schedule(work func()) error {
	start := time.Now()
	s.scheduled.Add(1)
	s.inFlight.Add(1)
	return s.inner.Schedule(func() {
		defer s.inFlight.Add(-1)
		s.latency.Record(time.Since(start).Seconds())
		work()
	})
}

// Wait blocks until every unit of work this scheduler has dispatched returns.
func (s *PoolScheduler) Wait() { s.inner.Wait() }

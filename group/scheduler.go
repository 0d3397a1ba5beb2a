package group

import "github.com/ygrebnov/corotask"

func newScheduler(cfg Config) *corotask.PoolScheduler {
	if cfg.PoolCapacity > 0 {
		return corotask.NewFixedPoolScheduler(cfg.PoolCapacity, corotask.WithMetrics(cfg.Metrics))
	}
	return corotask.NewDynamicPoolScheduler(corotask.WithMetrics(cfg.Metrics))
}

package group

import "github.com/ygrebnov/corotask/metrics"

// Option configures a group operation (RunAll, ForEach, Map, Stream).
type Option func(*Config)

// WithFixedPool bounds the group's scheduler to n concurrently running frames.
func WithFixedPool(n uint) Option {
	return func(c *Config) {
		if n == 0 {
			panic("group: WithFixedPool requires n > 0")
		}
		c.PoolCapacity = n
	}
}

// WithDynamicPool selects an unbounded, sync.Pool-backed scheduler (the default).
func WithDynamicPool() Option {
	return func(c *Config) { c.PoolCapacity = 0 }
}

// WithPreserveOrder reorders Stream's output channel back into submission order.
func WithPreserveOrder() Option {
	return func(c *Config) { c.PreserveOrder = true }
}

// WithErrorTagging wraps failing trees' errors with their index/ID.
func WithErrorTagging() Option {
	return func(c *Config) { c.ErrorTagging = true }
}

// WithMetrics attaches a metrics.Provider to the group's scheduler.
func WithMetrics(p metrics.Provider) Option {
	return func(c *Config) { c.Metrics = p }
}

func buildConfig(opts []Option) Config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			panic("group: nil option")
		}
		opt(&cfg)
	}
	return cfg
}

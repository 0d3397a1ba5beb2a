package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// PromProvider implements Provider on top of github.com/prometheus/client_golang,
// giving schedulers and group helpers a real monitoring backend alongside the
// in-memory BasicProvider. The instrument shapes (Counter/UpDownCounter/Histogram)
// are unchanged from Provider, so any corotask component written against the
// interface works with either implementation.
type PromProvider struct {
	registerer prometheus.Registerer

	mu         sync.Mutex
	counters   map[string]prometheus.Counter
	updowns    map[string]prometheus.Gauge
	histograms map[string]prometheus.Histogram
}

// NewPromProvider builds a PromProvider that registers instruments with reg.
// Pass prometheus.DefaultRegisterer to use the global registry.
func NewPromProvider(reg prometheus.Registerer) *PromProvider {
	return &PromProvider{
		registerer: reg,
		counters:   make(map[string]prometheus.Counter),
		updowns:    make(map[string]prometheus.Gauge),
		histograms: make(map[string]prometheus.Histogram),
	}
}

func (p *PromProvider) Counter(name string, opts ...InstrumentOption) Counter {
	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok := p.counters[name]; ok {
		return promCounter{c}
	}
	cfg := applyOptions(opts)
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: cfg.Description})
	p.registerer.MustRegister(c)
	p.counters[name] = c
	return promCounter{c}
}

func (p *PromProvider) UpDownCounter(name string, opts ...InstrumentOption) UpDownCounter {
	p.mu.Lock()
	defer p.mu.Unlock()
	if g, ok := p.updowns[name]; ok {
		return promUpDownCounter{g}
	}
	cfg := applyOptions(opts)
	g := prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: cfg.Description})
	p.registerer.MustRegister(g)
	p.updowns[name] = g
	return promUpDownCounter{g}
}

func (p *PromProvider) Histogram(name string, opts ...InstrumentOption) Histogram {
	p.mu.Lock()
	defer p.mu.Unlock()
	if h, ok := p.histograms[name]; ok {
		return promHistogram{h}
	}
	cfg := applyOptions(opts)
	h := prometheus.NewHistogram(prometheus.HistogramOpts{Name: name, Help: cfg.Description})
	p.registerer.MustRegister(h)
	p.histograms[name] = h
	return promHistogram{h}
}

type promCounter struct{ c prometheus.Counter }

func (p promCounter) Add(n int64) { p.c.Add(float64(n)) }

type promUpDownCounter struct{ g prometheus.Gauge }

func (p promUpDownCounter) Add(n int64) { p.g.Add(float64(n)) }

type promHistogram struct{ h prometheus.Histogram }

func (p promHistogram) Record(v float64) { p.h.Observe(v) }

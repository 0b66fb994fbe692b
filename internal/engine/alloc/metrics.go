package alloc

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Instrumented wraps an allocator and records allocation traffic as
// Prometheus metrics. Metrics carry an "allocator" const label so several
// instrumented allocators can share a registry.
type Instrumented[T any] struct {
	inner Allocator[T]

	allocations   prometheus.Counter
	deallocations prometheus.Counter
	failures      prometheus.Counter
	liveElements  prometheus.Gauge
}

// NewInstrumented registers the allocator's metrics on reg and returns the
// wrapper. A nil inner allocator means Heap. If the collectors are already
// registered under the same name, the existing ones are reused.
func NewInstrumented[T any](inner Allocator[T], reg prometheus.Registerer, name string) (*Instrumented[T], error) {
	if inner == nil {
		inner = Heap[T]{}
	}
	labels := prometheus.Labels{"allocator": name}

	i := &Instrumented[T]{
		inner: inner,
		allocations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "neolib",
			Subsystem:   "alloc",
			Name:        "allocations_total",
			Help:        "Total number of blocks handed out",
			ConstLabels: labels,
		}),
		deallocations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "neolib",
			Subsystem:   "alloc",
			Name:        "deallocations_total",
			Help:        "Total number of blocks released",
			ConstLabels: labels,
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "neolib",
			Subsystem:   "alloc",
			Name:        "allocation_failures_total",
			Help:        "Total number of refused allocation requests",
			ConstLabels: labels,
		}),
		liveElements: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "neolib",
			Subsystem:   "alloc",
			Name:        "live_elements",
			Help:        "Number of elements in blocks currently outstanding",
			ConstLabels: labels,
		}),
	}

	if reg != nil {
		var err error
		if i.allocations, err = register(reg, i.allocations); err != nil {
			return nil, err
		}
		if i.deallocations, err = register(reg, i.deallocations); err != nil {
			return nil, err
		}
		if i.failures, err = register(reg, i.failures); err != nil {
			return nil, err
		}
		if i.liveElements, err = register(reg, i.liveElements); err != nil {
			return nil, err
		}
	}

	return i, nil
}

// register registers c, falling back to the collector already registered
// under the same descriptor.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// Allocate forwards to the inner allocator and records the outcome.
func (i *Instrumented[T]) Allocate(n int) ([]T, error) {
	block, err := i.inner.Allocate(n)
	if err != nil {
		i.failures.Inc()
		return nil, err
	}
	i.allocations.Inc()
	i.liveElements.Add(float64(len(block)))
	return block, nil
}

// Deallocate forwards to the inner allocator and records the release.
func (i *Instrumented[T]) Deallocate(block []T) {
	if block == nil {
		return
	}
	i.deallocations.Inc()
	i.liveElements.Sub(float64(len(block)))
	i.inner.Deallocate(block)
}

// Copyright (c) 2025 Ali Ghaffaari
// SPDX-License-Identifier: MIT

// Package stats implements the orchestrator's tuning-statistics sink: a set
// of running averages updated concurrently by many workers and read back
// (and exported as Prometheus gauges) by a single reducer. Readers take a
// read lock to permit concurrent increments; the reducer takes the write
// lock alone.
package stats

import (
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// Counter is a single named running-average accumulator: a sum and a count,
// each updated with sync/atomic so many goroutines can record observations
// concurrently without blocking each other.
type Counter struct {
	sum   atomic.Int64
	count atomic.Int64
}

// Add records one observation.
func (c *Counter) Add(v int64) {
	c.sum.Add(v)
	c.count.Add(1)
}

// Average returns the running mean, or 0 if no observations were recorded.
func (c *Counter) Average() float64 {
	n := c.count.Load()
	if n == 0 {
		return 0
	}
	return float64(c.sum.Load()) / float64(n)
}

// Count returns the number of observations recorded so far.
func (c *Counter) Count() int64 { return c.count.Load() }

// Stats is the single sink an orchestrator owns for the lifetime of one
// run. Readers (the concurrent workers) take the read lock to fetch a
// Counter and call
// Add on it directly, so increments themselves never contend on mu; the
// reducer (Snapshot, or the Prometheus collector) takes the write lock only
// to iterate the counter map, never to read an individual Counter's value.
type Stats struct {
	mu       sync.RWMutex
	counters map[string]*Counter
	registry *prometheus.Registry
	gauges   map[string]prometheus.Gauge
}

// New returns an empty Stats sink registered against registry (nil is
// accepted: gauges are then simply not exported).
func New(registry *prometheus.Registry) *Stats {
	return &Stats{
		counters: make(map[string]*Counter),
		registry: registry,
		gauges:   make(map[string]prometheus.Gauge),
	}
}

// Counter returns the named running-average accumulator, creating it (and
// its Prometheus gauge, if a registry was supplied) on first use.
func (s *Stats) Counter(name string) *Counter {
	s.mu.RLock()
	c, ok := s.counters[name]
	s.mu.RUnlock()
	if ok {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.counters[name]; ok {
		return c
	}
	c = &Counter{}
	s.counters[name] = c
	if s.registry != nil {
		g := prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vgseed",
			Name:      name,
			Help:      "running average for " + name,
		})
		_ = s.registry.Register(g)
		s.gauges[name] = g
	}
	return c
}

// Snapshot reports the current average of every named counter, updating
// each registered gauge to match before returning.
func (s *Stats) Snapshot() map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]float64, len(s.counters))
	for name, c := range s.counters {
		avg := c.Average()
		out[name] = avg
		if g, ok := s.gauges[name]; ok {
			g.Set(avg)
		}
	}
	return out
}

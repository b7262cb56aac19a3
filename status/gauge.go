// Package status keeps named runtime gauges shared between the simulation
// goroutine and the health endpoint.
package status

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"
)

// Float is an atomic float64; the zero value reads 0
type Float struct {
	bits atomic.Uint64
}

func (f *Float) Store(v float64) { f.bits.Store(math.Float64bits(v)) }

func (f *Float) Load() float64 { return math.Float64frombits(f.bits.Load()) }

// Add adds delta and returns the new value
func (f *Float) Add(delta float64) float64 {
	for {
		old := f.bits.Load()
		next := math.Float64frombits(old) + delta
		if f.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}

// gauges maps names to lazily created values of T.
// Lookup locks; the returned pointer is then used lock-free.
type gauges[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

func newGauges[T any]() *gauges[T] {
	return &gauges[T]{items: make(map[string]*T)}
}

func (g *gauges[T]) get(name string) *T {
	g.mu.RLock()
	if p, ok := g.items[name]; ok {
		g.mu.RUnlock()
		return p
	}
	g.mu.RUnlock()

	g.mu.Lock()
	defer g.mu.Unlock()
	if p, ok := g.items[name]; ok {
		return p
	}
	p := new(T)
	g.items[name] = p
	return p
}

// each visits gauges in name order
func (g *gauges[T]) each(fn func(name string, p *T)) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	names := make([]string, 0, len(g.items))
	for k := range g.items {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		fn(k, g.items[k])
	}
}

func (g *gauges[T]) count() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.items)
}

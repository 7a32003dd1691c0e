package cache

import (
	"sync"

	"github.com/jumongjeong/gungdo-sim/pkg/flight"
)

// ResultCache memoizes completed simulations keyed on the full normalized
// shot tuple. The solver and angle sweeps revisit identical inputs, and a hit
// must come back without rerunning the integrator. Stored results are shared:
// callers treat them as read-only.
type ResultCache struct {
	m       sync.Mutex
	results map[flight.ShotParams]flight.Result

	hits   SafeCounter
	misses SafeCounter
}

func NewResultCache() *ResultCache {
	return &ResultCache{
		results: make(map[flight.ShotParams]flight.Result),
	}
}

// Get returns the memoized result for a normalized shot tuple.
func (c *ResultCache) Get(key flight.ShotParams) (flight.Result, bool) {
	c.m.Lock()
	defer c.m.Unlock()
	if r, ok := c.results[key]; ok {
		c.hits.Inc()
		return r, true
	}
	c.misses.Inc()
	return flight.Result{}, false
}

// Add stores a result under its normalized shot tuple.
func (c *ResultCache) Add(key flight.ShotParams, res flight.Result) {
	c.m.Lock()
	defer c.m.Unlock()
	c.results[key] = res
}

func (c *ResultCache) Reset() {
	c.m.Lock()
	defer c.m.Unlock()
	c.results = make(map[flight.ShotParams]flight.Result)
}

// Len returns the number of memoized shots.
func (c *ResultCache) Len() int {
	c.m.Lock()
	defer c.m.Unlock()
	return len(c.results)
}

// Hits reports how many lookups were served from memory.
func (c *ResultCache) Hits() int {
	return c.hits.Value()
}

// Misses reports how many lookups fell through to the integrator.
func (c *ResultCache) Misses() int {
	return c.misses.Value()
}

// SafeCounter is a thread-safe counter
type SafeCounter struct {
	mu sync.Mutex
	v  int
}

func (c *SafeCounter) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v
}

func (c *SafeCounter) Set(v int) {
	c.mu.Lock()
	c.v = v
	c.mu.Unlock()
}

func (c *SafeCounter) Inc() {
	c.mu.Lock()
	c.v++
	c.mu.Unlock()
}

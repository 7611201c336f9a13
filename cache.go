package distfield

import (
	"sync"
	"sync/atomic"
)

// Cache stores previously computed results for coordinate regions under a
// single signature. A signature change discards the whole store: stale
// results are assumed worthless rather than partially reusable.
//
// Entries accumulate as more bounds are queried and never individually
// expire; the cache is bounded only by signature lifetime, which the caller
// controls through curve/profile/palette selection.
//
// Concurrency: reads may proceed concurrently from any number of in-flight
// region requests; Store and Invalidate serialize against each other.
// Results are idempotent under a fixed signature, so concurrent stores of
// overlapping regions race harmlessly.
type Cache struct {
	mu      sync.RWMutex
	sig     Signature
	hasSig  bool
	entries map[Coord]Result

	// Statistics (atomic for zero-allocation reads).
	hits    atomic.Uint64
	misses  atomic.Uint64
	flushes atomic.Uint64
}

// NewCache returns an empty cache with no active signature.
func NewCache() *Cache {
	return &Cache{entries: make(map[Coord]Result)}
}

// Invalidate activates sig. If it differs from the current signature the
// entire store is discarded and hit/miss counters reset; a matching
// signature is a no-op.
func (c *Cache) Invalidate(sig Signature) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.hasSig && c.sig == sig {
		return
	}
	if len(c.entries) > 0 {
		c.flushes.Add(1)
	}
	c.sig = sig
	c.hasSig = true
	c.entries = make(map[Coord]Result)
	c.hits.Store(0)
	c.misses.Store(0)
}

// Query returns the cached results inside bounds plus the number of
// coordinates in bounds that are missing. A signature mismatch counts every
// coordinate as missing without touching the store; callers are expected to
// Invalidate first.
func (c *Cache) Query(sig Signature, b Bounds) (hits Region, missing int) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.hasSig || c.sig != sig {
		c.misses.Add(uint64(b.Count()))
		return nil, b.Count()
	}

	hits = make(Region, len(c.entries))
	for y := b.MinY; y <= b.MaxY; y++ {
		for x := b.MinX; x <= b.MaxX; x++ {
			if r, ok := c.entries[Coord{X: x, Y: y}]; ok {
				hits[Coord{X: x, Y: y}] = r
			} else {
				missing++
			}
		}
	}
	c.hits.Add(uint64(len(hits)))
	c.misses.Add(uint64(missing))
	return hits, missing
}

// Store merges results into the active signature's entry set. Results for a
// foreign signature are dropped: they were computed for a world that no
// longer exists. Existing coordinates keep their value; same-signature
// results are identical by construction, so overwriting would be a no-op
// anyway.
func (c *Cache) Store(sig Signature, results Region) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.hasSig || c.sig != sig {
		return
	}
	for coord, r := range results {
		if _, ok := c.entries[coord]; !ok {
			c.entries[coord] = r
		}
	}
}

// Len returns the number of cached coordinates under the active signature.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// CacheStats is a point-in-time snapshot of cache effectiveness.
type CacheStats struct {
	Len     int
	Hits    uint64
	Misses  uint64
	HitRate float64
	Flushes uint64
}

// Stats returns current cache statistics. Mostly lock-free (atomic counters).
func (c *Cache) Stats() CacheStats {
	hits := c.hits.Load()
	misses := c.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}
	return CacheStats{
		Len:     c.Len(),
		Hits:    hits,
		Misses:  misses,
		HitRate: hitRate,
		Flushes: c.flushes.Load(),
	}
}

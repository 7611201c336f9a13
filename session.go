package distfield

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrSuperseded is returned when a newer EvaluateRegion call was issued on
// the same session before this one finished. The stale result set is
// discarded rather than stored; in-flight GPU work is not cancelled (it may
// not be cancellable), only its output is dropped.
var ErrSuperseded = errors.New("distfield: region request superseded by a newer one")

// Session orchestrates cache lookups and dual-backend execution for one
// viewer. It is an explicit, caller-owned object: independent sessions (for
// example split-screen previews) keep independent caches, backends, and
// generation counters with no cross-talk.
//
// Session is safe for concurrent use. Rapid interactive callers should issue
// requests sequentially per viewport; overlapping calls supersede each other
// by generation.
type Session struct {
	cache   *Cache
	backend Backend
	log     *slog.Logger
	workers int

	panX, panY float64

	// gen tags requests; results from any generation older than the most
	// recently issued one are discarded instead of stored.
	gen atomic.Uint64

	// computes counts coordinates actually evaluated (CPU or GPU), for
	// cache-effectiveness instrumentation and tests.
	computes atomic.Uint64

	gpuReady bool
	closeMu  sync.Mutex
	closed   bool
}

// NewSession creates a session. With no options it evaluates on the CPU with
// GOMAXPROCS workers, keeps a fresh cache, and logs through the package
// logger.
func NewSession(opts ...SessionOption) *Session {
	var o sessionOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = Logger()
	}
	if o.workers <= 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}

	s := &Session{
		cache:   NewCache(),
		backend: o.backend,
		log:     o.logger,
		workers: o.workers,
		panX:    o.panX,
		panY:    o.panY,
	}

	if s.backend != nil {
		if err := s.backend.Init(); err != nil {
			// Recoverable: the session stays on CPU for its lifetime.
			s.log.Warn("distfield: GPU backend init failed, using CPU",
				"backend", s.backend.Name(), "error", err)
			s.backend = nil
		} else {
			s.gpuReady = true
			s.log.Info("distfield: GPU backend ready", "backend", s.backend.Name())
		}
	}
	return s
}

// Close releases the session's backend resources. Safe to call more than
// once. The session must not be used after Close.
func (s *Session) Close() {
	s.closeMu.Lock()
	defer s.closeMu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.backend != nil {
		s.backend.Close()
	}
}

// GPUReady reports whether a GPU backend initialized successfully.
func (s *Session) GPUReady() bool { return s.gpuReady }

// CacheStats returns the session cache's current statistics.
func (s *Session) CacheStats() CacheStats { return s.cache.Stats() }

// ComputeCount returns the total number of coordinates evaluated so far.
// Repeat requests served entirely from cache do not increase it.
func (s *Session) ComputeCount() uint64 { return s.computes.Load() }

// EvaluateRegion produces the complete result set for a rectangular region
// under the given curve, profile, and optional palette (nil means grayscale).
//
// The cache signature is refreshed first; a change flushes the cache. A
// fully covered request returns cached results without recomputation.
// Otherwise the full bounds are recomputed fresh — not just the gap. Region
// requests are typically whole-viewport redraws, where partial-gap stitching
// adds complexity disproportionate to its savings; revisit only with
// profiles in hand.
func (s *Session) EvaluateRegion(ctx context.Context, curve *Curve, p Profile, palette *Palette, b Bounds) (Region, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := palette.Validate(); err != nil {
		return nil, err
	}
	engine, err := NewEngine(p, curve, s.panX, s.panY)
	if err != nil {
		return nil, err
	}
	p = engine.Profile()

	gen := s.gen.Add(1)

	sig := ComputeSignature(curve, p, palette, s.panX, s.panY)
	s.cache.Invalidate(sig)

	hits, missing := s.cache.Query(sig, b)
	if missing == 0 {
		return hits, nil
	}

	resolver := NewResolver(curve, palette, p)

	var results Region
	if s.gpuReady {
		results, err = s.evaluateGPU(curve, p, palette, b)
		if err != nil {
			s.log.Warn("distfield: GPU evaluation failed, falling back to CPU",
				"backend", s.backend.Name(), "error", err)
			results = nil
		}
	}
	if results == nil {
		results, err = s.evaluateCPU(ctx, engine, resolver, b)
		if err != nil {
			return nil, err
		}
	}
	s.computes.Add(uint64(len(results)))

	// Discard superseded generations: a newer request owns the viewport now.
	if s.gen.Load() != gen {
		return nil, ErrSuperseded
	}

	s.cache.Store(sig, results)
	return results, nil
}

// evaluateCPU computes bounds on the CPU, parallelized across row bands.
// The engine and resolver are pure, so the workers share no mutable state
// and need no ordering between coordinates.
func (s *Session) evaluateCPU(ctx context.Context, engine *Engine, resolver *Resolver, b Bounds) (Region, error) {
	height := b.Height()
	workers := s.workers
	if workers > height {
		workers = height
	}

	band := (height + workers - 1) / workers
	partials := make([]Region, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		startY := b.MinY + w*band
		endY := startY + band - 1
		if endY > b.MaxY {
			endY = b.MaxY
		}
		if startY > endY {
			continue
		}

		wg.Add(1)
		go func(slot, y0, y1 int) {
			defer wg.Done()
			part := make(Region, (y1-y0+1)*b.Width())
			for y := y0; y <= y1; y++ {
				if ctx.Err() != nil {
					return
				}
				for x := b.MinX; x <= b.MaxX; x++ {
					part[Coord{X: x, Y: y}] = Evaluate(engine, resolver, x, y)
				}
			}
			partials[slot] = part
		}(w, startY, endY)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make(Region, b.Count())
	for _, part := range partials {
		for coord, r := range part {
			results[coord] = r
		}
	}
	return results, nil
}

// evaluateGPU dispatches the full bounds to the backend and unpacks the
// row-major cell records into results.
func (s *Session) evaluateGPU(curve *Curve, p Profile, palette *Palette, b Bounds) (Region, error) {
	cells, err := s.backend.EvaluateRegion(curve, p, palette, s.panX, s.panY, b)
	if err != nil {
		return nil, err
	}
	if want := b.Count(); len(cells) != want {
		return nil, errors.New("distfield: backend returned short cell buffer")
	}

	results := make(Region, len(cells))
	i := 0
	for y := b.MinY; y <= b.MaxY; y++ {
		for x := b.MinX; x <= b.MaxX; x++ {
			c := cells[i]
			i++
			results[Coord{X: x, Y: y}] = Result{
				X:        x,
				Y:        y,
				Distance: float64(c.Dist),
				Index:    int(c.Index),
				Value:    uint8(c.Value),
				Color:    UnpackRGBA(c.Color),
			}
		}
	}
	return results, nil
}

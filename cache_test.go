package distfield

import "testing"

func fillRegion(b Bounds) Region {
	region := make(Region, b.Count())
	for y := b.MinY; y <= b.MaxY; y++ {
		for x := b.MinX; x <= b.MaxX; x++ {
			region[Coord{X: x, Y: y}] = Result{X: x, Y: y, Index: x + y}
		}
	}
	return region
}

func TestCacheQueryMissThenHit(t *testing.T) {
	c := NewCache()
	sig := Signature(1)
	b := Bounds{0, 0, 3, 3}

	c.Invalidate(sig)
	hits, missing := c.Query(sig, b)
	if len(hits) != 0 || missing != b.Count() {
		t.Fatalf("empty cache: hits %d, missing %d, want 0/%d", len(hits), missing, b.Count())
	}

	c.Store(sig, fillRegion(b))
	hits, missing = c.Query(sig, b)
	if missing != 0 || len(hits) != b.Count() {
		t.Fatalf("warm cache: hits %d, missing %d, want %d/0", len(hits), missing, b.Count())
	}
}

func TestCachePartialCoverage(t *testing.T) {
	c := NewCache()
	sig := Signature(1)
	c.Invalidate(sig)
	c.Store(sig, fillRegion(Bounds{0, 0, 3, 3}))

	// A shifted window overlaps half the stored region.
	hits, missing := c.Query(sig, Bounds{2, 0, 5, 3})
	if len(hits) != 8 || missing != 8 {
		t.Errorf("hits %d, missing %d, want 8/8", len(hits), missing)
	}
}

func TestCacheInvalidateFlushes(t *testing.T) {
	c := NewCache()
	c.Invalidate(Signature(1))
	c.Store(Signature(1), fillRegion(Bounds{0, 0, 3, 3}))
	if c.Len() != 16 {
		t.Fatalf("Len = %d, want 16", c.Len())
	}

	c.Invalidate(Signature(2))
	if c.Len() != 0 {
		t.Errorf("Len after signature change = %d, want 0", c.Len())
	}
	if got := c.Stats().Flushes; got != 1 {
		t.Errorf("Flushes = %d, want 1", got)
	}

	// Same signature again is a no-op.
	c.Store(Signature(2), fillRegion(Bounds{0, 0, 0, 0}))
	c.Invalidate(Signature(2))
	if c.Len() != 1 {
		t.Errorf("Len after no-op invalidate = %d, want 1", c.Len())
	}
}

func TestCacheStoreForeignSignatureDropped(t *testing.T) {
	c := NewCache()
	c.Invalidate(Signature(1))
	c.Store(Signature(99), fillRegion(Bounds{0, 0, 3, 3}))
	if c.Len() != 0 {
		t.Errorf("foreign-signature results stored, Len = %d", c.Len())
	}
}

func TestCacheQuerySignatureMismatch(t *testing.T) {
	c := NewCache()
	c.Invalidate(Signature(1))
	c.Store(Signature(1), fillRegion(Bounds{0, 0, 3, 3}))

	b := Bounds{0, 0, 3, 3}
	hits, missing := c.Query(Signature(2), b)
	if len(hits) != 0 || missing != b.Count() {
		t.Errorf("mismatched signature served %d hits", len(hits))
	}
}

func TestCacheStats(t *testing.T) {
	c := NewCache()
	sig := Signature(1)
	b := Bounds{0, 0, 1, 1}

	c.Invalidate(sig)
	c.Query(sig, b) // 4 misses
	c.Store(sig, fillRegion(b))
	c.Query(sig, b) // 4 hits

	stats := c.Stats()
	if stats.Hits != 4 || stats.Misses != 4 {
		t.Errorf("hits/misses = %d/%d, want 4/4", stats.Hits, stats.Misses)
	}
	if stats.HitRate != 0.5 {
		t.Errorf("HitRate = %v, want 0.5", stats.HitRate)
	}
	if stats.Len != 4 {
		t.Errorf("Len = %d, want 4", stats.Len)
	}
}

func TestBoundsValidate(t *testing.T) {
	if err := (Bounds{0, 0, 3, 3}).Validate(); err != nil {
		t.Errorf("valid bounds rejected: %v", err)
	}
	if err := (Bounds{0, 0, 0, 0}).Validate(); err != nil {
		t.Errorf("single-coordinate bounds rejected: %v", err)
	}
	if err := (Bounds{2, 0, 1, 3}).Validate(); err == nil {
		t.Error("inverted bounds accepted")
	}
	if b := (Bounds{-2, -2, 1, 5}); b.Width() != 4 || b.Height() != 8 || b.Count() != 32 {
		t.Errorf("geometry = %d x %d (%d), want 4 x 8 (32)", b.Width(), b.Height(), b.Count())
	}
}

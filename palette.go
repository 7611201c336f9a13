package distfield

import "errors"

// ErrPaletteEmpty is returned when a palette carries no colors.
var ErrPaletteEmpty = errors.New("distfield: palette must have at least one color")

// Palette is an ordered list of colors used to map a curve value to a final
// displayed color. Palettes are immutable once validated.
type Palette struct {
	// ID identifies the palette for cache signatures.
	ID string

	// Colors is the ordered color list. Must not be empty.
	Colors []RGBA

	// HasAlpha reports whether any color carries a non-opaque alpha.
	// It selects the texture format on the GPU side; lookup behavior
	// is unaffected.
	HasAlpha bool
}

// Validate checks the palette invariants.
func (p *Palette) Validate() error {
	if p == nil {
		return nil // no palette means grayscale output
	}
	if len(p.Colors) == 0 {
		return ErrPaletteEmpty
	}
	return nil
}

// At resolves a curve value to a color.
//
// Out-of-range values wrap by modulo: colors[int(v) % len(colors)]. Wrapping
// rather than clamping means a short palette cycles over the full 0-255 curve
// range instead of saturating at its last color. This policy is fixed; the
// lookup never fails for any byte value.
func (p *Palette) At(v uint8) RGBA {
	return p.Colors[int(v)%len(p.Colors)]
}

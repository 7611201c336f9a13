package distfield

import "math"

// Resolver maps an engine sample to a curve value and final color. It is
// pure and stateless; a single resolver may serve any number of goroutines.
type Resolver struct {
	curve   *Curve
	palette *Palette
	p       Profile
}

// NewResolver binds a resolver to a curve, an optional palette (nil means
// grayscale output), and a normalized profile.
func NewResolver(curve *Curve, palette *Palette, p Profile) *Resolver {
	return &Resolver{curve: curve, palette: palette, p: p.Normalized()}
}

// Resolve converts a curve index plus the raw (pre-scale) pipeline distance
// into the final curve value and color.
//
// Checkerboard banding uses the raw geometric distance, not the scaled one:
// bands stay aligned with the underlying field regardless of curve scaling.
func (r *Resolver) Resolve(index int, raw float64) (value uint8, color RGBA) {
	value = r.curve.Data[index]

	if r.p.EffectiveChecker() {
		step := math.Floor(raw / r.p.CheckerSteps)
		if isFinite(step) && int64(step)&1 != 0 {
			value = 255 - value
		}
	}

	if r.palette != nil {
		return value, r.palette.At(value)
	}
	return value, Grayscale(value)
}

// Evaluate runs the full pipeline for one coordinate and packages the
// outcome as an immutable Result.
func Evaluate(e *Engine, r *Resolver, x, y int) Result {
	index, raw := e.Sample(float64(x), float64(y))
	value, color := r.Resolve(index, raw)
	return Result{
		X:        x,
		Y:        y,
		Distance: raw,
		Index:    index,
		Value:    value,
		Color:    color,
	}
}

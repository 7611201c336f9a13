package distfield

import "math"

// Formula constants fixed by the engine contract. The shader generator bakes
// the same values; changing one side without the other breaks CPU/GPU parity.
const (
	halfSqrt3      = 0.8660254037844386 // sqrt(3)/2
	twoPi          = 6.283185307179586
	spiralPitch    = 20.0
	sineWaveAmp    = 20.0
	sineWaveFreq   = 0.05
	rippleAmp      = 10.0
	rippleFreq     = 0.1
	focusOffset    = 40.0 // interference foci at (+-focusOffset, 0)
	roseK          = 4.0
	lemniscate2A2  = 5000.0 // 2*a*a with a = 50
	logScale       = 20.0
	angularWarpMul = 0.01 // step-4 angle warp attenuation
)

// Engine is the pure transform function: (coordinate, profile) -> (curve
// index, raw pipeline distance). It holds no mutable state and is safe for
// concurrent use from any number of goroutines.
type Engine struct {
	p          Profile
	width      int
	panX, panY float64
}

// NewEngine validates the profile and curve and returns an engine bound to
// them. The pan offset translates every coordinate before any other step.
// Configuration errors are rejected here, never per coordinate.
func NewEngine(p Profile, curve *Curve, panX, panY float64) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := curve.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		p:     p.Normalized(),
		width: curve.Width,
		panX:  panX,
		panY:  panY,
	}, nil
}

// Profile returns the normalized profile the engine was built with.
func (e *Engine) Profile() Profile { return e.p }

// Sample runs the distortion pipeline for one coordinate.
//
// It returns the curve index in [0, width) and the raw pipeline distance
// before curve scaling; the resolver needs the raw distance for checkerboard
// banding. Non-finite distances sanitize to zero so the index range invariant
// holds for every input.
func (e *Engine) Sample(x, y float64) (index int, raw float64) {
	p := &e.p

	x += e.panX
	y += e.panY

	// Periodic wrap into [-m/2, +m/2) around virtual centers.
	if p.Modulus > 0 {
		x = wrapAxis(x, p.Modulus)
		y = wrapAxis(y, p.Modulus)
	}

	// Coordinate perturbation: cross-axis additive sinusoids, both axes
	// computed from the pre-perturbation values.
	if p.FractalEnabled {
		dx := p.FractalStrength * (0.3*math.Sin(y*p.FractalScale1) +
			0.3*math.Sin(y*p.FractalScale2) +
			0.1*math.Sin(y*p.FractalScale3))
		dy := p.FractalStrength * (0.3*math.Sin(x*p.FractalScale1) +
			0.3*math.Sin(x*p.FractalScale2) +
			0.1*math.Sin(x*p.FractalScale3))
		x += dx
		y += dy
	}

	// Angular warp: nudge the polar angle, keep the radius.
	if p.effectiveAngular {
		r := math.Hypot(x, y)
		ang := math.Atan2(y, x)
		ang += math.Sin(ang*p.AngularFreq+p.AngularOffsetDeg*math.Pi/180) *
			p.AngularAmp * angularWarpMul
		x = r * math.Cos(ang)
		y = r * math.Sin(ang)
	}

	d := distance(p.Method, x, y)

	// Distance perturbation: same scales and strength as the coordinate
	// pass, but sin/cos/sin with weights 0.3/0.2/0.1.
	if p.FractalEnabled {
		d += p.FractalStrength * (0.3*math.Sin(d*p.FractalScale1) +
			0.2*math.Cos(d*p.FractalScale2) +
			0.1*math.Sin(d*p.FractalScale3))
	}

	// Angular distance term, from the distorted coordinate's angle.
	// No warp attenuation here.
	if p.effectiveAngular {
		d += math.Sin(math.Atan2(y, x)*p.AngularFreq) * p.AngularAmp
	}

	if !isFinite(d) {
		d = 0
	}

	scaled := d * p.CurveScale
	if !isFinite(scaled) {
		scaled = 0
	}
	index = int(math.Mod(math.Floor(math.Abs(scaled)), float64(e.width)))
	return index, d
}

// wrapAxis maps v into [-m/2, +m/2) using a floor-based modulo. The shader
// generator emits the identical floor form so both realizations agree on
// negative inputs.
func wrapAxis(v, m float64) float64 {
	return v - m*math.Floor(v/m) - m/2
}

// distance applies one of the fixed closed-form metrics to the (possibly
// distorted) coordinate. The per-method shader expressions in the shader
// package mirror this table one for one.
func distance(m DistanceMethod, x, y float64) float64 {
	switch m {
	case MethodRadial:
		return math.Hypot(x, y)
	case MethodCartesianX:
		return math.Abs(x)
	case MethodCartesianY:
		return math.Abs(y)
	case MethodManhattan:
		return math.Abs(x) + math.Abs(y)
	case MethodChebyshev:
		return math.Max(math.Abs(x), math.Abs(y))
	case MethodMinkowski3:
		ax, ay := math.Abs(x), math.Abs(y)
		return math.Pow(ax*ax*ax+ay*ay*ay, 1.0/3.0)
	case MethodHexagonal:
		ax, ay := math.Abs(x), math.Abs(y)
		return math.Max(ay, ay*0.5+ax*halfSqrt3)
	case MethodTriangular:
		return math.Max(-y, math.Abs(x)*halfSqrt3+y*0.5)
	case MethodSpiral:
		r := math.Hypot(x, y)
		return r + spiralPitch*(math.Atan2(y, x)/twoPi+0.5)
	case MethodCross:
		return math.Min(math.Abs(x), math.Abs(y))
	case MethodSineWave:
		return math.Abs(y - sineWaveAmp*math.Sin(x*sineWaveFreq))
	case MethodRipple:
		r := math.Hypot(x, y)
		return r + rippleAmp*math.Sin(r*rippleFreq)
	case MethodInterference:
		d1 := math.Hypot(x-focusOffset, y)
		d2 := math.Hypot(x+focusOffset, y)
		return 0.5 * (d1 + d2)
	case MethodHyperbolic:
		return math.Sqrt(math.Abs(x * y))
	case MethodPolarRose:
		r := math.Hypot(x, y)
		return r * math.Abs(math.Cos(roseK*math.Atan2(y, x)))
	case MethodLemniscate:
		r := math.Hypot(x, y)
		c := lemniscate2A2 * math.Cos(2*math.Atan2(y, x))
		return math.Abs(r - math.Sqrt(math.Max(c, 0)))
	case MethodLogarithmic:
		return logScale * math.Log(1+math.Hypot(x, y))
	default:
		// Unreachable: Validate rejects unknown methods before sampling.
		return 0
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

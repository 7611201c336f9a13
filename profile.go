package distfield

import (
	"errors"
	"fmt"
)

// DistanceMethod selects the closed-form distance metric applied to the
// (possibly distorted) coordinate. Every method is a fixed formula with no
// external state; the full set is part of the engine's public contract and
// is reproduced verbatim by the shader generator.
type DistanceMethod uint8

const (
	// MethodRadial is the Euclidean norm sqrt(x*x + y*y).
	MethodRadial DistanceMethod = iota

	// MethodCartesianX is |x|.
	MethodCartesianX

	// MethodCartesianY is |y|.
	MethodCartesianY

	// MethodManhattan is the L1 norm |x| + |y|.
	MethodManhattan

	// MethodChebyshev is the L-infinity norm max(|x|, |y|).
	MethodChebyshev

	// MethodMinkowski3 is the L3 norm (|x|^3 + |y|^3)^(1/3).
	MethodMinkowski3

	// MethodHexagonal is the hexagon metric max(|y|, |y|/2 + |x|*sqrt(3)/2).
	MethodHexagonal

	// MethodTriangular is the equilateral-triangle metric
	// max(-y, |x|*sqrt(3)/2 + y/2).
	MethodTriangular

	// MethodSpiral is r + 20*(theta/(2*pi) + 1/2), an Archimedean spiral term
	// added to the radius.
	MethodSpiral

	// MethodCross is min(|x|, |y|).
	MethodCross

	// MethodSineWave is the distance to a sine curve, |y - 20*sin(x*0.05)|.
	MethodSineWave

	// MethodRipple is r + 10*sin(r*0.1).
	MethodRipple

	// MethodInterference is the mean distance to the two foci (+-40, 0).
	MethodInterference

	// MethodHyperbolic is sqrt(|x*y|).
	MethodHyperbolic

	// MethodPolarRose is r*|cos(4*theta)| (rose with k = 4).
	MethodPolarRose

	// MethodLemniscate is the radial distance from the lemniscate of
	// Bernoulli r^2 = 2*a^2*cos(2*theta) with a = 50:
	// |r - sqrt(max(5000*cos(2*theta), 0))|.
	MethodLemniscate

	// MethodLogarithmic is 20*ln(1 + r).
	MethodLogarithmic

	numDistanceMethods
)

var methodNames = [numDistanceMethods]string{
	MethodRadial:       "radial",
	MethodCartesianX:   "cartesian-x",
	MethodCartesianY:   "cartesian-y",
	MethodManhattan:    "manhattan",
	MethodChebyshev:    "chebyshev",
	MethodMinkowski3:   "minkowski-3",
	MethodHexagonal:    "hexagonal",
	MethodTriangular:   "triangular",
	MethodSpiral:       "spiral",
	MethodCross:        "cross",
	MethodSineWave:     "sine-wave",
	MethodRipple:       "ripple",
	MethodInterference: "interference",
	MethodHyperbolic:   "hyperbolic",
	MethodPolarRose:    "polar-rose",
	MethodLemniscate:   "lemniscate",
	MethodLogarithmic:  "logarithmic",
}

// String returns the canonical name of the method.
func (m DistanceMethod) String() string {
	if m >= numDistanceMethods {
		return fmt.Sprintf("DistanceMethod(%d)", uint8(m))
	}
	return methodNames[m]
}

// Valid reports whether m is a known method.
func (m DistanceMethod) Valid() bool { return m < numDistanceMethods }

// ErrUnknownMethod is returned when a profile names a distance method the
// engine does not know. Unknown methods fail at validation time; no default
// is silently substituted.
var ErrUnknownMethod = errors.New("distfield: unknown distance method")

// ParseDistanceMethod resolves a canonical method name.
func ParseDistanceMethod(name string) (DistanceMethod, error) {
	for m, n := range methodNames {
		if n == name {
			return DistanceMethod(m), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}

// DistanceMethods returns all known methods in declaration order.
func DistanceMethods() []DistanceMethod {
	ms := make([]DistanceMethod, numDistanceMethods)
	for i := range ms {
		ms[i] = DistanceMethod(i)
	}
	return ms
}

// Profile errors.
var (
	// ErrModulus is returned for a negative distance modulus.
	ErrModulus = errors.New("distfield: distance modulus must be >= 0")

	// ErrCurveScale is returned for a non-positive curve scale.
	ErrCurveScale = errors.New("distfield: curve scale must be > 0")

	// ErrCheckerSteps is returned for a negative checkerboard step size.
	ErrCheckerSteps = errors.New("distfield: checkerboard steps must be >= 0")
)

// Profile is the immutable distortion profile controlling which transform
// steps run and their numeric parameters.
//
// Construct profiles with NewProfile, or build the struct directly and call
// Normalize before use. The effective-angular decision is derived once at
// that point and never re-derived per coordinate.
type Profile struct {
	// Method selects the distance metric.
	Method DistanceMethod

	// Modulus wraps both axes into [-Modulus/2, +Modulus/2) before any
	// other distortion, creating periodic virtual centers. 0 disables.
	Modulus float64

	// CurveScale multiplies the final distance before curve indexing.
	CurveScale float64

	// AngularEnabled gates the angular warp steps. The warp only runs when
	// at least one of the angular parameters is non-zero.
	AngularEnabled   bool
	AngularFreq      float64
	AngularAmp       float64
	AngularOffsetDeg float64

	// FractalEnabled gates both sinusoidal perturbation steps (coordinate
	// and distance).
	FractalEnabled  bool
	FractalScale1   float64
	FractalScale2   float64
	FractalScale3   float64
	FractalStrength float64

	// CheckerEnabled inverts the curve value on odd checkerboard bands of
	// the raw (pre-scale) distance. CheckerSteps is the band width;
	// 0 disables even when CheckerEnabled is set.
	CheckerEnabled bool
	CheckerSteps   float64

	// effectiveAngular caches AngularEnabled && any angular parameter set.
	// Derived by Normalize; zero value means "not yet derived or off",
	// which is correct either way for a fully zeroed angular block.
	effectiveAngular bool
}

// NewProfile returns a normalized profile with the given method, unit curve
// scale, and every distortion disabled.
func NewProfile(m DistanceMethod) Profile {
	p := Profile{Method: m, CurveScale: 1}
	return p.Normalized()
}

// Normalized returns a copy of p with derived fields computed. Call it after
// building a Profile literal; Session and Engine normalize defensively.
func (p Profile) Normalized() Profile {
	p.effectiveAngular = p.AngularEnabled &&
		(p.AngularFreq != 0 || p.AngularAmp != 0 || p.AngularOffsetDeg != 0)
	return p
}

// EffectiveAngular reports whether the angular warp steps actually run:
// the flag is set and at least one angular parameter is non-zero.
func (p Profile) EffectiveAngular() bool {
	return p.Normalized().effectiveAngular
}

// EffectiveModulus reports whether the modulus wrap step runs.
func (p Profile) EffectiveModulus() bool { return p.Modulus > 0 }

// EffectiveChecker reports whether checkerboard inversion runs.
func (p Profile) EffectiveChecker() bool {
	return p.CheckerEnabled && p.CheckerSteps > 0
}

// Validate checks the profile's numeric constraints. Unknown methods and bad
// parameters fail here, before any coordinate is processed.
func (p Profile) Validate() error {
	if !p.Method.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownMethod, uint8(p.Method))
	}
	if p.Modulus < 0 {
		return fmt.Errorf("%w: got %v", ErrModulus, p.Modulus)
	}
	if p.CurveScale <= 0 {
		return fmt.Errorf("%w: got %v", ErrCurveScale, p.CurveScale)
	}
	if p.CheckerSteps < 0 {
		return fmt.Errorf("%w: got %v", ErrCheckerSteps, p.CheckerSteps)
	}
	return nil
}

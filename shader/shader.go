package shader

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/distfield"
)

// Dialect selects the shader target language.
type Dialect int

const (
	// WGSL emits a WebGPU compute shader (workgroup size 16x16) writing
	// per-coordinate Cell records into a storage buffer.
	WGSL Dialect = iota

	// GLSL emits a fragment shader (330 core) resolving the color for
	// gl_FragCoord directly.
	GLSL
)

// String returns the dialect name.
func (d Dialect) String() string {
	switch d {
	case WGSL:
		return "wgsl"
	case GLSL:
		return "glsl"
	default:
		return fmt.Sprintf("Dialect(%d)", int(d))
	}
}

// Generation errors.
var (
	// ErrDialect is returned for an unknown target dialect.
	ErrDialect = errors.New("shader: unknown dialect")

	// ErrNonFiniteParam is returned when a profile parameter cannot be
	// baked as a literal. Malformed numbers never reach the emitted source.
	ErrNonFiniteParam = errors.New("shader: profile parameter is not finite")
)

// Binding carries the curve/palette metadata baked into the generated
// source alongside the profile.
//
// Binding contract (WGSL compute): group 0 holds binding 0 = dispatch params
// uniform (grid origin and size, the only non-baked input), binding 1 =
// curve data as read-only storage (one u32 per entry, CurveWidth entries),
// binding 2 = palette data as read-only storage (packed RGBA u32 per color),
// binding 3 = output Cell records.
//
// The params uniform is the compute dialect's one departure from the
// everything-baked rule. A fragment shader gets its coordinate from
// gl_FragCoord for free; a compute invocation must be told where the grid
// starts and ends, and baking those would force a pipeline rebuild on every
// viewport move. No profile parameter ever rides in the uniform.
//
// Binding contract (GLSL fragment): u_curve is a CurveWidth x 1 single
// channel texture with nearest sampling, u_palette a PaletteSize x 1 RGBA
// texture. There are no other uniforms; coordinates come from gl_FragCoord.
type Binding struct {
	// CurveWidth is the curve's entry count. Must be positive.
	CurveWidth int

	// PaletteSize is the palette's color count; 0 selects grayscale output
	// and omits the palette lookup from the source entirely.
	PaletteSize int

	// PanX, PanY is the fixed pan offset, baked like every other parameter.
	PanX, PanY float64
}

// Generate emits complete shader source implementing the full pipeline for
// p in the requested dialect.
//
// The source is specialized: steps disabled in the profile are absent, not
// branched over, and every parameter appears as a literal. For any profile
// and coordinate the emitted code produces the same color as the CPU
// engine + resolver within float32 tolerance.
func Generate(p distfield.Profile, bind Binding, d Dialect) (string, error) {
	p = p.Normalized()
	if err := p.Validate(); err != nil {
		return "", err
	}
	if bind.CurveWidth <= 0 {
		return "", fmt.Errorf("shader: curve width must be positive, got %d", bind.CurveWidth)
	}
	if bind.PaletteSize < 0 {
		return "", fmt.Errorf("shader: palette size must be >= 0, got %d", bind.PaletteSize)
	}

	switch d {
	case WGSL:
		return generateWGSL(p, bind)
	case GLSL:
		return generateGLSL(p, bind)
	default:
		return "", fmt.Errorf("%w: %d", ErrDialect, int(d))
	}
}

// builder accumulates shader source with validated numeric formatting.
// The first error sticks; Generate surfaces it instead of emitting text.
type builder struct {
	sb  strings.Builder
	err error
}

func (b *builder) linef(format string, args ...any) {
	if b.err != nil {
		return
	}
	fmt.Fprintf(&b.sb, format, args...)
	b.sb.WriteByte('\n')
}

func (b *builder) line(s string) {
	if b.err != nil {
		return
	}
	b.sb.WriteString(s)
	b.sb.WriteByte('\n')
}

// lit formats v as a float literal valid in both dialects: 9 significant
// digits (full float32 precision), always carrying a decimal point or
// exponent so the literal can never be mistaken for an integer.
func (b *builder) lit(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		if b.err == nil {
			b.err = fmt.Errorf("%w: %v", ErrNonFiniteParam, v)
		}
		return "0.0"
	}
	s := strconv.FormatFloat(v, 'g', 9, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func (b *builder) result() (string, error) {
	if b.err != nil {
		return "", b.err
	}
	return b.sb.String(), nil
}

// needsAngle reports whether the source must compute the polar angle of the
// distorted coordinate: either the metric is polar or the angular distance
// term runs.
func needsAngle(p distfield.Profile) bool {
	return methodTable[p.Method].needsAng || p.EffectiveAngular()
}

// needsRadius reports whether the metric itself needs the radius.
func needsRadius(p distfield.Profile) bool {
	return methodTable[p.Method].needsR
}

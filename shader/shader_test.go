package shader

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/gogpu/distfield"
)

var baseBinding = Binding{CurveWidth: 256}

func generateOrFatal(t *testing.T, p distfield.Profile, bind Binding, d Dialect) string {
	t.Helper()
	src, err := Generate(p, bind, d)
	if err != nil {
		t.Fatalf("Generate(%v): %v", d, err)
	}
	return src
}

func TestMethodTableCoversEveryMethod(t *testing.T) {
	for _, m := range distfield.DistanceMethods() {
		ms, ok := methodTable[m]
		if !ok {
			t.Errorf("%v: no shader expression", m)
			continue
		}
		if ms.wgsl == "" || ms.glsl == "" {
			t.Errorf("%v: incomplete expression pair", m)
		}
		if ms.wgsl != ms.glsl {
			// Every current formula is expressible identically; a
			// divergence is almost certainly a typo on one side.
			t.Errorf("%v: dialect expressions differ: %q vs %q", m, ms.wgsl, ms.glsl)
		}
	}
}

func TestGenerateAllMethodsBothDialects(t *testing.T) {
	for _, m := range distfield.DistanceMethods() {
		p := distfield.NewProfile(m)
		for _, d := range []Dialect{WGSL, GLSL} {
			src := generateOrFatal(t, p, baseBinding, d)
			if !strings.Contains(src, methodTable[m].wgsl) {
				t.Errorf("%v/%v: distance expression missing from source", m, d)
			}
		}
	}
}

func TestGenerateOmitsDisabledSteps(t *testing.T) {
	p := distfield.NewProfile(distfield.MethodManhattan)
	for _, d := range []Dialect{WGSL, GLSL} {
		src := generateOrFatal(t, p, baseBinding, d)
		for _, fragment := range []string{
			"floor(px /", // modulus wrap
			"wang",       // angular warp
			"0.2*cos",    // fractal distance pass
		} {
			if strings.Contains(src, fragment) {
				t.Errorf("%v: disabled step emitted: %q", d, fragment)
			}
		}
		if strings.Contains(src, "255u - value") || strings.Contains(src, "255 - value") {
			t.Errorf("%v: checker inversion emitted for disabled checker", d)
		}
	}
}

func TestGenerateEmitsEnabledSteps(t *testing.T) {
	p := distfield.Profile{
		Method:           distfield.MethodRadial,
		Modulus:          50,
		CurveScale:       2,
		AngularEnabled:   true,
		AngularFreq:      3,
		AngularAmp:       1.5,
		AngularOffsetDeg: 45,
		FractalEnabled:   true,
		FractalScale1:    0.1,
		FractalScale2:    0.05,
		FractalScale3:    0.01,
		FractalStrength:  4,
		CheckerEnabled:   true,
		CheckerSteps:     10,
	}.Normalized()

	for _, d := range []Dialect{WGSL, GLSL} {
		src := generateOrFatal(t, p, baseBinding, d)
		for _, fragment := range []string{
			"floor(px / 50.0)", // modulus
			"wang",             // angular warp
			"0.2*cos",          // fractal distance pass
			"floor(d / 10.0)",  // checker band
			"* 2.0",            // curve scale literal
		} {
			if !strings.Contains(src, fragment) {
				t.Errorf("%v: enabled step missing: %q", d, fragment)
			}
		}
	}
}

func TestGenerateAngularFlagWithoutParams(t *testing.T) {
	// The flag alone must not emit the warp.
	p := distfield.NewProfile(distfield.MethodRadial)
	p.AngularEnabled = true
	p = p.Normalized()

	src := generateOrFatal(t, p, baseBinding, WGSL)
	if strings.Contains(src, "wang") {
		t.Error("angular warp emitted for flag-only profile")
	}
}

func TestGeneratePaletteSelection(t *testing.T) {
	p := distfield.NewProfile(distfield.MethodRadial)

	gray := generateOrFatal(t, p, baseBinding, WGSL)
	if strings.Contains(gray, "palette_data") {
		t.Error("grayscale WGSL references a palette")
	}
	if !strings.Contains(gray, "value << 16u") {
		t.Error("grayscale WGSL missing packed gray expansion")
	}

	withPal := generateOrFatal(t, p, Binding{CurveWidth: 256, PaletteSize: 7}, WGSL)
	if !strings.Contains(withPal, "palette_data[value % 7u]") {
		t.Error("palette WGSL missing wrapped lookup")
	}

	glsl := generateOrFatal(t, p, Binding{CurveWidth: 256, PaletteSize: 7}, GLSL)
	if !strings.Contains(glsl, "texelFetch(u_palette, ivec2(value % 7, 0), 0)") {
		t.Error("palette GLSL missing wrapped lookup")
	}
	grayGLSL := generateOrFatal(t, p, baseBinding, GLSL)
	if strings.Contains(grayGLSL, "u_palette") {
		t.Error("grayscale GLSL declares u_palette")
	}
}

func TestGenerateGLSLHasNoExtraUniforms(t *testing.T) {
	p := distfield.Profile{
		Method:         distfield.MethodSpiral,
		Modulus:        50,
		CurveScale:     3,
		FractalEnabled: true,
		FractalScale1:  0.1, FractalScale2: 0.05, FractalScale3: 0.01,
		FractalStrength: 4,
	}.Normalized()

	src := generateOrFatal(t, p, Binding{CurveWidth: 128, PaletteSize: 4, PanX: 7, PanY: -3}, GLSL)
	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "uniform ") {
			continue
		}
		if trimmed != "uniform sampler2D u_curve;" && trimmed != "uniform sampler2D u_palette;" {
			t.Errorf("unexpected uniform: %q", trimmed)
		}
	}
	if !strings.Contains(src, "gl_FragCoord") {
		t.Error("GLSL source does not read gl_FragCoord")
	}
}

func TestGenerateBakesPan(t *testing.T) {
	p := distfield.NewProfile(distfield.MethodRadial)

	src := generateOrFatal(t, p, Binding{CurveWidth: 256, PanX: 12.5, PanY: -4}, WGSL)
	if !strings.Contains(src, "+ 12.5") || !strings.Contains(src, "+ -4.0") {
		t.Error("pan offsets not baked as literals")
	}

	zero := generateOrFatal(t, p, baseBinding, WGSL)
	if strings.Contains(zero, "origin.x + f32(gid.x) +") {
		t.Error("zero pan emitted an addition")
	}
}

func TestGenerateGLSLSamplesIntegerLattice(t *testing.T) {
	// gl_FragCoord reads 0.5 above the integer coordinate the CPU engine
	// evaluates; the source must floor it before anything else. At (4,4)
	// a radial field gives index 5 on the lattice but index 6 at the
	// pixel center, so an unfloored coordinate flips curve indices.
	p := distfield.NewProfile(distfield.MethodRadial)

	src := generateOrFatal(t, p, baseBinding, GLSL)
	if !strings.Contains(src, "float px = floor(gl_FragCoord.x);") ||
		!strings.Contains(src, "float py = floor(gl_FragCoord.y);") {
		t.Error("GLSL coordinates not floored onto the integer lattice")
	}

	panned := generateOrFatal(t, p, Binding{CurveWidth: 256, PanX: 7, PanY: -3}, GLSL)
	if !strings.Contains(panned, "floor(gl_FragCoord.x) + 7.0") ||
		!strings.Contains(panned, "floor(gl_FragCoord.y) + -3.0") {
		t.Error("pan applied before flooring the fragment coordinate")
	}
	if strings.Contains(panned, "px = gl_FragCoord.x") || strings.Contains(panned, "py = gl_FragCoord.y") {
		t.Error("raw pixel-center coordinate reaches the pipeline")
	}
}

func TestGenerateErrors(t *testing.T) {
	p := distfield.NewProfile(distfield.MethodRadial)

	if _, err := Generate(p, baseBinding, Dialect(9)); !errors.Is(err, ErrDialect) {
		t.Errorf("unknown dialect: err = %v, want ErrDialect", err)
	}
	if _, err := Generate(p, Binding{CurveWidth: 0}, WGSL); err == nil {
		t.Error("zero curve width accepted")
	}
	if _, err := Generate(p, Binding{CurveWidth: 4, PaletteSize: -1}, WGSL); err == nil {
		t.Error("negative palette size accepted")
	}

	bad := p
	bad.Modulus = math.Inf(1)
	if _, err := Generate(bad, baseBinding, WGSL); !errors.Is(err, ErrNonFiniteParam) {
		t.Errorf("infinite modulus: err = %v, want ErrNonFiniteParam", err)
	}

	invalid := p
	invalid.CurveScale = 0
	if _, err := Generate(invalid, baseBinding, WGSL); !errors.Is(err, distfield.ErrCurveScale) {
		t.Errorf("invalid profile: err = %v, want ErrCurveScale", err)
	}
}

func TestLiteralFormatting(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{-4, "-4.0"},
		{0.5, "0.5"},
		{50, "50.0"},
		{0.8660254037844386, "0.866025404"},
		{1e-9, "1e-09"},
	}
	for _, tt := range tests {
		var b builder
		if got := b.lit(tt.in); got != tt.want {
			t.Errorf("lit(%v) = %q, want %q", tt.in, got, tt.want)
		}
		if b.err != nil {
			t.Errorf("lit(%v) set error: %v", tt.in, b.err)
		}
	}

	var b builder
	if got := b.lit(math.NaN()); got != "0.0" {
		t.Errorf("lit(NaN) = %q, want placeholder", got)
	}
	if !errors.Is(b.err, ErrNonFiniteParam) {
		t.Errorf("lit(NaN) err = %v, want ErrNonFiniteParam", b.err)
	}
}

func TestDialectString(t *testing.T) {
	if WGSL.String() != "wgsl" || GLSL.String() != "glsl" {
		t.Errorf("dialect names = %q/%q", WGSL.String(), GLSL.String())
	}
	if !strings.Contains(Dialect(7).String(), "7") {
		t.Error("unknown dialect String lost the value")
	}
}

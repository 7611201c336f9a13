package distfield

import (
	"math"
	"testing"
)

func TestSampleRadialKnownDistance(t *testing.T) {
	// 3-4-5 triangle: the ramp curve returns the floored distance itself.
	curve := RampCurve("ramp", 256)
	e, err := NewEngine(NewProfile(MethodRadial), curve, 0, 0)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	index, raw := e.Sample(3, 4)
	if index != 5 {
		t.Errorf("index = %d, want 5", index)
	}
	if math.Abs(raw-5) > 1e-9 {
		t.Errorf("raw = %v, want 5", raw)
	}
}

func TestSampleDeterministic(t *testing.T) {
	curve := RampCurve("ramp", 256)
	p := Profile{
		Method:         MethodSpiral,
		Modulus:        50,
		CurveScale:     1.5,
		AngularEnabled: true,
		AngularFreq:    3,
		AngularAmp:     2,
		FractalEnabled: true,
		FractalScale1:  0.1, FractalScale2: 0.05, FractalScale3: 0.01,
		FractalStrength: 4,
	}
	e, err := NewEngine(p, curve, 0, 0)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	for y := -3; y <= 3; y++ {
		for x := -3; x <= 3; x++ {
			i1, d1 := e.Sample(float64(x), float64(y))
			i2, d2 := e.Sample(float64(x), float64(y))
			if i1 != i2 || d1 != d2 {
				t.Fatalf("Sample(%d,%d) not deterministic: (%d,%v) vs (%d,%v)",
					x, y, i1, d1, i2, d2)
			}
		}
	}
}

func TestSampleIndexRangeAllMethods(t *testing.T) {
	curve := RampCurve("ramp", 100)
	coords := [][2]float64{
		{0, 0}, {1, 1}, {-1, -1}, {3, 4}, {-250, 117},
		{1e6, -1e6}, {0.5, -0.25}, {-1e9, 1e9},
	}

	for _, m := range DistanceMethods() {
		p := NewProfile(m)
		p.CurveScale = 2.5
		e, err := NewEngine(p, curve, 0, 0)
		if err != nil {
			t.Fatalf("%v: NewEngine: %v", m, err)
		}
		for _, c := range coords {
			index, raw := e.Sample(c[0], c[1])
			if index < 0 || index >= curve.Width {
				t.Errorf("%v: Sample(%v,%v) index = %d, outside [0,%d)",
					m, c[0], c[1], index, curve.Width)
			}
			if !isFinite(raw) {
				t.Errorf("%v: Sample(%v,%v) raw = %v, want finite", m, c[0], c[1], raw)
			}
		}
	}
}

func TestSampleReducesToDistanceAllMethods(t *testing.T) {
	// With every distortion disabled the pipeline collapses to
	// floor(|distance * scale|) mod width for each metric.
	curve := RampCurve("ramp", 100)
	coords := [][2]float64{
		{0, 0}, {3, 4}, {-3, 4}, {10, 0}, {0, -10}, {17, 23}, {-250, 117},
	}

	for _, m := range DistanceMethods() {
		for _, scale := range []float64{1, 2.5} {
			p := NewProfile(m)
			p.CurveScale = scale
			e, err := NewEngine(p, curve, 0, 0)
			if err != nil {
				t.Fatalf("%v: NewEngine: %v", m, err)
			}
			for _, c := range coords {
				index, raw := e.Sample(c[0], c[1])
				d := distance(m, c[0], c[1])
				if raw != d {
					t.Errorf("%v scale %v: Sample(%v,%v) raw = %v, want distance %v",
						m, scale, c[0], c[1], raw, d)
				}
				want := int(math.Mod(math.Floor(math.Abs(d*scale)), float64(curve.Width)))
				if index != want {
					t.Errorf("%v scale %v: Sample(%v,%v) index = %d, want %d",
						m, scale, c[0], c[1], index, want)
				}
			}
		}
	}
}

func TestSampleModulusPeriodicity(t *testing.T) {
	curve := RampCurve("ramp", 256)
	p := NewProfile(MethodRadial)
	p.Modulus = 50
	e, err := NewEngine(p, curve, 0, 0)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			i0, d0 := e.Sample(float64(x), float64(y))
			i1, d1 := e.Sample(float64(x+50), float64(y))
			i2, d2 := e.Sample(float64(x), float64(y-150))
			if i0 != i1 || math.Abs(d0-d1) > 1e-9 {
				t.Errorf("(%d,%d) vs x+50: (%d,%v) != (%d,%v)", x, y, i0, d0, i1, d1)
			}
			if i0 != i2 || math.Abs(d0-d2) > 1e-9 {
				t.Errorf("(%d,%d) vs y-150: (%d,%v) != (%d,%v)", x, y, i0, d0, i2, d2)
			}
		}
	}
}

func TestSamplePanTranslates(t *testing.T) {
	curve := RampCurve("ramp", 256)
	p := NewProfile(MethodManhattan)
	e0, err := NewEngine(p, curve, 0, 0)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	e1, err := NewEngine(p, curve, 7, -3)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	i0, d0 := e0.Sample(10, 5)
	i1, d1 := e1.Sample(3, 8)
	if i0 != i1 || d0 != d1 {
		t.Errorf("panned sample differs: (%d,%v) vs (%d,%v)", i0, d0, i1, d1)
	}
}

func TestSampleDisabledStepsAreIdentity(t *testing.T) {
	// Flags without parameters must not change the output.
	curve := RampCurve("ramp", 256)
	base := NewProfile(MethodRipple)

	flagged := base
	flagged.AngularEnabled = true // all angular params zero
	flagged = flagged.Normalized()

	e0, err := NewEngine(base, curve, 0, 0)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	e1, err := NewEngine(flagged, curve, 0, 0)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	for y := -5; y <= 5; y++ {
		for x := -5; x <= 5; x++ {
			i0, d0 := e0.Sample(float64(x), float64(y))
			i1, d1 := e1.Sample(float64(x), float64(y))
			if i0 != i1 || d0 != d1 {
				t.Fatalf("flag-only angular changed output at (%d,%d)", x, y)
			}
		}
	}
}

func TestSampleCurveScaleSelectsIndex(t *testing.T) {
	curve := RampCurve("ramp", 256)
	p := NewProfile(MethodRadial)
	p.CurveScale = 10
	e, err := NewEngine(p, curve, 0, 0)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	index, raw := e.Sample(3, 4)
	if index != 50 {
		t.Errorf("index = %d, want 50", index)
	}
	if math.Abs(raw-5) > 1e-9 {
		t.Errorf("raw = %v, want raw distance unaffected by scale", raw)
	}
}

func TestWrapAxis(t *testing.T) {
	tests := []struct {
		v, m, want float64
	}{
		{0, 50, -25},
		{25, 50, 0},
		{49, 50, 24},
		{50, 50, -25},
		{-1, 50, 24},
		{-50, 50, -25},
		{124.5, 50, -0.5},
	}
	for _, tt := range tests {
		got := wrapAxis(tt.v, tt.m)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("wrapAxis(%v, %v) = %v, want %v", tt.v, tt.m, got, tt.want)
		}
		if got < -tt.m/2 || got >= tt.m/2 {
			t.Errorf("wrapAxis(%v, %v) = %v, outside [-m/2, m/2)", tt.v, tt.m, got)
		}
	}
}

func TestDistanceFormulas(t *testing.T) {
	const eps = 1e-9
	tests := []struct {
		method DistanceMethod
		x, y   float64
		want   float64
	}{
		{MethodRadial, 3, 4, 5},
		{MethodCartesianX, -7, 100, 7},
		{MethodCartesianY, 100, -7, 7},
		{MethodManhattan, 3, -4, 7},
		{MethodChebyshev, 3, -4, 4},
		{MethodCross, 3, -4, 3},
		{MethodHyperbolic, 4, 9, 6},
		{MethodInterference, 0, 0, 40},
		{MethodLogarithmic, 0, 0, 0},
		{MethodSineWave, 10, 0, 20 * math.Sin(0.5)},
		{MethodRipple, 3, 4, 5 + 10*math.Sin(0.5)},
		{MethodMinkowski3, 2, 0, 2},
		{MethodSpiral, 5, 0, 5 + 10}, // theta 0: r + pitch/2
		{MethodPolarRose, 5, 0, 5},   // cos(0) = 1
		{MethodLemniscate, 0, 5, 5},  // cos(pi) < 0 clamps the root to 0
	}
	for _, tt := range tests {
		got := distance(tt.method, tt.x, tt.y)
		if math.Abs(got-tt.want) > eps {
			t.Errorf("%v(%v, %v) = %v, want %v", tt.method, tt.x, tt.y, got, tt.want)
		}
	}
}

func TestNewEngineRejectsBadInput(t *testing.T) {
	curve := RampCurve("ramp", 256)

	bad := NewProfile(MethodRadial)
	bad.CurveScale = 0
	if _, err := NewEngine(bad, curve, 0, 0); err == nil {
		t.Error("zero curve scale accepted")
	}

	if _, err := NewEngine(NewProfile(MethodRadial), &Curve{ID: "x", Width: 4}, 0, 0); err == nil {
		t.Error("curve with mismatched data accepted")
	}
}

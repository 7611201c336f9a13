package distfield

import (
	"errors"
	"testing"
)

func TestDistanceMethodNames(t *testing.T) {
	for _, m := range DistanceMethods() {
		name := m.String()
		if name == "" {
			t.Errorf("method %d has no name", m)
			continue
		}
		parsed, err := ParseDistanceMethod(name)
		if err != nil {
			t.Errorf("ParseDistanceMethod(%q): %v", name, err)
		}
		if parsed != m {
			t.Errorf("ParseDistanceMethod(%q) = %v, want %v", name, parsed, m)
		}
	}

	if _, err := ParseDistanceMethod("euclidean"); !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("unknown name: err = %v, want ErrUnknownMethod", err)
	}
	if DistanceMethod(200).Valid() {
		t.Error("out-of-range method reported valid")
	}
}

func TestNewProfileDefaults(t *testing.T) {
	p := NewProfile(MethodRipple)
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if p.CurveScale != 1 {
		t.Errorf("CurveScale = %v, want 1", p.CurveScale)
	}
	if p.EffectiveModulus() || p.EffectiveAngular() || p.EffectiveChecker() {
		t.Error("fresh profile has distortions enabled")
	}
}

func TestProfileValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Profile)
		wantErr error
	}{
		{"unknown method", func(p *Profile) { p.Method = DistanceMethod(99) }, ErrUnknownMethod},
		{"negative modulus", func(p *Profile) { p.Modulus = -1 }, ErrModulus},
		{"zero curve scale", func(p *Profile) { p.CurveScale = 0 }, ErrCurveScale},
		{"negative curve scale", func(p *Profile) { p.CurveScale = -2 }, ErrCurveScale},
		{"negative checker steps", func(p *Profile) { p.CheckerSteps = -1 }, ErrCheckerSteps},
	}
	for _, tt := range tests {
		p := NewProfile(MethodRadial)
		tt.mutate(&p)
		if err := p.Validate(); !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestEffectiveAngular(t *testing.T) {
	tests := []struct {
		name string
		p    Profile
		want bool
	}{
		{"disabled", Profile{Method: MethodRadial, CurveScale: 1}, false},
		{"flag only", Profile{Method: MethodRadial, CurveScale: 1, AngularEnabled: true}, false},
		{"params only", Profile{Method: MethodRadial, CurveScale: 1, AngularFreq: 3}, false},
		{"freq", Profile{Method: MethodRadial, CurveScale: 1, AngularEnabled: true, AngularFreq: 3}, true},
		{"amp", Profile{Method: MethodRadial, CurveScale: 1, AngularEnabled: true, AngularAmp: 1}, true},
		{"offset", Profile{Method: MethodRadial, CurveScale: 1, AngularEnabled: true, AngularOffsetDeg: 45}, true},
	}
	for _, tt := range tests {
		if got := tt.p.EffectiveAngular(); got != tt.want {
			t.Errorf("%s: EffectiveAngular = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestEffectiveChecker(t *testing.T) {
	p := NewProfile(MethodRadial)
	p.CheckerEnabled = true
	if p.EffectiveChecker() {
		t.Error("checker effective with zero steps")
	}
	p.CheckerSteps = 10
	if !p.EffectiveChecker() {
		t.Error("checker not effective with steps set")
	}
}

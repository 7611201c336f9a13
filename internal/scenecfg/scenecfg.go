// Package scenecfg loads TOML scene files for the distfield command-line
// tools. A scene bundles the external collaborator records — curve, palette,
// profile — plus the region and pan the tool should render. The core only
// ever sees the validated snapshots.
package scenecfg

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/distfield"
)

// Scene is a fully resolved scene file.
type Scene struct {
	Curve   *distfield.Curve
	Palette *distfield.Palette // nil when the file has no [palette] table
	Profile distfield.Profile
	Bounds  distfield.Bounds
	PanX    float64
	PanY    float64
}

type fileConfig struct {
	Curve   curveConfig    `toml:"curve"`
	Palette *paletteConfig `toml:"palette"`
	Profile profileConfig  `toml:"profile"`
	Region  regionConfig   `toml:"region"`
	Pan     panConfig      `toml:"pan"`
}

type curveConfig struct {
	ID    string `toml:"id"`
	Width int    `toml:"width"`
	Data  []int  `toml:"data"` // empty means identity ramp
}

type paletteConfig struct {
	ID     string   `toml:"id"`
	Colors []string `toml:"colors"` // hex strings
}

type profileConfig struct {
	Method     string  `toml:"method"`
	Modulus    float64 `toml:"modulus"`
	CurveScale float64 `toml:"curve_scale"`

	AngularEnabled   bool    `toml:"angular_enabled"`
	AngularFreq      float64 `toml:"angular_freq"`
	AngularAmp       float64 `toml:"angular_amp"`
	AngularOffsetDeg float64 `toml:"angular_offset_deg"`

	FractalEnabled  bool    `toml:"fractal_enabled"`
	FractalScale1   float64 `toml:"fractal_scale1"`
	FractalScale2   float64 `toml:"fractal_scale2"`
	FractalScale3   float64 `toml:"fractal_scale3"`
	FractalStrength float64 `toml:"fractal_strength"`

	CheckerEnabled bool    `toml:"checker_enabled"`
	CheckerSteps   float64 `toml:"checker_steps"`
}

type regionConfig struct {
	MinX int `toml:"min_x"`
	MinY int `toml:"min_y"`
	MaxX int `toml:"max_x"`
	MaxY int `toml:"max_y"`
}

type panConfig struct {
	X float64 `toml:"x"`
	Y float64 `toml:"y"`
}

// Load reads and validates a scene file.
func Load(path string) (*Scene, error) {
	var cfg fileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("scenecfg: decode %s: %w", path, err)
	}
	return build(&cfg)
}

func build(cfg *fileConfig) (*Scene, error) {
	curve, err := buildCurve(&cfg.Curve)
	if err != nil {
		return nil, err
	}

	var palette *distfield.Palette
	if cfg.Palette != nil {
		palette, err = buildPalette(cfg.Palette)
		if err != nil {
			return nil, err
		}
	}

	method, err := distfield.ParseDistanceMethod(cfg.Profile.Method)
	if err != nil {
		return nil, err
	}
	pc := cfg.Profile
	if pc.CurveScale == 0 {
		pc.CurveScale = 1
	}
	profile := distfield.Profile{
		Method:           method,
		Modulus:          pc.Modulus,
		CurveScale:       pc.CurveScale,
		AngularEnabled:   pc.AngularEnabled,
		AngularFreq:      pc.AngularFreq,
		AngularAmp:       pc.AngularAmp,
		AngularOffsetDeg: pc.AngularOffsetDeg,
		FractalEnabled:   pc.FractalEnabled,
		FractalScale1:    pc.FractalScale1,
		FractalScale2:    pc.FractalScale2,
		FractalScale3:    pc.FractalScale3,
		FractalStrength:  pc.FractalStrength,
		CheckerEnabled:   pc.CheckerEnabled,
		CheckerSteps:     pc.CheckerSteps,
	}.Normalized()
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	bounds := distfield.Bounds{
		MinX: cfg.Region.MinX, MinY: cfg.Region.MinY,
		MaxX: cfg.Region.MaxX, MaxY: cfg.Region.MaxY,
	}
	if err := bounds.Validate(); err != nil {
		return nil, err
	}

	return &Scene{
		Curve:   curve,
		Palette: palette,
		Profile: profile,
		Bounds:  bounds,
		PanX:    cfg.Pan.X,
		PanY:    cfg.Pan.Y,
	}, nil
}

func buildCurve(cc *curveConfig) (*distfield.Curve, error) {
	if cc.ID == "" {
		cc.ID = "curve"
	}
	if len(cc.Data) == 0 {
		if cc.Width <= 0 {
			cc.Width = 256
		}
		return distfield.RampCurve(cc.ID, cc.Width), nil
	}

	data := make([]byte, len(cc.Data))
	for i, v := range cc.Data {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("scenecfg: curve data[%d] = %d out of byte range", i, v)
		}
		data[i] = byte(v)
	}
	curve := &distfield.Curve{ID: cc.ID, Width: len(data), Data: data}
	if cc.Width != 0 && cc.Width != curve.Width {
		return nil, fmt.Errorf("scenecfg: curve width %d does not match %d data entries", cc.Width, len(data))
	}
	return curve, curve.Validate()
}

func buildPalette(pc *paletteConfig) (*distfield.Palette, error) {
	if pc.ID == "" {
		pc.ID = "palette"
	}
	colors := make([]distfield.RGBA, 0, len(pc.Colors))
	hasAlpha := false
	for _, hex := range pc.Colors {
		c, err := distfield.ParseHex(hex)
		if err != nil {
			return nil, err
		}
		if c.A != 255 {
			hasAlpha = true
		}
		colors = append(colors, c)
	}
	palette := &distfield.Palette{ID: pc.ID, Colors: colors, HasAlpha: hasAlpha}
	return palette, palette.Validate()
}

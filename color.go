package distfield

import (
	"fmt"
	"image/color"
)

// RGBA is an 8-bit-per-channel color as produced by the pipeline and stored
// in palettes. Alpha 255 is fully opaque.
type RGBA struct {
	R, G, B, A uint8
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Packed returns the color as a little-endian packed u32 (R in the low byte),
// the layout the GPU backend and generated shaders use for pixel records.
func (c RGBA) Packed() uint32 {
	return uint32(c.R) | uint32(c.G)<<8 | uint32(c.B)<<16 | uint32(c.A)<<24
}

// UnpackRGBA is the inverse of Packed.
func UnpackRGBA(v uint32) RGBA {
	return RGBA{
		R: uint8(v),
		G: uint8(v >> 8),
		B: uint8(v >> 16),
		A: uint8(v >> 24),
	}
}

// Grayscale returns the opaque gray for a curve value. It is the color used
// whenever no palette is bound.
func Grayscale(v uint8) RGBA {
	return RGBA{R: v, G: v, B: v, A: 255}
}

// ParseHex parses a hex color string into RGBA.
// Supported formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", with optional
// leading '#'. Missing alpha defaults to 255.
func ParseHex(hex string) (RGBA, error) {
	orig := hex
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b uint32
	a := uint32(255)
	ok := true

	switch len(hex) {
	case 3: // RGB
		ok = parseHex(hex[0:1], &r) && parseHex(hex[1:2], &g) && parseHex(hex[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 4: // RGBA
		ok = parseHex(hex[0:1], &r) && parseHex(hex[1:2], &g) &&
			parseHex(hex[2:3], &b) && parseHex(hex[3:4], &a)
		r, g, b, a = r*17, g*17, b*17, a*17
	case 6: // RRGGBB
		ok = parseHex(hex[0:2], &r) && parseHex(hex[2:4], &g) && parseHex(hex[4:6], &b)
	case 8: // RRGGBBAA
		ok = parseHex(hex[0:2], &r) && parseHex(hex[2:4], &g) &&
			parseHex(hex[4:6], &b) && parseHex(hex[6:8], &a)
	default:
		ok = false
	}
	if !ok {
		return RGBA{}, fmt.Errorf("distfield: invalid hex color %q", orig)
	}

	return RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}, nil
}

// parseHex parses a hex substring into v. Returns false on any non-hex rune.
func parseHex(s string, v *uint32) bool {
	var out uint32
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			out = out<<4 | uint32(c-'0')
		case c >= 'a' && c <= 'f':
			out = out<<4 | uint32(c-'a'+10)
		case c >= 'A' && c <= 'F':
			out = out<<4 | uint32(c-'A'+10)
		default:
			return false
		}
	}
	*v = out
	return true
}

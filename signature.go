package distfield

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// Signature identifies everything a cached coordinate result depends on:
// curve identity, palette identity, the pan offset, and every field of the
// distortion profile. Any difference in any input yields a different
// signature, so partially stale cache state can never be served.
type Signature uint64

// ComputeSignature hashes the full evaluation identity with FNV-1a.
//
// Every profile field participates, including the angular and fractal
// parameters: a profile edit that only touches those must still invalidate.
func ComputeSignature(curve *Curve, p Profile, palette *Palette, panX, panY float64) Signature {
	h := fnv.New64a()
	var buf [8]byte

	writeString := func(s string) {
		binary.LittleEndian.PutUint64(buf[:], uint64(len(s)))
		_, _ = h.Write(buf[:])
		_, _ = h.Write([]byte(s))
	}
	writeFloat := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = h.Write(buf[:])
	}
	writeBool := func(b bool) {
		buf[0] = 0
		if b {
			buf[0] = 1
		}
		_, _ = h.Write(buf[:1])
	}

	if curve != nil {
		writeString(curve.ID)
	}
	if palette != nil {
		writeString(palette.ID)
	}
	writeFloat(panX)
	writeFloat(panY)

	buf[0] = uint8(p.Method)
	_, _ = h.Write(buf[:1])
	writeFloat(p.Modulus)
	writeFloat(p.CurveScale)
	writeBool(p.AngularEnabled)
	writeFloat(p.AngularFreq)
	writeFloat(p.AngularAmp)
	writeFloat(p.AngularOffsetDeg)
	writeBool(p.FractalEnabled)
	writeFloat(p.FractalScale1)
	writeFloat(p.FractalScale2)
	writeFloat(p.FractalScale3)
	writeFloat(p.FractalStrength)
	writeBool(p.CheckerEnabled)
	writeFloat(p.CheckerSteps)

	return Signature(h.Sum64())
}

// Package shader generates baked GPU shader source for a distortion profile.
//
// Generation is specialization, not templating of a generic shader: every
// disabled pipeline step is absent from the emitted source, and every numeric
// parameter is baked in as a validated literal. The only runtime inputs are
// the curve data, the palette data, and (for the WGSL compute dialect) the
// dispatch geometry.
//
// The per-method distance expressions live in a single table alongside flags
// shared by both dialects; the CPU engine's formula switch mirrors that table
// one for one, which is what keeps the two realizations from drifting.
package shader

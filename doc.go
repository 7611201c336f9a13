// Package distfield converts 2D coordinates into deterministic colors by
// routing them through a configurable chain of geometric distortions, a 1-D
// value curve, and a color palette.
//
// # Overview
//
// The same pipeline has two execution realizations that must agree
// numerically: a pure-Go reference evaluation, and generated GPU shader
// source (WGSL and GLSL) with all profile parameters baked in as literals.
// A signature-keyed region cache makes repeated evaluation over large
// coordinate grids cheap.
//
// # Quick Start
//
//	import "github.com/gogpu/distfield"
//
//	curve := distfield.RampCurve("ramp", 256)
//	profile := distfield.NewProfile(distfield.MethodRadial)
//
//	s := distfield.NewSession()
//	results, err := s.EvaluateRegion(ctx, curve, profile, nil,
//	    distfield.Bounds{MinX: -64, MinY: -64, MaxX: 63, MaxY: 63})
//
// # Architecture
//
// The package is organized into:
//   - Core model: Curve, Palette, Profile, Bounds, Result
//   - Engine + Resolver: the coordinate-to-color pipeline
//   - Cache + Session: region caching and dual-backend execution
//   - shader/: baked shader source generation (WGSL, GLSL)
//   - backend/wgpu/: GPU evaluation via gogpu/wgpu compute shaders
//
// GPU execution is optional. Sessions without a backend, or whose backend
// fails to initialize, evaluate on the CPU with identical results.
package distfield

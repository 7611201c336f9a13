// Package wgpu evaluates distortion regions on the GPU via gogpu/wgpu
// compute shaders.
//
// The backend compiles the baked WGSL that distfield/shader generates for
// the active curve/profile/palette signature and caches the resulting
// pipeline until the signature changes. Each region request is a single
// asynchronous dispatch of 16x16 workgroup tiles followed by a fenced
// staging-buffer readback.
//
// GPU acquisition failure is never fatal: Init returns the error and the
// owning session falls back to CPU evaluation.
//
// Usage:
//
//	s := distfield.NewSession(distfield.WithBackend(wgpu.New()))
//	defer s.Close()
package wgpu

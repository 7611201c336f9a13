package distfield

import "errors"

// ErrFallbackToCPU indicates the GPU backend cannot handle this evaluation.
// The session transparently falls back to CPU execution; callers never see
// this error.
var ErrFallbackToCPU = errors.New("distfield: falling back to CPU evaluation")

// Cell is the per-coordinate record a GPU backend returns, matching the Cell
// struct in generated WGSL. Dist is the raw pipeline distance, Index the
// curve index, Value the curve byte after checkerboard inversion, and Color
// the packed little-endian RGBA (see RGBA.Packed).
type Cell struct {
	Dist  float32
	Index uint32
	Value uint32
	Color uint32
}

// Backend evaluates whole regions on an accelerator. Implementations live in
// backend subpackages (backend/wgpu). A session owns at most one backend and
// falls back to CPU evaluation whenever it returns an error.
//
// Unlike a global registry, backends are injected per session via
// WithBackend, so independent sessions (split-screen previews) never share
// accelerator state.
type Backend interface {
	// Name returns the backend name (e.g., "wgpu-compute").
	Name() string

	// Init acquires accelerator resources. Called once by the session that
	// adopts the backend; an error keeps the session on CPU permanently.
	Init() error

	// Close releases accelerator resources.
	Close()

	// EvaluateRegion computes every coordinate in bounds and returns cells
	// in row-major order (width*height entries). The pan offset is baked
	// into the generated shader along with the profile.
	//
	// A dispatch is a single asynchronous unit of work: implementations
	// must not return before the device signals completion. Return
	// ErrFallbackToCPU (or any error) to delegate to CPU evaluation.
	EvaluateRegion(curve *Curve, p Profile, palette *Palette, panX, panY float64, b Bounds) ([]Cell, error)
}

package distfield

import (
	"errors"
	"fmt"
)

// Coord is an integer world coordinate. Its string form "x_y" is the map key
// used by external callers.
type Coord struct {
	X, Y int
}

// String returns the "x_y" key form of the coordinate.
func (c Coord) String() string { return fmt.Sprintf("%d_%d", c.X, c.Y) }

// ErrBounds is returned for an empty or inverted bounds request.
var ErrBounds = errors.New("distfield: bounds must satisfy min <= max")

// Bounds is an inclusive rectangular coordinate region.
type Bounds struct {
	MinX, MinY, MaxX, MaxY int
}

// Validate reports whether the bounds describe a non-empty region.
func (b Bounds) Validate() error {
	if b.MinX > b.MaxX || b.MinY > b.MaxY {
		return fmt.Errorf("%w: %+v", ErrBounds, b)
	}
	return nil
}

// Width returns the number of columns in the region.
func (b Bounds) Width() int { return b.MaxX - b.MinX + 1 }

// Height returns the number of rows in the region.
func (b Bounds) Height() int { return b.MaxY - b.MinY + 1 }

// Count returns the number of coordinates in the region.
func (b Bounds) Count() int { return b.Width() * b.Height() }

// Contains reports whether the coordinate lies inside the region.
func (b Bounds) Contains(c Coord) bool {
	return c.X >= b.MinX && c.X <= b.MaxX && c.Y >= b.MinY && c.Y <= b.MaxY
}

// Result is the fully resolved outcome for one coordinate. Results are
// immutable after creation and owned by the cache entry that holds them.
type Result struct {
	// X, Y echo the evaluated coordinate.
	X, Y int

	// Distance is the raw pipeline distance before curve scaling. It is
	// the value checkerboard banding is computed from.
	Distance float64

	// Index is the curve index, always in [0, curve.Width).
	Index int

	// Value is the curve byte after any checkerboard inversion.
	Value uint8

	// Color is the final resolved color.
	Color RGBA
}

// Region is the result set for a rectangular request, keyed by coordinate.
// Use Coord.String for the external "x_y" key form.
type Region map[Coord]Result

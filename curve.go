package distfield

import (
	"errors"
	"fmt"
)

// Curve errors.
var (
	// ErrCurveWidth is returned when a curve declares a non-positive width.
	ErrCurveWidth = errors.New("distfield: curve width must be positive")

	// ErrCurveData is returned when a curve's data length does not match
	// its declared width.
	ErrCurveData = errors.New("distfield: curve data length must equal width")
)

// Curve is a fixed-size byte array used as a 1-D lookup table, keyed by the
// index the transform engine computes. Curves are immutable once validated;
// callers must not modify Data after handing the curve to a Session.
type Curve struct {
	// ID identifies the curve for cache signatures. Two curves with the
	// same ID are assumed to carry the same data.
	ID string

	// Width is the number of entries in Data.
	Width int

	// Data holds the lookup values. len(Data) must equal Width.
	Data []byte
}

// Validate checks the curve invariants. It is called once before any
// coordinate is evaluated, never per coordinate.
func (c *Curve) Validate() error {
	if c == nil {
		return errors.New("distfield: curve is nil")
	}
	if c.Width <= 0 {
		return fmt.Errorf("%w: got %d", ErrCurveWidth, c.Width)
	}
	if len(c.Data) != c.Width {
		return fmt.Errorf("%w: width %d, data %d", ErrCurveData, c.Width, len(c.Data))
	}
	return nil
}

// RampCurve returns a curve whose data is the identity ramp data[i] = i
// (truncated to byte). Useful as a neutral curve and in tests.
func RampCurve(id string, width int) *Curve {
	data := make([]byte, width)
	for i := range data {
		data[i] = byte(i)
	}
	return &Curve{ID: id, Width: width, Data: data}
}

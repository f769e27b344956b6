package domain

import "math"

// EMUPerInch is the number of English Metric Units in one inch.
const EMUPerInch = 914400

// Dimension is one geometry field: absolute inches or a percentage of the canvas.
type Dimension struct {
	Value   float64
	Percent bool
}

// Inches returns an absolute dimension.
func Inches(v float64) Dimension { return Dimension{Value: v} }

// Percent returns a dimension relative to the canvas. Percent(50) is half of it.
func Percent(v float64) Dimension { return Dimension{Value: v, Percent: true} }

// EMU resolves the dimension against the canvas extent (in EMU) along its axis.
func (d Dimension) EMU(canvas int64) int64 {
	if d.Percent {
		return int64(math.Round(d.Value / 100 * float64(canvas)))
	}
	return int64(math.Round(d.Value * EMUPerInch))
}

// Box is the geometry shared by every element kind.
type Box struct {
	X, Y, W, H Dimension
}

// Frame is a box resolved to EMU against a canvas.
type Frame struct {
	X, Y, W, H int64
}

// Canvas is the slide size in EMU.
type Canvas struct {
	CX, CY int64
}

// Resolve converts the box into EMU: x and w against the canvas width, y and h against its height.
func (b Box) Resolve(c Canvas) Frame {
	return Frame{
		X: b.X.EMU(c.CX),
		Y: b.Y.EMU(c.CY),
		W: b.W.EMU(c.CX),
		H: b.H.EMU(c.CY),
	}
}

// Covers reports whether the frame starts at the origin and spans the whole canvas.
func (r Frame) Covers(c Canvas) bool {
	return r.X == 0 && r.Y == 0 && r.W >= c.CX && r.H >= c.CY
}

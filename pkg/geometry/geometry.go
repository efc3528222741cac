// Package geometry provides the small set of 2D primitives used to place
// conversation nodes on the canvas: points, sizes, axis-aligned boxes and
// the handle sides edges attach to.
//
// Coordinates are screen pixels with the origin at the top-left and the y
// axis pointing down, matching the canvas the nodes are rendered on.
package geometry

import "math"

// Point is a position on the canvas in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point { return Point{X: p.X + dx, Y: p.Y + dy} }

// IsFinite reports whether both coordinates are neither NaN nor infinite.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Size is a width/height pair in pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Grow returns s enlarged by pad on both axes.
func (s Size) Grow(pad float64) Size {
	return Size{Width: s.Width + pad, Height: s.Height + pad}
}

// Box is an axis-aligned rectangle spanning [Min, Max).
type Box struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// NewBox builds the box whose top-left corner is topLeft.
func NewBox(topLeft Point, s Size) Box {
	return Box{
		Min: topLeft,
		Max: Point{X: topLeft.X + s.Width, Y: topLeft.Y + s.Height},
	}
}

// Overlaps reports whether b and o share interior area.
// Boxes that only touch along an edge do not overlap.
func (b Box) Overlaps(o Box) bool {
	return b.Min.X < o.Max.X && o.Min.X < b.Max.X &&
		b.Min.Y < o.Max.Y && o.Min.Y < b.Max.Y
}

// TopLeftFromCenter converts a center point into the top-left corner of a
// box of size s. Layout engines report centers, the canvas wants corners.
func TopLeftFromCenter(c Point, s Size) Point {
	return Point{X: c.X - s.Width/2, Y: c.Y - s.Height/2}
}

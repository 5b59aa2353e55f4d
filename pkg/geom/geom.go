// Package geom provides the small set of 2D value types shared by the layout,
// serialization and rendering packages.
//
// Points and rectangles are plain values: assigning or passing them copies
// the coordinates, so a layout result never aliases the positions it was
// computed from.
package geom

import (
	"fmt"
	"math"
)

// Point is a position in user units (pixels in SVG output).
type Point struct {
	X float64
	Y float64
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// String formats the point as "(x, y)".
func (p Point) String() string { return fmt.Sprintf("(%g, %g)", p.X, p.Y) }

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point { return Point{X: p.X + dx, Y: p.Y + dy} }

// Sub returns the component-wise difference p − o.
func (p Point) Sub(o Point) Point { return Point{X: p.X - o.X, Y: p.Y - o.Y} }

// Midpoint returns the midpoint of p and o.
func (p Point) Midpoint(o Point) Point {
	return Point{X: 0.5 * (p.X + o.X), Y: 0.5 * (p.Y + o.Y)}
}

// Distance returns the euclidean distance between p and o.
func (p Point) Distance(o Point) float64 { return math.Hypot(p.X-o.X, p.Y-o.Y) }

// Array returns the point as a two-element coordinate.
func (p Point) Array() [2]float64 { return [2]float64{p.X, p.Y} }

// IsFinite reports whether both coordinates are neither NaN nor infinite.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// FromArray builds a point from a two-element coordinate.
func FromArray(a [2]float64) Point { return Point{X: a[0], Y: a[1]} }

// Rect is an axis-aligned rectangle given by its origin and size.
// Width and Height are not normalized; negative sizes propagate into any
// geometry derived from the rectangle.
type Rect struct {
	X      float64 `json:"x" bson:"x" yaml:"x"`
	Y      float64 `json:"y" bson:"y" yaml:"y"`
	Width  float64 `json:"width" bson:"width" yaml:"width"`
	Height float64 `json:"height" bson:"height" yaml:"height"`
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// InscribedRadius returns the radius of the largest circle centered in r.
func (r Rect) InscribedRadius() float64 { return min(r.Width, r.Height) / 2 }

// Inset returns r shrunk by m on every side.
func (r Rect) Inset(m float64) Rect {
	return Rect{X: r.X + m, Y: r.Y + m, Width: r.Width - 2*m, Height: r.Height - 2*m}
}

// Package geom provides the small set of 2D primitives used when converting
// library graphics into EasyEDA documents: points, rectangles and the symbol
// orientation transform.
package geom

import "math"

// Point is a position in document units. Y grows downwards.
type Point struct {
	X float64
	Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Translate returns p moved by (dx, dy).
func (p Point) Translate(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Sub returns the component-wise difference p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// RotateDegrees rotates p about center by angle degrees and rounds both
// coordinates to the nearest integer. Positive angles turn from +X towards +Y.
func (p Point) RotateDegrees(angle float64, center Point) Point {
	rad := angle * math.Pi / 180.0
	cos := math.Cos(rad)
	sin := math.Sin(rad)

	dx := p.X - center.X
	dy := p.Y - center.Y

	return Point{
		X: round(cos*dx - sin*dy + center.X),
		Y: round(sin*dx + cos*dy + center.Y),
	}
}

// Distance returns the Euclidean distance between p and q, rounded to the
// nearest integer.
func (p Point) Distance(q Point) float64 {
	return round(math.Hypot(q.X-p.X, q.Y-p.Y))
}

// round rounds half away from zero and never yields negative zero.
func round(v float64) float64 {
	r := math.Round(v)
	if r == 0 {
		return 0
	}
	return r
}

// NormalizeDegrees folds angle into [0, 360).
func NormalizeDegrees(angle float64) float64 {
	a := math.Mod(angle, 360)
	if a < 0 {
		a += 360
	}
	if a == 0 {
		return 0
	}
	return a
}

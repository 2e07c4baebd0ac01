package geom

import "math"

// Rect is an axis-aligned rectangle given by its top-left corner and size.
// The zero Rect is empty.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
	valid  bool
}

// NewRect returns a rectangle with the given corner and size.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height, valid: true}
}

// RectFromPoints returns the smallest rectangle containing both points.
func RectFromPoints(a, b Point) Rect {
	minX := math.Min(a.X, b.X)
	maxX := math.Max(a.X, b.X)
	minY := math.Min(a.Y, b.Y)
	maxY := math.Max(a.Y, b.Y)

	return NewRect(minX, minY, maxX-minX, maxY-minY)
}

// IsEmpty reports whether the rectangle has never been given any extent.
func (r Rect) IsEmpty() bool {
	return !r.valid
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Min returns the top-left corner.
func (r Rect) Min() Point {
	return Point{X: r.X, Y: r.Y}
}

// Max returns the bottom-right corner.
func (r Rect) Max() Point {
	return Point{X: r.Right(), Y: r.Bottom()}
}

// Expand grows the rectangle to include p.
func (r Rect) Expand(p Point) Rect {
	if !r.valid {
		return NewRect(p.X, p.Y, 0, 0)
	}
	return RectFromPoints(
		Point{X: math.Min(r.X, p.X), Y: math.Min(r.Y, p.Y)},
		Point{X: math.Max(r.Right(), p.X), Y: math.Max(r.Bottom(), p.Y)},
	)
}

// Union returns the smallest rectangle containing both r and o. Empty
// rectangles are ignored.
func (r Rect) Union(o Rect) Rect {
	if !o.valid {
		return r
	}
	if !r.valid {
		return o
	}
	return r.Expand(o.Min()).Expand(o.Max())
}

// Inflate snaps the rectangle outwards to a grid: the low edges are floored
// and the high edges ceiled to multiples of grid.
func (r Rect) Inflate(grid float64) Rect {
	if !r.valid || grid <= 0 {
		return r
	}
	x0 := math.Floor(r.X/grid) * grid
	y0 := math.Floor(r.Y/grid) * grid
	x1 := math.Ceil(r.Right()/grid) * grid
	y1 := math.Ceil(r.Bottom()/grid) * grid

	return NewRect(x0, y0, x1-x0, y1-y0)
}

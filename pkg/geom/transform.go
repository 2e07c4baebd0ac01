package geom

import "math"

// Transform is the 2x2 orientation matrix KiCad applies to symbol graphics
// when drawing them in a schematic.
type Transform struct {
	X1, Y1 float64
	X2, Y2 float64
}

// DefaultTransform is the unrotated, unmirrored symbol orientation. It flips
// the Y axis.
var DefaultTransform = Transform{X1: 1, Y1: 0, X2: 0, Y2: -1}

// Apply maps p through the matrix.
func (t Transform) Apply(p Point) Point {
	return Point{
		X: t.X1*p.X + t.Y1*p.Y,
		Y: t.X2*p.X + t.Y2*p.Y,
	}
}

// MapAngles maps an arc's start and end angles (degrees, counter-clockwise)
// through the transform and reports whether the arc must be drawn from end to
// start to keep a sweep of at most 180 degrees. The returned angles are in
// [0, 360) for start and (start, start+360) for end.
func (t Transform) MapAngles(start, end float64) (float64, float64, bool) {
	if end-start >= 180 {
		start -= 0.1
		end += 0.1
	}

	start = NormalizeDegrees(t.mapAngle(start))
	end = NormalizeDegrees(t.mapAngle(end))

	if end < start {
		end += 360
	}

	swap := end-start > 180

	return start, end, swap
}

func (t Transform) mapAngle(angle float64) float64 {
	rad := angle * math.Pi / 180.0
	x := math.Cos(rad)
	y := math.Sin(rad)

	mapped := math.Atan2(x*t.X2+y*t.Y2, x*t.X1+y*t.Y1) * 180.0 / math.Pi

	// KiCad keeps angles in tenths of a degree.
	return math.Round(mapped*10) / 10
}

// ArcSweepFlag returns the SVG sweep flag for an arc drawn from start to end
// degrees under the default transform.
func ArcSweepFlag(start, end float64) int {
	_, _, swap := DefaultTransform.MapAngles(start, end)
	if swap {
		return 0
	}
	return 1
}

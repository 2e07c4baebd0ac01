package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotateDegrees(t *testing.T) {
	tests := []struct {
		name   string
		point  Point
		angle  float64
		center Point
		want   Point
	}{
		{name: "quarter turn about origin", point: Pt(10, 0), angle: 90, want: Pt(0, 10)},
		{name: "half turn about origin", point: Pt(10, 5), angle: 180, want: Pt(-10, -5)},
		{name: "negative quarter turn", point: Pt(10, 0), angle: -90, want: Pt(0, -10)},
		{name: "about a center", point: Pt(110, 100), angle: 90, center: Pt(100, 100), want: Pt(100, 110)},
		{name: "rotates from the unrotated point", point: Pt(3, 4), angle: 90, want: Pt(-4, 3)},
		{name: "rounds to integers", point: Pt(10, 0), angle: 45, want: Pt(7, 7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.point.RotateDegrees(tt.angle, tt.center))
		})
	}
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 5.0, Pt(0, 0).Distance(Pt(3, 4)))
	assert.Equal(t, 1.0, Pt(0, 0).Distance(Pt(1, 1)))
}

func TestNormalizeDegrees(t *testing.T) {
	assert.Equal(t, 0.0, NormalizeDegrees(360))
	assert.Equal(t, 270.0, NormalizeDegrees(-90))
	assert.Equal(t, 90.0, NormalizeDegrees(450))
}

func TestRectFromPoints(t *testing.T) {
	r := RectFromPoints(Pt(10, -5), Pt(-2, 7))
	assert.Equal(t, -2.0, r.X)
	assert.Equal(t, -5.0, r.Y)
	assert.Equal(t, 12.0, r.Width)
	assert.Equal(t, 12.0, r.Height)
	assert.False(t, r.IsEmpty())
}

func TestRectInflate(t *testing.T) {
	r := NewRect(-0.1, 21.1, 0.9, 5).Inflate(10)
	assert.Equal(t, NewRect(-10, 20, 20, 10), r)
}

func TestRectUnion(t *testing.T) {
	var empty Rect
	assert.True(t, empty.IsEmpty())

	a := NewRect(0, 0, 10, 10)
	assert.Equal(t, a, empty.Union(a))
	assert.Equal(t, a, a.Union(empty))

	u := a.Union(NewRect(-5, 5, 2, 20))
	assert.Equal(t, NewRect(-5, 0, 15, 25), u)
}

func TestMapAngles(t *testing.T) {
	tests := []struct {
		name       string
		start, end float64
		wantSwap   bool
	}{
		{name: "upper half arc", start: 153.4, end: 26.6, wantSwap: false},
		{name: "lower half arc", start: -153.4, end: -26.6, wantSwap: true},
		{name: "more than half turn", start: 90.1, end: -90.1, wantSwap: true},
		{name: "exact half turn is nudged", start: 0, end: 180, wantSwap: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, swap := DefaultTransform.MapAngles(tt.start, tt.end)
			require.GreaterOrEqual(t, start, 0.0)
			require.Less(t, start, 360.0)
			require.Greater(t, end, start)
			assert.Equal(t, tt.wantSwap, swap)
		})
	}
}

func TestArcSweepFlag(t *testing.T) {
	assert.Equal(t, 1, ArcSweepFlag(153.4, 26.6))
	assert.Equal(t, 0, ArcSweepFlag(-153.4, -26.6))
	assert.Equal(t, 0, ArcSweepFlag(90.1, -90.1))
}

func TestDefaultTransformFlipsY(t *testing.T) {
	assert.Equal(t, Pt(3, -4), DefaultTransform.Apply(Pt(3, 4)))
}

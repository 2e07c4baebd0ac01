package easyeda

import (
	"slices"

	"github.com/OpenTraceLab/lib2sch/pkg/geom"
)

// Polyline is an open or closed chain of points. A closed chain is stored as
// a polygon.
type Polyline struct {
	Style
	Points []geom.Point
	Closed bool
}

// PolyData is the serialized polygon or polyline.
type PolyData struct {
	FillColor   string  `json:"fillColor"`
	GID         string  `json:"gId"`
	PointArr    []Point `json:"pointArr"`
	StrokeColor string  `json:"strokeColor"`
	StrokeStyle int     `json:"strokeStyle"`
	StrokeWidth string  `json:"strokeWidth"`
}

// NewPolyline returns a chain through points. It is closed when the first and
// last points coincide.
func NewPolyline(points []geom.Point) *Polyline {
	p := &Polyline{Style: DefaultStyle(), Points: points}
	p.Closed = p.IsClosed()
	return p
}

// NewPolygon returns a closed chain through points.
func NewPolygon(points []geom.Point) *Polyline {
	p := &Polyline{Style: DefaultStyle(), Points: points, Closed: true}
	return p
}

// IsClosed reports whether the first and last points coincide.
func (p *Polyline) IsClosed() bool {
	if len(p.Points) < 2 {
		return false
	}
	return p.Points[0] == p.Points[len(p.Points)-1]
}

func (p *Polyline) Kind() Kind {
	if p.Closed {
		return KindPolygon
	}
	return KindPolyline
}

func (p *Polyline) Bounds() geom.Rect {
	var r geom.Rect
	for _, pt := range p.Points {
		r = r.Expand(pt)
	}
	return r
}

func (p *Polyline) Translate(dx, dy float64) {
	for i := range p.Points {
		p.Points[i] = p.Points[i].Translate(dx, dy)
	}
}

func (p *Polyline) ApplyTheme(t *Theme) {
	p.Style.applyTheme(t)
}

func (p *Polyline) clone() Shape {
	c := *p
	c.Points = slices.Clone(p.Points)
	return &c
}

// Materialize returns the serialized chain and its new id.
func (p *Polyline) Materialize(ids *IDAllocator) (*PolyData, string) {
	id := ids.Next()
	points := make([]Point, len(p.Points))
	for i, pt := range p.Points {
		points[i] = Point{X: round4(pt.X), Y: round4(pt.Y)}
	}
	return &PolyData{
		FillColor:   p.Fill.String(),
		GID:         id,
		PointArr:    points,
		StrokeColor: p.Stroke.String(),
		StrokeStyle: p.StrokeStyle,
		StrokeWidth: num(p.StrokeWidth),
	}, id
}

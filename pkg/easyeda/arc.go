package easyeda

import (
	"fmt"

	"github.com/OpenTraceLab/lib2sch/pkg/geom"
)

// Arc is a circular arc. The angles are in degrees, counter-clockwise in the
// library's Y-up frame; Start and End are the arc's end points in document
// coordinates. The angles only decide the sweep direction.
type Arc struct {
	Style
	Center     geom.Point
	Radius     float64
	StartAngle float64
	EndAngle   float64
	Start      geom.Point
	End        geom.Point
}

// ArcData is the serialized arc.
type ArcData struct {
	FillColor   string `json:"fillColor"`
	GID         string `json:"gId"`
	HelperDots  string `json:"helperDots"`
	PathString  string `json:"pathString"`
	StrokeColor string `json:"strokeColor"`
	StrokeStyle int    `json:"strokeStyle"`
	StrokeWidth string `json:"strokeWidth"`
}

func NewArc() *Arc {
	return &Arc{Style: DefaultStyle()}
}

// PathString returns the SVG path "M sx sy A r r 0 0 sweep ex ey".
func (a *Arc) PathString() string {
	sweep := geom.ArcSweepFlag(a.StartAngle, a.EndAngle)
	r := num(a.Radius)
	return fmt.Sprintf("M %s %s A %s %s 0 0 %d %s %s",
		num(a.Start.X), num(a.Start.Y), r, r, sweep, num(a.End.X), num(a.End.Y))
}

func (a *Arc) Kind() Kind { return KindArc }

// Bounds covers the full circle the arc lies on.
func (a *Arc) Bounds() geom.Rect {
	return geom.NewRect(a.Center.X-a.Radius, a.Center.Y-a.Radius, 2*a.Radius, 2*a.Radius)
}

func (a *Arc) Translate(dx, dy float64) {
	a.Center = a.Center.Translate(dx, dy)
	a.Start = a.Start.Translate(dx, dy)
	a.End = a.End.Translate(dx, dy)
}

func (a *Arc) ApplyTheme(t *Theme) {
	a.Style.applyTheme(t)
}

func (a *Arc) clone() Shape {
	c := *a
	return &c
}

// Materialize returns the serialized arc and its new id.
func (a *Arc) Materialize(ids *IDAllocator) (*ArcData, string) {
	id := ids.Next()
	return &ArcData{
		FillColor:   a.Fill.String(),
		GID:         id,
		PathString:  a.PathString(),
		StrokeColor: a.Stroke.String(),
		StrokeStyle: a.StrokeStyle,
		StrokeWidth: num(a.StrokeWidth),
	}, id
}

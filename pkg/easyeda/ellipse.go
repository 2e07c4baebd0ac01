package easyeda

import "github.com/OpenTraceLab/lib2sch/pkg/geom"

// Ellipse is an axis-aligned ellipse; library circles have RX == RY.
type Ellipse struct {
	Style
	Center geom.Point
	RX     float64
	RY     float64
}

// EllipseData is the serialized ellipse.
type EllipseData struct {
	CX          string `json:"cx"`
	CY          string `json:"cy"`
	FillColor   string `json:"fillColor"`
	GID         string `json:"gId"`
	RX          string `json:"rx"`
	RY          string `json:"ry"`
	StrokeColor string `json:"strokeColor"`
	StrokeStyle int    `json:"strokeStyle"`
	StrokeWidth string `json:"strokeWidth"`
}

func NewEllipse() *Ellipse {
	return &Ellipse{Style: DefaultStyle()}
}

// NewCircle returns a circle of radius r centred on c.
func NewCircle(c geom.Point, r float64) *Ellipse {
	e := NewEllipse()
	e.Center = c
	e.SetRadius(r)
	return e
}

// SetRadius makes the ellipse a circle.
func (e *Ellipse) SetRadius(r float64) {
	e.RX = r
	e.RY = r
}

func (e *Ellipse) Kind() Kind { return KindEllipse }

func (e *Ellipse) Bounds() geom.Rect {
	return geom.NewRect(e.Center.X-e.RX, e.Center.Y-e.RY, 2*e.RX, 2*e.RY)
}

func (e *Ellipse) Translate(dx, dy float64) {
	e.Center = e.Center.Translate(dx, dy)
}

func (e *Ellipse) ApplyTheme(t *Theme) {
	e.Style.applyTheme(t)
}

func (e *Ellipse) clone() Shape {
	c := *e
	return &c
}

// Materialize returns the serialized ellipse and its new id.
func (e *Ellipse) Materialize(ids *IDAllocator) (*EllipseData, string) {
	id := ids.Next()
	return &EllipseData{
		CX:          num(e.Center.X),
		CY:          num(e.Center.Y),
		FillColor:   e.Fill.String(),
		GID:         id,
		RX:          num(e.RX),
		RY:          num(e.RY),
		StrokeColor: e.Stroke.String(),
		StrokeStyle: e.StrokeStyle,
		StrokeWidth: num(e.StrokeWidth),
	}, id
}

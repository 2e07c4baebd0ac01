package easyeda

import "github.com/OpenTraceLab/lib2sch/pkg/geom"

// Rect is an axis-aligned rectangle. Width and Height are never negative.
type Rect struct {
	Style
	Origin geom.Point // Top-left corner
	Width  float64
	Height float64
}

// RectData is the serialized rectangle.
type RectData struct {
	FillColor   string `json:"fillColor"`
	GID         string `json:"gId"`
	Height      string `json:"height"`
	RX          string `json:"rx"`
	RY          string `json:"ry"`
	StrokeColor string `json:"strokeColor"`
	StrokeStyle int    `json:"strokeStyle"`
	StrokeWidth string `json:"strokeWidth"`
	Width       string `json:"width"`
	X           string `json:"x"`
	Y           string `json:"y"`
}

func NewRect() *Rect {
	return &Rect{Style: DefaultStyle()}
}

// NewRectFromCorners returns the rectangle spanned by two opposite corners in
// any order.
func NewRectFromCorners(a, b geom.Point) *Rect {
	r := NewRect()
	bounds := geom.RectFromPoints(a, b)
	r.Origin = bounds.Min()
	r.Width = bounds.Width
	r.Height = bounds.Height
	return r
}

func (r *Rect) Kind() Kind { return KindRect }

func (r *Rect) Bounds() geom.Rect {
	return geom.NewRect(r.Origin.X, r.Origin.Y, r.Width, r.Height)
}

func (r *Rect) Translate(dx, dy float64) {
	r.Origin = r.Origin.Translate(dx, dy)
}

func (r *Rect) ApplyTheme(t *Theme) {
	r.Style.applyTheme(t)
}

func (r *Rect) clone() Shape {
	c := *r
	return &c
}

// Materialize returns the serialized rectangle and its new id.
func (r *Rect) Materialize(ids *IDAllocator) (*RectData, string) {
	id := ids.Next()
	return &RectData{
		FillColor:   r.Fill.String(),
		GID:         id,
		Height:      num(r.Height),
		StrokeColor: r.Stroke.String(),
		StrokeStyle: r.StrokeStyle,
		StrokeWidth: num(r.StrokeWidth),
		Width:       num(r.Width),
		X:           num(r.Origin.X),
		Y:           num(r.Origin.Y),
	}, id
}

// Package easyeda models the EasyEDA schematic document: drawing primitives,
// component instances and the document root, and turns them into the
// plain-data form EasyEDA loads.
//
// Entities are mutable while a conversion builds them. Materialize never
// changes an entity; it reads it, draws ids from an IDAllocator and returns a
// fresh snapshot, so the same entity can be materialized any number of times.
package easyeda

import "github.com/OpenTraceLab/lib2sch/pkg/geom"

// Kind names the document section a primitive is stored in.
type Kind string

const (
	KindPin        Kind = "pin"
	KindRect       Kind = "rect"
	KindEllipse    Kind = "ellipse"
	KindArc        Kind = "arc"
	KindPolygon    Kind = "polygon"
	KindPolyline   Kind = "polyline"
	KindAnnotation Kind = "annotation"
	KindSchLib     Kind = "schlib"
)

// Shape is a drawing primitive of a component. The set of shapes is closed:
// *Pin, *Rect, *Ellipse, *Arc, *Polyline and *Annotation.
type Shape interface {
	Kind() Kind
	Bounds() geom.Rect
	Translate(dx, dy float64)
	ApplyTheme(t *Theme)

	clone() Shape
}

// Clone returns a deep copy of s.
func Clone(s Shape) Shape {
	return s.clone()
}

// Style is the stroke and fill shared by the outline primitives.
type Style struct {
	Stroke      Color
	StrokeWidth float64
	StrokeStyle int
	Fill        Color
}

// DefaultStyle is a black hairline with no fill.
func DefaultStyle() Style {
	return Style{Stroke: Black(), Fill: NoColor()}
}

func (s *Style) applyTheme(t *Theme) {
	s.Stroke.ApplyTheme(t.DefaultStroke(), t.DefaultFill())
	s.Fill.ApplyTheme(t.DefaultStroke(), t.DefaultFill())
}

// Point is the serialized form of a polygon vertex.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Items holds materialized primitives keyed by id, one map per kind, and the
// order in which they were added.
type Items struct {
	ItemOrder  []string                   `json:"itemOrder"`
	Pin        map[string]*PinData        `json:"pin"`
	Rect       map[string]*RectData       `json:"rect"`
	Ellipse    map[string]*EllipseData    `json:"ellipse"`
	Arc        map[string]*ArcData        `json:"arc"`
	Polygon    map[string]*PolyData       `json:"polygon"`
	Polyline   map[string]*PolyData       `json:"polyline"`
	Annotation map[string]*AnnotationData `json:"annotation"`
	SchLib     map[string]*ComponentData  `json:"schlib,omitempty"`
}

func newItems() Items {
	return Items{
		ItemOrder:  []string{},
		Pin:        make(map[string]*PinData),
		Rect:       make(map[string]*RectData),
		Ellipse:    make(map[string]*EllipseData),
		Arc:        make(map[string]*ArcData),
		Polygon:    make(map[string]*PolyData),
		Polyline:   make(map[string]*PolyData),
		Annotation: make(map[string]*AnnotationData),
	}
}

// Len returns the number of items.
func (it *Items) Len() int {
	return len(it.ItemOrder)
}

// Count returns the number of items of one kind.
func (it *Items) Count(kind Kind) int {
	switch kind {
	case KindPin:
		return len(it.Pin)
	case KindRect:
		return len(it.Rect)
	case KindEllipse:
		return len(it.Ellipse)
	case KindArc:
		return len(it.Arc)
	case KindPolygon:
		return len(it.Polygon)
	case KindPolyline:
		return len(it.Polyline)
	case KindAnnotation:
		return len(it.Annotation)
	case KindSchLib:
		return len(it.SchLib)
	}
	return 0
}

// addShape materializes s and files the snapshot under its kind.
func (it *Items) addShape(s Shape, ids *IDAllocator) {
	var id string
	switch v := s.(type) {
	case *Pin:
		var data *PinData
		data, id = v.Materialize(ids)
		it.Pin[id] = data
	case *Rect:
		var data *RectData
		data, id = v.Materialize(ids)
		it.Rect[id] = data
	case *Ellipse:
		var data *EllipseData
		data, id = v.Materialize(ids)
		it.Ellipse[id] = data
	case *Arc:
		var data *ArcData
		data, id = v.Materialize(ids)
		it.Arc[id] = data
	case *Polyline:
		var data *PolyData
		data, id = v.Materialize(ids)
		if v.Kind() == KindPolygon {
			it.Polygon[id] = data
		} else {
			it.Polyline[id] = data
		}
	case *Annotation:
		var data *AnnotationData
		data, id = v.Materialize(ids)
		it.Annotation[id] = data
	default:
		panic("easyeda: unknown shape type")
	}
	it.ItemOrder = append(it.ItemOrder, id)
}

func (it *Items) addComponent(c *Component, ids *IDAllocator) {
	if it.SchLib == nil {
		it.SchLib = make(map[string]*ComponentData)
	}
	data, id := c.Materialize(ids)
	it.SchLib[id] = data
	it.ItemOrder = append(it.ItemOrder, id)
}

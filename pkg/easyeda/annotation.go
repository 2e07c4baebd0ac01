package easyeda

import "github.com/OpenTraceLab/lib2sch/pkg/geom"

// AnnotationRole distinguishes the annotations a component rewrites when it
// is instantiated.
type AnnotationRole int

const (
	RoleComment AnnotationRole = iota
	RoleRefDes
	RoleName
)

// Text anchors.
const (
	AnchorStart  = "start"
	AnchorMiddle = "middle"
	AnchorEnd    = "end"
)

// Annotation is a text item.
type Annotation struct {
	Role       AnnotationRole
	Text       string
	Position   geom.Point
	Rotation   float64
	FontFamily string
	FontSize   string
	Italic     bool
	Bold       bool
	Anchor     string
	Baseline   string
	Visible    bool
	Fill       Color
}

// AnnotationData is the serialized annotation.
type AnnotationData struct {
	DominantBaseline string  `json:"dominantBaseline"`
	FillColor        string  `json:"fillColor"`
	FontFamily       string  `json:"fontFamily"`
	FontSize         string  `json:"fontSize"`
	FontStyle        string  `json:"fontStyle"`
	FontWeight       string  `json:"fontWeight"`
	GID              string  `json:"gId"`
	Mark             string  `json:"mark"`
	Rotation         float64 `json:"rotation"`
	String           string  `json:"string"`
	TextAnchor       string  `json:"textAnchor"`
	Type             string  `json:"type"`
	Visible          int     `json:"visible"`
	X                string  `json:"x"`
	Y                string  `json:"y"`
}

// NewAnnotation returns a visible 9pt comment anchored at its start.
func NewAnnotation() *Annotation {
	return &Annotation{
		FontSize: "9pt",
		Anchor:   AnchorStart,
		Baseline: "none",
		Visible:  true,
		Fill:     Black(),
	}
}

func (a *Annotation) Kind() Kind { return KindAnnotation }

// Bounds is the anchor point only; text extents are not measured.
func (a *Annotation) Bounds() geom.Rect {
	return geom.NewRect(a.Position.X, a.Position.Y, 0, 0)
}

func (a *Annotation) Translate(dx, dy float64) {
	a.Position = a.Position.Translate(dx, dy)
}

func (a *Annotation) ApplyTheme(t *Theme) {
	a.Fill.ApplyTheme(t.DefaultText(), t.DefaultText())
}

func (a *Annotation) clone() Shape {
	c := *a
	return &c
}

func (a *Annotation) mark() string {
	switch a.Role {
	case RoleRefDes:
		return "P"
	case RoleName:
		return "N"
	default:
		return "L"
	}
}

// Materialize returns the serialized annotation and its new id.
func (a *Annotation) Materialize(ids *IDAllocator) (*AnnotationData, string) {
	id := ids.Next()
	data := &AnnotationData{
		DominantBaseline: a.Baseline,
		FillColor:        a.Fill.String(),
		FontFamily:       a.FontFamily,
		FontSize:         a.FontSize,
		GID:              id,
		Mark:             a.mark(),
		Rotation:         a.Rotation,
		String:           a.Text,
		TextAnchor:       a.Anchor,
		Type:             "comment",
		Visible:          flag(a.Visible),
		X:                num(a.Position.X),
		Y:                num(a.Position.Y),
	}
	if a.Italic {
		data.FontStyle = "italic"
	}
	if a.Bold {
		data.FontWeight = "bold"
	}
	return data, id
}

package easyeda

import (
	"strings"

	"github.com/google/uuid"

	"github.com/OpenTraceLab/lib2sch/pkg/geom"
)

// componentNamespace seeds the name-based uuids of component instances, so
// converting the same library twice yields the same uuids.
var componentNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/OpenTraceLab/lib2sch/component"))

// Component is a placed library symbol ("schlib" in EasyEDA terms): a group
// of shapes with a head carrying its identity and origin.
type Component struct {
	Name     string     // Component or alias name
	Library  string     // Library the definition came from
	Prefix   string     // Reference designator prefix, e.g. "U"
	RefDes   string     // Assigned designator, e.g. "U3"
	Package  string     // Preferred footprint
	Position geom.Point // Origin in document coordinates

	shapes []Shape
}

// ComponentData is the serialized component.
type ComponentData struct {
	Head ComponentHead `json:"head"`
	Items
}

// ComponentHead identifies a component in the document.
type ComponentHead struct {
	CPara      string `json:"c_para"`
	GID        string `json:"gId"`
	ImportFlag int    `json:"importFlag"`
	UUID       string `json:"uuid"`
	X          string `json:"x"`
	Y          string `json:"y"`
}

func NewComponent(name string) *Component {
	return &Component{Name: name}
}

// Add appends shapes in drawing order.
func (c *Component) Add(shapes ...Shape) {
	c.shapes = append(c.shapes, shapes...)
}

// Shapes returns the component's shapes. The slice must not be modified.
func (c *Component) Shapes() []Shape {
	return c.shapes
}

// Count returns the number of shapes of the given kind.
func (c *Component) Count(kind Kind) int {
	n := 0
	for _, s := range c.shapes {
		if s.Kind() == kind {
			n++
		}
	}
	return n
}

// Annotation returns the first annotation with the given role, or nil.
func (c *Component) Annotation(role AnnotationRole) *Annotation {
	for _, s := range c.shapes {
		if a, ok := s.(*Annotation); ok && a.Role == role {
			return a
		}
	}
	return nil
}

// SetRefDes assigns the reference designator and shows it in the refdes
// annotation, if there is one.
func (c *Component) SetRefDes(ref string) {
	c.RefDes = ref
	if a := c.Annotation(RoleRefDes); a != nil {
		a.Text = ref
	}
}

// SetName renames the component and its name annotation, if there is one.
func (c *Component) SetName(name string) {
	c.Name = name
	if a := c.Annotation(RoleName); a != nil {
		a.Text = name
	}
}

// UUID is derived from the library and component names.
func (c *Component) UUID() uuid.UUID {
	return uuid.NewSHA1(componentNamespace, []byte(c.Library+"/"+c.Name))
}

func (c *Component) Bounds() geom.Rect {
	var r geom.Rect
	for _, s := range c.shapes {
		r = r.Union(s.Bounds())
	}
	return r
}

// Translate moves the origin and every shape.
func (c *Component) Translate(dx, dy float64) {
	c.Position = c.Position.Translate(dx, dy)
	for _, s := range c.shapes {
		s.Translate(dx, dy)
	}
}

func (c *Component) ApplyTheme(t *Theme) {
	for _, s := range c.shapes {
		s.ApplyTheme(t)
	}
}

// Clone returns a deep copy; shapes are cloned individually.
func (c *Component) Clone() *Component {
	out := *c
	out.shapes = make([]Shape, len(c.shapes))
	for i, s := range c.shapes {
		out.shapes[i] = Clone(s)
	}
	return &out
}

// cPara is EasyEDA's backtick separated key/value list.
func (c *Component) cPara() string {
	prefix := c.Prefix
	if prefix == "" {
		prefix = "U"
	}
	pre := prefix + "?"
	if c.RefDes != "" {
		pre = c.RefDes
	}
	parts := []string{"pre", pre, "name", c.Name}
	if c.Package != "" {
		parts = append(parts, "package", c.Package)
	}
	return strings.Join(parts, "`")
}

// Materialize serializes the shapes first and then takes the component's own
// id, so a component's id is always greater than its children's.
func (c *Component) Materialize(ids *IDAllocator) (*ComponentData, string) {
	data := &ComponentData{Items: newItems()}
	for _, s := range c.shapes {
		data.addShape(s, ids)
	}

	id := ids.Next()
	data.Head = ComponentHead{
		CPara: c.cPara(),
		GID:   id,
		UUID:  c.UUID().String(),
		X:     num(c.Position.X),
		Y:     num(c.Position.Y),
	}
	return data, id
}

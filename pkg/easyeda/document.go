package easyeda

import "github.com/OpenTraceLab/lib2sch/pkg/geom"

// BBox is the document's visible area.
type BBox struct {
	Height float64 `json:"height"`
	Width  float64 `json:"width"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// Canvas holds the fixed EasyEDA canvas settings.
type Canvas struct {
	AltSnapSize  string `json:"altSnapSize"`
	BackGround   string `json:"backGround"`
	CanvasHeight int    `json:"canvasHeight"`
	CanvasWidth  int    `json:"canvasWidth"`
	GridColor    string `json:"gridColor"`
	GridSize     string `json:"gridSize"`
	GridStyle    string `json:"gridStyle"`
	GridVisible  string `json:"gridVisible"`
	OriginX      int    `json:"originX"`
	OriginY      int    `json:"originY"`
	SnapSize     string `json:"snapSize"`
	Unit         string `json:"unit"`
	ViewHeight   int    `json:"viewHeight"`
	ViewWidth    int    `json:"viewWidth"`
}

// DocumentHead is the schematic head.
type DocumentHead struct {
	CPara              string  `json:"c_para"`
	CSpiceCmd          *string `json:"c_spiceCmd"`
	DocType            string  `json:"docType"`
	PortOfADImportHack string  `json:"portOfADImportHack"`
	SpiceConfigure     string  `json:"spiceConfigure"`
	TransformList      string  `json:"transformList"`
}

// DocumentData is the serialized schematic EasyEDA loads.
type DocumentData struct {
	BBox   BBox         `json:"BBox"`
	Canvas Canvas       `json:"canvas"`
	Head   DocumentHead `json:"head"`
	Items
}

// DefaultBBox is used when the document has no extent.
var DefaultBBox = BBox{Height: 310, Width: 156.4, X: 83.6, Y: -10}

// Document is a schematic under construction.
type Document struct {
	Canvas Canvas
	Head   DocumentHead

	bounds     geom.Rect
	components []*Component
}

func NewDocument() *Document {
	return &Document{
		Canvas: Canvas{
			AltSnapSize:  "5",
			BackGround:   "#FFFFFF",
			CanvasHeight: 1000,
			CanvasWidth:  1000,
			GridColor:    "#CCCCCC",
			GridSize:     "10",
			GridStyle:    "line",
			GridVisible:  "yes",
			SnapSize:     "10",
			Unit:         "pixel",
			ViewHeight:   1000,
			ViewWidth:    1000,
		},
		Head: DocumentHead{
			CPara:   "Prefix Start 1",
			DocType: "1",
		},
	}
}

// Add appends a component instance.
func (d *Document) Add(c *Component) {
	d.components = append(d.components, c)
}

// Components returns the instances in insertion order.
func (d *Document) Components() []*Component {
	return d.components
}

// SetBounds fixes the document extent, e.g. to a layout's bounds.
func (d *Document) SetBounds(r geom.Rect) {
	d.bounds = r
}

// Bounds returns the fixed extent, or the union of the components' bounds.
func (d *Document) Bounds() geom.Rect {
	if !d.bounds.IsEmpty() {
		return d.bounds
	}
	var r geom.Rect
	for _, c := range d.components {
		r = r.Union(c.Bounds())
	}
	return r
}

func (d *Document) bbox() BBox {
	r := d.Bounds()
	if r.IsEmpty() || (r.Width == 0 && r.Height == 0) {
		return DefaultBBox
	}
	return BBox{Height: round4(r.Height), Width: round4(r.Width), X: round4(r.X), Y: round4(r.Y)}
}

// Materialize serializes every component with ids drawn from ids. The
// document itself is left untouched.
func (d *Document) Materialize(ids *IDAllocator) *DocumentData {
	data := &DocumentData{
		BBox:   d.bbox(),
		Canvas: d.Canvas,
		Head:   d.Head,
		Items:  newItems(),
	}
	data.SchLib = make(map[string]*ComponentData)
	for _, c := range d.components {
		data.addComponent(c, ids)
	}
	return data
}

package easyeda

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/OpenTraceLab/lib2sch/pkg/geom"
)

// DefaultPinLength is the length of a new pin.
const DefaultPinLength = 10

// ErrPinRotated is returned when a pin's length is changed after rotation.
var ErrPinRotated = errors.New("pin length cannot change after rotation")

// ElectricType is the electrical role of a pin.
type ElectricType int

const (
	ElectricUndefined ElectricType = iota
	ElectricInput
	ElectricOutput
	ElectricBidirectional
)

func (e ElectricType) String() string {
	switch e {
	case ElectricInput:
		return "input"
	case ElectricOutput:
		return "output"
	case ElectricBidirectional:
		return "bidirectional"
	default:
		return "undefined"
	}
}

// Pin is a component pin. It is built unrotated, pointing from its
// connection point towards +X, and then rotated about the connection point.
// Label positions follow the body end:
//
//	dot   = end + 3
//	name  = end + 2
//	num   = connection + length/2, one unit above the line
type Pin struct {
	Name          string
	Number        string
	Electric      ElectricType
	Inverted      bool // Draw the inversion dot
	Clock         bool // Draw the clock glyph
	Hidden        bool
	NameVisible   bool
	NumberVisible bool
	NameSize      string
	NumberSize    string
	Color         string
	SpicePin      string

	conn     geom.Point
	body     geom.Point
	dot      geom.Point
	name     geom.Point
	num      geom.Point
	clock    [3]geom.Point
	length   float64
	rotation float64
	rotated  bool
}

// PinData is the serialized pin.
type PinData struct {
	Clock     PinClock    `json:"clock"`
	Configure PinConfig   `json:"configure"`
	Dot       PinDot      `json:"dot"`
	Name      PinLabel    `json:"name"`
	Num       PinLabel    `json:"num"`
	Path      PinPath     `json:"path"`
	PinDot    PinPosition `json:"pinDot"`
}

type PinClock struct {
	PathString string `json:"pathString"`
	Visible    int    `json:"visible"`
}

type PinConfig struct {
	Display  string `json:"display"`
	Electric string `json:"electric"`
	GID      string `json:"gId"`
	Rotation string `json:"rotation"`
	SpicePin string `json:"spicePin"`
	X        string `json:"x"`
	Y        string `json:"y"`
}

type PinDot struct {
	Visible int    `json:"visible"`
	X       string `json:"x"`
	Y       string `json:"y"`
}

type PinLabel struct {
	FontFamily string  `json:"fontFamily"`
	FontSize   string  `json:"fontSize"`
	Rotation   float64 `json:"rotation"`
	Text       string  `json:"text"`
	TextAnchor string  `json:"textAnchor"`
	Visible    int     `json:"visible"`
	X          string  `json:"x"`
	Y          string  `json:"y"`
}

type PinPath struct {
	PathString string `json:"pathString"`
	PinColor   string `json:"pinColor"`
}

type PinPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPin returns an unrotated pin of DefaultPinLength at the origin.
func NewPin() *Pin {
	p := &Pin{
		NameVisible: true,
		Color:       defaultThemeColor,
		SpicePin:    "1",
	}
	p.layout(DefaultPinLength)
	return p
}

// layout places the body and labels for an unrotated pin of length l.
func (p *Pin) layout(l float64) {
	c := p.conn
	p.length = l
	p.body = c.Translate(l, 0)
	p.dot = c.Translate(l+3, 0)
	p.name = c.Translate(l+2, 0)
	p.num = c.Translate(l/2, -1)
	p.clock = [3]geom.Point{
		c.Translate(l, -3),
		c.Translate(l-3, 0),
		c.Translate(l, 3),
	}
}

// Position returns the connection point.
func (p *Pin) Position() geom.Point {
	return p.conn
}

// SetPosition moves the pin so its connection point is at pos.
func (p *Pin) SetPosition(pos geom.Point) {
	p.Translate(pos.X-p.conn.X, pos.Y-p.conn.Y)
}

// Length returns the pin length.
func (p *Pin) Length() float64 {
	return p.length
}

// SetLength changes the pin length. It fails once the pin has been rotated.
func (p *Pin) SetLength(l float64) error {
	if p.rotated {
		return fmt.Errorf("set length %s: %w", num(l), ErrPinRotated)
	}
	p.layout(l)
	return nil
}

// Rotation returns the accumulated rotation in degrees, [0, 360).
func (p *Pin) Rotation() float64 {
	return p.rotation
}

// Rotate turns the pin about its connection point. Positive angles turn from
// +X towards +Y, which is clockwise on screen.
func (p *Pin) Rotate(angle float64) {
	a := geom.NormalizeDegrees(angle)
	if a == 0 {
		return
	}
	c := p.conn
	p.body = p.body.RotateDegrees(a, c)
	p.dot = p.dot.RotateDegrees(a, c)
	p.name = p.name.RotateDegrees(a, c)
	p.num = p.num.RotateDegrees(a, c)
	// TODO: rotate the clock glyph with the pin; it is drawn for the unrotated pin.
	p.rotation = geom.NormalizeDegrees(p.rotation + a)
	p.rotated = true
}

// flipped reports whether the pin points roughly towards -X, where the label
// anchors swap so text stays outside the body.
func (p *Pin) flipped() bool {
	return p.rotation >= 135 && p.rotation < 215
}

func (p *Pin) labelRotation() float64 {
	if p.flipped() {
		return geom.NormalizeDegrees(p.rotation - 180)
	}
	if p.rotation == 90 || p.rotation == 270 {
		return p.rotation
	}
	return 0
}

func (p *Pin) Kind() Kind { return KindPin }

func (p *Pin) Bounds() geom.Rect {
	return geom.RectFromPoints(p.conn, p.body)
}

func (p *Pin) Translate(dx, dy float64) {
	p.conn = p.conn.Translate(dx, dy)
	p.body = p.body.Translate(dx, dy)
	p.dot = p.dot.Translate(dx, dy)
	p.name = p.name.Translate(dx, dy)
	p.num = p.num.Translate(dx, dy)
	for i := range p.clock {
		p.clock[i] = p.clock[i].Translate(dx, dy)
	}
}

func (p *Pin) ApplyTheme(t *Theme) {
	p.Color = t.PinColor()
}

func (p *Pin) clone() Shape {
	c := *p
	return &c
}

func (p *Pin) pathString() string {
	d := p.body.Sub(p.conn)
	start := "M" + num(p.conn.X) + " " + num(p.conn.Y)
	switch {
	case d.Y == 0:
		return start + "h" + num(d.X)
	case d.X == 0:
		return start + "v" + num(d.Y)
	default:
		return start + "L" + num(p.body.X) + " " + num(p.body.Y)
	}
}

func (p *Pin) clockPath() string {
	c := p.clock
	return "M" + num(c[0].X) + " " + num(c[0].Y) +
		"L" + num(c[1].X) + " " + num(c[1].Y) +
		"L" + num(c[2].X) + " " + num(c[2].Y)
}

// Materialize returns the serialized pin and its new id.
func (p *Pin) Materialize(ids *IDAllocator) (*PinData, string) {
	id := ids.Next()

	nameAnchor, numAnchor := AnchorStart, AnchorEnd
	if p.flipped() {
		nameAnchor, numAnchor = numAnchor, nameAnchor
	}
	display := "show"
	if p.Hidden {
		display = "none"
	}
	labelRot := p.labelRotation()

	return &PinData{
		Clock: PinClock{
			PathString: p.clockPath(),
			Visible:    flag(p.Clock),
		},
		Configure: PinConfig{
			Display:  display,
			Electric: strconv.Itoa(int(p.Electric)),
			GID:      id,
			Rotation: num(p.rotation),
			SpicePin: p.SpicePin,
			X:        num(p.conn.X),
			Y:        num(p.conn.Y),
		},
		Dot: PinDot{
			Visible: flag(p.Inverted),
			X:       num(p.dot.X),
			Y:       num(p.dot.Y),
		},
		Name: PinLabel{
			FontSize:   p.NameSize,
			Rotation:   labelRot,
			Text:       p.Name,
			TextAnchor: nameAnchor,
			Visible:    flag(p.NameVisible && p.Name != ""),
			X:          num(p.name.X),
			Y:          num(p.name.Y),
		},
		Num: PinLabel{
			FontSize:   p.NumberSize,
			Rotation:   labelRot,
			Text:       p.Number,
			TextAnchor: numAnchor,
			Visible:    flag(p.NumberVisible),
			X:          num(p.num.X),
			Y:          num(p.num.Y),
		},
		Path: PinPath{
			PathString: p.pathString(),
			PinColor:   p.Color,
		},
		PinDot: PinPosition{
			X: round4(p.conn.X),
			Y: round4(p.conn.Y),
		},
	}, id
}

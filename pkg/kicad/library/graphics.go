package library

import (
	"fmt"
	"math"
	"strings"

	"github.com/OpenTraceLab/lib2sch/pkg/easyeda"
	"github.com/OpenTraceLab/lib2sch/pkg/geom"
	"github.com/OpenTraceLab/lib2sch/pkg/kicad/fields"
)

var (
	fillStyles = map[string]easyeda.Selection{
		"F": easyeda.SelectForeground,
		"f": easyeda.SelectBackground,
		"N": easyeda.SelectNone,
	}
	pinOrientations = map[string]float64{"R": 0, "L": 180, "U": 90, "D": 270}
	electricTypes   = map[string]easyeda.ElectricType{
		"I": easyeda.ElectricInput,
		"O": easyeda.ElectricOutput,
		"B": easyeda.ElectricBidirectional,
		"U": easyeda.ElectricUndefined,
	}
)

// arcTolerance is how far, in document units, a supplied arc end point may
// sit off the arc's circle before a warning is recorded.
const arcTolerance = 1.0

// graphic holds the fields every drawing record carries.
type graphic struct {
	unit    int
	convert int
	width   float64
	fill    easyeda.Selection
}

func (g *graphic) style() easyeda.Style {
	s := easyeda.DefaultStyle()
	// A zero thickness means the default line width.
	s.StrokeWidth = g.width
	if s.StrokeWidth == 0 {
		s.StrokeWidth = 1
	}
	s.Fill.Selected = g.fill
	return s
}

// check rejects graphics EasyEDA cannot represent.
func (g *graphic) check() error {
	if g.unit != 0 && g.unit != 1 {
		return fmt.Errorf("cannot convert shape with unit %d: %w", g.unit, ErrMultiUnit)
	}
	if g.convert != 0 && g.convert != 1 {
		return fmt.Errorf("cannot convert shape with convert %d: %w", g.convert, ErrAlternateRepresentation)
	}
	return nil
}

// readGraphic decodes one record of the DRAW section.
func (p *libParser) readGraphic(i int, def *Definition) (easyeda.Shape, error) {
	line := p.lines[i]
	g := graphic{fill: easyeda.SelectNone}

	var (
		shape easyeda.Shape
		err   error
	)
	switch line[0] {
	case 'P':
		shape, err = decodePolyline(line, &g)
	case 'S':
		shape, err = decodeRect(line, &g)
	case 'C':
		shape, err = decodeCircle(line, &g)
	case 'A':
		shape, err = p.decodeArc(i, def, &g)
	case 'T':
		shape, err = p.decodeText(i, def, &g)
	case 'X':
		shape, err = p.decodePin(i, def, &g)
	default:
		return nil, &UnknownGraphicError{Line: i + 1, Record: line}
	}
	if err != nil {
		return nil, fmt.Errorf("invalid %c record: %w", line[0], err)
	}

	if err := g.check(); err != nil {
		return nil, err
	}
	return shape, nil
}

// decodePolyline decodes
//
//	P count unit convert thickness x0 y0 ... xn yn fill
func decodePolyline(line string, g *graphic) (easyeda.Shape, error) {
	parts := fields.Split(line)

	var count int
	err := fields.ReadSplitInto(parts,
		nil,
		fields.Int(&count),
		fields.Int(&g.unit),
		fields.Int(&g.convert),
		fields.Scaled(&g.width, Scale),
	)
	if err != nil {
		return nil, err
	}

	if count < 0 || count > (len(parts)-5)/2 {
		return nil, fmt.Errorf("expected %d points, record has %d fields", count, len(parts))
	}
	last := 5 + 2*count

	points := make([]geom.Point, 0, count)
	for k := 5; k < last; k += 2 {
		var pt geom.Point
		err := fields.ReadSplitInto(parts[k:k+2],
			fields.Scaled(&pt.X, Scale),
			fields.ScaledFlipped(&pt.Y, Scale),
		)
		if err != nil {
			return nil, err
		}
		points = append(points, pt)
	}

	if len(parts) > last {
		fill, err := fields.ParseOption(parts[len(parts)-1], fillStyles)
		if err != nil {
			return nil, err
		}
		g.fill = fill
	}

	poly := easyeda.NewPolyline(points)
	poly.Style = g.style()
	return poly, nil
}

// decodeRect decodes
//
//	S startx starty endx endy unit convert thickness fill
func decodeRect(line string, g *graphic) (easyeda.Shape, error) {
	var start, end geom.Point
	err := fields.ReadInto(line,
		nil,
		fields.Scaled(&start.X, Scale),
		fields.ScaledFlipped(&start.Y, Scale),
		fields.Scaled(&end.X, Scale),
		fields.ScaledFlipped(&end.Y, Scale),
		fields.Int(&g.unit),
		fields.Int(&g.convert),
		fields.Scaled(&g.width, Scale),
		fields.Option(&g.fill, fillStyles),
	)
	if err != nil {
		return nil, err
	}

	rect := easyeda.NewRectFromCorners(start, end)
	rect.Style = g.style()
	return rect, nil
}

// decodeCircle decodes
//
//	C posx posy radius unit convert thickness fill
func decodeCircle(line string, g *graphic) (easyeda.Shape, error) {
	var (
		center geom.Point
		radius float64
	)
	err := fields.ReadInto(line,
		nil,
		fields.Scaled(&center.X, Scale),
		fields.ScaledFlipped(&center.Y, Scale),
		fields.Scaled(&radius, Scale),
		fields.Int(&g.unit),
		fields.Int(&g.convert),
		fields.Scaled(&g.width, Scale),
		fields.Option(&g.fill, fillStyles),
	)
	if err != nil {
		return nil, err
	}

	circle := easyeda.NewCircle(center, radius)
	circle.Style = g.style()
	return circle, nil
}

// decodeArc decodes
//
//	A posx posy radius start end unit convert thickness fill startx starty endx endy
//
// Angles are tenths of a degree. Old files omit the end points; they are then
// computed from the angles.
func (p *libParser) decodeArc(i int, def *Definition, g *graphic) (easyeda.Shape, error) {
	arc := easyeda.NewArc()
	var start, end geom.Point

	parts := fields.Split(p.lines[i])
	err := fields.ReadSplitInto(parts,
		nil,
		fields.Scaled(&arc.Center.X, Scale),
		fields.ScaledFlipped(&arc.Center.Y, Scale),
		fields.Scaled(&arc.Radius, Scale),
		fields.Decidegrees(&arc.StartAngle),
		fields.Decidegrees(&arc.EndAngle),
		fields.Int(&g.unit),
		fields.Int(&g.convert),
		fields.Scaled(&g.width, Scale),
		fields.Option(&g.fill, fillStyles),
		fields.Scaled(&start.X, Scale),
		fields.ScaledFlipped(&start.Y, Scale),
		fields.Scaled(&end.X, Scale),
		fields.ScaledFlipped(&end.Y, Scale),
	)
	if err != nil {
		return nil, err
	}

	if len(parts) >= 14 {
		arc.Start, arc.End = start, end
		for _, pt := range []geom.Point{start, end} {
			off := math.Abs(math.Hypot(pt.X-arc.Center.X, pt.Y-arc.Center.Y) - arc.Radius)
			if off > arcTolerance {
				p.warn(i, def.Name, fmt.Sprintf("arc end point (%g, %g) is %.1f off its radius", pt.X, pt.Y, off))
			}
		}
	} else {
		arc.Start = pointOnCircle(arc.Center, arc.Radius, arc.StartAngle)
		arc.End = pointOnCircle(arc.Center, arc.Radius, arc.EndAngle)
	}

	arc.Style = g.style()
	return arc, nil
}

// pointOnCircle returns the point at angle degrees (counter-clockwise, Y up)
// in document coordinates.
func pointOnCircle(center geom.Point, r, angle float64) geom.Point {
	rad := angle * math.Pi / 180
	return geom.Pt(center.X+r*math.Cos(rad), center.Y-r*math.Sin(rad))
}

// decodeText decodes either
//
//	T orientation posx posy dimension unit convert text
//	T orientation posx posy dimension hidden unit convert text italic bold hjustify vjustify
//
// The orientation is 0 (horizontal) or 900 (vertical). Unquoted text uses
// '~' for spaces.
func (p *libParser) decodeText(i int, def *Definition, g *graphic) (easyeda.Shape, error) {
	line := p.lines[i]
	text, quoted := quotedText(line)
	parts := fields.Split(line)
	if quoted {
		parts = fields.Split(replaceQuoted(line))
	}

	a := easyeda.NewAnnotation()
	var (
		orientation int
		dim         int
		hidden      int
	)

	if len(parts) >= 13 {
		var italic string
		var bold int
		err := fields.ReadSplitInto(parts,
			nil,
			fields.Int(&orientation),
			fields.Scaled(&a.Position.X, Scale),
			fields.ScaledFlipped(&a.Position.Y, Scale),
			fields.Int(&dim),
			fields.Int(&hidden),
			fields.Int(&g.unit),
			fields.Int(&g.convert),
			fields.String(&text),
			fields.String(&italic),
			fields.Int(&bold),
			fields.Option(&a.Anchor, hJustify),
		)
		if err != nil {
			return nil, err
		}
		a.Italic = italic == "Italic"
		a.Bold = bold != 0
		a.Visible = hidden == 0
	} else {
		if len(parts) < 8 {
			return nil, fmt.Errorf("expected 8 fields, record has %d", len(parts))
		}
		err := fields.ReadSplitInto(parts,
			nil,
			fields.Int(&orientation),
			fields.Scaled(&a.Position.X, Scale),
			fields.ScaledFlipped(&a.Position.Y, Scale),
			fields.Int(&dim),
			fields.Int(&g.unit),
			fields.Int(&g.convert),
			fields.String(&text),
		)
		if err != nil {
			return nil, err
		}
	}

	if quoted {
		text, _ = quotedText(line)
	} else {
		text = strings.ReplaceAll(text, "~", " ")
	}

	switch orientation {
	case 0:
		a.Rotation = 0
	case 900:
		a.Rotation = 270
	default:
		p.warn(i, def.Name, fmt.Sprintf("unsupported text orientation %d, using horizontal", orientation))
		a.Rotation = 0
	}

	a.Text = text
	a.FontSize = fontSize(dim)
	return a, nil
}

// quotedText returns the text between the first pair of double quotes.
func quotedText(line string) (string, bool) {
	start := strings.IndexByte(line, '"')
	if start < 0 {
		return "", false
	}
	end := strings.IndexByte(line[start+1:], '"')
	if end < 0 {
		return "", false
	}
	return line[start+1 : start+1+end], true
}

// replaceQuoted swaps the quoted text for a single placeholder field so the
// record can be split on whitespace.
func replaceQuoted(line string) string {
	start := strings.IndexByte(line, '"')
	end := strings.IndexByte(line[start+1:], '"') + start + 1
	return line[:start] + "~" + line[end+1:]
}

// decodePin decodes
//
//	X name number posx posy length orientation Snum Snom unit convert Etype [shape]
//
// A name of "~" means the pin is unnamed. The optional shape holds the
// flags N (hidden), I (inverted) and C (clock).
func (p *libParser) decodePin(i int, def *Definition, g *graphic) (easyeda.Shape, error) {
	pin := easyeda.NewPin()

	var (
		pos         geom.Point
		length      float64
		orientation float64
		numDim      int
		nameDim     int
		etype       string
		shape       string
	)
	parts := fields.Split(p.lines[i])
	err := fields.ReadSplitInto(parts,
		nil,
		fields.String(&pin.Name),
		fields.String(&pin.Number),
		fields.Scaled(&pos.X, Scale),
		fields.ScaledFlipped(&pos.Y, Scale),
		fields.Scaled(&length, Scale),
		fields.Option(&orientation, pinOrientations),
		fields.Int(&numDim),
		fields.Int(&nameDim),
		fields.Int(&g.unit),
		fields.Int(&g.convert),
		fields.String(&etype),
		fields.String(&shape),
	)
	if err != nil {
		return nil, err
	}
	if len(parts) < 12 {
		return nil, fmt.Errorf("expected at least 12 fields, record has %d", len(parts))
	}

	if pin.Name == "~" {
		pin.Name = ""
	}
	pin.SpicePin = pin.Number
	pin.NameSize = fontSize(nameDim)
	pin.NumberSize = fontSize(numDim)
	pin.NameVisible = def.ShowPinNames
	pin.NumberVisible = def.ShowPinNumbers

	if e, err := fields.ParseOption(etype, electricTypes); err == nil {
		pin.Electric = e
	} else {
		pin.Electric = easyeda.ElectricUndefined
		p.warn(i, def.Name, fmt.Sprintf("pin %s: electrical type %q converted as undefined", pin.Number, etype))
	}

	if strings.HasPrefix(shape, "N") {
		pin.Hidden = true
		shape = shape[1:]
	}
	pin.Inverted = strings.Contains(shape, "I")
	pin.Clock = strings.Contains(shape, "C")

	pin.SetPosition(pos)
	if err := pin.SetLength(length); err != nil {
		return nil, err
	}
	// Library orientations are counter-clockwise with Y up.
	pin.Rotate(-orientation)

	return pin, nil
}

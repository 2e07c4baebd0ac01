package library

import (
	"fmt"
	"math"
	"strconv"

	"github.com/OpenTraceLab/lib2sch/pkg/easyeda"
	"github.com/OpenTraceLab/lib2sch/pkg/geom"
	"github.com/OpenTraceLab/lib2sch/pkg/kicad/fields"
)

var (
	textOrientations = map[string]float64{"H": 0, "V": 270}
	visibilities     = map[string]bool{"V": true, "I": false}
	hJustify         = map[string]string{"L": easyeda.AnchorStart, "C": easyeda.AnchorMiddle, "R": easyeda.AnchorEnd}
	vJustify         = map[string]bool{"C": true, "B": true, "T": true}
	italicFlags      = map[string]bool{"I": true, "N": false}
	boldFlags        = map[string]bool{"B": true, "N": false}
)

// readField decodes
//
//	F<n> "text" posx posy dimension H|V V|I L|C|R <vjustify><italic><bold> ["name"]
//
// into a Field and an annotation. F0 becomes the reference designator
// annotation and F1 the name annotation.
func (p *libParser) readField(line string, def *Definition) error {
	rec, err := fields.ParseFieldLine(line)
	if err != nil {
		return fmt.Errorf("invalid field record: %w", err)
	}

	a := easyeda.NewAnnotation()
	a.Text = rec.Value
	switch rec.Index {
	case 0:
		a.Role = easyeda.RoleRefDes
	case 1:
		a.Role = easyeda.RoleName
	}

	var (
		pos   geom.Point
		dim   int
		style string
	)
	err = fields.ReadSplitInto(rec.Params,
		fields.Scaled(&pos.X, Scale),
		fields.ScaledFlipped(&pos.Y, Scale),
		fields.Int(&dim),
		fields.Option(&a.Rotation, textOrientations),
		fields.Option(&a.Visible, visibilities),
		fields.Option(&a.Anchor, hJustify),
		fields.String(&style),
	)
	if err != nil {
		return fmt.Errorf("invalid field F%d: %w", rec.Index, err)
	}
	if err := applyTextStyle(a, style); err != nil {
		return fmt.Errorf("invalid field F%d: %w", rec.Index, err)
	}
	a.Position = pos
	a.FontSize = fontSize(dim)

	def.Fields = append(def.Fields, Field{Index: rec.Index, Name: rec.Name, Value: rec.Value})
	def.Graphics = append(def.Graphics, a)
	return nil
}

// applyTextStyle decodes the three letter style code, e.g. "CNN": vertical
// justification, italic, bold.
func applyTextStyle(a *easyeda.Annotation, style string) error {
	if style == "" {
		return nil
	}
	if _, err := fields.ParseOption(style[:1], vJustify); err != nil {
		return err
	}
	if len(style) > 1 {
		v, err := fields.ParseOption(style[1:2], italicFlags)
		if err != nil {
			return err
		}
		a.Italic = v
	}
	if len(style) > 2 {
		v, err := fields.ParseOption(style[2:3], boldFlags)
		if err != nil {
			return err
		}
		a.Bold = v
	}
	return nil
}

// fontSize maps a text size in mils to points; 50 mils, KiCad's default,
// is 9pt.
func fontSize(mils int) string {
	if mils <= 0 {
		return "9pt"
	}
	return strconv.Itoa(int(math.Round(float64(mils)*0.18))) + "pt"
}

package library

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/lib2sch/pkg/easyeda"
	"github.com/OpenTraceLab/lib2sch/pkg/geom"
)

func lib(lines ...string) string {
	return strings.Join(append([]string{"EESchema-LIBRARY Version 2.4", "#encoding utf-8"}, lines...), "\n")
}

func pinByNumber(t *testing.T, def *Definition, number string) *easyeda.Pin {
	t.Helper()
	for _, g := range def.Graphics {
		if pin, ok := g.(*easyeda.Pin); ok && pin.Number == number {
			return pin
		}
	}
	t.Fatalf("pin %s not found in %s", number, def.Name)
	return nil
}

func TestReadOpamp(t *testing.T) {
	l, err := ReadFile("testdata/opamp.lib")
	require.NoError(t, err)

	assert.Equal(t, "opamp", l.Name)
	require.Equal(t, 1, l.Len())
	assert.Empty(t, l.Errors)

	def, ok := l.Definition("OPA340")
	require.True(t, ok)

	assert.Equal(t, "U", def.Prefix)
	assert.Equal(t, 2.0, def.TextOffset)
	assert.True(t, def.ShowPinNumbers)
	assert.True(t, def.ShowPinNames)
	assert.Equal(t, 1, def.UnitCount)
	assert.True(t, def.IdenticalUnits)
	assert.False(t, def.Power)
	assert.Equal(t, 6, def.Line)
	assert.Equal(t, []string{"OPA341", "TLV2371"}, def.Aliases)
	assert.Equal(t, []string{"OPA340", "OPA341", "TLV2371"}, def.Names())
	assert.Equal(t, []string{"SOT?23*"}, def.Footprints)
	assert.Equal(t, "Package_TO_SOT_SMD:SOT-23-5", def.Footprint())

	assert.Equal(t, 5, def.Count(easyeda.KindPin))
	assert.Equal(t, 1, def.Count(easyeda.KindPolygon))
	assert.Equal(t, 4, def.Count(easyeda.KindAnnotation))
	assert.Len(t, def.Fields, 4)

	// Both power pins use the unsupported W type.
	require.Len(t, l.Warnings, 2)
	assert.Equal(t, "OPA340", l.Warnings[0].Definition)
	assert.Equal(t, 19, l.Warnings[0].Line)

	alias, ok := l.Lookup("TLV2371")
	require.True(t, ok)
	assert.Same(t, def, alias)
	_, ok = l.Lookup("LM358")
	assert.False(t, ok)
}

func TestReadOpampPins(t *testing.T) {
	l, err := ReadFile("testdata/opamp.lib")
	require.NoError(t, err)
	def, _ := l.Definition("OPA340")

	tests := []struct {
		number   string
		name     string
		pos      geom.Point
		rotation float64
		bounds   geom.Rect
		electric easyeda.ElectricType
	}{
		{number: "1", name: "+", pos: geom.Pt(-30, -10), rotation: 0, bounds: geom.NewRect(-30, -10, 10, 0), electric: easyeda.ElectricInput},
		{number: "2", name: "-", pos: geom.Pt(-30, 10), rotation: 0, bounds: geom.NewRect(-30, 10, 10, 0), electric: easyeda.ElectricInput},
		{number: "3", name: "V+", pos: geom.Pt(-10, -30), rotation: 90, bounds: geom.NewRect(-10, -30, 0, 15), electric: easyeda.ElectricUndefined},
		{number: "4", name: "V-", pos: geom.Pt(-10, 30), rotation: 270, bounds: geom.NewRect(-10, 15, 0, 15), electric: easyeda.ElectricUndefined},
		{number: "5", name: "", pos: geom.Pt(30, 0), rotation: 180, bounds: geom.NewRect(20, 0, 10, 0), electric: easyeda.ElectricOutput},
	}

	for _, tt := range tests {
		t.Run(tt.number, func(t *testing.T) {
			pin := pinByNumber(t, def, tt.number)
			assert.Equal(t, tt.name, pin.Name)
			assert.Equal(t, tt.pos, pin.Position())
			assert.Equal(t, tt.rotation, pin.Rotation())
			assert.Equal(t, tt.bounds, pin.Bounds())
			assert.Equal(t, tt.electric, pin.Electric)
			assert.True(t, pin.NumberVisible)
			assert.Equal(t, "9pt", pin.NameSize)
		})
	}
}

func TestReadOpampPolygon(t *testing.T) {
	l, err := ReadFile("testdata/opamp.lib")
	require.NoError(t, err)
	def, _ := l.Definition("OPA340")

	var poly *easyeda.Polyline
	for _, g := range def.Graphics {
		if p, ok := g.(*easyeda.Polyline); ok {
			poly = p
		}
	}
	require.NotNil(t, poly)
	assert.True(t, poly.Closed)
	assert.Equal(t, []geom.Point{geom.Pt(20, 0), geom.Pt(-20, -20), geom.Pt(-20, 20), geom.Pt(20, 0)}, poly.Points)
	assert.Equal(t, easyeda.SelectBackground, poly.Fill.Selected)
	assert.Equal(t, 1.0, poly.StrokeWidth)
}

func TestReadFields(t *testing.T) {
	l, err := ReadFile("testdata/opamp.lib")
	require.NoError(t, err)
	def, _ := l.Definition("OPA340")

	c := def.Instantiate("OPA340")
	ref := c.Annotation(easyeda.RoleRefDes)
	require.NotNil(t, ref)
	assert.Equal(t, "U", ref.Text)
	assert.Equal(t, geom.Pt(5, -20), ref.Position)
	assert.Equal(t, easyeda.AnchorStart, ref.Anchor)
	assert.True(t, ref.Visible)

	name := c.Annotation(easyeda.RoleName)
	require.NotNil(t, name)
	assert.Equal(t, "OPA340", name.Text)

	f3, ok := def.Field(3)
	require.True(t, ok)
	assert.Empty(t, f3.Value)
}

func TestReadShapes(t *testing.T) {
	l, err := ReadFile("testdata/shapes.lib")
	require.NoError(t, err)
	require.Equal(t, 2, l.Len())
	assert.Empty(t, l.Errors)

	circle, ok := l.Definition("CIRCLE")
	require.True(t, ok)
	require.Equal(t, 4, circle.Count(easyeda.KindEllipse))
	e := circle.Graphics[2].(*easyeda.Ellipse)
	assert.Equal(t, 10.0, e.RX)
	e = circle.Graphics[5].(*easyeda.Ellipse)
	assert.Equal(t, 2.5, e.RY)
	assert.Equal(t, easyeda.SelectForeground, e.Fill.Selected)

	shapes, ok := l.Definition("SHAPES")
	require.True(t, ok)
	g := shapes.Graphics

	name := g[1].(*easyeda.Annotation)
	assert.Equal(t, 270.0, name.Rotation)
	assert.False(t, name.Visible)
	assert.Equal(t, easyeda.AnchorEnd, name.Anchor)
	assert.True(t, name.Italic)
	assert.True(t, name.Bold)

	rect := g[2].(*easyeda.Rect)
	assert.Equal(t, geom.Pt(-15, -20), rect.Origin)
	assert.Equal(t, 30.0, rect.Width)
	assert.Equal(t, 40.0, rect.Height)

	arc := g[3].(*easyeda.Arc)
	assert.Equal(t, "M 25 0 A 11.2 11.2 0 0 1 45 0", arc.PathString())

	computed := g[4].(*easyeda.Arc)
	assert.Equal(t, "M 10 0 A 10 10 0 0 0 0 -10", computed.PathString())

	poly := g[5].(*easyeda.Polyline)
	assert.Equal(t, easyeda.KindPolyline, poly.Kind())
	assert.Equal(t, []geom.Point{geom.Pt(-10, 10), geom.Pt(0, 0), geom.Pt(10, 10)}, poly.Points)

	hello := g[6].(*easyeda.Annotation)
	assert.Equal(t, "Hello World", hello.Text)
	assert.Equal(t, geom.Pt(-5, -10), hello.Position)
	assert.Equal(t, "11pt", hello.FontSize)

	quoted := g[7].(*easyeda.Annotation)
	assert.Equal(t, "Quoted Text", quoted.Text)
	assert.Equal(t, 270.0, quoted.Rotation)
	assert.True(t, quoted.Italic)
	assert.True(t, quoted.Bold)
	assert.True(t, quoted.Visible)

	tilted := g[8].(*easyeda.Annotation)
	assert.Equal(t, "Tilted", tilted.Text)
	assert.Equal(t, 0.0, tilted.Rotation)

	clk := pinByNumber(t, shapes, "1")
	assert.True(t, clk.Clock)
	assert.False(t, clk.Inverted)
	assert.Equal(t, "7pt", clk.NameSize)

	rst := pinByNumber(t, shapes, "2")
	assert.Equal(t, "~RST", rst.Name)
	assert.True(t, rst.Hidden)
	assert.True(t, rst.Inverted)
	assert.False(t, rst.Clock)

	require.Len(t, l.Warnings, 1)
	assert.Contains(t, l.Warnings[0].Message, "orientation 450")
}

func TestReadRejectsHeader(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{name: "empty", source: ""},
		{name: "too short", source: "EESchema-LIBRARY Version 2.4\n#"},
		{name: "wrong version", source: "EESchema-LIBRARY Version 3.0\n#\n#"},
		{name: "not a library", source: "(kicad_symbol_lib (version 20211014))\n\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read("bad", tt.source)
			assert.ErrorIs(t, err, ErrUnsupportedLibrary)
		})
	}
}

func TestReadWarnsOnUnknownLines(t *testing.T) {
	l, err := Read("x", lib("GARBAGE here", "", "#"))
	require.NoError(t, err)
	require.Len(t, l.Warnings, 1)
	assert.Equal(t, 3, l.Warnings[0].Line)
	assert.Contains(t, l.Warnings[0].Message, "GARBAGE here")
}

func TestReadIsolatesDefinitionErrors(t *testing.T) {
	source := lib(
		"DEF MULTI U 0 40 Y Y 2 L N",
		`F0 "U" 0 150 50 H V C CNN`,
		"DRAW",
		"S -100 100 100 -100 1 1 10 f",
		"S -100 100 100 -100 2 1 10 f",
		"ENDDRAW",
		"ENDDEF",
		"DEF DEMORGAN U 0 40 Y Y 1 F N",
		"DRAW",
		"S -100 100 100 -100 0 2 10 f",
		"ENDDRAW",
		"ENDDEF",
		"DEF BADPIN U 0 40 Y Y 1 F N",
		"DRAW",
		"X A 1 0 0 100 Q 50 50 1 1 I",
		"ENDDRAW",
		"ENDDEF",
		"DEF BADHEADER U 0 40 Y Q 1 F N",
		"ENDDEF",
		"DEF GOOD R 0 40 Y Y 1 F N",
		`F0 "R" 0 150 50 H V C CNN`,
		"DRAW",
		"S -40 100 40 -100 0 1 10 N",
		"X ~ 1 0 200 100 D 50 50 1 1 P",
		"ENDDRAW",
		"ENDDEF",
	)

	l, err := Read("mixed", source)
	require.NoError(t, err)

	require.Equal(t, 1, l.Len())
	good, ok := l.Definition("GOOD")
	require.True(t, ok)
	assert.Equal(t, 1, good.Count(easyeda.KindRect))
	assert.Equal(t, 1, good.Count(easyeda.KindPin))

	require.Len(t, l.Errors, 4)

	assert.Equal(t, "MULTI", l.Errors[0].Name)
	assert.Equal(t, 7, l.Errors[0].Line)
	assert.ErrorIs(t, l.Errors[0], ErrMultiUnit)
	assert.Contains(t, l.Errors[0].Error(), "cannot convert shape with unit 2")

	assert.Equal(t, "DEMORGAN", l.Errors[1].Name)
	assert.ErrorIs(t, l.Errors[1], ErrAlternateRepresentation)

	assert.Equal(t, "BADPIN", l.Errors[2].Name)
	assert.Contains(t, l.Errors[2].Error(), "Q is unexpected option")

	assert.Equal(t, "BADHEADER", l.Errors[3].Name)
	assert.Equal(t, 20, l.Errors[3].Line)
}

func TestReadRejectsOversizedPointCount(t *testing.T) {
	tests := []struct {
		name  string
		count string
	}{
		{name: "overflowing", count: "4611686018427387904"},
		{name: "more than given", count: "3"},
		{name: "negative", count: "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Read("x", lib(
				"DEF BROKEN U 0 40 Y Y 1 F N",
				"DRAW",
				"P "+tt.count+" 0 1 10 0 0 10 10 N",
				"ENDDRAW",
				"ENDDEF",
				"DEF GOOD R 0 40 Y Y 1 F N",
				"DRAW",
				"P 2 0 1 10 0 0 10 10 N",
				"ENDDRAW",
				"ENDDEF",
			))
			require.NoError(t, err)

			require.Len(t, l.Errors, 1)
			assert.Equal(t, "BROKEN", l.Errors[0].Name)
			assert.Equal(t, 5, l.Errors[0].Line)
			assert.Contains(t, l.Errors[0].Error(), "expected "+tt.count+" points")

			good, ok := l.Definition("GOOD")
			require.True(t, ok)
			assert.Equal(t, 1, good.Count(easyeda.KindPolyline))
		})
	}
}

func TestReadUnknownGraphicIsFatal(t *testing.T) {
	_, err := Read("x", lib(
		"DEF CURVE U 0 40 Y Y 1 F N",
		"DRAW",
		"B 4 0 1 0 0 0 10 10 20 10 30 0 N",
		"ENDDRAW",
		"ENDDEF",
	))
	require.Error(t, err)

	var unknown *UnknownGraphicError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, 5, unknown.Line)
}

func TestReadDuplicateIsFatal(t *testing.T) {
	_, err := Read("x", lib(
		"DEF R R 0 40 Y Y 1 F N",
		"ENDDEF",
		"DEF R R 0 40 Y Y 1 F N",
		"ENDDEF",
	))
	var dup *DuplicateDefinitionError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "R", dup.Name)
}

func TestReadMissingEnddefIsFatal(t *testing.T) {
	_, err := Read("x", lib(
		"DEF R R 0 40 Y Y 1 F N",
		"DRAW",
		"S -40 100 40 -100 0 1 10 N",
	))
	assert.ErrorIs(t, err, ErrUnexpectedEnd)
}

func TestReadSkipsUnknownSectionsBeforeDraw(t *testing.T) {
	l, err := Read("x", lib(
		"DEF ~C C 0 10 N Y 1 F N",
		`F0 "C" 0 100 50 H V L CNN`,
		`F1 "C" 0 -100 50 H V L CNN`,
		"SOMETHING NEW",
		"DRAW",
		"P 2 0 1 20 -80 -30 80 -30 N",
		"ENDDRAW",
		"ENDDEF",
	))
	require.NoError(t, err)
	def, ok := l.Definition("C")
	require.True(t, ok)
	assert.Equal(t, 1, def.Count(easyeda.KindPolyline))
	assert.False(t, def.ShowPinNumbers)
	assert.Empty(t, def.Aliases)
}

func TestInstantiateDoesNotShareGraphics(t *testing.T) {
	l, err := ReadFile("testdata/opamp.lib")
	require.NoError(t, err)
	def, _ := l.Definition("OPA340")

	a := def.Instantiate("OPA341")
	b := def.Instantiate("OPA341")
	a.SetRefDes("U1")
	a.Translate(0, 100)

	assert.Equal(t, "OPA341", a.Name)
	assert.Equal(t, "OPA341", a.Annotation(easyeda.RoleName).Text)
	assert.Equal(t, "U", b.Annotation(easyeda.RoleRefDes).Text)
	assert.Equal(t, geom.Pt(-30, -10), pinByNumber(t, def, "1").Position())
	assert.Equal(t, "Package_TO_SOT_SMD:SOT-23-5", a.Package)
	assert.Equal(t, "U", a.Prefix)
}

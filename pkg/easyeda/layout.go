package easyeda

import (
	"math"

	"github.com/OpenTraceLab/lib2sch/pkg/geom"
)

// Layout defaults.
const (
	DefaultLayoutGrid   = 10
	DefaultLayoutMargin = 40
)

// Placeable is anything the layout can measure and move.
type Placeable interface {
	Bounds() geom.Rect
	Translate(dx, dy float64)
}

// GridLayout stacks items top to bottom. Each item's bounds are snapped
// outwards to the grid, so items stay on grid even when their geometry is
// fractional.
type GridLayout struct {
	Grid   float64
	Margin float64

	cursor float64
	xMax   float64
}

func NewGridLayout() *GridLayout {
	return &GridLayout{Grid: DefaultLayoutGrid, Margin: DefaultLayoutMargin}
}

// Place moves item below the previously placed ones.
func (l *GridLayout) Place(item Placeable) {
	b := item.Bounds()
	if b.IsEmpty() {
		b = geom.NewRect(0, 0, 0, 0)
	}
	inflated := b.Inflate(l.Grid)

	item.Translate(0, l.cursor-inflated.Y)

	l.cursor += inflated.Height + l.Margin
	l.xMax = math.Max(l.xMax, inflated.Right())
}

// Bounds covers everything placed so far.
func (l *GridLayout) Bounds() geom.Rect {
	return geom.NewRect(0, 0, l.xMax, l.cursor)
}

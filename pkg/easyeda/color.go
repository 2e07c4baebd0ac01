package easyeda

// Selection picks which of a Color's two values is drawn.
type Selection int

const (
	SelectForeground Selection = iota
	SelectBackground
	SelectNone
)

// Color is a themeable colour pair. Library graphics only say whether they
// are filled with the foreground or the background colour; the actual
// values come from the theme applied to the instance.
type Color struct {
	Foreground string
	Background string
	Selected   Selection
}

// Black returns a foreground-selected colour with both values black.
func Black() Color {
	return Color{Foreground: "#000000", Background: "#000000", Selected: SelectForeground}
}

// NoColor returns a colour that renders as "none".
func NoColor() Color {
	c := Black()
	c.Selected = SelectNone
	return c
}

// IsNone reports whether the colour renders as "none".
func (c Color) IsNone() bool {
	return c.Selected == SelectNone
}

// ApplyTheme replaces both values and keeps the selection.
func (c *Color) ApplyTheme(foreground, background string) {
	c.Foreground = foreground
	c.Background = background
}

func (c Color) String() string {
	switch c.Selected {
	case SelectNone:
		return "none"
	case SelectBackground:
		return c.Background
	default:
		return c.Foreground
	}
}

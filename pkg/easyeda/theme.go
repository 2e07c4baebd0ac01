package easyeda

import (
	"fmt"
	"maps"
)

// Theme keys.
const (
	KeyPinColor      = "pinColor"
	KeyDefaultStroke = "defaultStroke"
	KeyDefaultFill   = "defaultFill"
	KeyDefaultText   = "defaultText"
)

const defaultThemeColor = "#000000"

// Theme maps colour keys to values. Keys missing from Defaults resolve to
// black, so the zero Theme (and a nil *Theme) is the plain black theme.
type Theme struct {
	Name     string
	Defaults map[string]string
}

// KiCadTheme reproduces the colours of the KiCad symbol editor.
func KiCadTheme() *Theme {
	return &Theme{
		Name: "kicad",
		Defaults: map[string]string{
			KeyPinColor:      "#840000",
			KeyDefaultStroke: "#840000",
			KeyDefaultFill:   "#FFFFC2",
			KeyDefaultText:   "#0000C2",
		},
	}
}

// ThemeByName returns one of the built-in themes.
func ThemeByName(name string) (*Theme, error) {
	switch name {
	case "", "default":
		return &Theme{Name: "default"}, nil
	case "kicad":
		return KiCadTheme(), nil
	default:
		return nil, fmt.Errorf("unknown theme %q", name)
	}
}

// Value returns the colour for key.
func (t *Theme) Value(key string) string {
	if t != nil {
		if v, ok := t.Defaults[key]; ok {
			return v
		}
	}
	return defaultThemeColor
}

func (t *Theme) PinColor() string      { return t.Value(KeyPinColor) }
func (t *Theme) DefaultStroke() string { return t.Value(KeyDefaultStroke) }
func (t *Theme) DefaultFill() string   { return t.Value(KeyDefaultFill) }
func (t *Theme) DefaultText() string   { return t.Value(KeyDefaultText) }

// With returns a copy of t with overrides applied on top of its defaults.
func (t *Theme) With(overrides map[string]string) *Theme {
	out := &Theme{Defaults: make(map[string]string)}
	if t != nil {
		out.Name = t.Name
		maps.Copy(out.Defaults, t.Defaults)
	}
	maps.Copy(out.Defaults, overrides)
	return out
}

// Package config holds the lib2sch command settings, read from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/OpenTraceLab/lib2sch/pkg/convert"
	"github.com/OpenTraceLab/lib2sch/pkg/easyeda"
)

// Config controls a conversion run.
type Config struct {
	Output OutputConfig `yaml:"output"`
	Layout LayoutConfig `yaml:"layout"`
	Theme  ThemeConfig  `yaml:"theme"`
	Filter FilterConfig `yaml:"filter"`
}

// OutputConfig selects the document encoding.
type OutputConfig struct {
	Format string `yaml:"format"` // json or msgpack
	Indent bool   `yaml:"indent"` // Indent JSON output
}

// LayoutConfig controls automatic placement.
type LayoutConfig struct {
	Enabled bool    `yaml:"enabled"`
	Grid    float64 `yaml:"grid"`
	Margin  float64 `yaml:"margin"`
}

// ThemeConfig names a built-in theme and optional colour overrides, e.g.
// pinColor: "#FF0000".
type ThemeConfig struct {
	Name      string            `yaml:"name"`
	Overrides map[string]string `yaml:"overrides"`
}

// FilterConfig limits which components are converted. See
// convert.GlobFilter for the pattern rules.
type FilterConfig struct {
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format: string(easyeda.FormatJSON),
			Indent: true,
		},
		Layout: LayoutConfig{
			Enabled: false,
			Grid:    easyeda.DefaultLayoutGrid,
			Margin:  easyeda.DefaultLayoutMargin,
		},
		Theme: ThemeConfig{
			Name: "default",
		},
	}
}

// Validate checks the configuration and fills in zero values.
func (c *Config) Validate() error {
	if c.Output.Format == "" {
		c.Output.Format = string(easyeda.FormatJSON)
	}
	if _, err := easyeda.ParseFormat(c.Output.Format); err != nil {
		return err
	}

	if c.Layout.Grid <= 0 {
		c.Layout.Grid = easyeda.DefaultLayoutGrid
	}
	if c.Layout.Margin < 0 {
		return errors.New("layout margin must not be negative")
	}

	if _, err := easyeda.ThemeByName(c.Theme.Name); err != nil {
		return err
	}

	if _, err := convert.GlobFilter(c.Filter.Include, c.Filter.Exclude); err != nil {
		return err
	}

	return nil
}

// Load reads and validates a YAML file. Missing settings keep their
// defaults.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadFromReader(file)
}

// LoadFromReader reads and validates YAML from r.
func LoadFromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Format returns the output encoding.
func (c *Config) Format() easyeda.Format {
	f, err := easyeda.ParseFormat(c.Output.Format)
	if err != nil {
		return easyeda.FormatJSON
	}
	return f
}

// FilterFunc returns the component filter, or nil when every component is
// converted.
func (c *Config) FilterFunc() (convert.Filter, error) {
	if len(c.Filter.Include) == 0 && len(c.Filter.Exclude) == 0 {
		return nil, nil
	}
	return convert.GlobFilter(c.Filter.Include, c.Filter.Exclude)
}

// ResolveTheme returns the named theme with the overrides applied.
func (c *Config) ResolveTheme() (*easyeda.Theme, error) {
	theme, err := easyeda.ThemeByName(c.Theme.Name)
	if err != nil {
		return nil, err
	}
	if len(c.Theme.Overrides) > 0 {
		theme = theme.With(c.Theme.Overrides)
	}
	return theme, nil
}

// NewLayout returns a grid layout when layout is enabled, nil otherwise.
func (c *Config) NewLayout() *easyeda.GridLayout {
	if !c.Layout.Enabled {
		return nil
	}
	l := easyeda.NewGridLayout()
	l.Grid = c.Layout.Grid
	l.Margin = c.Layout.Margin
	return l
}

// Options converts the configuration into conversion options.
func (c *Config) Options() ([]convert.Option, error) {
	var opts []convert.Option

	filter, err := c.FilterFunc()
	if err != nil {
		return nil, err
	}
	if filter != nil {
		opts = append(opts, convert.WithFilter(filter))
	}

	theme, err := c.ResolveTheme()
	if err != nil {
		return nil, err
	}
	opts = append(opts, convert.WithTheme(theme))

	if l := c.NewLayout(); l != nil {
		opts = append(opts, convert.WithLayout(l))
	}
	return opts, nil
}

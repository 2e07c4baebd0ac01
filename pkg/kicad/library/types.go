// Package library reads KiCad legacy symbol libraries
// ("EESchema-LIBRARY Version 2.x" .lib files) into definitions whose
// graphics are already EasyEDA primitives.
package library

import (
	"fmt"

	"github.com/OpenTraceLab/lib2sch/pkg/easyeda"
)

// Scale converts library units (mils) to document units.
const Scale = 10

// Library is a read .lib file. Definitions keep file order.
type Library struct {
	Name     string
	Errors   []*DefinitionError // Definitions that were skipped
	Warnings []Warning

	defs  map[string]*Definition
	order []string
}

// Definition is one DEF ... ENDDEF block.
type Definition struct {
	Name           string
	Prefix         string // Reference designator prefix, e.g. "U"
	TextOffset     float64
	ShowPinNumbers bool
	ShowPinNames   bool
	UnitCount      int
	IdenticalUnits bool // F (units freely swappable) rather than L (locked)
	Power          bool
	Aliases        []string
	Footprints     []string // $FPLIST filters
	Fields         []Field
	Graphics       []easyeda.Shape
	Line           int // Line of the DEF record, 1-based
}

// Field is a decoded F record.
type Field struct {
	Index int
	Name  string
	Value string
}

// Warning is an advisory produced while reading; it never stops the read.
type Warning struct {
	Line       int
	Definition string
	Message    string
}

func (w Warning) String() string {
	if w.Definition != "" {
		return fmt.Sprintf("line %d (%s): %s", w.Line, w.Definition, w.Message)
	}
	return fmt.Sprintf("line %d: %s", w.Line, w.Message)
}

// NewLibrary returns an empty library.
func NewLibrary(name string) *Library {
	return &Library{Name: name, defs: make(map[string]*Definition)}
}

// Add appends a definition. Names are unique within a library.
func (l *Library) Add(def *Definition) error {
	if _, ok := l.defs[def.Name]; ok {
		return &DuplicateDefinitionError{Name: def.Name, Line: def.Line}
	}
	l.defs[def.Name] = def
	l.order = append(l.order, def.Name)
	return nil
}

// Definition returns the definition with the given name.
func (l *Library) Definition(name string) (*Definition, bool) {
	def, ok := l.defs[name]
	return def, ok
}

// Lookup finds the definition that owns name, either as its own name or as
// an alias.
func (l *Library) Lookup(name string) (*Definition, bool) {
	if def, ok := l.defs[name]; ok {
		return def, true
	}
	for _, def := range l.Definitions() {
		for _, alias := range def.Aliases {
			if alias == name {
				return def, true
			}
		}
	}
	return nil, false
}

// Definitions returns the definitions in file order.
func (l *Library) Definitions() []*Definition {
	out := make([]*Definition, 0, len(l.order))
	for _, name := range l.order {
		out = append(out, l.defs[name])
	}
	return out
}

// Len returns the number of definitions.
func (l *Library) Len() int {
	return len(l.order)
}

// Names returns the definition's own name followed by its aliases.
func (d *Definition) Names() []string {
	return append([]string{d.Name}, d.Aliases...)
}

// Field returns the F record with the given index.
func (d *Definition) Field(index int) (Field, bool) {
	for _, f := range d.Fields {
		if f.Index == index {
			return f, true
		}
	}
	return Field{}, false
}

// Footprint returns the footprint field, or the first $FPLIST entry.
func (d *Definition) Footprint() string {
	if f, ok := d.Field(2); ok && f.Value != "" {
		return f.Value
	}
	if len(d.Footprints) > 0 {
		return d.Footprints[0]
	}
	return ""
}

// Count returns the number of graphics of the given kind.
func (d *Definition) Count(kind easyeda.Kind) int {
	n := 0
	for _, g := range d.Graphics {
		if g.Kind() == kind {
			n++
		}
	}
	return n
}

// Instantiate returns a fresh component for name (the definition's own name
// or one of its aliases). The definition is not modified.
func (d *Definition) Instantiate(name string) *easyeda.Component {
	c := easyeda.NewComponent(d.Name)
	c.Prefix = d.Prefix
	c.Package = d.Footprint()
	for _, g := range d.Graphics {
		c.Add(easyeda.Clone(g))
	}
	c.SetName(name)
	return c
}

// Package convert turns read KiCad libraries into EasyEDA schematic
// documents: every selected definition, and each of its aliases, becomes a
// component instance with its own reference designator.
package convert

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/OpenTraceLab/lib2sch/pkg/easyeda"
	"github.com/OpenTraceLab/lib2sch/pkg/kicad/library"
)

// LibraryError is a definition that was skipped while reading a library.
type LibraryError struct {
	Library string
	Err     *library.DefinitionError
}

func (e *LibraryError) Error() string {
	return fmt.Sprintf("%s: %v", e.Library, e.Err)
}

func (e *LibraryError) Unwrap() error {
	return e.Err
}

// Context holds the libraries of one conversion run, in the order they were
// added.
type Context struct {
	reader *library.Reader
	logger *slog.Logger

	libs   map[string]*library.Library
	order  []string
	errors []*LibraryError
}

// NewContext returns an empty context. A nil reader means library.NewReader().
func NewContext(reader *library.Reader, logger *slog.Logger) *Context {
	if reader == nil {
		reader = library.NewReader()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Context{
		reader: reader,
		logger: logger,
		libs:   make(map[string]*library.Library),
	}
}

// AddLibrary adds an already read library. Adding a second library with the
// same name replaces the first, along with its errors, but keeps its
// position.
func (c *Context) AddLibrary(lib *library.Library) {
	if _, ok := c.libs[lib.Name]; ok {
		c.errors = slices.DeleteFunc(c.errors, func(e *LibraryError) bool {
			return e.Library == lib.Name
		})
	} else {
		c.order = append(c.order, lib.Name)
	}
	c.libs[lib.Name] = lib
	c.MergeErrors(lib)
}

// MergeErrors appends the library's skipped definitions to the context's
// error list.
func (c *Context) MergeErrors(lib *library.Library) {
	for _, err := range lib.Errors {
		c.errors = append(c.errors, &LibraryError{Library: lib.Name, Err: err})
	}
}

// ReadLibrary reads source and adds it under name.
func (c *Context) ReadLibrary(name, source string) (*library.Library, error) {
	lib, err := c.reader.Read(name, source)
	if err != nil {
		return nil, fmt.Errorf("failed to read library %s: %w", name, err)
	}
	c.AddLibrary(lib)
	return lib, nil
}

// ReadLibraryFile reads a .lib file and adds it under the file's base name.
func (c *Context) ReadLibraryFile(filename string) (*library.Library, error) {
	lib, err := c.reader.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read library %s: %w", filename, err)
	}
	c.AddLibrary(lib)
	return lib, nil
}

// Library returns the library with the given name.
func (c *Context) Library(name string) (*library.Library, bool) {
	lib, ok := c.libs[name]
	return lib, ok
}

// Libraries returns the libraries in the order they were added.
func (c *Context) Libraries() []*library.Library {
	out := make([]*library.Library, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.libs[name])
	}
	return out
}

// Errors returns every definition skipped so far.
func (c *Context) Errors() []*LibraryError {
	return c.errors
}

// Warnings returns the advisory messages of every library, prefixed with the
// library name.
func (c *Context) Warnings() []string {
	var out []string
	for _, lib := range c.Libraries() {
		for _, w := range lib.Warnings {
			out = append(out, lib.Name+": "+w.String())
		}
	}
	return out
}

type options struct {
	filter Filter
	refDes *easyeda.RefDesAllocator
	layout *easyeda.GridLayout
	theme  *easyeda.Theme
}

// Option configures LibrariesToSchematic.
type Option func(*options)

// WithFilter limits the conversion to selections the filter accepts.
func WithFilter(f Filter) Option {
	return func(o *options) { o.filter = f }
}

// WithRefDes shares a reference designator allocator between runs.
func WithRefDes(a *easyeda.RefDesAllocator) Option {
	return func(o *options) { o.refDes = a }
}

// WithLayout stacks instances with the given layout instead of leaving them
// all at the origin.
func WithLayout(l *easyeda.GridLayout) Option {
	return func(o *options) { o.layout = l }
}

// WithTheme colours every instance with t.
func WithTheme(t *easyeda.Theme) Option {
	return func(o *options) { o.theme = t }
}

// LibrariesToSchematic adds one instance per (library, name) pair to doc,
// where name runs over each definition's own name and its aliases. It
// returns the number of instances added.
//
// Designators start at 1 for each prefix unless WithRefDes supplies an
// allocator, so doc should not already hold designated components.
func (c *Context) LibrariesToSchematic(doc *easyeda.Document, opts ...Option) int {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.refDes == nil {
		o.refDes = easyeda.NewRefDesAllocator()
	}

	n := 0
	for _, lib := range c.Libraries() {
		for _, def := range lib.Definitions() {
			for _, name := range def.Names() {
				if o.filter != nil && !o.filter(Selection{Library: lib.Name, Component: name}) {
					continue
				}

				inst := def.Instantiate(name)
				inst.Library = lib.Name
				if o.theme != nil {
					inst.ApplyTheme(o.theme)
				}
				inst.SetRefDes(o.refDes.Next(def.Prefix))
				if o.layout != nil {
					o.layout.Place(inst)
				}

				c.logger.Debug("adding component", "library", lib.Name, "name", name, "refdes", inst.RefDes)
				doc.Add(inst)
				n++
			}
		}
	}

	if o.layout != nil && n > 0 {
		doc.SetBounds(o.layout.Bounds())
	}
	return n
}

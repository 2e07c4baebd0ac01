package library

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/OpenTraceLab/lib2sch/pkg/kicad/fields"
)

const header = "EESchema-LIBRARY Version 2."

// Reader reads libraries. The zero value is not usable; use NewReader.
type Reader struct {
	logger *slog.Logger
}

// Option configures a Reader.
type Option func(*Reader)

// WithLogger sets the logger for advisory messages.
func WithLogger(l *slog.Logger) Option {
	return func(r *Reader) {
		if l != nil {
			r.logger = l
		}
	}
}

func NewReader(opts ...Option) *Reader {
	r := &Reader{logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Read parses a library with the default reader.
func Read(name, source string) (*Library, error) {
	return NewReader().Read(name, source)
}

// ReadFile parses a library file with the default reader.
func ReadFile(filename string) (*Library, error) {
	return NewReader().ReadFile(filename)
}

// ReadFile parses a library file. The library is named after the file
// without its extension.
func (r *Reader) ReadFile(filename string) (*Library, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return r.Read(name, string(data))
}

// Read parses library source text.
//
// A definition that fails to decode is recorded in Library.Errors and
// skipped. The returned error is reserved for problems that make the rest
// of the file unreadable: a bad header, an unknown graphic record, a
// duplicate definition or a missing ENDDEF.
func (r *Reader) Read(name, source string) (*Library, error) {
	p := &libParser{
		lines:  splitLines(source),
		lib:    NewLibrary(name),
		logger: r.logger.With("library", name),
	}

	if len(p.lines) <= 2 || !strings.HasPrefix(p.lines[0], header) {
		return nil, ErrUnsupportedLibrary
	}

	for i := 1; i < len(p.lines); i++ {
		line := p.lines[i]

		switch {
		case strings.HasPrefix(line, "#"):
			continue
		case isRecord(line, "DEF"):
			res, err := p.readDefinition(i)
			if err != nil {
				return nil, err
			}
			if res.err != nil {
				p.logger.Warn("skipping definition", "name", res.err.Name, "line", res.err.Line, "error", res.err.Err)
				p.lib.Errors = append(p.lib.Errors, res.err)
			} else if err := p.lib.Add(res.def); err != nil {
				return nil, err
			}
			i = res.end
		case line != "":
			p.warn(i, "", "unknown file contents: "+line)
		}
	}

	return p.lib, nil
}

func splitLines(source string) []string {
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}

// isRecord reports whether line is a record with the given tag.
func isRecord(line, tag string) bool {
	return line == tag || strings.HasPrefix(line, tag+" ")
}

type libParser struct {
	lines  []string
	lib    *Library
	logger *slog.Logger
}

// definitionResult is the outcome of one DEF block: either a definition or
// the error that caused it to be skipped. end is the ENDDEF line.
type definitionResult struct {
	def *Definition
	err *DefinitionError
	end int
}

func (p *libParser) at(i int) string {
	if i < 0 || i >= len(p.lines) {
		return ""
	}
	return p.lines[i]
}

func (p *libParser) warn(i int, def, msg string) {
	p.logger.Debug(msg, "line", i+1, "definition", def)
	p.lib.Warnings = append(p.lib.Warnings, Warning{Line: i + 1, Definition: def, Message: msg})
}

// readDefinition reads the block starting at the DEF line start. Decode
// errors are isolated to the block by resynchronizing on ENDDEF.
func (p *libParser) readDefinition(start int) (definitionResult, error) {
	def, end, err := p.parseDefinition(start)
	if err == nil {
		return definitionResult{def: def, end: end}, nil
	}

	var unknown *UnknownGraphicError
	if errors.As(err, &unknown) {
		return definitionResult{}, err
	}

	name := definitionName(p.lines[start])
	next, serr := fields.IndexOfAny([]string{"ENDDEF"}, p.lines, max(end, start))
	if serr != nil {
		return definitionResult{}, fmt.Errorf("definition %s (line %d): %w: %w", name, start+1, ErrUnexpectedEnd, serr)
	}

	return definitionResult{
		err: &DefinitionError{Name: name, Line: end + 1, Err: err},
		end: next,
	}, nil
}

func definitionName(line string) string {
	parts := fields.ReadArray(line, 1)
	if len(parts) == 0 {
		return "?"
	}
	return strings.TrimPrefix(parts[0], "~")
}

var (
	identicalUnits = map[string]bool{"L": false, "F": true}
	powerFlags     = map[string]bool{"N": false, "P": true}
)

// parseDefinition decodes
//
//	DEF name reference unused text_offset draw_pinnumber draw_pinname unit_count units_locked option_flag
//	[ALIAS name...]
//	F0 ... Fn
//	[$FPLIST ... $ENDFPLIST]
//	[DRAW ... ENDDRAW]
//	ENDDEF
//
// It returns the line it stopped at: ENDDEF on success, the failing line
// otherwise.
func (p *libParser) parseDefinition(i int) (*Definition, int, error) {
	def := &Definition{Line: i + 1}

	err := fields.ReadInto(p.lines[i],
		nil,
		fields.String(&def.Name),
		fields.String(&def.Prefix),
		nil,
		fields.Scaled(&def.TextOffset, Scale),
		fields.YN(&def.ShowPinNumbers),
		fields.YN(&def.ShowPinNames),
		fields.Int(&def.UnitCount),
		fields.Option(&def.IdenticalUnits, identicalUnits),
		fields.Option(&def.Power, powerFlags),
	)
	if err != nil {
		return nil, i, fmt.Errorf("invalid DEF record: %w", err)
	}
	def.Name = strings.TrimPrefix(def.Name, "~")
	if def.Name == "" {
		return nil, i, errors.New("invalid DEF record: missing name")
	}
	i++

	if isRecord(p.at(i), "ALIAS") {
		def.Aliases = fields.ReadArray(p.at(i), 1)
		i++
	}

	for strings.HasPrefix(p.at(i), "F") {
		if err := p.readField(p.at(i), def); err != nil {
			return nil, i, err
		}
		i++
	}

	// Version 2.3 files write ALIAS after the fields.
	if def.Aliases == nil && isRecord(p.at(i), "ALIAS") {
		def.Aliases = fields.ReadArray(p.at(i), 1)
		i++
	}

	if p.at(i) == "$FPLIST" {
		for i++; p.at(i) != "$ENDFPLIST"; i++ {
			if i >= len(p.lines) {
				return nil, i, fmt.Errorf("$FPLIST: %w", ErrUnexpectedEnd)
			}
			if p.lines[i] != "" {
				def.Footprints = append(def.Footprints, p.lines[i])
			}
		}
		i++
	}

	i, err = fields.IndexOfAny([]string{"DRAW", "ENDDEF"}, p.lines, i)
	if err != nil {
		return nil, len(p.lines), err
	}

	if p.lines[i] == "DRAW" {
		for i++; !strings.HasPrefix(p.at(i), "ENDDRAW"); i++ {
			if i >= len(p.lines) {
				return nil, i, fmt.Errorf("DRAW: %w", ErrUnexpectedEnd)
			}
			if p.lines[i] == "" {
				continue
			}
			shape, err := p.readGraphic(i, def)
			if err != nil {
				return nil, i, err
			}
			def.Graphics = append(def.Graphics, shape)
		}
	}

	i, err = fields.IndexOfAny([]string{"ENDDEF"}, p.lines, i)
	if err != nil {
		return nil, len(p.lines), err
	}

	return def, i, nil
}

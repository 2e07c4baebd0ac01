package library

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedLibrary is returned for input that is not a version 2
	// EESchema library.
	ErrUnsupportedLibrary = errors.New("contents are not a KiCad library or are not a supported version")

	// ErrUnexpectedEnd is returned when a block is not terminated.
	ErrUnexpectedEnd = errors.New("unexpected end of library")

	// ErrMultiUnit rejects graphics that belong to a unit other than 0 or 1.
	ErrMultiUnit = errors.New("EasyEDA does not support multiple units")

	// ErrAlternateRepresentation rejects DeMorgan (convert 2) graphics.
	ErrAlternateRepresentation = errors.New("EasyEDA does not support DeMorgan units")
)

// DefinitionError records a definition that was skipped. Reading continues
// with the next definition.
type DefinitionError struct {
	Name string
	Line int // Line that failed, 1-based
	Err  error
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("definition %s (line %d): %v", e.Name, e.Line, e.Err)
}

func (e *DefinitionError) Unwrap() error {
	return e.Err
}

// DuplicateDefinitionError aborts the read: a library may define a name once.
type DuplicateDefinitionError struct {
	Name string
	Line int
}

func (e *DuplicateDefinitionError) Error() string {
	return fmt.Sprintf("library has more than one definition for %s (line %d)", e.Name, e.Line)
}

// UnknownGraphicError aborts the read: the DRAW section holds a record this
// reader cannot even skip reliably.
type UnknownGraphicError struct {
	Line   int
	Record string
}

func (e *UnknownGraphicError) Error() string {
	return fmt.Sprintf("unknown graphic definition at line %d: %s", e.Line, e.Record)
}

// Package fields decodes the whitespace separated records of KiCad legacy
// (EESchema) files.
//
// A record such as
//
//	S -150 200 150 -200 0 1 10 f
//
// is read positionally: index 0 is the record tag and every other index is
// handed to a Setter that converts the text and stores it.
package fields

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrSentinelNotFound is returned by IndexOfAny when no line matches.
var ErrSentinelNotFound = errors.New("sentinel line not found")

// FieldError reports a field that could not be converted.
type FieldError struct {
	Index int    // Position of the field in the record
	Value string // Raw field text
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %d (%q): %v", e.Index, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Setter converts a raw field and stores it. A nil Setter skips the field.
type Setter func(value string) error

// Split splits a trimmed record into its fields.
func Split(line string) []string {
	return strings.Fields(line)
}

// ReadInto splits line and applies setters positionally. Decoding stops at
// whichever of the record or the setter list is shorter, so trailing optional
// fields may be absent.
func ReadInto(line string, setters ...Setter) error {
	return ReadSplitInto(Split(line), setters...)
}

// ReadSplitInto is ReadInto for a record that has already been split.
func ReadSplitInto(parts []string, setters ...Setter) error {
	n := min(len(parts), len(setters))
	for i := 0; i < n; i++ {
		set := setters[i]
		if set == nil {
			continue
		}
		if err := set(parts[i]); err != nil {
			return &FieldError{Index: i, Value: parts[i], Err: err}
		}
	}
	return nil
}

// ReadArray returns the fields of line starting at offset. It always returns
// a non-nil slice, empty when offset is past the end of the record.
func ReadArray(line string, offset int) []string {
	parts := Split(line)
	if offset <= 0 {
		return parts
	}
	if offset >= len(parts) {
		return []string{}
	}
	return parts[offset:]
}

// IndexOfAny scans lines from start and returns the index of the first line
// that equals one of the sentinels.
func IndexOfAny(sentinels []string, lines []string, start int) (int, error) {
	for i := max(start, 0); i < len(lines); i++ {
		for _, s := range sentinels {
			if lines[i] == s {
				return i, nil
			}
		}
	}
	return -1, fmt.Errorf("%w: %s after line %d", ErrSentinelNotFound, strings.Join(sentinels, "|"), start+1)
}

// String stores the raw field.
func String(dst *string) Setter {
	return func(value string) error {
		*dst = value
		return nil
	}
}

// Int stores the field as a base 10 integer.
func Int(dst *int) Setter {
	return func(value string) error {
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("failed to parse int %q: %w", value, err)
		}
		*dst = v
		return nil
	}
}

// Float stores the field as a float.
func Float(dst *float64) Setter {
	return func(value string) error {
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("failed to parse float %q: %w", value, err)
		}
		*dst = v
		return nil
	}
}

// Scaled stores the numeric field divided by div.
func Scaled(dst *float64, div float64) Setter {
	return func(value string) error {
		var v float64
		if err := Float(&v)(value); err != nil {
			return err
		}
		*dst = v / div
		return nil
	}
}

// ScaledFlipped stores the numeric field divided by div with its sign
// inverted. It converts KiCad's Y-up ordinates to a Y-down frame.
func ScaledFlipped(dst *float64, div float64) Setter {
	return func(value string) error {
		var v float64
		if err := Scaled(&v, div)(value); err != nil {
			return err
		}
		*dst = -v
		return nil
	}
}

// Decidegrees stores an angle given in tenths of a degree as degrees.
func Decidegrees(dst *float64) Setter {
	return Scaled(dst, 10)
}

// Option stores the value mapped to the field in options.
func Option[T any](dst *T, options map[string]T) Setter {
	return func(value string) error {
		v, err := ParseOption(value, options)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}
}

// YN stores a Y/N flag.
func YN(dst *bool) Setter {
	return func(value string) error {
		v, err := ParseYN(value)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}
}

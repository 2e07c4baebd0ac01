package fields

import "fmt"

// UnexpectedOptionError is returned when a coded field holds a code that is
// not part of its option table.
type UnexpectedOptionError struct {
	Value string
}

func (e *UnexpectedOptionError) Error() string {
	return fmt.Sprintf("%s is unexpected option", e.Value)
}

// ParseOption looks value up in options.
func ParseOption[T any](value string, options map[string]T) (T, error) {
	if v, ok := options[value]; ok {
		return v, nil
	}
	var zero T
	return zero, &UnexpectedOptionError{Value: value}
}

var yesNo = map[string]bool{"Y": true, "N": false}

// ParseYN parses KiCad's Y/N booleans.
func ParseYN(value string) (bool, error) {
	return ParseOption(value, yesNo)
}

package convert

import (
	"fmt"
	"path"
	"strings"
)

// Selection names one component of one library.
type Selection struct {
	Library   string
	Component string
}

// Filter reports whether a selection is converted.
type Filter func(Selection) bool

// GlobFilter accepts a selection that matches any include pattern (or every
// selection when there are none) and no exclude pattern. Patterns use
// path.Match syntax. A pattern containing '/' is matched against
// "library/component", any other against the component name alone.
func GlobFilter(include, exclude []string) (Filter, error) {
	for _, p := range append(append([]string{}, include...), exclude...) {
		if _, err := path.Match(p, ""); err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
	}

	return func(s Selection) bool {
		if len(include) > 0 && !matchAny(include, s) {
			return false
		}
		return !matchAny(exclude, s)
	}, nil
}

// Names accepts exactly the given component names.
func Names(names ...string) Filter {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(s Selection) bool {
		return set[s.Component]
	}
}

func matchAny(patterns []string, s Selection) bool {
	for _, p := range patterns {
		subject := s.Component
		if strings.Contains(p, "/") {
			subject = s.Library + "/" + s.Component
		}
		if ok, _ := path.Match(p, subject); ok {
			return true
		}
	}
	return false
}

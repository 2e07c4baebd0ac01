package fields

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// fieldLexer tokenizes library field records. Quoted text may contain spaces,
// so these records cannot be handled by Split.
var fieldLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"[^"]*"`},
	{Name: "Tag", Pattern: `F\d+`},
	{Name: "Word", Pattern: `[^\s"]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// fieldRecord is the grammar of
//
//	F<n> "text" posx posy dimension orientation visibility hjustify vjustify ["name"]
type fieldRecord struct {
	Tag    string   `parser:"@Tag"`
	Value  string   `parser:"@String"`
	Params []string `parser:"@Word*"`
	Name   *string  `parser:"@String?"`
}

var fieldParser = participle.MustBuild[fieldRecord](
	participle.Lexer(fieldLexer),
	participle.Elide("Whitespace"),
)

// FieldLine is a decoded F record of a library definition.
type FieldLine struct {
	Index  int      // Field number: 0 reference, 1 value, 2 footprint, 3 datasheet, then user fields
	Value  string   // Field text without quotes
	Params []string // Position, size and style fields between the text and the name
	Name   string   // User field name, empty for the fixed fields
}

// ParseFieldLine parses a single F record.
func ParseFieldLine(line string) (*FieldLine, error) {
	rec, err := fieldParser.ParseString("", strings.TrimSpace(line))
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	index, err := strconv.Atoi(strings.TrimPrefix(rec.Tag, "F"))
	if err != nil {
		return nil, fmt.Errorf("invalid field tag %q: %w", rec.Tag, err)
	}

	field := &FieldLine{
		Index:  index,
		Value:  unquote(rec.Value),
		Params: rec.Params,
	}
	if rec.Name != nil {
		field.Name = unquote(*rec.Name)
	}

	return field, nil
}

func unquote(s string) string {
	return strings.TrimSuffix(strings.TrimPrefix(s, `"`), `"`)
}

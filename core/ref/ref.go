// Package ref parses structural references used by kaavya documents.
//
// A reference is a dotted chain of numeric components. Inside a document's
// data, the c field carries either a bare chapter number ("4") or a
// book-and-chapter pair ("2.14"). The public address of a shloka, as
// consumed by viewers, may add a trailing verse number
// ("chapter", "chapter.verse", or "book.chapter.verse").
package ref

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// MaxComponents is the deepest reference form: book.chapter.verse.
const MaxComponents = 3

// Ref is a parsed reference. Components keep their source spelling so that
// zero-padded or otherwise unusual numbers survive a round trip.
type Ref struct {
	Parts []string
}

// refGrammar is the participle grammar for dotted numeric references.
// Examples: "1", "2.14", "18.1.5"
//
//nolint:govet // participle grammar tags are not standard struct tags
type refGrammar struct {
	First string   `@Int`
	Rest  []string `( "." @Int )*`
}

// refLexer tokenizes dotted references. Components are decimal digit runs.
var refLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `\.`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var refParser = participle.MustBuild[refGrammar](
	participle.Lexer(refLexer),
	participle.Elide("Whitespace"),
)

// Parse parses a dotted reference string.
// Supported forms:
//   - "4" (chapter, or book for three-level addresses)
//   - "2.14" (book and chapter, or chapter and verse)
//   - "18.1.5" (book, chapter, and verse)
func Parse(s string) (*Ref, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty reference string")
	}

	parsed, err := refParser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("invalid reference format: %q: %w", s, err)
	}

	parts := append([]string{parsed.First}, parsed.Rest...)
	if len(parts) > MaxComponents {
		return nil, fmt.Errorf("invalid reference format: %q: more than %d components", s, MaxComponents)
	}

	return &Ref{Parts: parts}, nil
}

// String returns the dotted representation of the reference.
func (r *Ref) String() string {
	return strings.Join(r.Parts, ".")
}

// Depth returns the number of components.
func (r *Ref) Depth() int {
	return len(r.Parts)
}

// Book returns the book component of a two-part chapter reference, or ""
// for bare references.
func (r *Ref) Book() string {
	if len(r.Parts) < 2 {
		return ""
	}
	return r.Parts[0]
}

// Chapter returns the chapter component: the last part of a c-style
// reference ("4" -> "4", "2.14" -> "14").
func (r *Ref) Chapter() string {
	if len(r.Parts) == 0 {
		return ""
	}
	return r.Parts[len(r.Parts)-1]
}

// Address builds the public address of a verse under this chapter
// reference, e.g. Address of "2.14" with n="3" is "2.14.3".
func (r *Ref) Address(n string) string {
	if n == "" {
		return r.String()
	}
	return r.String() + "." + n
}

// Package kaavya provides the document model for the kaavya corpus: one JSON
// file per work (or numbered shards for large works), holding an ordered
// sequence of shloka entries. The package decodes files strictly, validates
// them against the corpus invariants, and serializes them into the canonical
// pretty-printed form that keeps version-control diffs minimal.
//
// Verse indexes (the i field) are validated per file: a sharded work
// restarts its index at 0 in every shard.
package kaavya

// Section declares one book or chapter of a work.
type Section struct {
	Number string
	Name   string // optional; some chapter lists carry bare numbers
}

// Entry is one element of a document's data sequence: either a Verse or a
// Prose passage. Exactly one of the two carries the entry's text.
type Entry interface {
	// Chapter returns the c reference, "" when absent.
	Chapter() string
	// Speaker returns the sp field, "" outside dramatic works.
	Speaker() string

	entry()
}

// Verse is a metrical entry with a verse number and a running index.
type Verse struct {
	C  string // chapter reference, may encode book.chapter
	N  string // verse number, unique within its chapter
	I  int    // zero-based running index over the file's verses
	V  string // verse text
	Sp string // speaker, dramatic works only
}

func (v Verse) Chapter() string { return v.C }
func (v Verse) Speaker() string { return v.Sp }
func (Verse) entry()            {}

// Prose is a non-metrical entry. It carries no verse number and does not
// advance the verse index.
type Prose struct {
	C  string
	T  string // prose text
	Sp string
}

func (p Prose) Chapter() string { return p.C }
func (p Prose) Speaker() string { return p.Sp }
func (Prose) entry()            {}

// Shape classifies the three document forms the corpus uses.
type Shape int

const (
	// ShapeFlat has neither books nor chapters; c is absent or constant.
	ShapeFlat Shape = iota
	// ShapeChaptered declares chapters only; addresses are chapter.verse.
	ShapeChaptered
	// ShapeBooked declares books and chapters; addresses are book.chapter.verse.
	ShapeBooked
)

func (s Shape) String() string {
	switch s {
	case ShapeFlat:
		return "flat"
	case ShapeChaptered:
		return "chaptered"
	case ShapeBooked:
		return "booked"
	default:
		return "unknown"
	}
}

// Document is one corpus file. A nil Books or Chapters slice means the key
// is absent from the file; an empty non-nil slice means the key is present
// but declares nothing. Canonical serialization preserves that distinction.
type Document struct {
	Title    string
	Books    []Section
	Chapters []Section
	Data     []Entry

	// srcPos maps each Data slot back to its entry index in the source
	// file. Decode drops entries that fail structural checks, so the two
	// numberings diverge; violation reports must cite the file's index.
	// Nil for documents built in memory, where the numberings coincide.
	srcPos []int
}

// entryPos returns the source-file entry index for a Data slot.
func (d *Document) entryPos(i int) int {
	if i < len(d.srcPos) {
		return d.srcPos[i]
	}
	return i
}

// Shape derives the document form from which section keys are present.
func (d *Document) Shape() Shape {
	switch {
	case d.Books != nil:
		return ShapeBooked
	case d.Chapters != nil:
		return ShapeChaptered
	default:
		return ShapeFlat
	}
}

// Verses returns the Verse entries of data, in order.
func (d *Document) Verses() []Verse {
	var out []Verse
	for _, e := range d.Data {
		if v, ok := e.(Verse); ok {
			out = append(out, v)
		}
	}
	return out
}

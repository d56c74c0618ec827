package kaavya

import (
	kerrors "github.com/kavyakosha/kavyalint/core/errors"
	"github.com/kavyakosha/kavyalint/core/ref"
)

// Validate checks the document invariants that hold across entries: the
// verse index sequence, reference closure against declared sections, and
// chapter+verse uniqueness. It returns every violation found, never just
// the first. Structural (per-entry) checks happen during Decode.
func (d *Document) Validate(path string) []error {
	var errs []error
	errs = append(errs, d.validateIndexes(path)...)
	errs = append(errs, d.validateReferences(path)...)
	errs = append(errs, d.validateDuplicates(path)...)
	return errs
}

// ValidateBytes runs the full per-file pipeline: strict decode followed by
// document validation. This is what the linter applies to each corpus file.
func ValidateBytes(path string, data []byte) (*Document, []error) {
	doc, errs := Decode(path, data)
	if doc == nil {
		return nil, errs
	}
	errs = append(errs, doc.Validate(path)...)
	return doc, errs
}

// validateIndexes checks that i values over Verse entries form the strict
// sequence 0, 1, 2, ... Prose entries do not advance the index. After a
// mismatch the expectation resyncs to the actual value so one bad index
// does not cascade into a report for every later verse.
func (d *Document) validateIndexes(path string) []error {
	var errs []error
	next := 0
	for idx, e := range d.Data {
		v, ok := e.(Verse)
		if !ok {
			continue
		}
		if v.I != next {
			errs = append(errs, kerrors.NewIndex(path, d.entryPos(idx), next, v.I))
			next = v.I + 1
			continue
		}
		next++
	}
	return errs
}

// validateReferences checks that every c used in data resolves to a declared
// chapter (and, for booked works, book). Works without a chapters key are
// exempt: their c is absent or a constant with no declaration to check.
func (d *Document) validateReferences(path string) []error {
	if d.Chapters == nil {
		return nil
	}

	chapters := sectionNumbers(d.Chapters)
	books := sectionNumbers(d.Books)

	var errs []error
	for idx, e := range d.Data {
		c := e.Chapter()
		if c == "" {
			continue
		}
		if !resolves(c, books, chapters, d.Books != nil) {
			errs = append(errs, kerrors.NewReference(path, d.entryPos(idx), c))
		}
	}
	return errs
}

// resolves reports whether a c value matches the declared sections. A
// literal match against a chapter number always wins (chapters may declare
// dotted numbers themselves); otherwise a two-part reference in a booked
// work resolves book and chapter independently.
func resolves(c string, books, chapters map[string]bool, booked bool) bool {
	if chapters[c] {
		return true
	}
	r, err := ref.Parse(c)
	if err != nil {
		return false
	}
	if booked && r.Depth() == 2 {
		return books[r.Book()] && chapters[r.Chapter()]
	}
	return false
}

// validateDuplicates checks that no two verses share a (c, n) pair and that
// section numbers are declared once. Prose entries carry no n and are
// skipped, as the original corpus linter did.
func (d *Document) validateDuplicates(path string) []error {
	var errs []error

	seen := make(map[string]bool)
	for idx, e := range d.Data {
		v, ok := e.(Verse)
		if !ok {
			continue
		}
		id := v.N
		if v.C != "" {
			id = v.C + "." + v.N
		}
		if seen[id] {
			errs = append(errs, kerrors.NewDuplicate(path, d.entryPos(idx), "verse", id))
			continue
		}
		seen[id] = true
	}

	for _, group := range []struct {
		key      string
		sections []Section
	}{
		{"book", d.Books},
		{"chapter", d.Chapters},
	} {
		nums := make(map[string]bool)
		for _, sec := range group.sections {
			if nums[sec.Number] {
				errs = append(errs, kerrors.NewDuplicate(path, -1, group.key, sec.Number))
				continue
			}
			nums[sec.Number] = true
		}
	}

	return errs
}

func sectionNumbers(sections []Section) map[string]bool {
	nums := make(map[string]bool, len(sections))
	for _, sec := range sections {
		nums[sec.Number] = true
	}
	return nums
}

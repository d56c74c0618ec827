// Package errors provides the standardized error types reported by the
// kavyalint validator. Every violation found in a corpus file is one of the
// typed errors below, each carrying enough context (file, entry index, field)
// for an editor to locate the offending line.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for classifying violations with errors.Is.
var (
	// ErrParse indicates malformed JSON input
	ErrParse = errors.New("parse error")
	// ErrSchema indicates unexpected or missing keys
	ErrSchema = errors.New("schema error")
	// ErrVariant indicates an entry that is neither a verse nor prose
	ErrVariant = errors.New("variant error")
	// ErrIndex indicates a broken verse index sequence
	ErrIndex = errors.New("index error")
	// ErrReference indicates a dangling chapter or book reference
	ErrReference = errors.New("reference error")
	// ErrDuplicate indicates a repeated chapter+verse pair
	ErrDuplicate = errors.New("duplicate error")
)

// ParseError represents malformed JSON that could not be decoded at all.
type ParseError struct {
	Path   string // file path
	Offset int64  // byte offset in the input, -1 when unknown
	Err    error  // underlying decoder error
}

func (e *ParseError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s: invalid JSON at offset %d: %v", e.Path, e.Offset, e.Err)
	}
	return fmt.Sprintf("%s: invalid JSON: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// SchemaError represents an unexpected, missing, or misplaced key.
type SchemaError struct {
	Path    string // file path
	Entry   int    // entry index within data, -1 for document-level keys
	Key     string // offending key
	Message string
}

func (e *SchemaError) Error() string {
	if e.Entry >= 0 {
		return fmt.Sprintf("%s: data[%d]: key %q: %s", e.Path, e.Entry, e.Key, e.Message)
	}
	return fmt.Sprintf("%s: key %q: %s", e.Path, e.Key, e.Message)
}

func (e *SchemaError) Unwrap() error {
	return ErrSchema
}

// VariantError represents an entry carrying both or neither of the verse
// text and prose text fields.
type VariantError struct {
	Path    string
	Entry   int
	Message string
}

func (e *VariantError) Error() string {
	return fmt.Sprintf("%s: data[%d]: %s", e.Path, e.Entry, e.Message)
}

func (e *VariantError) Unwrap() error {
	return ErrVariant
}

// IndexError represents a verse index that breaks the strictly increasing
// zero-based sequence.
type IndexError struct {
	Path     string
	Entry    int
	Expected int
	Actual   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: data[%d]: verse index expected %d, got %d", e.Path, e.Entry, e.Expected, e.Actual)
}

func (e *IndexError) Unwrap() error {
	return ErrIndex
}

// ReferenceError represents a chapter or book reference that does not
// resolve against the document's declared sections.
type ReferenceError struct {
	Path  string
	Entry int
	Ref   string // the unresolved c value
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s: data[%d]: reference %q does not match any declared chapter", e.Path, e.Entry, e.Ref)
}

func (e *ReferenceError) Unwrap() error {
	return ErrReference
}

// DuplicateError represents two verses sharing a chapter+verse-number pair,
// a repeated section number, or a duplicated key within one JSON object.
type DuplicateError struct {
	Path    string
	Entry   int    // entry index of the second occurrence, -1 for document-level duplicates
	ID      string // duplicated identifier, e.g. "2.14" or a JSON key
	Message string // what kind of thing is duplicated, e.g. "verse", "key"
}

func (e *DuplicateError) Error() string {
	if e.Entry >= 0 {
		return fmt.Sprintf("%s: data[%d]: duplicate %s %q", e.Path, e.Entry, e.Message, e.ID)
	}
	return fmt.Sprintf("%s: duplicate %s %q", e.Path, e.Message, e.ID)
}

func (e *DuplicateError) Unwrap() error {
	return ErrDuplicate
}

// Helper functions for creating common errors

// NewParse creates a ParseError.
func NewParse(path string, offset int64, err error) *ParseError {
	return &ParseError{Path: path, Offset: offset, Err: err}
}

// NewSchema creates a SchemaError.
func NewSchema(path string, entry int, key, message string) *SchemaError {
	return &SchemaError{Path: path, Entry: entry, Key: key, Message: message}
}

// NewVariant creates a VariantError.
func NewVariant(path string, entry int, message string) *VariantError {
	return &VariantError{Path: path, Entry: entry, Message: message}
}

// NewIndex creates an IndexError.
func NewIndex(path string, entry, expected, actual int) *IndexError {
	return &IndexError{Path: path, Entry: entry, Expected: expected, Actual: actual}
}

// NewReference creates a ReferenceError.
func NewReference(path string, entry int, ref string) *ReferenceError {
	return &ReferenceError{Path: path, Entry: entry, Ref: ref}
}

// NewDuplicate creates a DuplicateError.
func NewDuplicate(path string, entry int, message, id string) *DuplicateError {
	return &DuplicateError{Path: path, Entry: entry, ID: id, Message: message}
}

package kaavya

import (
	"bytes"
	"errors"
	"io"
	"sort"
	"strings"

	json "github.com/goccy/go-json"

	kerrors "github.com/kavyakosha/kavyalint/core/errors"
)

// Key sets of the schema. Anything outside these is a SchemaError.
var (
	documentKeys = map[string]bool{"title": true, "books": true, "chapters": true, "data": true}
	sectionKeys  = map[string]bool{"number": true, "name": true}
	entryKeys    = map[string]bool{"c": true, "n": true, "i": true, "v": true, "t": true, "sp": true}
)

// Decode parses one corpus file into a Document, collecting every structural
// violation it finds: malformed JSON (fatal, reported alone), duplicated JSON
// keys, unknown or missing keys, and entries that match neither the verse nor
// the prose variant. Entries that fail to decode are omitted from Data; the
// returned violations mark the file as failing regardless.
func Decode(path string, data []byte) (*Document, []error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, []error{kerrors.NewParse(path, parseOffset(err), err)}
	}

	errs := scanDuplicateKeys(path, data)

	for _, key := range sortedKeys(raw) {
		if !documentKeys[key] {
			errs = append(errs, kerrors.NewSchema(path, -1, key, "unknown top-level key"))
		}
	}

	doc := &Document{}

	if msg, ok := raw["title"]; ok {
		title, err := decodeString(msg)
		if err != nil {
			errs = append(errs, kerrors.NewSchema(path, -1, "title", "must be a string"))
		} else {
			doc.Title = title
		}
	} else {
		errs = append(errs, kerrors.NewSchema(path, -1, "title", "missing required key"))
	}

	if msg, ok := raw["books"]; ok {
		doc.Books, errs = decodeSections(path, "books", msg, errs)
	}
	if msg, ok := raw["chapters"]; ok {
		doc.Chapters, errs = decodeSections(path, "chapters", msg, errs)
	}

	if _, ok := raw["books"]; ok {
		if _, ok := raw["chapters"]; !ok {
			errs = append(errs, kerrors.NewSchema(path, -1, "books", "declared without chapters"))
		}
	}

	if msg, ok := raw["data"]; ok {
		doc.Data, doc.srcPos, errs = decodeEntries(path, msg, errs)
	} else {
		errs = append(errs, kerrors.NewSchema(path, -1, "data", "missing required key"))
	}

	return doc, errs
}

func decodeSections(path, key string, msg json.RawMessage, errs []error) ([]Section, []error) {
	var items []json.RawMessage
	if err := json.Unmarshal(msg, &items); err != nil {
		return nil, append(errs, kerrors.NewSchema(path, -1, key, "must be a list"))
	}

	// Non-nil even when empty: the key is present in the file.
	sections := make([]Section, 0, len(items))
	for _, item := range items {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil {
			errs = append(errs, kerrors.NewSchema(path, -1, key, "element must be an object"))
			continue
		}
		for _, k := range sortedKeys(fields) {
			if !sectionKeys[k] {
				errs = append(errs, kerrors.NewSchema(path, -1, k, "unknown key in "+key))
			}
		}

		var sec Section
		if numMsg, ok := fields["number"]; ok {
			num, err := decodeString(numMsg)
			if err != nil {
				errs = append(errs, kerrors.NewSchema(path, -1, "number", "must be a string in "+key))
				continue
			}
			sec.Number = num
		} else {
			errs = append(errs, kerrors.NewSchema(path, -1, "number", "missing in "+key+" element"))
			continue
		}
		if nameMsg, ok := fields["name"]; ok {
			name, err := decodeString(nameMsg)
			if err != nil {
				errs = append(errs, kerrors.NewSchema(path, -1, "name", "must be a string in "+key))
				continue
			}
			sec.Name = name
		}
		sections = append(sections, sec)
	}
	return sections, errs
}

// decodeEntries returns the decoded entries together with each entry's
// index in the source list. Invalid entries are reported and dropped, so
// positions in the result may skip source indexes.
func decodeEntries(path string, msg json.RawMessage, errs []error) ([]Entry, []int, []error) {
	var items []json.RawMessage
	if err := json.Unmarshal(msg, &items); err != nil {
		return nil, nil, append(errs, kerrors.NewSchema(path, -1, "data", "must be a list"))
	}

	entries := make([]Entry, 0, len(items))
	positions := make([]int, 0, len(items))
	for idx, item := range items {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil {
			errs = append(errs, kerrors.NewSchema(path, idx, "data", "entry must be an object"))
			continue
		}
		for _, k := range sortedKeys(fields) {
			if !entryKeys[k] {
				errs = append(errs, kerrors.NewSchema(path, idx, k, "unknown entry key"))
			}
		}

		_, hasV := fields["v"]
		_, hasT := fields["t"]
		switch {
		case hasV && hasT:
			errs = append(errs, kerrors.NewVariant(path, idx, "entry has both v and t"))
		case !hasV && !hasT:
			errs = append(errs, kerrors.NewVariant(path, idx, "entry has neither v nor t"))
		case hasV:
			verse, ferrs := decodeVerse(path, idx, fields)
			errs = append(errs, ferrs...)
			if len(ferrs) == 0 {
				entries = append(entries, verse)
				positions = append(positions, idx)
			}
		default:
			prose, ferrs := decodeProse(path, idx, fields)
			errs = append(errs, ferrs...)
			if len(ferrs) == 0 {
				entries = append(entries, prose)
				positions = append(positions, idx)
			}
		}
	}
	return entries, positions, errs
}

func decodeVerse(path string, idx int, fields map[string]json.RawMessage) (Verse, []error) {
	var verse Verse
	var errs []error

	if msg, ok := fields["c"]; ok {
		c, err := decodeString(msg)
		if err != nil {
			errs = append(errs, kerrors.NewSchema(path, idx, "c", "must be a string"))
		}
		verse.C = c
	}

	if msg, ok := fields["n"]; ok {
		n, err := decodeString(msg)
		if err != nil || n == "" {
			errs = append(errs, kerrors.NewSchema(path, idx, "n", "must be a non-empty string"))
		}
		verse.N = n
	} else {
		errs = append(errs, kerrors.NewSchema(path, idx, "n", "missing on verse entry"))
	}

	if msg, ok := fields["i"]; ok {
		i, err := decodeIndex(msg)
		if err != nil {
			errs = append(errs, kerrors.NewSchema(path, idx, "i", "must be a non-negative integer"))
		}
		verse.I = i
	} else {
		errs = append(errs, kerrors.NewSchema(path, idx, "i", "missing on verse entry"))
	}

	v, err := decodeString(fields["v"])
	if err != nil || v == "" {
		errs = append(errs, kerrors.NewSchema(path, idx, "v", "must be a non-empty string"))
	}
	verse.V = v

	if msg, ok := fields["sp"]; ok {
		sp, err := decodeString(msg)
		if err != nil {
			errs = append(errs, kerrors.NewSchema(path, idx, "sp", "must be a string"))
		}
		verse.Sp = sp
	}

	return verse, errs
}

func decodeProse(path string, idx int, fields map[string]json.RawMessage) (Prose, []error) {
	var prose Prose
	var errs []error

	// Prose never carries verse numbering.
	if _, ok := fields["n"]; ok {
		errs = append(errs, kerrors.NewSchema(path, idx, "n", "not allowed on prose entry"))
	}
	if _, ok := fields["i"]; ok {
		errs = append(errs, kerrors.NewSchema(path, idx, "i", "not allowed on prose entry"))
	}

	if msg, ok := fields["c"]; ok {
		c, err := decodeString(msg)
		if err != nil {
			errs = append(errs, kerrors.NewSchema(path, idx, "c", "must be a string"))
		}
		prose.C = c
	}

	t, err := decodeString(fields["t"])
	if err != nil || t == "" {
		errs = append(errs, kerrors.NewSchema(path, idx, "t", "must be a non-empty string"))
	}
	prose.T = t

	if msg, ok := fields["sp"]; ok {
		sp, err := decodeString(msg)
		if err != nil {
			errs = append(errs, kerrors.NewSchema(path, idx, "sp", "must be a string"))
		}
		prose.Sp = sp
	}

	return prose, errs
}

func decodeString(msg json.RawMessage) (string, error) {
	var s string
	err := json.Unmarshal(msg, &s)
	return s, err
}

// decodeIndex accepts only plain non-negative integers: no floats, no
// exponents, even when they denote whole numbers.
func decodeIndex(msg json.RawMessage) (int, error) {
	var num json.Number
	if err := json.Unmarshal(msg, &num); err != nil {
		return 0, err
	}
	if strings.ContainsAny(num.String(), ".eE") {
		return 0, errors.New("not an integer")
	}
	i, err := num.Int64()
	if err != nil {
		return 0, err
	}
	if i < 0 {
		return 0, errors.New("negative index")
	}
	return int(i), nil
}

func sortedKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func parseOffset(err error) int64 {
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		return syn.Offset
	}
	var typ *json.UnmarshalTypeError
	if errors.As(err, &typ) {
		return typ.Offset
	}
	return -1
}

type frameKind int

const (
	frameObject frameKind = iota
	frameArray
)

type dupFrame struct {
	kind         frameKind
	keys         map[string]struct{}
	expectingKey bool
}

// scanDuplicateKeys walks the token stream and reports keys repeated within
// a single JSON object. Unmarshal silently keeps the last occurrence, which
// would let an editor's typo drop data without a trace.
func scanDuplicateKeys(path string, data []byte) []error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var errs []error
	var stack []dupFrame

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed input is reported by Decode as a ParseError.
			break
		}

		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				stack = append(stack, dupFrame{kind: frameObject, keys: make(map[string]struct{}), expectingKey: true})
			case '[':
				stack = append(stack, dupFrame{kind: frameArray})
			case '}', ']':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
				if len(stack) > 0 {
					top := &stack[len(stack)-1]
					if top.kind == frameObject {
						top.expectingKey = true
					}
				}
			}
		case string:
			if len(stack) > 0 {
				top := &stack[len(stack)-1]
				if top.kind == frameObject && top.expectingKey {
					if _, seen := top.keys[v]; seen {
						errs = append(errs, kerrors.NewDuplicate(path, -1, "key", v))
					}
					top.keys[v] = struct{}{}
					top.expectingKey = false
					continue
				}
				if top.kind == frameObject {
					top.expectingKey = true
				}
			}
		default:
			if len(stack) > 0 {
				top := &stack[len(stack)-1]
				if top.kind == frameObject && !top.expectingKey {
					top.expectingKey = true
				}
			}
		}
	}
	return errs
}

package kaavya

import (
	"bytes"
	"fmt"
	"strconv"
)

// Canonical returns the one canonical serialization of the document.
//
// The layout is the corpus convention: every top-level key on its own line,
// and inside list values one compact JSON element per line, so that editing
// a single shloka touches a single line of the file. Key order is fixed
// (title, books, chapters, data; per entry c, n, i, v/t, sp; per section
// number, name), absent optional keys are omitted, and non-ASCII text is
// written raw. The text ends with the closing brace, no trailing newline.
//
// Canonical is idempotent by construction: decoding canonical bytes and
// serializing again reproduces them exactly.
func (d *Document) Canonical() []byte {
	var buf bytes.Buffer
	buf.WriteString("{\n")

	writeKey(&buf, "title")
	writeString(&buf, d.Title)

	if d.Books != nil {
		buf.WriteString(",\n")
		writeKey(&buf, "books")
		writeSections(&buf, d.Books)
	}
	if d.Chapters != nil {
		buf.WriteString(",\n")
		writeKey(&buf, "chapters")
		writeSections(&buf, d.Chapters)
	}

	buf.WriteString(",\n")
	writeKey(&buf, "data")
	buf.WriteString("[\n")
	for i, e := range d.Data {
		if i > 0 {
			buf.WriteString(",\n")
		}
		writeEntry(&buf, e)
	}
	buf.WriteString("]")

	buf.WriteString("\n}")
	return buf.Bytes()
}

func writeKey(buf *bytes.Buffer, key string) {
	writeString(buf, key)
	buf.WriteString(": ")
}

func writeSections(buf *bytes.Buffer, sections []Section) {
	buf.WriteString("[\n")
	for i, sec := range sections {
		if i > 0 {
			buf.WriteString(",\n")
		}
		buf.WriteString(`{"number": `)
		writeString(buf, sec.Number)
		if sec.Name != "" {
			buf.WriteString(`, "name": `)
			writeString(buf, sec.Name)
		}
		buf.WriteByte('}')
	}
	buf.WriteString("]")
}

func writeEntry(buf *bytes.Buffer, e Entry) {
	buf.WriteByte('{')
	first := true
	field := func(key string) {
		if !first {
			buf.WriteString(", ")
		}
		first = false
		buf.WriteByte('"')
		buf.WriteString(key)
		buf.WriteString(`": `)
	}

	switch v := e.(type) {
	case Verse:
		if v.C != "" {
			field("c")
			writeString(buf, v.C)
		}
		field("n")
		writeString(buf, v.N)
		field("i")
		buf.WriteString(strconv.Itoa(v.I))
		field("v")
		writeString(buf, v.V)
		if v.Sp != "" {
			field("sp")
			writeString(buf, v.Sp)
		}
	case Prose:
		if v.C != "" {
			field("c")
			writeString(buf, v.C)
		}
		field("t")
		writeString(buf, v.T)
		if v.Sp != "" {
			field("sp")
			writeString(buf, v.Sp)
		}
	default:
		panic(fmt.Sprintf("kaavya: unknown entry type %T", e))
	}
	buf.WriteByte('}')
}

const hexDigits = "0123456789abcdef"

// writeString emits a JSON string with minimal escaping: quote, backslash,
// and control characters only. Devanagari and every other non-ASCII script
// pass through as raw UTF-8, keeping the files human-readable and the
// diffs reviewable.
func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case b == '"':
			buf.WriteString(`\"`)
		case b == '\\':
			buf.WriteString(`\\`)
		case b == '\n':
			buf.WriteString(`\n`)
		case b == '\r':
			buf.WriteString(`\r`)
		case b == '\t':
			buf.WriteString(`\t`)
		case b == '\b':
			buf.WriteString(`\b`)
		case b == '\f':
			buf.WriteString(`\f`)
		case b < 0x20:
			buf.WriteString(`\u00`)
			buf.WriteByte(hexDigits[b>>4])
			buf.WriteByte(hexDigits[b&0xf])
		default:
			buf.WriteByte(b)
		}
	}
	buf.WriteByte('"')
}

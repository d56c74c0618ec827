package kaavya

import (
	"bytes"
	"testing"
)

func TestCanonicalLayout(t *testing.T) {
	doc := &Document{
		Title:    "रघुवंशम्",
		Chapters: []Section{{Number: "1", Name: "प्रथमः सर्गः"}, {Number: "2"}},
		Data: []Entry{
			Verse{C: "1", N: "1", I: 0, V: "वागर्थाविव सम्पृक्तौ"},
			Prose{C: "2", T: "अथ द्वितीयः सर्गः"},
		},
	}

	want := `{
"title": "रघुवंशम्",
"chapters": [
{"number": "1", "name": "प्रथमः सर्गः"},
{"number": "2"}],
"data": [
{"c": "1", "n": "1", "i": 0, "v": "वागर्थाविव सम्पृक्तौ"},
{"c": "2", "t": "अथ द्वितीयः सर्गः"}]
}`

	if got := string(doc.Canonical()); got != want {
		t.Errorf("Canonical() =\n%s\nwant:\n%s", got, want)
	}
}

func TestCanonicalKeyOrder(t *testing.T) {
	doc := &Document{
		Title:    "t",
		Books:    []Section{{Number: "1", Name: "पूर्वभागः"}},
		Chapters: []Section{{Number: "1"}},
		Data: []Entry{
			Verse{C: "1.1", N: "1", I: 0, V: "x", Sp: "सूतः"},
		},
	}

	want := `{
"title": "t",
"books": [
{"number": "1", "name": "पूर्वभागः"}],
"chapters": [
{"number": "1"}],
"data": [
{"c": "1.1", "n": "1", "i": 0, "v": "x", "sp": "सूतः"}]
}`

	if got := string(doc.Canonical()); got != want {
		t.Errorf("Canonical() =\n%s\nwant:\n%s", got, want)
	}
}

func TestCanonicalOmitsAbsentFields(t *testing.T) {
	doc := &Document{
		Title: "t",
		Data:  []Entry{Verse{N: "1", I: 0, V: "x"}},
	}

	want := `{
"title": "t",
"data": [
{"n": "1", "i": 0, "v": "x"}]
}`

	if got := string(doc.Canonical()); got != want {
		t.Errorf("Canonical() =\n%s\nwant:\n%s", got, want)
	}
}

func TestCanonicalEmptyData(t *testing.T) {
	doc := &Document{Title: "t", Data: nil}

	want := "{\n\"title\": \"t\",\n\"data\": [\n]\n}"
	if got := string(doc.Canonical()); got != want {
		t.Errorf("Canonical() = %q, want %q", got, want)
	}
}

func TestCanonicalEscaping(t *testing.T) {
	doc := &Document{
		Title: "quote \" backslash \\ newline \n tab \t bell \x07",
		Data:  nil,
	}

	want := "{\n\"title\": \"quote \\\" backslash \\\\ newline \\n tab \\t bell \\u0007\",\n\"data\": [\n]\n}"
	if got := string(doc.Canonical()); got != want {
		t.Errorf("Canonical() = %q, want %q", got, want)
	}
}

// No trailing newline: the file ends at the closing brace.
func TestCanonicalNoTrailingNewline(t *testing.T) {
	doc := &Document{Title: "t"}
	out := doc.Canonical()
	if out[len(out)-1] != '}' {
		t.Errorf("canonical text ends with %q, want '}'", out[len(out)-1])
	}
}

// Devanagari must pass through as raw UTF-8, never \u escapes.
func TestCanonicalNoUnicodeEscapes(t *testing.T) {
	doc := &Document{
		Title: "शिशुपालवधम्",
		Data:  []Entry{Verse{N: "1", I: 0, V: "श्रियः पतिः श्रीमति शासितुं जगत्"}},
	}
	out := doc.Canonical()
	if bytes.Contains(out, []byte(`\u0`)) {
		t.Error("canonical text contains \\u escapes for Devanagari")
	}
	if !bytes.Contains(out, []byte("श्रियः पतिः")) {
		t.Error("canonical text does not contain raw Devanagari")
	}
}

// Normalizing already-canonical bytes is a byte-level no-op.
func TestCanonicalIdempotent(t *testing.T) {
	doc := &Document{
		Title:    "किरातार्जुनीयम्",
		Chapters: []Section{{Number: "1"}, {Number: "2"}},
		Data: []Entry{
			Verse{C: "1", N: "1", I: 0, V: "श्रियः कुरूणामधिपस्य पालनीम्"},
			Prose{C: "1", T: "वनेचरवृत्तान्तः"},
			Verse{C: "2", N: "1", I: 1, V: "स किंसखा साधु न शास्ति योऽधिपम्"},
		},
	}

	first := doc.Canonical()
	decoded, errs := Decode("k.json", first)
	if len(errs) != 0 {
		t.Fatalf("Decode(canonical) errors = %v", errs)
	}
	second := decoded.Canonical()
	if !bytes.Equal(first, second) {
		t.Errorf("normalization not idempotent:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

// Round-trip: parsing a canonical document and re-normalizing is byte-identical,
// across all three document shapes.
func TestCanonicalRoundTrip(t *testing.T) {
	docs := []*Document{
		{
			Title: "flat",
			Data:  []Entry{Verse{N: "1", I: 0, V: "क"}},
		},
		{
			Title:    "chaptered",
			Chapters: []Section{{Number: "1", Name: "नाम"}},
			Data:     []Entry{Verse{C: "1", N: "1", I: 0, V: "ख"}},
		},
		{
			Title:    "booked",
			Books:    []Section{{Number: "1", Name: "आदिपर्व"}},
			Chapters: []Section{{Number: "1"}},
			Data: []Entry{
				Verse{C: "1.1", N: "1", I: 0, V: "ग", Sp: "वैशम्पायनः"},
				Prose{C: "1.1", T: "घ"},
			},
		},
	}

	for _, doc := range docs {
		t.Run(doc.Title, func(t *testing.T) {
			canon := doc.Canonical()
			decoded, errs := Decode(doc.Title+".json", canon)
			if len(errs) != 0 {
				t.Fatalf("Decode errors = %v", errs)
			}
			if errs := decoded.Validate(doc.Title + ".json"); len(errs) != 0 {
				t.Fatalf("Validate errors = %v", errs)
			}
			if got := decoded.Canonical(); !bytes.Equal(canon, got) {
				t.Errorf("round trip changed bytes:\nbefore:\n%s\nafter:\n%s", canon, got)
			}
		})
	}
}

package corpus

import (
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
)

var testTool = ToolInfo{Name: "kavyalint", Version: "test"}

func TestBuildManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "meghadutam", "meghadutam.json"), `{"title": "m"}`)

	m, err := BuildManifest(root, testTool)
	if err != nil {
		t.Fatalf("BuildManifest() error = %v", err)
	}
	if m.ManifestVersion != ManifestVersion {
		t.Errorf("ManifestVersion = %q, want %q", m.ManifestVersion, ManifestVersion)
	}
	rec, ok := m.Files["meghadutam/meghadutam.json"]
	if !ok {
		t.Fatalf("Files = %v, want meghadutam/meghadutam.json", m.Files)
	}
	if rec.SizeBytes != int64(len(`{"title": "m"}`)) {
		t.Errorf("SizeBytes = %d", rec.SizeBytes)
	}
	if len(rec.SHA256) != 64 || len(rec.BLAKE3) != 64 {
		t.Errorf("digest lengths = %d/%d, want 64/64", len(rec.SHA256), len(rec.BLAKE3))
	}
}

// The same bytes always hash to the same records, regardless of when or
// where the manifest is built.
func TestManifestDigestStability(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "w", "w.json"), `{"title": "w"}`)

	m1, err := BuildManifest(root, testTool)
	if err != nil {
		t.Fatalf("BuildManifest() error = %v", err)
	}
	m2, err := BuildManifest(root, testTool)
	if err != nil {
		t.Fatalf("BuildManifest() error = %v", err)
	}
	r1, r2 := m1.Files["w/w.json"], m2.Files["w/w.json"]
	if r1.SHA256 != r2.SHA256 || r1.BLAKE3 != r2.BLAKE3 {
		t.Errorf("digests differ across builds: %+v vs %+v", r1, r2)
	}
}

func TestManifestJSONRoundTrip(t *testing.T) {
	m := NewManifest(testTool)
	m.Add("a/a.json", []byte(`{"title": "a"}`))

	data, err := m.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("ToJSON() produced invalid JSON: %v", err)
	}

	parsed, err := ParseManifest(data)
	if err != nil {
		t.Fatalf("ParseManifest() error = %v", err)
	}
	if parsed.Tool.Name != "kavyalint" {
		t.Errorf("Tool.Name = %q", parsed.Tool.Name)
	}
	if parsed.Files["a/a.json"].SHA256 != m.Files["a/a.json"].SHA256 {
		t.Error("SHA256 changed across round trip")
	}
}

func TestManifestVerify(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "w", "w.json")
	writeFile(t, path, `{"title": "w"}`)

	m, err := BuildManifest(root, testTool)
	if err != nil {
		t.Fatalf("BuildManifest() error = %v", err)
	}

	changed, err := m.Verify(root)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if len(changed) != 0 {
		t.Errorf("Verify() = %v, want no changes", changed)
	}

	if err := os.WriteFile(path, []byte(`{"title": "tampered"}`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	changed, err = m.Verify(root)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if len(changed) != 1 || changed[0] != "w/w.json" {
		t.Errorf("Verify() = %v, want [w/w.json]", changed)
	}
}

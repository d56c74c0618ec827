package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kavyakosha/kavyalint/core/kaavya"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "meghadutam", "meghadutam.json"), "{}")
	writeFile(t, filepath.Join(root, "raghuvansham", "raghuvansham.json"), "{}")
	writeFile(t, filepath.Join(root, "raghuvansham", "notes.txt"), "ignore")
	writeFile(t, filepath.Join(root, "code", "tool.json"), "{}")
	writeFile(t, filepath.Join(root, ".git", "state.json"), "{}")

	files, err := Files(root)
	if err != nil {
		t.Fatalf("Files() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Files() = %v, want 2 entries", files)
	}
	if filepath.Base(files[0]) != "meghadutam.json" || filepath.Base(files[1]) != "raghuvansham.json" {
		t.Errorf("Files() = %v, want sorted corpus files", files)
	}
}

func TestLoadWorkMergesShards(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "mahabharatam")
	writeFile(t, filepath.Join(dir, "mahabharatam1.json"), `{
"title": "महाभारतम्",
"chapters": [
{"number": "1"},
{"number": "2"}],
"data": [
{"c": "1", "n": "1", "i": 0, "v": "क"}]
}`)
	writeFile(t, filepath.Join(dir, "mahabharatam2.json"), `{
"title": "महाभारतम्",
"chapters": [
{"number": "1"},
{"number": "2"}],
"data": [
{"c": "2", "n": "1", "i": 0, "v": "ख"},
{"c": "2", "n": "2", "i": 1, "v": "ग"}]
}`)

	doc, err := LoadWork(dir)
	if err != nil {
		t.Fatalf("LoadWork() error = %v", err)
	}
	if doc.Title != "महाभारतम्" {
		t.Errorf("Title = %q", doc.Title)
	}
	if len(doc.Data) != 3 {
		t.Fatalf("len(Data) = %d, want 3 (merged)", len(doc.Data))
	}
	// Shard order follows sorted filenames.
	first, ok := doc.Data[0].(kaavya.Verse)
	if !ok || first.C != "1" {
		t.Errorf("Data[0] = %+v, want verse from shard 1", doc.Data[0])
	}
	last, ok := doc.Data[2].(kaavya.Verse)
	if !ok || last.N != "2" {
		t.Errorf("Data[2] = %+v, want last verse of shard 2", doc.Data[2])
	}
}

func TestLoadWorkRejectsInvalidShard(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "broken")
	writeFile(t, filepath.Join(dir, "broken.json"), `{"title": }`)

	if _, err := LoadWork(dir); err == nil {
		t.Error("LoadWork() accepted a malformed shard")
	}
}

func TestLoadWorkEmptyDir(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadWork(dir); err == nil {
		t.Error("LoadWork() accepted a directory without documents")
	}
}

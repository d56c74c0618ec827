package corpus

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	json "github.com/goccy/go-json"
	"github.com/zeebo/blake3"
)

// ManifestVersion is the current manifest format version.
const ManifestVersion = "1.0.0"

// Manifest records the integrity state of the corpus: one record per
// document file with its size and content digests. Committing the manifest
// alongside the corpus makes silent file corruption visible in review.
type Manifest struct {
	ManifestVersion string                 `json:"manifest_version"`
	CreatedAt       string                 `json:"created_at"`
	Tool            ToolInfo               `json:"tool"`
	Files           map[string]*FileRecord `json:"files"`
}

// ToolInfo describes the tool that wrote the manifest.
type ToolInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// FileRecord describes one corpus file. Files are hashed with both SHA-256
// and BLAKE3; either digest can verify the file independently.
type FileRecord struct {
	SHA256    string `json:"sha256"`
	BLAKE3    string `json:"blake3"`
	SizeBytes int64  `json:"size_bytes"`
}

// NewManifest creates an empty manifest stamped with the given tool info.
func NewManifest(tool ToolInfo) *Manifest {
	return &Manifest{
		ManifestVersion: ManifestVersion,
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
		Tool:            tool,
		Files:           make(map[string]*FileRecord),
	}
}

// BuildManifest hashes every document file under root into a new manifest.
// Paths are recorded relative to root with forward slashes.
func BuildManifest(root string, tool ToolInfo) (*Manifest, error) {
	files, err := Files(root)
	if err != nil {
		return nil, err
	}

	m := NewManifest(tool)
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil, fmt.Errorf("failed to relativize %s: %w", path, err)
		}
		m.Add(filepath.ToSlash(rel), data)
	}
	return m, nil
}

// Add records a file's digests under the given relative path.
func (m *Manifest) Add(relPath string, data []byte) {
	sum := sha256.Sum256(data)
	b3 := blake3.Sum256(data)
	m.Files[relPath] = &FileRecord{
		SHA256:    hex.EncodeToString(sum[:]),
		BLAKE3:    hex.EncodeToString(b3[:]),
		SizeBytes: int64(len(data)),
	}
}

// ToJSON serializes the manifest.
func (m *Manifest) ToJSON() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// ParseManifest deserializes a manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if m.Files == nil {
		m.Files = make(map[string]*FileRecord)
	}
	return &m, nil
}

// Verify re-hashes the corpus under root and reports paths whose digests
// differ from the manifest, plus paths present on disk but not recorded.
func (m *Manifest) Verify(root string) ([]string, error) {
	current, err := BuildManifest(root, m.Tool)
	if err != nil {
		return nil, err
	}

	var changed []string
	for rel, rec := range current.Files {
		old, ok := m.Files[rel]
		if !ok || old.SHA256 != rec.SHA256 || old.BLAKE3 != rec.BLAKE3 {
			changed = append(changed, rel)
		}
	}
	for rel := range m.Files {
		if _, ok := current.Files[rel]; !ok {
			changed = append(changed, rel)
		}
	}
	sort.Strings(changed)
	return changed, nil
}

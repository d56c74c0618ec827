// Package corpus handles the on-disk layout of the kaavya collection: one
// subdirectory per work, each holding a canonical JSON document or numbered
// shards for large works. It also builds the corpus manifest used to track
// file integrity across commits.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kavyakosha/kavyalint/core/kaavya"
)

// Files returns every corpus document file under root, sorted by path.
// Hidden directories and the tooling directory ("code") are skipped, as are
// non-JSON files; auxiliary commentary dumps live outside the corpus proper.
func Files(root string) ([]string, error) {
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			name := info.Name()
			if path != root && (strings.HasPrefix(name, ".") || name == "code") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(info.Name(), ".json") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// LoadWork reads a work's directory and merges its shards into one document.
// Shards are read in sorted filename order and their data sequences
// concatenated; title and section lists come from the first shard. Verse
// indexes stay per shard, so the merged sequence restarts at 0 on every
// shard boundary.
func LoadWork(dir string) (*kaavya.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read work directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no document files in %s", dir)
	}
	sort.Strings(names)

	var merged *kaavya.Document
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read shard: %w", err)
		}
		doc, errs := kaavya.Decode(path, data)
		if len(errs) > 0 {
			return nil, fmt.Errorf("shard %s is invalid: %w", name, errs[0])
		}
		if merged == nil {
			merged = doc
			continue
		}
		merged.Data = append(merged.Data, doc.Data...)
	}
	return merged, nil
}

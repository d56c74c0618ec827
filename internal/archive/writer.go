// Package archive writes corpus snapshots: a single compressed tarball of
// the document tree, suitable for publishing a release of the collection.
package archive

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ulikunitz/xz"
)

// CompressionType specifies the compression algorithm for snapshots.
type CompressionType string

const (
	// CompressionXZ uses XZ/LZMA2 compression (default, best ratio).
	CompressionXZ CompressionType = "xz"
	// CompressionGzip uses gzip compression (stdlib, faster).
	CompressionGzip CompressionType = "gzip"
)

// CreateSnapshot packs the corpus tree rooted at srcDir into a compressed
// tar archive at dstPath. Only document files are included; hidden
// directories and the tooling directory are skipped. Entry ModTimes are
// normalized to a single timestamp so that two snapshots of identical
// content differ only in that stamp.
func CreateSnapshot(srcDir, dstPath string, compression CompressionType) error {
	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	outFile, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("failed to create archive file: %w", err)
	}
	defer outFile.Close()

	var cw io.WriteCloser
	switch compression {
	case CompressionGzip:
		cw = gzip.NewWriter(outFile)
	case CompressionXZ, "":
		xw, err := xz.NewWriter(outFile)
		if err != nil {
			return fmt.Errorf("failed to create xz writer: %w", err)
		}
		cw = xw
	default:
		return fmt.Errorf("unsupported compression type: %s", compression)
	}

	tw := tar.NewWriter(cw)

	baseDir := filepath.Base(strings.TrimSuffix(strings.TrimSuffix(dstPath, ".tar.xz"), ".tar.gz"))
	now := time.Now()

	walkErr := filepath.Walk(srcDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		if relPath == "." {
			return nil
		}

		if info.IsDir() {
			name := info.Name()
			if strings.HasPrefix(name, ".") || name == "code" {
				return filepath.SkipDir
			}
		} else if !strings.HasSuffix(info.Name(), ".json") {
			return nil
		}

		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}

		header.Name = baseDir + "/" + filepath.ToSlash(relPath)
		if info.IsDir() {
			header.Name += "/"
		}
		header.ModTime = now

		if err := tw.WriteHeader(header); err != nil {
			return err
		}

		if !info.IsDir() {
			file, err := os.Open(path)
			if err != nil {
				return err
			}
			defer file.Close()

			if _, err := io.Copy(tw, file); err != nil {
				return err
			}
		}
		return nil
	})

	if walkErr != nil {
		return fmt.Errorf("failed to create archive: %w", walkErr)
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("failed to finalize tar stream: %w", err)
	}
	if err := cw.Close(); err != nil {
		return fmt.Errorf("failed to finalize compression: %w", err)
	}
	return nil
}

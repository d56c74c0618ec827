// Package linter applies the validate-then-normalize pipeline to corpus
// files and aggregates the outcome. One malformed file never stops the run;
// it is reported and the remaining files are still checked.
package linter

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/kavyakosha/kavyalint/core/corpus"
	"github.com/kavyakosha/kavyalint/core/kaavya"
	"github.com/kavyakosha/kavyalint/internal/validation"
)

// Options configures a lint run.
type Options struct {
	// Fix rewrites non-canonical files in place when they validate cleanly.
	// Without it the run is read-only and reports what would change.
	Fix bool
	// Jobs is the number of files processed concurrently. Values below 2
	// lint sequentially. Files are independent, so order does not matter;
	// the report is assembled in input order either way.
	Jobs int
	// BaseDir is the corpus root; result paths are shown relative to it.
	BaseDir string
	// Exclude, when set, drops files whose relative path it matches.
	Exclude func(relPath string) bool
}

// Run lints the given files, or the whole corpus under BaseDir when paths
// is empty.
func Run(paths []string, opts Options) (*Report, error) {
	if opts.BaseDir == "" {
		opts.BaseDir = "."
	}

	report := NewReport()

	targets, err := resolveTargets(paths, &opts, report)
	if err != nil {
		return nil, err
	}

	results := make([]FileResult, len(targets))
	if opts.Jobs > 1 {
		var g errgroup.Group
		g.SetLimit(opts.Jobs)
		for i, path := range targets {
			i, path := i, path
			g.Go(func() error {
				results[i] = lintFile(path, opts)
				return nil
			})
		}
		// Workers never return errors; failures land in their FileResult.
		_ = g.Wait()
	} else {
		for i, path := range targets {
			results[i] = lintFile(path, opts)
		}
	}

	for _, res := range results {
		report.add(res)
	}
	report.Elapsed = time.Since(report.start)
	return report, nil
}

// resolveTargets expands the path arguments into the list of files to lint.
// Explicit arguments that are not lintable documents are recorded as skipped,
// the way the original corpus tooling did, rather than failing the run.
func resolveTargets(paths []string, opts *Options, report *Report) ([]string, error) {
	if len(paths) == 0 {
		files, err := corpus.Files(opts.BaseDir)
		if err != nil {
			return nil, err
		}
		return filterExcluded(files, opts), nil
	}

	var targets []string
	for _, p := range paths {
		if err := validation.ValidateDocumentPath(p); err != nil {
			report.add(FileResult{Path: displayPath(p, opts.BaseDir), Status: StatusSkipped, Violations: []string{err.Error()}})
			continue
		}
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			report.add(FileResult{Path: displayPath(p, opts.BaseDir), Status: StatusSkipped, Violations: []string{"not a file"}})
			continue
		}
		targets = append(targets, p)
	}
	return filterExcluded(targets, opts), nil
}

func filterExcluded(files []string, opts *Options) []string {
	if opts.Exclude == nil {
		return files
	}
	kept := files[:0]
	for _, f := range files {
		if !opts.Exclude(displayPath(f, opts.BaseDir)) {
			kept = append(kept, f)
		}
	}
	return kept
}

func lintFile(path string, opts Options) FileResult {
	rel := displayPath(path, opts.BaseDir)

	data, err := os.ReadFile(path)
	if err != nil {
		return FileResult{Path: rel, Status: StatusError, Violations: []string{fmt.Sprintf("failed to read: %v", err)}}
	}

	doc, errs := kaavya.ValidateBytes(rel, data)
	if len(errs) > 0 {
		violations := make([]string, len(errs))
		for i, e := range errs {
			violations[i] = e.Error()
		}
		return FileResult{Path: rel, Status: StatusError, Violations: violations}
	}

	canonical := doc.Canonical()
	if bytes.Equal(data, canonical) {
		return FileResult{Path: rel, Status: StatusOK}
	}

	if !opts.Fix {
		return FileResult{Path: rel, Status: StatusStale}
	}
	if err := os.WriteFile(path, canonical, 0644); err != nil {
		return FileResult{Path: rel, Status: StatusError, Violations: []string{fmt.Sprintf("failed to rewrite: %v", err)}}
	}
	return FileResult{Path: rel, Status: StatusFixed}
}

func displayPath(path, baseDir string) string {
	if rel, err := filepath.Rel(baseDir, path); err == nil && !filepath.IsAbs(rel) {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}

func newRunID() string {
	return uuid.New().String()
}

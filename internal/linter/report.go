package linter

import (
	"fmt"
	"io"
	"time"

	json "github.com/goccy/go-json"
)

// Status classifies the outcome for a single file.
type Status string

const (
	// StatusOK means the file validated and was already canonical.
	StatusOK Status = "ok"
	// StatusFixed means the file validated and was rewritten in place.
	StatusFixed Status = "fixed"
	// StatusStale means the file validated but differs from its canonical
	// form. Only reported in read-only runs.
	StatusStale Status = "stale"
	// StatusError means the file failed to parse or validate.
	StatusError Status = "error"
	// StatusSkipped means an explicit path argument was not a lintable file.
	StatusSkipped Status = "skipped"
)

// FileResult is the outcome for one file.
type FileResult struct {
	Path       string   `json:"path"`
	Status     Status   `json:"status"`
	Violations []string `json:"violations,omitempty"`
}

// Report aggregates a whole run.
type Report struct {
	RunID     string        `json:"run_id"`
	StartedAt time.Time     `json:"started_at"`
	Elapsed   time.Duration `json:"elapsed_ns"`
	Results   []FileResult  `json:"results"`
	OK        int           `json:"ok"`
	Fixed     int           `json:"fixed"`
	Stale     int           `json:"stale"`
	Errored   int           `json:"errored"`
	Skipped   int           `json:"skipped"`

	start time.Time
}

// NewReport returns an empty report stamped with a fresh run ID.
func NewReport() *Report {
	now := time.Now()
	return &Report{RunID: newRunID(), StartedAt: now.UTC(), start: now}
}

func (r *Report) add(res FileResult) {
	r.Results = append(r.Results, res)
	switch res.Status {
	case StatusOK:
		r.OK++
	case StatusFixed:
		r.Fixed++
	case StatusStale:
		r.Stale++
	case StatusError:
		r.Errored++
	case StatusSkipped:
		r.Skipped++
	}
}

// Failed reports whether the run should exit non-zero: any file that failed
// validation, or any file left non-canonical in a read-only run.
func (r *Report) Failed() bool {
	return r.Errored > 0 || r.Stale > 0
}

const (
	ansiReset  = "\033[0m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiRed    = "\033[31m"
	ansiDim    = "\033[2m"
)

func gutter(status Status, color bool) string {
	var label, tint string
	switch status {
	case StatusOK:
		label, tint = "[  OK   ]", ansiGreen
	case StatusFixed:
		label, tint = "[ FIXED ]", ansiYellow
	case StatusStale:
		label, tint = "[ STALE ]", ansiYellow
	case StatusError:
		label, tint = "[ ERROR ]", ansiRed
	case StatusSkipped:
		label, tint = "[ SKIP  ]", ansiDim
	default:
		label, tint = "[   ?   ]", ""
	}
	if color && tint != "" {
		return tint + label + ansiReset
	}
	return label
}

// WriteText renders the per-file lines and summary block.
func (r *Report) WriteText(w io.Writer, color bool) error {
	for _, res := range r.Results {
		if _, err := fmt.Fprintf(w, "%s %s\n", gutter(res.Status, color), res.Path); err != nil {
			return err
		}
		for _, v := range res.Violations {
			if _, err := fmt.Fprintf(w, "          %s\n", v); err != nil {
				return err
			}
		}
	}

	rule := "=================================================="
	lines := []string{
		rule,
		fmt.Sprintf("checked %d files in %s", len(r.Results), r.Elapsed.Round(time.Millisecond)),
		fmt.Sprintf("  ok      %d", r.OK),
	}
	if r.Fixed > 0 {
		lines = append(lines, fmt.Sprintf("  fixed   %d", r.Fixed))
	}
	if r.Stale > 0 {
		lines = append(lines, fmt.Sprintf("  stale   %d", r.Stale))
	}
	if r.Errored > 0 {
		lines = append(lines, fmt.Sprintf("  errors  %d", r.Errored))
	}
	if r.Skipped > 0 {
		lines = append(lines, fmt.Sprintf("  skipped %d", r.Skipped))
	}
	lines = append(lines, rule)

	for _, line := range lines {
		if _, err := fmt.Fprintf(w, "%s\n", line); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON renders the report as indented JSON for machine consumers.
func (r *Report) WriteJSON(w io.Writer) error {
	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}

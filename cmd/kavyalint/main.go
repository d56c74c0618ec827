// Command kavyalint validates and normalizes the JSON files of a Sanskrit
// verse corpus. Without a subcommand it lints, rewriting non-canonical files
// in place; manifest and archive produce corpus-wide artifacts.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/kavyakosha/kavyalint/core/corpus"
	"github.com/kavyakosha/kavyalint/internal/archive"
	"github.com/kavyakosha/kavyalint/internal/config"
	"github.com/kavyakosha/kavyalint/internal/linter"
	"github.com/kavyakosha/kavyalint/internal/validation"
)

const version = "0.2.0"

// CLI defines the command-line interface for kavyalint.
var CLI struct {
	// Global flags
	Dir     string `help:"Corpus root directory" short:"d" type:"path" default:"."`
	Config  string `help:"Config file path (default: .kavyalint.yaml in the corpus root)" type:"path"`
	NoColor bool   `help:"Disable colored output"`

	Lint     LintCmd     `cmd:"" default:"withargs" help:"Validate corpus files and rewrite them in canonical form"`
	Manifest ManifestCmd `cmd:"" help:"Write a checksum manifest of every corpus file"`
	Archive  ArchiveCmd  `cmd:"" help:"Create a compressed snapshot of the corpus"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// LintCmd validates and normalizes corpus files.
type LintCmd struct {
	Paths []string `arg:"" optional:"" help:"Files to lint (default: every corpus file under --dir)"`
	Check bool     `help:"Report without rewriting; stale files fail the run"`
	Jobs  int      `short:"j" help:"Number of files linted concurrently"`
	JSON  bool     `help:"Emit the report as JSON"`
}

func (c *LintCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	jobs := c.Jobs
	if jobs == 0 {
		jobs = cfg.Jobs
	}

	report, err := linter.Run(c.Paths, linter.Options{
		Fix:     !c.Check,
		Jobs:    jobs,
		BaseDir: CLI.Dir,
		Exclude: cfg.Excluded,
	})
	if err != nil {
		return err
	}

	if c.JSON {
		if err := report.WriteJSON(os.Stdout); err != nil {
			return err
		}
	} else {
		color := !CLI.NoColor && cfg.ColorEnabled()
		if err := report.WriteText(os.Stdout, color); err != nil {
			return err
		}
	}

	if report.Failed() {
		return fmt.Errorf("%d file(s) failed", report.Errored+report.Stale)
	}
	return nil
}

// ManifestCmd writes a checksum manifest of every corpus file, or verifies
// the corpus against a previously written one.
type ManifestCmd struct {
	Out    string `help:"Output manifest path" type:"path" xor:"mode" required:""`
	Verify string `help:"Verify the corpus against an existing manifest" type:"existingfile" xor:"mode"`
}

func (c *ManifestCmd) Run() error {
	if c.Verify != "" {
		return c.verify()
	}

	if err := validation.ValidatePath(c.Out); err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	m, err := corpus.BuildManifest(CLI.Dir, corpus.ToolInfo{Name: "kavyalint", Version: version})
	if err != nil {
		return fmt.Errorf("failed to build manifest: %w", err)
	}

	data, err := m.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to serialize manifest: %w", err)
	}
	if err := os.WriteFile(c.Out, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	fmt.Printf("Manifest written: %s\n", c.Out)
	fmt.Printf("  Files: %d\n", len(m.Files))
	return nil
}

func (c *ManifestCmd) verify() error {
	data, err := os.ReadFile(c.Verify)
	if err != nil {
		return fmt.Errorf("failed to read manifest: %w", err)
	}
	m, err := corpus.ParseManifest(data)
	if err != nil {
		return err
	}

	changed, err := m.Verify(CLI.Dir)
	if err != nil {
		return fmt.Errorf("failed to verify corpus: %w", err)
	}

	fmt.Printf("Manifest: %s\n", c.Verify)
	fmt.Printf("  Files: %d\n", len(m.Files))
	for _, rel := range changed {
		fmt.Printf("  [FAIL] %s\n", rel)
	}
	if len(changed) > 0 {
		return fmt.Errorf("verification failed: %d file(s) changed", len(changed))
	}
	fmt.Println("Verification passed!")
	return nil
}

// ArchiveCmd creates a compressed snapshot of the corpus, or lists the
// entries of an existing one.
type ArchiveCmd struct {
	Out         string `help:"Output archive path (.tar.xz or .tar.gz)" type:"path" xor:"mode" required:""`
	List        string `help:"List the entries of an existing snapshot" type:"existingfile" xor:"mode"`
	Compression string `enum:"xz,gzip" default:"xz" help:"Compression format"`
}

func (c *ArchiveCmd) Run() error {
	if c.List != "" {
		names, err := archive.ListSnapshot(c.List)
		if err != nil {
			return fmt.Errorf("failed to list snapshot: %w", err)
		}
		for _, name := range names {
			fmt.Println(name)
		}
		fmt.Printf("\nTotal: %d entries\n", len(names))
		return nil
	}

	if err := validation.ValidatePath(c.Out); err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	if err := archive.CreateSnapshot(CLI.Dir, c.Out, archive.CompressionType(c.Compression)); err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}

	fmt.Printf("Snapshot created: %s\n", c.Out)
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("kavyalint version %s\n", version)
	return nil
}

func loadConfig() (*config.Config, error) {
	path := CLI.Config
	explicit := path != ""
	if !explicit {
		path = filepath.Join(CLI.Dir, config.DefaultFilename)
	}
	cfg, err := config.Load(path, explicit)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("kavyalint"),
		kong.Description("Schema validator and normalizer for a Sanskrit verse corpus."),
		kong.UsageOnError(),
	)
	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package rewrite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"depwarn/internal/crawler"
	"depwarn/internal/storage"
	"depwarn/internal/transform"
)

// Options controls what the runner does with transformed files.
type Options struct {
	// Write rewrites changed files in place.
	Write bool
	// OutDir, when set, receives a copy of every changed file at the same
	// path relative to the scanned root. Ignored when Write is set.
	OutDir string
	// Only restricts the run to these absolute paths when non-nil.
	Only map[string]bool
	// Store, when set, records every deprecation found per file.
	Store storage.Store
}

// FileOutcome describes one processed file.
type FileOutcome struct {
	Path   string
	Result *transform.Result
	Err    error
}

// Report aggregates a run.
type Report struct {
	Files []FileOutcome
}

// Changed returns the outcomes whose source was rewritten.
func (r *Report) Changed() []FileOutcome {
	var out []FileOutcome
	for _, f := range r.Files {
		if f.Err == nil && f.Result.Changed {
			out = append(out, f)
		}
	}
	return out
}

// Failed returns the outcomes that could not be transformed.
func (r *Report) Failed() []FileOutcome {
	var out []FileOutcome
	for _, f := range r.Files {
		if f.Err != nil {
			out = append(out, f)
		}
	}
	return out
}

// Runner orchestrates crawling, transformation and output.
type Runner struct {
	crawler     *crawler.Crawler
	transformer *transform.Transformer
	opts        Options
}

// NewRunner creates a new runner.
func NewRunner(c *crawler.Crawler, t *transform.Transformer, opts Options) *Runner {
	return &Runner{
		crawler:     c,
		transformer: t,
		opts:        opts,
	}
}

// Run transforms every file under root. A file that fails to transform is
// reported and skipped; the joined per-file errors are returned alongside the
// report. Output and inventory failures abort the run.
func (r *Runner) Run(ctx context.Context, root string) (*Report, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}

	report := &Report{}
	var failures []error

	err = r.crawler.ScanProject(absRoot, func(path string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.opts.Only != nil && !r.opts.Only[path] {
			return nil
		}

		res, err := r.transformer.TransformFile(ctx, path)
		if err != nil {
			report.Files = append(report.Files, FileOutcome{Path: path, Err: err})
			failures = append(failures, err)
			return nil
		}
		report.Files = append(report.Files, FileOutcome{Path: path, Result: res})

		if r.opts.Store != nil {
			if err := r.opts.Store.ReplaceFile(ctx, res.Path, res.Records); err != nil {
				return fmt.Errorf("failed to record %s: %w", path, err)
			}
		}
		if !res.Changed {
			return nil
		}
		return r.output(absRoot, res)
	})
	if err != nil {
		return report, err
	}
	return report, errors.Join(failures...)
}

func (r *Runner) output(root string, res *transform.Result) error {
	switch {
	case r.opts.Write:
		return writeFile(res.Path, res.Path, res.Source)
	case r.opts.OutDir != "":
		rel := filepath.Base(res.Path)
		if res.Path != root {
			var err error
			if rel, err = filepath.Rel(root, res.Path); err != nil {
				return err
			}
		}
		dest := filepath.Join(r.opts.OutDir, rel)
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", filepath.Dir(dest), err)
		}
		return writeFile(res.Path, dest, res.Source)
	}
	return nil
}

// writeFile writes data to dest with the permissions of src.
func writeFile(src, dest string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(src); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(dest, data, mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return nil
}

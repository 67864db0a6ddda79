// Package driver walks a set of paths for SQL files and runs the linter
// core across them in parallel, one goroutine per file capped by a
// concurrency limit, fanning out the embarrassingly-parallel per-file work
// the core itself has no opinion about.
package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/sqlfmt/internal/report"
	"github.com/leapstack-labs/sqlfmt/pkg/dialect"
	"github.com/leapstack-labs/sqlfmt/pkg/lint"
)

// DefaultConcurrency caps how many files are linted at once when the caller
// doesn't set Options.Concurrency.
const DefaultConcurrency = 8

// Options configures a run.
type Options struct {
	Dialect     *dialect.Dialect
	Config      *lint.Config
	Fix         bool // rewrite files in place with fixes applied
	Concurrency int
}

// Result is one file's outcome: its violations, and whether Fix rewrote it.
type Result struct {
	Path      string
	Violation []lint.Violation
	Changed   bool
	Err       error
}

// Run discovers every *.sql file reachable from paths and lints (or fixes)
// each one concurrently. Results are returned sorted by path regardless of
// completion order, so output is deterministic.
func Run(ctx context.Context, paths []string, opts Options) ([]Result, error) {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}

	files, err := discover(paths)
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			results[i] = runOne(ctx, path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results, nil
}

func runOne(_ context.Context, path string, opts Options) Result {
	source, err := os.ReadFile(path)
	if err != nil {
		return Result{Path: path, Err: fmt.Errorf("driver: read %s: %w", path, err)}
	}

	if !opts.Fix {
		lf, err := lint.LintString(string(source), opts.Dialect, opts.Config)
		if err != nil {
			return Result{Path: path, Err: fmt.Errorf("driver: lint %s: %w", path, err)}
		}
		return Result{Path: path, Violation: lf.Violations}
	}

	fixed, lf, err := lint.FixString(string(source), opts.Dialect, opts.Config)
	if err != nil {
		return Result{Path: path, Err: fmt.Errorf("driver: fix %s: %w", path, err)}
	}

	changed := fixed != string(source)
	if changed {
		info, statErr := os.Stat(path)
		mode := fs.FileMode(0o644)
		if statErr == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(path, []byte(fixed), mode); err != nil {
			return Result{Path: path, Err: fmt.Errorf("driver: write %s: %w", path, err)}
		}
	}
	return Result{Path: path, Violation: lf.Violations, Changed: changed}
}

// ToFileResults adapts driver results into the shape internal/report renders.
func ToFileResults(results []Result) []report.FileResult {
	out := make([]report.FileResult, 0, len(results))
	for _, r := range results {
		if len(r.Violation) == 0 {
			continue
		}
		out = append(out, report.FileResult{Path: r.Path, Violations: r.Violation})
	}
	return out
}

func discover(paths []string) ([]string, error) {
	var files []string

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("driver: stat %s: %w", p, err)
		}

		if !info.IsDir() {
			if isSQLFile(p) {
				files = append(files, p)
			}
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if isSQLFile(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("driver: walk %s: %w", p, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

func isSQLFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".sql")
}

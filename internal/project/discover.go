package project

import (
	"context"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// Entry is one candidate project path with an optional configured name.
type Entry struct {
	Name string // overrides the loaded project name when non-empty
	Path string
}

// DiscoverOptions describe the three project sources, in priority order.
type DiscoverOptions struct {
	// WorkDir is the current working directory; its project (if any) is
	// always first in the result. Empty skips the cwd source.
	WorkDir string
	// Configured are the explicit config entries, in declaration order.
	Configured []Entry
	// BaseDir is scanned one level deep for candidate project paths.
	// A missing directory silently contributes nothing.
	BaseDir string
}

// Discover assembles projects from the cwd, the configured entries and the
// base-directory scan, deduplicated by git directory. The cwd project is
// loaded first and always kept; the remaining candidates are loaded as one
// concurrent group, but the final order is their declaration order, never
// completion order. A later candidate resolving to an already-accepted git
// directory is dropped, though its configured name is applied before the
// dedup check so a configured entry can rename an auto-discovered duplicate
// that follows it.
func Discover(ctx context.Context, opts DiscoverOptions) []*Project {
	var projects []*Project
	seen := make(map[string]bool)

	if opts.WorkDir != "" {
		if p, err := Load(ctx, opts.WorkDir); err == nil {
			projects = append(projects, p)
			seen[p.GitDir] = true
		}
	}

	allPaths := make([]Entry, 0, len(opts.Configured))
	allPaths = append(allPaths, opts.Configured...)
	allPaths = append(allPaths, scanBaseDir(opts.BaseDir)...)

	results := make([]*Project, len(allPaths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8) // bound concurrent git invocations

	for i, entry := range allPaths {
		g.Go(func() error {
			if p, err := Load(gctx, entry.Path); err == nil {
				results[i] = p
			}
			return nil // load failures just leave a nil slot
		})
	}
	_ = g.Wait()

	for i, p := range results {
		if p == nil {
			continue
		}
		if allPaths[i].Name != "" {
			p.Name = allPaths[i].Name
		}
		if seen[p.GitDir] {
			continue
		}
		seen[p.GitDir] = true
		projects = append(projects, p)
	}

	return projects
}

// scanBaseDir returns every immediate subdirectory of base as a candidate.
func scanBaseDir(base string) []Entry {
	if base == "" {
		return nil
	}
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil
	}

	var candidates []Entry
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		candidates = append(candidates, Entry{Path: filepath.Join(base, entry.Name())})
	}
	return candidates
}

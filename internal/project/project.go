// Package project resolves directories to repositories and aggregates them
// from the configured and auto-detected sources.
package project

import (
	"context"
	"path/filepath"

	"github.com/arbor-sh/arbor/internal/git"
)

// Seams for tests; production code always uses the git package.
var (
	detectGitDir  = git.DetectGitDir
	listWorktrees = git.List
)

// Project is a repository and all worktrees discovered for it.
// Projects are identified by GitDir: two discovery paths resolving to the
// same git directory are the same project.
type Project struct {
	Name      string         `json:"name"`
	GitDir    string         `json:"git_dir"`
	MainPath  string         `json:"main_path"`
	Worktrees []git.Worktree `json:"worktrees"`
}

// Main returns the main worktree, or nil if the project has none loaded.
func (p *Project) Main() *git.Worktree {
	for i := range p.Worktrees {
		if p.Worktrees[i].IsMain {
			return &p.Worktrees[i]
		}
	}
	return nil
}

// Load resolves path to a project. Failure to detect a repository is an
// error; failure to list worktrees is not — a project with zero worktrees is
// a valid state, and the listing error is dropped. The name defaults to the
// basename of the main worktree, falling back to the basename of the input
// path when no main worktree was found.
func Load(ctx context.Context, path string) (*Project, error) {
	gitDir, err := detectGitDir(ctx, path)
	if err != nil {
		return nil, err
	}

	worktrees, err := listWorktrees(ctx, gitDir)
	if err != nil {
		worktrees = nil
	}

	p := &Project{
		Name:      filepath.Base(path),
		GitDir:    gitDir,
		Worktrees: worktrees,
	}
	if main := p.Main(); main != nil {
		p.Name = filepath.Base(main.Path)
		p.MainPath = main.Path
	}
	return p, nil
}

// Refresh replaces the project's worktree collection from a fresh listing.
func (p *Project) Refresh(ctx context.Context) error {
	worktrees, err := listWorktrees(ctx, p.GitDir)
	if err != nil {
		return err
	}
	p.Worktrees = worktrees
	if main := p.Main(); main != nil {
		p.MainPath = main.Path
	}
	return nil
}

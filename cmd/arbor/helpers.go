package main

import (
	"context"
	"fmt"

	"github.com/arbor-sh/arbor/internal/config"
	"github.com/arbor-sh/arbor/internal/match"
	"github.com/arbor-sh/arbor/internal/project"
)

// discoverProjects assembles projects from the working directory, the
// configured entries and the worktree base directory scan.
func discoverProjects(ctx context.Context) ([]*project.Project, error) {
	baseDir, err := config.ExpandPath(cfg.WorktreeDir)
	if err != nil {
		return nil, fmt.Errorf("expand worktree_dir: %w", err)
	}

	configured := make([]project.Entry, 0, len(cfg.Projects))
	for _, p := range cfg.Projects {
		path, err := config.ExpandPath(p.Path)
		if err != nil {
			return nil, fmt.Errorf("expand project %q: %w", p.Name, err)
		}
		configured = append(configured, project.Entry{Name: p.Name, Path: path})
	}

	return project.Discover(ctx, project.DiscoverOptions{
		WorkDir:    workDir,
		Configured: configured,
		BaseDir:    baseDir,
	}), nil
}

// target pairs a ranked candidate with the project it came from, so commands
// can reach the project's git dir after matching.
type target struct {
	Project  *project.Project
	Branch   string
	Path     string
	IsMain   bool
	Detached bool
}

// candidates flattens projects into matcher input plus a path-keyed index
// back to the owning project and worktree.
func candidates(projects []*project.Project) ([]match.Candidate, map[string]target) {
	var cands []match.Candidate
	index := make(map[string]target)
	for _, p := range projects {
		for i := range p.Worktrees {
			wt := &p.Worktrees[i]
			cands = append(cands, match.Candidate{
				ProjectName: p.Name,
				Branch:      wt.Branch,
				Path:        wt.Path,
			})
			index[wt.Path] = target{
				Project:  p,
				Branch:   wt.Branch,
				Path:     wt.Path,
				IsMain:   wt.IsMain,
				Detached: wt.Detached(),
			}
		}
	}
	return cands, index
}

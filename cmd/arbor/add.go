package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arbor-sh/arbor/internal/project"
)

// selectProject picks the project a new worktree belongs to: the named one
// when a name is given, otherwise the repository containing the working
// directory.
func selectProject(ctx context.Context, name string) (*project.Project, error) {
	if name == "" {
		p, err := project.Load(ctx, workDir)
		if err != nil {
			return nil, fmt.Errorf("not inside a repository (use --project): %w", err)
		}
		return p, nil
	}

	projects, err := discoverProjects(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("unknown project %q", name)
}

// worktreePath computes the default location for a new worktree. Branch
// slashes become dashes so the folder stays a single path segment.
func worktreePath(worktreeDir, projectName, branch string) string {
	folder := projectName + "-" + strings.ReplaceAll(branch, "/", "-")
	return filepath.Join(worktreeDir, folder)
}

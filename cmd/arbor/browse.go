package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/mattn/go-isatty"

	"github.com/arbor-sh/arbor/internal/config"
	"github.com/arbor-sh/arbor/internal/forge"
	"github.com/arbor-sh/arbor/internal/git"
	"github.com/arbor-sh/arbor/internal/log"
	"github.com/arbor-sh/arbor/internal/project"
	"github.com/arbor-sh/arbor/internal/state"
	"github.com/arbor-sh/arbor/internal/ui"
)

// prCacheTTL bounds how long a gh PR lookup is reused in the detail pane.
const prCacheTTL = 5 * time.Minute

// runBrowse starts the interactive browser. The TUI renders on stderr so that
// the selected worktree path can be printed on stdout for the shell wrapper.
func runBrowse(ctx context.Context, filter string) error {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return fmt.Errorf("interactive browser requires a terminal (try 'arbor list')")
	}

	worktreeDir, err := config.ExpandPath(cfg.WorktreeDir)
	if err != nil {
		return fmt.Errorf("expand worktree_dir: %w", err)
	}

	l := log.FromContext(ctx)

	model := ui.New(ctx, ui.Options{
		Ops: ui.Ops{
			Discover: func(ctx context.Context) []*project.Project {
				projects, err := discoverProjects(ctx)
				if err != nil {
					l.Printf("Warning: %v\n", err)
				}
				return projects
			},
			Add:     git.Add,
			Remove:  git.Remove,
			IsDirty: git.IsDirty,
		},
		WorktreeDir: worktreeDir,
		BaseBranch:  cfg.BaseBranch,
		Session:     state.Load(),
		PRs:         forge.NewCache(prCacheTTL),
		Filter:      filter,
	})

	p := tea.NewProgram(model,
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(colorprofile.Detect(os.Stderr, os.Environ())),
	)

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("browser: %w", err)
	}

	if m, ok := final.(*ui.Model); ok {
		if path := m.ExitPath(); path != "" {
			fmt.Println(path)
		}
	}
	return nil
}

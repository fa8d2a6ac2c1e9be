package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arbor-sh/arbor/internal/git"
	"github.com/arbor-sh/arbor/internal/project"
)

// worktreeDisplay holds worktree info for display
type worktreeDisplay struct {
	Project string `json:"project"`
	Branch  string `json:"branch,omitempty"`
	Path    string `json:"path"`
	Head    string `json:"head"`
	IsMain  bool   `json:"is_main"`
	IsDirty bool   `json:"is_dirty"`
	Locked  bool   `json:"locked,omitempty"`
}

func newListCmd() *cobra.Command {
	var (
		jsonOutput bool
		dirty      bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List worktrees across all projects",
		Aliases: []string{"ls"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `List every worktree of every discovered project.

Projects come from the current directory, the configured entries and the
worktree base directory, in that order. Use --dirty to also run a status
check per worktree (slower: one git subprocess each, five at a time).`,
		Example: `  arbor list            # list all worktrees
  arbor list --dirty    # include uncommitted-changes markers
  arbor list --json     # output as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			projects, err := discoverProjects(ctx)
			if err != nil {
				return err
			}

			var rows []worktreeDisplay
			var paths []string
			for _, p := range projects {
				for _, wt := range p.Worktrees {
					rows = append(rows, worktreeDisplay{
						Project: p.Name,
						Branch:  wt.Branch,
						Path:    wt.Path,
						Head:    wt.Head,
						IsMain:  wt.IsMain,
						Locked:  wt.Locked,
					})
					paths = append(paths, wt.Path)
				}
			}

			if dirty {
				var poller project.DirtyPoller
				statuses := poller.Poll(ctx, paths, nil)
				for i := range rows {
					rows[i].IsDirty = statuses[rows[i].Path] == git.Dirty
				}
			}

			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}

			if len(rows) == 0 {
				fmt.Println("No worktrees found")
				return nil
			}

			projWidth, branchWidth := 7, 6
			for _, r := range rows {
				projWidth = max(projWidth, len(r.Project))
				branchWidth = max(branchWidth, len(displayBranch(r)))
			}

			fmt.Printf("%-*s  %-*s  %-7s  %s\n", projWidth, "PROJECT", branchWidth, "BRANCH", "COMMIT", "PATH")
			for _, r := range rows {
				branch := displayBranch(r)
				commit := r.Head
				if len(commit) > 7 {
					commit = commit[:7]
				}
				fmt.Printf("%-*s  %-*s  %-7s  %s\n", projWidth, r.Project, branchWidth, branch, commit, r.Path)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&dirty, "dirty", false, "Check each worktree for uncommitted changes")

	return cmd
}

func displayBranch(r worktreeDisplay) string {
	branch := r.Branch
	if branch == "" {
		branch = "(detached)"
	}
	var marks []string
	if r.IsMain {
		marks = append(marks, "main")
	}
	if r.IsDirty {
		marks = append(marks, "*")
	}
	if r.Locked {
		marks = append(marks, "locked")
	}
	if len(marks) > 0 {
		branch += " [" + strings.Join(marks, ",") + "]"
	}
	return branch
}

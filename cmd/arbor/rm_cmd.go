package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/arbor-sh/arbor/internal/git"
	"github.com/arbor-sh/arbor/internal/log"
	"github.com/arbor-sh/arbor/internal/ui"
)

func newRmCmd() *cobra.Command {
	var (
		force bool
		yes   bool
	)

	cmd := &cobra.Command{
		Use:     "rm <query>",
		Short:   "Remove a worktree",
		Aliases: []string{"remove"},
		GroupID: GroupCore,
		Args:    cobra.ExactArgs(1),
		Long: `Remove the worktree best matching the query.

The main worktree can never be removed. A worktree with uncommitted
changes is refused unless --force is given. A confirmation prompt is shown
when running in a terminal; --yes skips it.`,
		Example: `  arbor rm feature-x        # remove after confirmation
  arbor rm feature-x -y     # no prompt
  arbor rm feature-x -f     # remove despite uncommitted changes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			query := args[0]

			projects, err := discoverProjects(ctx)
			if err != nil {
				return err
			}

			t, ambiguous, err := resolveJump(query, projects)
			if err != nil {
				return err
			}
			if ambiguous != nil {
				return fmt.Errorf("%q is ambiguous: %s", query, describeMatches(ambiguous, 5))
			}

			if t.IsMain {
				return fmt.Errorf("refusing to remove the main worktree %s", t.Path)
			}

			if !force && git.IsDirty(ctx, t.Path) {
				return fmt.Errorf("%s has uncommitted changes (use --force)", t.Path)
			}

			if !yes && isatty.IsTerminal(os.Stderr.Fd()) {
				name := t.Branch
				if name == "" {
					name = t.Path
				}
				result, err := ui.Confirm(fmt.Sprintf("Remove worktree %s?", name))
				if err != nil {
					return err
				}
				if !result.Confirmed {
					return nil
				}
			}

			if err := git.Remove(ctx, t.Project.GitDir, t.Path, force); err != nil {
				return err
			}
			l.Printf("Removed worktree %s\n", t.Path)

			if cfg.AutoPrune {
				if err := git.Prune(ctx, t.Project.GitDir); err != nil {
					l.Printf("Warning: prune failed: %v\n", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Remove even with uncommitted changes")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

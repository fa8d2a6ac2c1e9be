package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arbor-sh/arbor/internal/config"
	"github.com/arbor-sh/arbor/internal/git"
	"github.com/arbor-sh/arbor/internal/log"
)

func newAddCmd() *cobra.Command {
	var (
		projectName string
		path        string
		from        string
		existing    bool
	)

	cmd := &cobra.Command{
		Use:     "add <branch>",
		Short:   "Create a worktree",
		Aliases: []string{"a"},
		GroupID: GroupCore,
		Args:    cobra.ExactArgs(1),
		Long: `Create a worktree for a branch and print its path.

By default a new branch is created from the configured base branch and the
worktree goes to <worktree_dir>/<project>-<branch>. Use --existing to check
out a branch that already exists, --from to branch off something other than
the base branch, and --path to override the location.`,
		Example: `  arbor add feature-x                # new branch from the base branch
  arbor add fix-123 --from v2.1      # new branch from a tag
  arbor add release-9 --existing     # check out an existing branch
  cd $(arbor add feature-x)          # create and jump`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			branch := args[0]

			if existing && from != "" {
				return fmt.Errorf("--existing and --from are mutually exclusive")
			}

			p, err := selectProject(ctx, projectName)
			if err != nil {
				return err
			}

			if path == "" {
				worktreeDir, err := config.ExpandPath(cfg.WorktreeDir)
				if err != nil {
					return fmt.Errorf("expand worktree_dir: %w", err)
				}
				path = worktreePath(worktreeDir, p.Name, branch)
			}

			opts := git.CreateOptions{
				Path:         path,
				Branch:       branch,
				CreateBranch: !existing,
			}
			if opts.CreateBranch {
				opts.StartPoint = cfg.BaseBranch
				if from != "" {
					opts.StartPoint = from
				}
			}

			wt, err := git.Add(ctx, p.GitDir, opts)
			if err != nil {
				return err
			}

			l.Printf("Created worktree %s at %s\n", branch, wt.Path)
			fmt.Println(wt.Path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectName, "project", "p", "", "Project to create the worktree in (default: current repo)")
	cmd.Flags().StringVar(&path, "path", "", "Worktree location (default: <worktree_dir>/<project>-<branch>)")
	cmd.Flags().StringVar(&from, "from", "", "Start point for the new branch (default: base branch)")
	cmd.Flags().BoolVarP(&existing, "existing", "e", false, "Check out an existing branch instead of creating one")

	return cmd
}

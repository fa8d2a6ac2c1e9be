package main

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/arbor-sh/arbor/internal/log"
	"github.com/arbor-sh/arbor/internal/state"
)

func newJumpCmd() *cobra.Command {
	var copyToClipboard bool

	cmd := &cobra.Command{
		Use:     "jump <query>",
		Short:   "Print the path of the best-matching worktree",
		Aliases: []string{"j"},
		GroupID: GroupCore,
		Args:    cobra.ExactArgs(1),
		Long: `Print the path of the worktree best matching the query.

The query is matched against branch names, project names and worktree
folder names. When no single worktree clearly wins, the interactive
browser opens pre-filtered with the query (or an error lists the
contenders when no terminal is attached).

Use with shell command substitution, or install the wrapper from
'arbor init' to get an 'ajump' function that changes directory.`,
		Example: `  cd $(arbor jump feature-x)    # jump to the feature-x worktree
  arbor jump api --copy         # copy the matched path to the clipboard`,
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
				if isatty.IsTerminal(os.Stderr.Fd()) {
					return runBrowse(ctx, query)
				}
				return fmt.Errorf("%q is ambiguous: %s", query, describeMatches(ambiguous, 5))
			}

			sess := state.Load()
			sess.Record(t.Project.GitDir, t.Path)
			if err := sess.Save(); err != nil {
				l.Printf("Warning: failed to save session: %v\n", err)
			}

			if copyToClipboard {
				if err := clipboard.WriteAll(t.Path); err != nil {
					l.Printf("Warning: failed to copy to clipboard: %v\n", err)
				}
			}

			fmt.Println(t.Path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "Copy path to clipboard")

	return cmd
}

package main

import (
	"github.com/spf13/cobra"
)

func newBrowseCmd() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:     "browse",
		Short:   "Open the interactive worktree browser",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Open the full-screen worktree browser.

The browser lists every discovered project and its worktrees. Move with
j/k, filter with /, create with n, delete with d, and press enter to jump:
the selected path is printed on stdout when the browser exits.

Running 'arbor' without a subcommand does the same thing.`,
		Example: `  arbor                    # same as 'arbor browse'
  arbor browse --filter fix  # start with the list pre-filtered`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd.Context(), filter)
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Initial filter text")

	return cmd
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/arbor-sh/arbor/internal/git"
	"github.com/arbor-sh/arbor/internal/log"
)

func newPruneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "prune",
		Short:   "Prune stale worktree records",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Run 'git worktree prune' for every discovered project.

This drops administrative records for worktrees whose directories were
deleted outside of arbor; it never touches existing worktrees.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			projects, err := discoverProjects(ctx)
			if err != nil {
				return err
			}

			for _, p := range projects {
				if err := git.Prune(ctx, p.GitDir); err != nil {
					l.Printf("Warning: %s: %v\n", p.Name, err)
					continue
				}
				l.Printf("Pruned %s\n", p.Name)
			}
			return nil
		},
	}

	return cmd
}

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// projectDisplay holds project info for display
type projectDisplay struct {
	Name      string `json:"name"`
	GitDir    string `json:"git_dir"`
	MainPath  string `json:"main_path"`
	Worktrees int    `json:"worktrees"`
}

func newProjectsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "projects",
		Short:   "List discovered projects",
		GroupID: GroupUtility,
		Args:    cobra.NoArgs,
		Long: `List every discovered project with its git directory and worktree count.

Projects come from three sources, deduplicated by git directory: the
repository containing the current directory, the [[projects]] entries in
the config file, and a one-level scan of the worktree base directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			projects, err := discoverProjects(ctx)
			if err != nil {
				return err
			}

			rows := make([]projectDisplay, 0, len(projects))
			for _, p := range projects {
				rows = append(rows, projectDisplay{
					Name:      p.Name,
					GitDir:    p.GitDir,
					MainPath:  p.MainPath,
					Worktrees: len(p.Worktrees),
				})
			}

			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}

			if len(rows) == 0 {
				fmt.Println("No projects found")
				return nil
			}

			nameWidth := 4
			for _, r := range rows {
				nameWidth = max(nameWidth, len(r.Name))
			}
			fmt.Printf("%-*s  %-9s  %s\n", nameWidth, "NAME", "WORKTREES", "PATH")
			for _, r := range rows {
				fmt.Printf("%-*s  %-9d  %s\n", nameWidth, r.Name, r.Worktrees, r.MainPath)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

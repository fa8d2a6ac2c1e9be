package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arbor-sh/arbor/internal/config"
	"github.com/arbor-sh/arbor/internal/log"
)

var (
	// Global flags
	verbose bool
	quiet   bool

	// Shared state injected into commands
	cfg     config.Config
	workDir string
)

// Command group IDs for organizing help output
const (
	GroupCore    = "core"
	GroupUtility = "utility"
	GroupConfig  = "config"
)

// rootCmd represents the base command. Without a subcommand it launches the
// interactive browser, same as `arbor browse`.
var rootCmd = &cobra.Command{
	Use:   "arbor",
	Short: "Git worktree manager for multiple repositories",
	Long: `arbor manages git worktrees across multiple repositories.

Run without arguments to open the interactive browser: navigate projects
and worktrees, create and delete worktrees, and jump into one. The selected
path is printed on stdout so a shell wrapper can cd to it (see 'arbor init').`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2,
	Args:                       cobra.NoArgs,
	// The logger is built here rather than in Execute because the verbose and
	// quiet flag variables are only assigned during flag parsing, which happens
	// inside rootCmd.Execute.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger := log.New(logOutput, verbose, quiet)
		cmd.SetContext(log.WithLogger(cmd.Context(), logger))
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBrowse(cmd.Context(), "")
	},
}

// logOutput is where diagnostics go; stdout is reserved for worktree paths
// and machine-readable output. Swapped out in tests.
var logOutput io.Writer = os.Stderr

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	loadedCfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	cfg = loadedCfg

	workDir, err = os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "arbor: failed to get working directory: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "arbor:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show git commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupUtility, Title: "Utility Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Core commands
	rootCmd.AddCommand(newBrowseCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newJumpCmd())
	rootCmd.AddCommand(newRmCmd())
	rootCmd.AddCommand(newPruneCmd())

	// Utility commands
	rootCmd.AddCommand(newProjectsCmd())

	// Config commands
	rootCmd.AddCommand(newInitCmd())
}

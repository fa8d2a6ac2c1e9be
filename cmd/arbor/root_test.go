package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/arbor-sh/arbor/internal/log"
)

// runRootWith executes rootCmd with the given args routed to a capture
// subcommand, returning the logger the subcommand saw and everything it
// logged. Mutates package globals, so callers must not run in parallel.
func runRootWith(t *testing.T, args ...string) (*log.Logger, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	savedOut := logOutput
	logOutput = &buf

	var got *log.Logger
	capture := &cobra.Command{
		Use: "loggercapture",
		RunE: func(cmd *cobra.Command, args []string) error {
			got = log.FromContext(cmd.Context())
			return nil
		},
	}
	rootCmd.AddCommand(capture)

	t.Cleanup(func() {
		logOutput = savedOut
		rootCmd.RemoveCommand(capture)
		rootCmd.SetArgs(nil)
		verbose = false
		quiet = false
		rootCmd.PersistentFlags().Lookup("verbose").Changed = false
		rootCmd.PersistentFlags().Lookup("quiet").Changed = false
	})

	rootCmd.SetContext(context.Background())
	rootCmd.SetArgs(append([]string{"loggercapture"}, args...))
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute() = %v", err)
	}
	if got == nil {
		t.Fatal("capture command did not run")
	}
	return got, &buf
}

func TestVerboseFlagReachesContextLogger(t *testing.T) {
	logger, buf := runRootWith(t, "--verbose")

	if !logger.Verbose() {
		t.Error("logger from context is not verbose under --verbose")
	}
	logger.Command("git", "worktree", "list")
	if got := buf.String(); !strings.Contains(got, "$ git worktree list") {
		t.Errorf("Command echo = %q, want to contain %q", got, "$ git worktree list")
	}
}

func TestQuietFlagReachesContextLogger(t *testing.T) {
	logger, buf := runRootWith(t, "--quiet")

	logger.Printf("should not appear")
	logger.Command("git", "status")
	if buf.Len() != 0 {
		t.Errorf("logger wrote %q under --quiet", buf.String())
	}
}

func TestDefaultLoggerIsNotVerbose(t *testing.T) {
	logger, buf := runRootWith(t)

	if logger.Verbose() {
		t.Error("logger verbose without --verbose")
	}
	logger.Command("git", "status")
	if buf.Len() != 0 {
		t.Errorf("Command echoed %q without --verbose", buf.String())
	}
}

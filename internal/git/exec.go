package git

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/arbor-sh/arbor/internal/log"
)

// gitDirArgs prepends --git-dir <dir> to args if dir is non-empty.
func gitDirArgs(gitDir string, args []string) []string {
	if gitDir == "" {
		return args
	}
	return append([]string{"--git-dir", gitDir}, args...)
}

// runGit executes git and returns stdout and stderr separately. Stderr is kept
// apart from the error so callers can feed it to the classifier verbatim.
// Replaced in tests to fake subprocess behavior.
var runGit = func(ctx context.Context, dir string, args ...string) (stdout, stderr string, err error) {
	log.FromContext(ctx).Command("git", args...)

	c := exec.CommandContext(ctx, "git", args...)
	c.Dir = dir

	var out, errBuf bytes.Buffer
	c.Stdout = &out
	c.Stderr = &errBuf
	err = c.Run()
	return out.String(), errBuf.String(), err
}

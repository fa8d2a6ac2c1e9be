package git

import (
	"context"
	"path/filepath"
	"strings"
)

// DetectGitDir resolves the effective git directory for a filesystem path.
// Regular repos report a relative `.git` (or just `.` from inside the git
// dir); bare repos and worktree administrative dirs report an absolute path.
// The result is always normalized to an absolute path. A path outside any
// repository yields a KindNotARepo error.
func DetectGitDir(ctx context.Context, path string) (string, error) {
	out, stderr, err := runGit(ctx, path, "rev-parse", "--git-dir")
	if err != nil {
		return "", Classify(stderr)
	}

	gitDir := strings.TrimSpace(out)
	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(path, gitDir)
	}
	return filepath.Clean(gitDir), nil
}

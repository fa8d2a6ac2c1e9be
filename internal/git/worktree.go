package git

import (
	"context"
	"path/filepath"
	"strings"
)

// CreateOptions describe a worktree to add.
type CreateOptions struct {
	// Path is where the new worktree is checked out. Required.
	Path string
	// Branch is the branch to create or check out.
	Branch string
	// StartPoint is an optional commit/branch/tag the new branch starts from.
	// When CreateBranch is false and StartPoint is set, StartPoint is the ref
	// checked out at Path (Branch is ignored for that shape).
	StartPoint string
	// CreateBranch creates Branch rather than checking out an existing one.
	CreateBranch bool
}

// addArgs is the closed decision table for the four `git worktree add`
// invocation shapes, keyed on (CreateBranch, StartPoint != "").
func addArgs(opts CreateOptions) []string {
	hasStart := opts.StartPoint != ""
	switch {
	case opts.CreateBranch && hasStart:
		return []string{"worktree", "add", opts.Path, "-b", opts.Branch, opts.StartPoint}
	case opts.CreateBranch:
		return []string{"worktree", "add", opts.Path, "-b", opts.Branch}
	case hasStart:
		return []string{"worktree", "add", opts.Path, opts.StartPoint}
	default:
		return []string{"worktree", "add", opts.Path, opts.Branch}
	}
}

// List returns the worktrees of the repository identified by gitDir, in git's
// listing order (main checkout first).
func List(ctx context.Context, gitDir string) ([]Worktree, error) {
	out, stderr, err := runGit(ctx, "", gitDirArgs(gitDir, []string{"worktree", "list", "--porcelain"})...)
	if err != nil {
		return nil, Classify(stderr)
	}
	return ParsePorcelain(out), nil
}

// Add creates a worktree and returns its record from a fresh listing. The
// created path must show up in the re-list; if it does not, Add reports
// KindCommandFailed rather than fabricating a record.
func Add(ctx context.Context, gitDir string, opts CreateOptions) (*Worktree, error) {
	_, stderr, err := runGit(ctx, "", gitDirArgs(gitDir, addArgs(opts))...)
	if err != nil {
		return nil, Classify(stderr)
	}

	worktrees, err := List(ctx, gitDir)
	if err != nil {
		return nil, err
	}

	want := filepath.Clean(opts.Path)
	for i := range worktrees {
		if filepath.Clean(worktrees[i].Path) == want {
			return &worktrees[i], nil
		}
	}

	return nil, &GitError{
		Kind:    KindCommandFailed,
		Message: "worktree was created but did not appear in the listing",
	}
}

// Remove deletes the worktree at path. Force bypasses git's own protection
// against removing a dirty worktree; callers wanting a confirmation flow
// should check [IsDirty] first, Remove only propagates git's refusal.
func Remove(ctx context.Context, gitDir, path string, force bool) error {
	args := []string{"worktree", "remove", path}
	if force {
		args = append(args, "--force")
	}
	if _, stderr, err := runGit(ctx, "", gitDirArgs(gitDir, args)...); err != nil {
		return Classify(stderr)
	}
	return nil
}

// Prune removes stale administrative entries for worktrees whose directories
// were deleted out-of-band.
func Prune(ctx context.Context, gitDir string) error {
	if _, stderr, err := runGit(ctx, "", gitDirArgs(gitDir, []string{"worktree", "prune"})...); err != nil {
		return Classify(stderr)
	}
	return nil
}

// IsDirty reports whether the worktree at path has uncommitted changes.
// Failure to determine status counts as dirty: the flag only ever blocks a
// non-forced deletion, so erring toward dirty is the safe direction.
func IsDirty(ctx context.Context, path string) bool {
	out, _, err := runGit(ctx, path, "status", "--porcelain")
	if err != nil {
		return true
	}
	return strings.TrimSpace(out) != ""
}

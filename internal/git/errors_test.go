package git

import "testing"

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		stderr string
		want   Kind
	}{
		{
			"worktree exists",
			"fatal: '/home/user/worktrees/app-feat' already exists",
			KindWorktreeExists,
		},
		{
			"branch checked out",
			"fatal: 'main' is already checked out at '/home/user/code/app'",
			KindBranchExists,
		},
		{
			"branch used by worktree",
			"fatal: branch 'feat' is already used by worktree at '/tmp/x'",
			KindBranchExists,
		},
		{
			"dirty worktree",
			"error: '/tmp/x' contains modified or untracked files, use --force to delete it",
			KindDirtyWorktree,
		},
		{
			"uncommitted changes",
			"error: cannot remove: worktree has uncommitted changes",
			KindDirtyWorktree,
		},
		{
			"not a repo",
			"fatal: not a git repository (or any of the parent directories): .git",
			KindNotARepo,
		},
		{
			"worktree not found",
			"fatal: '/tmp/gone' is not a working tree",
			KindWorktreeNotFound,
		},
		{
			"unknown",
			"anything else",
			KindCommandFailed,
		},
		{
			"case insensitive",
			"FATAL: NOT A GIT REPOSITORY",
			KindNotARepo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gerr := Classify(tt.stderr)
			if gerr.Kind != tt.want {
				t.Errorf("Classify(%q).Kind = %v, want %v", tt.stderr, gerr.Kind, tt.want)
			}
			if gerr.Stderr != tt.stderr {
				t.Errorf("stderr not preserved verbatim: %q", gerr.Stderr)
			}
			if gerr.Message == "" {
				t.Error("message should not be empty")
			}
		})
	}
}

func TestKindString(t *testing.T) {
	t.Parallel()

	kinds := map[Kind]string{
		KindWorktreeExists:   "worktree_exists",
		KindBranchExists:     "branch_exists",
		KindDirtyWorktree:    "dirty_worktree",
		KindNotARepo:         "not_a_repo",
		KindWorktreeNotFound: "worktree_not_found",
		KindCommandFailed:    "command_failed",
	}
	for kind, want := range kinds {
		if kind.String() != want {
			t.Errorf("%d.String() = %q, want %q", kind, kind.String(), want)
		}
	}
}

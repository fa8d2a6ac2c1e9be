package git

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// stubGit replaces the subprocess runner for the duration of a test.
// Tests using it must not run in parallel.
func stubGit(t *testing.T, fn func(dir string, args ...string) (string, string, error)) {
	t.Helper()
	old := runGit
	runGit = func(_ context.Context, dir string, args ...string) (string, string, error) {
		return fn(dir, args...)
	}
	t.Cleanup(func() { runGit = old })
}

func TestAddArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts CreateOptions
		want string
	}{
		{
			"new branch with start point",
			CreateOptions{Path: "/wt", Branch: "feat", StartPoint: "origin/main", CreateBranch: true},
			"worktree add /wt -b feat origin/main",
		},
		{
			"new branch from HEAD",
			CreateOptions{Path: "/wt", Branch: "feat", CreateBranch: true},
			"worktree add /wt -b feat",
		},
		{
			"checkout start point",
			CreateOptions{Path: "/wt", StartPoint: "v1.2.0"},
			"worktree add /wt v1.2.0",
		},
		{
			"checkout existing branch",
			CreateOptions{Path: "/wt", Branch: "feat"},
			"worktree add /wt feat",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := strings.Join(addArgs(tt.opts), " "); got != tt.want {
				t.Errorf("addArgs = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestList(t *testing.T) {
	stubGit(t, func(dir string, args ...string) (string, string, error) {
		want := "--git-dir /repo/.git worktree list --porcelain"
		if got := strings.Join(args, " "); got != want {
			t.Errorf("args = %q, want %q", got, want)
		}
		return "worktree /repo\nHEAD 1111111111111111111111111111111111111111\nbranch refs/heads/main\n", "", nil
	})

	worktrees, err := List(context.Background(), "/repo/.git")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(worktrees) != 1 || worktrees[0].Branch != "main" {
		t.Fatalf("unexpected worktrees: %+v", worktrees)
	}
}

func TestListClassifiesFailure(t *testing.T) {
	stubGit(t, func(dir string, args ...string) (string, string, error) {
		return "", "fatal: not a git repository", errors.New("exit status 128")
	})

	_, err := List(context.Background(), "/nowhere/.git")
	var gerr *GitError
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *GitError, got %T", err)
	}
	if gerr.Kind != KindNotARepo {
		t.Errorf("kind = %v, want KindNotARepo", gerr.Kind)
	}
}

func TestAdd(t *testing.T) {
	var addCalled bool
	stubGit(t, func(dir string, args ...string) (string, string, error) {
		joined := strings.Join(args, " ")
		if strings.Contains(joined, "worktree add") {
			addCalled = true
			return "", "", nil
		}
		return "worktree /repo\nHEAD 1111111111111111111111111111111111111111\nbranch refs/heads/main\n\n" +
			"worktree /wt/feat\nHEAD 2222222222222222222222222222222222222222\nbranch refs/heads/feat\n", "", nil
	})

	wt, err := Add(context.Background(), "/repo/.git", CreateOptions{Path: "/wt/feat", Branch: "feat", CreateBranch: true})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if !addCalled {
		t.Error("worktree add was never invoked")
	}
	if wt.Path != "/wt/feat" || wt.Branch != "feat" {
		t.Errorf("unexpected worktree: %+v", wt)
	}
	if wt.IsMain {
		t.Error("created worktree must not be main")
	}
}

func TestAddMissingFromRelist(t *testing.T) {
	stubGit(t, func(dir string, args ...string) (string, string, error) {
		if strings.Contains(strings.Join(args, " "), "worktree add") {
			return "", "", nil
		}
		// Re-list that does not contain the created path.
		return "worktree /repo\nHEAD 1111111111111111111111111111111111111111\nbranch refs/heads/main\n", "", nil
	})

	_, err := Add(context.Background(), "/repo/.git", CreateOptions{Path: "/wt/feat", Branch: "feat", CreateBranch: true})
	var gerr *GitError
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *GitError, got %T", err)
	}
	if gerr.Kind != KindCommandFailed {
		t.Errorf("kind = %v, want KindCommandFailed", gerr.Kind)
	}
}

func TestAddClassifiesCreateFailure(t *testing.T) {
	stubGit(t, func(dir string, args ...string) (string, string, error) {
		return "", "fatal: '/wt/feat' already exists", errors.New("exit status 128")
	})

	_, err := Add(context.Background(), "/repo/.git", CreateOptions{Path: "/wt/feat", Branch: "feat", CreateBranch: true})
	var gerr *GitError
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *GitError, got %T", err)
	}
	if gerr.Kind != KindWorktreeExists {
		t.Errorf("kind = %v, want KindWorktreeExists", gerr.Kind)
	}
}

func TestRemove(t *testing.T) {
	var got []string
	stubGit(t, func(dir string, args ...string) (string, string, error) {
		got = args
		return "", "", nil
	})

	if err := Remove(context.Background(), "/repo/.git", "/wt/feat", true); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	want := "--git-dir /repo/.git worktree remove /wt/feat --force"
	if strings.Join(got, " ") != want {
		t.Errorf("args = %q, want %q", strings.Join(got, " "), want)
	}
}

func TestRemoveDirtyRefusal(t *testing.T) {
	stubGit(t, func(dir string, args ...string) (string, string, error) {
		return "", "error: '/wt/feat' contains modified or untracked files, use --force to delete it", errors.New("exit status 1")
	})

	err := Remove(context.Background(), "/repo/.git", "/wt/feat", false)
	var gerr *GitError
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *GitError, got %T", err)
	}
	if gerr.Kind != KindDirtyWorktree {
		t.Errorf("kind = %v, want KindDirtyWorktree", gerr.Kind)
	}
}

func TestIsDirty(t *testing.T) {
	tests := []struct {
		name   string
		stdout string
		err    error
		want   bool
	}{
		{"clean", "", nil, false},
		{"whitespace only", "  \n", nil, false},
		{"modified files", " M main.go\n?? new.go\n", nil, true},
		{"status fails", "", errors.New("exit status 128"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubGit(t, func(dir string, args ...string) (string, string, error) {
				return tt.stdout, "", tt.err
			})
			if got := IsDirty(context.Background(), "/wt"); got != tt.want {
				t.Errorf("IsDirty = %v, want %v", got, tt.want)
			}
		})
	}
}

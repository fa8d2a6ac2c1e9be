package git

import (
	"context"
	"errors"
	"testing"
)

func TestDetectGitDir(t *testing.T) {
	tests := []struct {
		name   string
		stdout string
		want   string
	}{
		{"relative .git", ".git\n", "/home/user/app/.git"},
		{"dot from inside git dir", ".\n", "/home/user/app"},
		{"absolute worktree admin dir", "/home/user/app/.git/worktrees/feat\n", "/home/user/app/.git/worktrees/feat"},
		{"absolute bare repo", "/srv/git/app.git\n", "/srv/git/app.git"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubGit(t, func(dir string, args ...string) (string, string, error) {
				if dir != "/home/user/app" {
					t.Errorf("dir = %q", dir)
				}
				return tt.stdout, "", nil
			})
			got, err := DetectGitDir(context.Background(), "/home/user/app")
			if err != nil {
				t.Fatalf("DetectGitDir failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectGitDirNotARepo(t *testing.T) {
	stubGit(t, func(dir string, args ...string) (string, string, error) {
		return "", "fatal: not a git repository (or any of the parent directories): .git", errors.New("exit status 128")
	})

	_, err := DetectGitDir(context.Background(), "/tmp/empty")
	var gerr *GitError
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *GitError, got %T", err)
	}
	if gerr.Kind != KindNotARepo {
		t.Errorf("kind = %v, want KindNotARepo", gerr.Kind)
	}
}

package project

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arbor-sh/arbor/internal/git"
)

// stubRepos wires the seams so that every path in repos is a repository whose
// git dir is the mapped value; all other paths are not repositories.
func stubRepos(t *testing.T, repos map[string]string) {
	t.Helper()
	stubLoaders(t,
		func(path string) (string, error) {
			if gitDir, ok := repos[path]; ok {
				return gitDir, nil
			}
			return "", &git.GitError{Kind: git.KindNotARepo, Message: "not a git repository"}
		},
		func(gitDir string) ([]git.Worktree, error) {
			return []git.Worktree{{Path: filepath.Dir(gitDir), Branch: "main", IsMain: true}}, nil
		},
	)
}

func TestDiscoverCwdFirst(t *testing.T) {
	stubRepos(t, map[string]string{
		"/cwd/app":   "/cwd/app/.git",
		"/other/lib": "/other/lib/.git",
	})

	projects := Discover(context.Background(), DiscoverOptions{
		WorkDir:    "/cwd/app",
		Configured: []Entry{{Name: "lib", Path: "/other/lib"}},
	})

	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(projects))
	}
	if projects[0].GitDir != "/cwd/app/.git" {
		t.Errorf("cwd project must be first, got %q", projects[0].GitDir)
	}
	if projects[1].Name != "lib" {
		t.Errorf("configured name should apply, got %q", projects[1].Name)
	}
}

func TestDiscoverDedupByGitDir(t *testing.T) {
	// Two configured entries resolve to the same repository.
	stubRepos(t, map[string]string{
		"/code/app":      "/code/app/.git",
		"/code/app-link": "/code/app/.git",
	})

	projects := Discover(context.Background(), DiscoverOptions{
		Configured: []Entry{
			{Name: "first", Path: "/code/app"},
			{Name: "second", Path: "/code/app-link"},
		},
	})

	if len(projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(projects))
	}
	if projects[0].Name != "first" {
		t.Errorf("first-declared name must win, got %q", projects[0].Name)
	}
}

func TestDiscoverCwdDuplicateKeepsCwdName(t *testing.T) {
	stubRepos(t, map[string]string{
		"/code/app": "/code/app/.git",
	})

	projects := Discover(context.Background(), DiscoverOptions{
		WorkDir:    "/code/app",
		Configured: []Entry{{Name: "renamed", Path: "/code/app"}},
	})

	if len(projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(projects))
	}
	// The configured duplicate is dropped entirely; its name does not
	// overwrite the cwd project.
	if projects[0].Name != "app" {
		t.Errorf("name = %q, want app", projects[0].Name)
	}
}

func TestDiscoverScansBaseDir(t *testing.T) {
	base := t.TempDir()
	for _, name := range []string{"alpha", "beta"} {
		if err := os.Mkdir(filepath.Join(base, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	// A plain file must not become a candidate.
	if err := os.WriteFile(filepath.Join(base, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	stubRepos(t, map[string]string{
		filepath.Join(base, "alpha"): filepath.Join(base, "alpha", ".git"),
		// beta is not a repository and is skipped silently.
	})

	projects := Discover(context.Background(), DiscoverOptions{BaseDir: base})
	if len(projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(projects))
	}
	if projects[0].Name != "alpha" {
		t.Errorf("name = %q", projects[0].Name)
	}
}

func TestDiscoverMissingBaseDir(t *testing.T) {
	stubRepos(t, nil)

	projects := Discover(context.Background(), DiscoverOptions{
		BaseDir: filepath.Join(t.TempDir(), "does-not-exist"),
	})
	if len(projects) != 0 {
		t.Errorf("missing base dir should yield zero projects, got %d", len(projects))
	}
}

func TestDiscoverDeclarationOrder(t *testing.T) {
	base := t.TempDir()
	repos := make(map[string]string)
	for _, name := range []string{"c", "a", "b"} {
		path := filepath.Join(base, name)
		if err := os.Mkdir(path, 0o755); err != nil {
			t.Fatal(err)
		}
		repos[path] = filepath.Join(path, ".git")
	}
	stubRepos(t, repos)

	projects := Discover(context.Background(), DiscoverOptions{BaseDir: base})
	if len(projects) != 3 {
		t.Fatalf("expected 3 projects, got %d", len(projects))
	}
	// os.ReadDir sorts entries, so declaration order here is a, b, c
	// regardless of which load finishes first.
	for i, want := range []string{"a", "b", "c"} {
		if projects[i].Name != want {
			t.Errorf("projects[%d] = %q, want %q", i, projects[i].Name, want)
		}
	}
}

package state

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSessionRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "session.json")

	s := LoadFrom(path)
	s.Record("/code/app/.git", "/wt/app-feat")
	s.Record("/code/lib/.git", "/code/lib")
	if err := s.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := LoadFrom(path)
	if got := loaded.Get("/code/app/.git"); got != "/wt/app-feat" {
		t.Errorf("Get = %q, want /wt/app-feat", got)
	}
	if got := loaded.Get("/code/lib/.git"); got != "/code/lib" {
		t.Errorf("Get = %q, want /code/lib", got)
	}
	if got := loaded.Get("/unknown/.git"); got != "" {
		t.Errorf("unknown project should yield empty, got %q", got)
	}
}

func TestLoadFromMissing(t *testing.T) {
	t.Parallel()

	s := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	if s == nil || s.LastSelected == nil {
		t.Fatal("missing file should yield a usable empty session")
	}
}

func TestLoadFromCorrupted(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	s := LoadFrom(path)
	if len(s.LastSelected) != 0 {
		t.Error("corrupted file should yield an empty session")
	}
	s.Record("/a/.git", "/b")
	if err := s.SaveTo(path); err != nil {
		t.Fatalf("saving over a corrupted file failed: %v", err)
	}
}

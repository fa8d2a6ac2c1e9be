// Package state persists browser session data between runs, currently the
// last selected worktree path per project so the cursor can be restored.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Session stores the last selected worktree path keyed by project git dir.
type Session struct {
	LastSelected map[string]string `json:"last_selected"`
}

// Path returns the default session file location, honoring XDG_STATE_HOME.
func Path() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "arbor", "session.json")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "arbor", "session.json")
}

// LoadFrom reads the session from path. A missing or corrupted file yields an
// empty session, never an error: session state is a cache, not a source of
// truth.
func LoadFrom(path string) *Session {
	s := &Session{LastSelected: make(map[string]string)}

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	if err := json.Unmarshal(data, s); err != nil {
		return &Session{LastSelected: make(map[string]string)}
	}
	if s.LastSelected == nil {
		s.LastSelected = make(map[string]string)
	}
	return s
}

// Load reads the session from the default location.
func Load() *Session {
	return LoadFrom(Path())
}

// Record remembers the selected worktree path for a project.
func (s *Session) Record(gitDir, worktreePath string) {
	s.LastSelected[gitDir] = worktreePath
}

// Get returns the remembered worktree path for a project, or "".
func (s *Session) Get(gitDir string) string {
	return s.LastSelected[gitDir]
}

// SaveTo writes the session to path atomically, holding a flock so two arbor
// processes exiting at once don't interleave writes.
func (s *Session) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tempPath, path)
}

// Save writes the session to the default location.
func (s *Session) Save() error {
	return s.SaveTo(Path())
}

// Package config loads the arbor configuration from
// ~/.config/arbor/config.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ProjectEntry is an explicitly configured repository.
type ProjectEntry struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// Config holds the arbor configuration.
type Config struct {
	// WorktreeDir is the base directory scanned for auto-discovered projects
	// and used as the default parent for new worktrees. May start with ~.
	WorktreeDir string `toml:"worktree_dir"`
	// Projects are explicitly configured repositories, in declaration order.
	Projects []ProjectEntry `toml:"projects"`
	// BaseBranch is the default start point offered by creation flows.
	BaseBranch string `toml:"base_branch"`
	// AutoPrune runs `git worktree prune` after a successful removal.
	AutoPrune bool `toml:"auto_prune"`
	// Shell overrides the shell used when printing integration snippets.
	Shell string `toml:"shell"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		WorktreeDir: "~/worktrees",
		BaseBranch:  "main",
	}
}

// ValidatePath checks that the path is absolute or starts with ~.
// Returns an error for relative paths like "." or "..".
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil // empty means not configured
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// configPath returns the path to the config file.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "arbor", "config.toml"), nil
}

// Load reads config from ~/.config/arbor/config.toml.
// Returns Default() if the file doesn't exist (no error).
// Returns an error only if the file exists but is invalid.
func Load() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from an explicit file path.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := ValidatePath(cfg.WorktreeDir, "worktree_dir"); err != nil {
		return Default(), err
	}
	for _, p := range cfg.Projects {
		if err := ValidatePath(p.Path, "projects.path"); err != nil {
			return Default(), err
		}
	}

	return cfg, nil
}

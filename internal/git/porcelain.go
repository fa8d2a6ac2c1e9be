package git

import "strings"

// DirtyState is a tri-state dirty flag: a worktree that has not been checked
// yet is distinct from one that was checked and found clean.
type DirtyState int

const (
	DirtyUnknown DirtyState = iota
	NotDirty
	Dirty
)

// Worktree is one checkout bound to a repository.
type Worktree struct {
	Path     string     `json:"path"`
	Head     string     `json:"head"`
	Branch   string     `json:"branch,omitempty"` // empty when detached
	IsMain   bool       `json:"is_main"`
	Locked   bool       `json:"locked,omitempty"`
	Prunable bool       `json:"prunable,omitempty"`
	Dirty    DirtyState `json:"-"`
}

// Detached reports whether the worktree has no branch checked out.
func (w Worktree) Detached() bool {
	return w.Branch == ""
}

// ParsePorcelain parses `git worktree list --porcelain` output into worktree
// records. Blocks are separated by a blank line; each block is a sequence of
// tagged lines. Parsing never fails: unrecognized lines are ignored and
// missing fields stay zero-valued. Blocks without a `worktree <path>` line are
// dropped.
//
// The first parsed worktree is always marked as the main one, whether or not
// its block carried the `bare` tag. Git lists the primary checkout first, and
// relying on that ordering is what keeps single-worktree repositories
// correctly flagged.
func ParsePorcelain(output string) []Worktree {
	var worktrees []Worktree

	for _, block := range strings.Split(output, "\n\n") {
		var wt Worktree
		detached := false

		for _, line := range strings.Split(block, "\n") {
			switch {
			case strings.HasPrefix(line, "worktree "):
				wt.Path = strings.TrimPrefix(line, "worktree ")
			case strings.HasPrefix(line, "HEAD "):
				wt.Head = strings.TrimPrefix(line, "HEAD ")
			case strings.HasPrefix(line, "branch "):
				ref := strings.TrimPrefix(line, "branch ")
				wt.Branch = strings.TrimPrefix(ref, "refs/heads/")
			case line == "bare":
				// Git uses this tag on the primary entry of the listing.
				wt.IsMain = true
			case line == "locked":
				wt.Locked = true
			case line == "prunable":
				wt.Prunable = true
			case line == "detached":
				detached = true
			}
		}

		if wt.Path == "" {
			continue
		}
		if detached {
			// Detached wins over any branch line in the same block.
			wt.Branch = ""
		}
		worktrees = append(worktrees, wt)
	}

	if len(worktrees) > 0 {
		worktrees[0].IsMain = true
	}

	return worktrees
}

package git

import "strings"

// Kind identifies a category of git failure. The set is closed; anything the
// classifier does not recognize becomes KindCommandFailed.
type Kind int

const (
	KindCommandFailed Kind = iota
	KindWorktreeExists
	KindBranchExists
	KindDirtyWorktree
	KindNotARepo
	KindWorktreeNotFound
)

// String returns a stable identifier for the kind, used in logs and JSON.
func (k Kind) String() string {
	switch k {
	case KindWorktreeExists:
		return "worktree_exists"
	case KindBranchExists:
		return "branch_exists"
	case KindDirtyWorktree:
		return "dirty_worktree"
	case KindNotARepo:
		return "not_a_repo"
	case KindWorktreeNotFound:
		return "worktree_not_found"
	default:
		return "command_failed"
	}
}

// GitError is a classified failure from a git subprocess. Message is a short
// human-readable description; Stderr carries the subprocess output verbatim
// for diagnostics.
type GitError struct {
	Kind    Kind
	Message string
	Stderr  string
}

func (e *GitError) Error() string {
	return e.Message
}

// classifyRule maps a lower-cased stderr substring to a kind and message.
// Rules are checked in order and the first match wins, so more specific
// phrases must be declared before phrases they could be mistaken for.
type classifyRule struct {
	substr  string
	kind    Kind
	message string
}

var classifyRules = []classifyRule{
	{"already exists", KindWorktreeExists, "worktree path already exists"},
	{"is already checked out", KindBranchExists, "branch is already checked out in another worktree"},
	{"is already used by worktree", KindBranchExists, "branch is already checked out in another worktree"},
	{"contains modified or untracked files", KindDirtyWorktree, "worktree contains uncommitted changes"},
	{"uncommitted changes", KindDirtyWorktree, "worktree contains uncommitted changes"},
	{"not a git repository", KindNotARepo, "not a git repository"},
	{"is not a working tree", KindWorktreeNotFound, "no such worktree"},
	{"no working trees", KindWorktreeNotFound, "no such worktree"},
}

// Classify maps raw stderr text to a GitError. Matching is case-insensitive
// substring search over the rules above; unrecognized text falls through to
// KindCommandFailed. Stderr is preserved verbatim in every case.
func Classify(stderr string) *GitError {
	lowered := strings.ToLower(stderr)
	for _, rule := range classifyRules {
		if strings.Contains(lowered, rule.substr) {
			return &GitError{Kind: rule.kind, Message: rule.message, Stderr: stderr}
		}
	}
	return &GitError{Kind: KindCommandFailed, Message: "git command failed", Stderr: stderr}
}

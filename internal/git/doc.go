// Package git provides git worktree operations via shell commands.
//
// All operations use [os/exec] to call the git CLI directly rather than a Go
// git library. This keeps behavior identical to what users see on their own
// terminals and works with their existing configuration (SSH keys, credential
// helpers, aliases).
//
// Only the worktree subset needed by arbor is covered:
//
//   - [List]: parse `git worktree list --porcelain` into [Worktree] records
//   - [Add]: create a worktree for a new or existing branch
//   - [Remove], [Prune]: remove worktrees and stale administrative entries
//   - [IsDirty]: conservative uncommitted-changes check
//   - [DetectGitDir]: resolve a path to its repository's git directory
//
// Every operation returns either a value or a [*GitError] carrying one of the
// closed [Kind] values plus the raw stderr; nothing panics across the package
// boundary.
package git

// Package match ranks fuzzy name matches for jump and remove targeting.
//
// The TUI filter uses plain substring matching; this package implements the
// tiered scorer used by the non-interactive commands, where the caller needs
// to know whether a query picked a single worktree decisively enough to act
// without prompting.
package match

import (
	"path/filepath"
	"sort"
	"strings"
)

// Score tiers. Tiers are mutually exclusive: the first satisfied tier wins,
// scores are never summed.
const (
	scoreExact       = 1000
	scorePrefix      = 500
	scoreSubstring   = 200
	scoreSubsequence = 50
)

// Score rates how well query matches target, case-insensitively.
// Returns 0 when the query is no subsequence of the target at all.
func Score(query, target string) int {
	q := strings.ToLower(query)
	t := strings.ToLower(target)

	switch {
	case q == t:
		return scoreExact
	case strings.HasPrefix(t, q):
		return scorePrefix
	case strings.Contains(t, q):
		return scoreSubstring
	case isSubsequence(q, t):
		return scoreSubsequence
	default:
		return 0
	}
}

// isSubsequence reports whether every rune of q appears in t in order,
// not necessarily contiguously.
func isSubsequence(q, t string) bool {
	if q == "" {
		return true
	}
	runes := []rune(q)
	i := 0
	for _, r := range t {
		if r == runes[i] {
			i++
			if i == len(runes) {
				return true
			}
		}
	}
	return false
}

// Candidate is one (project, worktree) pair offered for matching.
type Candidate struct {
	ProjectName string
	Branch      string // empty for detached worktrees
	Path        string
}

// Match is a candidate that scored above zero for some query.
type Match struct {
	Candidate
	Score int
}

// Rank scores the query against every candidate and returns the survivors in
// descending score order. Per candidate the score is the best of: the branch
// name, the project name at half weight (branch matches should beat
// project-wide ones), and the final path segment (which covers detached
// worktrees that have no branch). Zero scorers are dropped; ties keep the
// original discovery order.
func Rank(query string, candidates []Candidate) []Match {
	var matches []Match
	for _, c := range candidates {
		score := Score(query, c.Branch)
		if s := Score(query, c.ProjectName) / 2; s > score {
			score = s
		}
		if s := Score(query, filepath.Base(c.Path)); s > score {
			score = s
		}
		if score > 0 {
			matches = append(matches, Match{Candidate: c, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// Unambiguous reports whether the ranked result set has a clear winner: a
// single match, or a top score that beats the runner-up by more than 1.5x.
// Anything closer is a near-tie the caller should disambiguate interactively
// instead of silently picking.
func Unambiguous(matches []Match) bool {
	switch len(matches) {
	case 0:
		return false
	case 1:
		return true
	default:
		return 2*matches[0].Score > 3*matches[1].Score
	}
}

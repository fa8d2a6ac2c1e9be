package main

import (
	"fmt"
	"strings"

	"github.com/arbor-sh/arbor/internal/match"
	"github.com/arbor-sh/arbor/internal/project"
)

// resolveJump matches the query against every (project, worktree) pair.
// It returns the target when the ranking has a clear winner, or the ranked
// matches when it does not so the caller can disambiguate.
func resolveJump(query string, projects []*project.Project) (target, []match.Match, error) {
	cands, index := candidates(projects)
	matches := match.Rank(query, cands)

	if len(matches) == 0 {
		return target{}, nil, fmt.Errorf("no worktree matches %q", query)
	}
	if !match.Unambiguous(matches) {
		return target{}, matches, nil
	}
	return index[matches[0].Path], nil, nil
}

// describeMatches formats ranked matches for an ambiguity error message.
func describeMatches(matches []match.Match, limit int) string {
	if len(matches) > limit {
		matches = matches[:limit]
	}
	var names []string
	for _, m := range matches {
		name := m.ProjectName + ":" + m.Branch
		if m.Branch == "" {
			name = m.ProjectName + ":" + m.Path
		}
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}

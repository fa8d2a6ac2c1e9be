package ui

import (
	"strings"

	"github.com/arbor-sh/arbor/internal/git"
	"github.com/arbor-sh/arbor/internal/project"
)

// View identifies the browser's current screen. All dialog views return to
// ViewList on cancellation; quitting is an external action, not a view.
type View int

const (
	ViewList View = iota
	ViewCreate
	ViewConfirmDelete
	ViewProjectPicker
	ViewHelp
)

// ItemKind distinguishes rows of the flattened list.
type ItemKind int

const (
	ItemProject ItemKind = iota
	ItemWorktree
)

// Item is one row of the flattened project/worktree list: either a project
// header or one of its worktrees.
type Item struct {
	Kind     ItemKind
	Project  *project.Project
	Worktree *git.Worktree // nil for project headers
}

// State is the browser's application state. Transitions never mutate a State
// in place: every method returns a new value with the derived list rebuilt,
// so a concurrent reader never observes a torn intermediate. The only
// invariant callers rely on is that Cursor stays within
// [0, max(0, len(Items)-1)].
type State struct {
	Projects []*project.Project
	Active   *project.Project
	Items    []Item
	Cursor   int
	Filter   string
	View     View
	Loading  bool
	Err      string
	// ExitPath is the worktree path selected for the shell to jump to.
	ExitPath   string
	Collapsed  map[string]bool
	ShowDetail bool
}

// NewState builds the initial state from a loaded project list.
func NewState(projects []*project.Project) State {
	s := State{
		Projects:  projects,
		Collapsed: map[string]bool{},
	}
	if len(projects) > 0 {
		s.Active = projects[0]
	}
	s.Items = buildItems(projects, s.Collapsed, "")
	return s
}

// matchesFilter is the browser's filter predicate: case-insensitive substring
// against the worktree's branch or its project's name.
func matchesFilter(projectName string, wt git.Worktree, filter string) bool {
	f := strings.ToLower(filter)
	return strings.Contains(strings.ToLower(wt.Branch), f) ||
		strings.Contains(strings.ToLower(projectName), f)
}

// buildItems derives the flattened, filtered list. For each project in order:
// include a header when the project name matches the filter or any worktree
// does; beneath a non-collapsed header, list all worktrees for an empty
// filter, otherwise only the matching ones.
func buildItems(projects []*project.Project, collapsed map[string]bool, filter string) []Item {
	var items []Item

	for _, p := range projects {
		nameMatch := filter == "" ||
			strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter))

		var matching []*git.Worktree
		for i := range p.Worktrees {
			if filter == "" || matchesFilter(p.Name, p.Worktrees[i], filter) {
				matching = append(matching, &p.Worktrees[i])
			}
		}

		if !nameMatch && len(matching) == 0 {
			continue
		}

		items = append(items, Item{Kind: ItemProject, Project: p})
		if collapsed[p.Name] {
			continue
		}
		for _, wt := range matching {
			items = append(items, Item{Kind: ItemWorktree, Project: p, Worktree: wt})
		}
	}

	return items
}

// clampCursor keeps the cursor inside the current list.
func (s State) clampCursor() State {
	if len(s.Items) == 0 {
		s.Cursor = 0
		return s
	}
	if s.Cursor > len(s.Items)-1 {
		s.Cursor = len(s.Items) - 1
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	}
	return s
}

// rebuild recomputes the derived list and re-clamps the cursor.
func (s State) rebuild() State {
	s.Items = buildItems(s.Projects, s.Collapsed, s.Filter)
	return s.clampCursor()
}

// Current returns the item under the cursor, or nil for an empty list.
func (s State) Current() *Item {
	if len(s.Items) == 0 || s.Cursor >= len(s.Items) {
		return nil
	}
	return &s.Items[s.Cursor]
}

// Move shifts the cursor by delta, wrapping circularly at both ends.
// A move on an empty list is a no-op.
func (s State) Move(delta int) State {
	n := len(s.Items)
	if n == 0 {
		return s
	}
	s.Cursor = ((s.Cursor+delta)%n + n) % n
	if item := s.Current(); item != nil {
		s.Active = item.Project
	}
	return s
}

// MoveTo places the cursor on the item whose worktree path equals path,
// leaving the state unchanged when the path is not in the list.
func (s State) MoveTo(path string) State {
	for i, item := range s.Items {
		if item.Kind == ItemWorktree && item.Worktree.Path == path {
			s.Cursor = i
			s.Active = item.Project
			return s
		}
	}
	return s
}

// SetFilter replaces the filter text and rebuilds the list.
func (s State) SetFilter(filter string) State {
	s.Filter = filter
	return s.rebuild()
}

// ClearFilter resets the filter, rebuilds the unfiltered list, clears any
// displayed error and returns to the list view.
func (s State) ClearFilter() State {
	s.Filter = ""
	s.Err = ""
	s.View = ViewList
	return s.rebuild()
}

// ToggleCollapse flips the collapsed flag for the project under the cursor.
func (s State) ToggleCollapse() State {
	item := s.Current()
	if item == nil {
		return s
	}

	collapsed := make(map[string]bool, len(s.Collapsed))
	for k, v := range s.Collapsed {
		collapsed[k] = v
	}
	collapsed[item.Project.Name] = !collapsed[item.Project.Name]
	s.Collapsed = collapsed
	return s.rebuild()
}

// ToggleDetail flips the detail pane.
func (s State) ToggleDetail() State {
	s.ShowDetail = !s.ShowDetail
	return s
}

// ShowView switches to a dialog view.
func (s State) ShowView(v View) State {
	s.View = v
	return s
}

// CloseDialog returns to the list view without touching the list.
func (s State) CloseDialog() State {
	s.View = ViewList
	return s
}

// RequestDelete enters the confirm-delete view, but only when the cursor is
// on a non-main worktree row. On a project header or the main worktree it is
// a silent no-op: main worktrees can never be deleted here, whatever the
// caller intended.
func (s State) RequestDelete() State {
	item := s.Current()
	if item == nil || item.Kind != ItemWorktree || item.Worktree.IsMain {
		return s
	}
	s.View = ViewConfirmDelete
	return s
}

// SetProjects replaces the project collection after a create/delete/refresh,
// rebuilding the list against the existing filter and collapse state and
// clearing the loading flag.
func (s State) SetProjects(projects []*project.Project) State {
	s.Projects = projects
	s.Loading = false

	active := s.Active
	s.Active = nil
	if active != nil {
		for _, p := range projects {
			if p.GitDir == active.GitDir {
				s.Active = p
				break
			}
		}
	}
	if s.Active == nil && len(projects) > 0 {
		s.Active = projects[0]
	}

	return s.rebuild()
}

// SetDirty merges polled dirty states into the matching worktrees. Projects
// are replaced rather than patched so a render in progress keeps seeing the
// old collection.
func (s State) SetDirty(statuses map[string]git.DirtyState) State {
	projects := make([]*project.Project, len(s.Projects))
	for i, p := range s.Projects {
		next := *p
		next.Worktrees = make([]git.Worktree, len(p.Worktrees))
		copy(next.Worktrees, p.Worktrees)
		for j := range next.Worktrees {
			if state, ok := statuses[next.Worktrees[j].Path]; ok {
				next.Worktrees[j].Dirty = state
			}
		}
		projects[i] = &next
	}
	return s.SetProjects(projects)
}

// SetError records an error message for display.
func (s State) SetError(msg string) State {
	s.Err = msg
	s.Loading = false
	return s
}

// SelectCurrent marks the worktree under the cursor as the exit path.
// Selecting a project header jumps to its main worktree.
func (s State) SelectCurrent() State {
	item := s.Current()
	if item == nil {
		return s
	}
	switch item.Kind {
	case ItemWorktree:
		s.ExitPath = item.Worktree.Path
	case ItemProject:
		if item.Project.MainPath != "" {
			s.ExitPath = item.Project.MainPath
		}
	}
	return s
}

// Package ui implements the interactive worktree browser.
//
// The browser is split into a pure state machine ([State] and its transition
// methods) and a thin bubbletea model that translates key presses into
// transitions and runs git operations asynchronously. All list/cursor/filter
// logic lives in the state machine so it can be tested without a terminal.
package ui

import (
	"context"
	"path/filepath"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
	"github.com/sahilm/fuzzy"

	"github.com/arbor-sh/arbor/internal/forge"
	"github.com/arbor-sh/arbor/internal/git"
	"github.com/arbor-sh/arbor/internal/project"
	"github.com/arbor-sh/arbor/internal/state"
)

// Ops are the operations the browser dispatches upward. The state machine
// itself never invokes git; it only sees the resulting data.
type Ops struct {
	Discover func(ctx context.Context) []*project.Project
	Add      func(ctx context.Context, gitDir string, opts git.CreateOptions) (*git.Worktree, error)
	Remove   func(ctx context.Context, gitDir, path string, force bool) error
	IsDirty  func(ctx context.Context, path string) bool
}

// Options configure the browser.
type Options struct {
	Ops         Ops
	WorktreeDir string // parent directory for new worktrees
	BaseBranch  string // start point offered by the create dialog
	Session     *state.Session // optional cursor restore, may be nil
	PRs         *forge.Cache   // optional PR lookups, may be nil
	Filter      string         // initial filter text, usually empty
}

type (
	projectsMsg []*project.Project
	// dirtyMsg carries the channel it was received from so the re-armed wait
	// stays bound to its own poll after a refresh swaps in a new one.
	dirtyMsg struct {
		statuses map[string]git.DirtyState
		ch       chan map[string]git.DirtyState
	}
	addedMsg        *git.Worktree
	removedMsg      struct{}
	opErrMsg        struct{ err error }
	dirtyCheckedMsg bool
	prMsg           struct {
		path string
		pr   *forge.PR
	}
)

// Model is the bubbletea model wrapping the browser state machine.
type Model struct {
	ctx  context.Context
	ops  Ops
	opts Options

	state     State
	restored  bool // session cursor restore happens only on the first load
	filtering bool

	filterInput textinput.Model
	branchInput textinput.Model
	pickerInput textinput.Model
	pickerIndex int

	confirmDirty bool

	spin   spinner.Model
	poller *project.DirtyPoller

	prs map[string]*forge.PR

	width, height int
}

// New creates a browser model. The initial project load happens in Init.
func New(ctx context.Context, opts Options) *Model {
	filter := textinput.New()
	filter.Placeholder = "filter"
	filter.Prompt = "/"

	branch := textinput.New()
	branch.Placeholder = "branch name"
	branch.SetWidth(40)

	picker := textinput.New()
	picker.Placeholder = "project"
	picker.SetWidth(40)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	s := NewState(nil)
	s.Loading = true
	if opts.Filter != "" {
		s.Filter = opts.Filter
		filter.SetValue(opts.Filter)
	}

	return &Model{
		ctx:         ctx,
		ops:         opts.Ops,
		opts:        opts,
		state:       s,
		filterInput: filter,
		branchInput: branch,
		pickerInput: picker,
		spin:        sp,
		prs:         make(map[string]*forge.PR),
	}
}

// ExitPath returns the worktree path selected for the shell, if any.
func (m *Model) ExitPath() string {
	return m.state.ExitPath
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.discoverCmd())
}

func (m *Model) discoverCmd() tea.Cmd {
	return func() tea.Msg {
		return projectsMsg(m.ops.Discover(m.ctx))
	}
}

// startDirtyPoll kicks off background dirty polling for every worktree,
// cancelling any poll still running from a previous load.
func (m *Model) startDirtyPoll() tea.Cmd {
	if m.poller != nil {
		m.poller.Cancel()
	}
	var paths []string
	for _, p := range m.state.Projects {
		for _, wt := range p.Worktrees {
			paths = append(paths, wt.Path)
		}
	}
	if len(paths) == 0 {
		return nil
	}

	m.poller = &project.DirtyPoller{}
	ch := make(chan map[string]git.DirtyState, 1)

	poller := m.poller
	go func() {
		poller.Poll(m.ctx, paths, func(statuses map[string]git.DirtyState) {
			snapshot := make(map[string]git.DirtyState, len(statuses))
			for k, v := range statuses {
				snapshot[k] = v
			}
			ch <- snapshot
		})
		close(ch)
	}()

	return m.waitDirty(ch)
}

func (m *Model) waitDirty(ch chan map[string]git.DirtyState) tea.Cmd {
	return func() tea.Msg {
		statuses, ok := <-ch
		if !ok {
			return nil
		}
		return dirtyMsg{statuses: statuses, ch: ch}
	}
}

func (m *Model) removeCmd(gitDir, path string, force bool) tea.Cmd {
	return func() tea.Msg {
		if err := m.ops.Remove(m.ctx, gitDir, path, force); err != nil {
			return opErrMsg{err}
		}
		return removedMsg{}
	}
}

func (m *Model) addCmd(gitDir string, opts git.CreateOptions) tea.Cmd {
	return func() tea.Msg {
		wt, err := m.ops.Add(m.ctx, gitDir, opts)
		if err != nil {
			return opErrMsg{err}
		}
		return addedMsg(wt)
	}
}

func (m *Model) dirtyCheckCmd(path string) tea.Cmd {
	return func() tea.Msg {
		return dirtyCheckedMsg(m.ops.IsDirty(m.ctx, path))
	}
}

func (m *Model) prCmd(branch, dir string) tea.Cmd {
	cache := m.opts.PRs
	if cache == nil {
		return nil
	}
	return func() tea.Msg {
		return prMsg{path: dir, pr: cache.Lookup(m.ctx, branch, dir)}
	}
}

// lookupPR fetches PR info for the worktree under the cursor if the detail
// pane is open and no lookup has landed yet.
func (m *Model) lookupPR() tea.Cmd {
	if !m.state.ShowDetail || m.opts.PRs == nil {
		return nil
	}
	item := m.state.Current()
	if item == nil || item.Kind != ItemWorktree || item.Worktree.Detached() {
		return nil
	}
	if _, ok := m.prs[item.Worktree.Path]; ok {
		return nil
	}
	return m.prCmd(item.Worktree.Branch, item.Worktree.Path)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case projectsMsg:
		m.state = m.state.SetProjects(msg)
		if !m.restored {
			m.restored = true
			if s := m.opts.Session; s != nil && m.state.Active != nil {
				if last := s.Get(m.state.Active.GitDir); last != "" {
					m.state = m.state.MoveTo(last)
				}
			}
		}
		return m, m.startDirtyPoll()

	case dirtyMsg:
		m.state = m.state.SetDirty(msg.statuses)
		return m, m.waitDirty(msg.ch)

	case addedMsg:
		m.state.ExitPath = msg.Path
		m.recordSession(msg.Path)
		return m, tea.Quit

	case removedMsg:
		m.state.Loading = true
		m.state = m.state.CloseDialog()
		return m, tea.Batch(m.spin.Tick, m.discoverCmd())

	case opErrMsg:
		m.state = m.state.SetError(msg.err.Error()).CloseDialog()
		return m, nil

	case dirtyCheckedMsg:
		m.confirmDirty = bool(msg)
		return m, nil

	case prMsg:
		m.prs[msg.path] = msg.pr
		return m, nil

	case tea.KeyPressMsg:
		return m.updateKey(msg)
	}

	return m, nil
}

func (m *Model) updateKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitCleanup()
		m.state.ExitPath = ""
		return m, tea.Quit
	}

	switch m.state.View {
	case ViewCreate:
		return m.updateCreate(msg)
	case ViewConfirmDelete:
		return m.updateConfirm(msg)
	case ViewProjectPicker:
		return m.updatePicker(msg)
	case ViewHelp:
		m.state = m.state.CloseDialog()
		return m, nil
	default:
		return m.updateList(msg)
	}
}

func (m *Model) quitCleanup() {
	if m.poller != nil {
		m.poller.Cancel()
	}
}

func (m *Model) recordSession(path string) {
	if m.opts.Session == nil || m.state.Active == nil {
		return
	}
	m.opts.Session.Record(m.state.Active.GitDir, path)
	_ = m.opts.Session.Save()
}

func (m *Model) updateList(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.filtering {
		switch msg.String() {
		case "esc":
			m.filtering = false
			m.filterInput.SetValue("")
			m.filterInput.Blur()
			m.state = m.state.ClearFilter()
			return m, nil
		case "enter":
			m.filtering = false
			m.filterInput.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.filterInput, cmd = m.filterInput.Update(msg)
			m.state = m.state.SetFilter(m.filterInput.Value())
			return m, cmd
		}
	}

	switch msg.String() {
	case "q":
		m.quitCleanup()
		m.state.ExitPath = ""
		return m, tea.Quit

	case "enter":
		m.state = m.state.SelectCurrent()
		if m.state.ExitPath == "" {
			return m, nil
		}
		m.quitCleanup()
		m.recordSession(m.state.ExitPath)
		return m, tea.Quit

	case "j", "down":
		m.state = m.state.Move(1)
		return m, m.lookupPR()

	case "k", "up":
		m.state = m.state.Move(-1)
		return m, m.lookupPR()

	case "g", "home":
		m.state = m.state.Move(-m.state.Cursor)
		return m, m.lookupPR()

	case "/":
		m.filtering = true
		m.filterInput.SetValue(m.state.Filter)
		return m, m.filterInput.Focus()

	case "esc":
		m.state = m.state.ClearFilter()
		m.filterInput.SetValue("")
		return m, nil

	case "tab", "space":
		m.state = m.state.ToggleCollapse()
		return m, nil

	case "n":
		m.branchInput.SetValue("")
		m.state = m.state.ShowView(ViewCreate)
		return m, m.branchInput.Focus()

	case "d":
		before := m.state.View
		m.state = m.state.RequestDelete()
		if m.state.View == before {
			return m, nil
		}
		m.confirmDirty = false
		return m, m.dirtyCheckCmd(m.state.Current().Worktree.Path)

	case "p":
		m.pickerInput.SetValue("")
		m.pickerIndex = 0
		m.state = m.state.ShowView(ViewProjectPicker)
		return m, m.pickerInput.Focus()

	case "r":
		m.state.Loading = true
		return m, tea.Batch(m.spin.Tick, m.discoverCmd())

	case "v":
		m.state = m.state.ToggleDetail()
		return m, m.lookupPR()

	case "y":
		if item := m.state.Current(); item != nil && item.Kind == ItemWorktree {
			_ = clipboard.WriteAll(item.Worktree.Path)
		}
		return m, nil

	case "?":
		m.state = m.state.ShowView(ViewHelp)
		return m, nil
	}

	return m, nil
}

func (m *Model) updateCreate(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.branchInput.Blur()
		m.state = m.state.CloseDialog()
		return m, nil

	case "enter":
		branch := strings.TrimSpace(m.branchInput.Value())
		p := m.state.Active
		if branch == "" || p == nil {
			return m, nil
		}
		m.branchInput.Blur()
		m.state.Loading = true
		folder := p.Name + "-" + strings.ReplaceAll(branch, "/", "-")
		return m, m.addCmd(p.GitDir, git.CreateOptions{
			Path:         filepath.Join(m.opts.WorktreeDir, folder),
			Branch:       branch,
			StartPoint:   m.opts.BaseBranch,
			CreateBranch: true,
		})
	}

	var cmd tea.Cmd
	m.branchInput, cmd = m.branchInput.Update(msg)
	return m, cmd
}

func (m *Model) updateConfirm(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	item := m.state.Current()
	if item == nil || item.Kind != ItemWorktree {
		m.state = m.state.CloseDialog()
		return m, nil
	}

	switch msg.String() {
	case "y", "enter":
		if m.confirmDirty {
			// Dirty worktrees need the explicit force key.
			return m, nil
		}
		m.state.Loading = true
		return m, m.removeCmd(item.Project.GitDir, item.Worktree.Path, false)

	case "f":
		m.state.Loading = true
		return m, m.removeCmd(item.Project.GitDir, item.Worktree.Path, true)

	case "esc", "n":
		m.state = m.state.CloseDialog()
		return m, nil
	}

	return m, nil
}

// fuzzyFind ranks names against query and returns their original indices.
func fuzzyFind(query string, names []string) []int {
	matches := fuzzy.Find(query, names)
	indices := make([]int, len(matches))
	for i, match := range matches {
		indices[i] = match.Index
	}
	return indices
}

// pickerMatches returns project indices matching the picker filter, ranked by
// sahilm/fuzzy when a filter is set.
func (m *Model) pickerMatches() []int {
	query := strings.TrimSpace(m.pickerInput.Value())
	if query == "" {
		all := make([]int, len(m.state.Projects))
		for i := range all {
			all[i] = i
		}
		return all
	}

	names := make([]string, len(m.state.Projects))
	for i, p := range m.state.Projects {
		names[i] = p.Name
	}
	return fuzzyFind(query, names)
}

func (m *Model) updatePicker(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	matches := m.pickerMatches()

	switch msg.String() {
	case "esc":
		m.pickerInput.Blur()
		m.state = m.state.CloseDialog()
		return m, nil

	case "up":
		if m.pickerIndex > 0 {
			m.pickerIndex--
		}
		return m, nil

	case "down":
		if m.pickerIndex < len(matches)-1 {
			m.pickerIndex++
		}
		return m, nil

	case "enter":
		if m.pickerIndex < len(matches) {
			p := m.state.Projects[matches[m.pickerIndex]]
			m.pickerInput.Blur()
			m.state = m.state.CloseDialog()
			m.state.Active = p
			if p.MainPath != "" {
				m.state = m.state.MoveTo(p.MainPath)
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.pickerInput, cmd = m.pickerInput.Update(msg)
	if m.pickerIndex >= len(m.pickerMatches()) {
		m.pickerIndex = 0
	}
	return m, cmd
}

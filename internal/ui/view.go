package ui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/arbor-sh/arbor/internal/git"
)

func (m *Model) View() tea.View {
	if m.state.ExitPath != "" {
		return tea.NewView("")
	}

	var b strings.Builder
	b.WriteString(titleStyle().Render("arbor"))
	if m.state.Loading {
		b.WriteString("  " + m.spin.View() + mutedStyle().Render("loading"))
	}
	b.WriteString("\n\n")

	switch m.state.View {
	case ViewCreate:
		b.WriteString(m.viewCreate())
	case ViewConfirmDelete:
		b.WriteString(m.viewConfirm())
	case ViewProjectPicker:
		b.WriteString(m.viewPicker())
	case ViewHelp:
		b.WriteString(m.viewHelp())
	default:
		b.WriteString(m.viewList())
	}

	if m.state.Err != "" {
		b.WriteString("\n" + errorStyle().Render("error: "+m.state.Err))
	}
	b.WriteString(m.viewFooter())

	return tea.NewView(b.String())
}

func (m *Model) viewList() string {
	if len(m.state.Items) == 0 {
		if m.state.Filter != "" {
			return mutedStyle().Render(fmt.Sprintf("no matches for %q", m.state.Filter))
		}
		return mutedStyle().Render("no projects found")
	}

	var b strings.Builder
	for i, item := range m.state.Items {
		cursor := "  "
		if i == m.state.Cursor {
			cursor = selectedStyle().Render("> ")
		}

		switch item.Kind {
		case ItemProject:
			marker := "▾"
			if m.state.Collapsed[item.Project.Name] {
				marker = "▸"
			}
			line := projectStyle().Render(fmt.Sprintf("%s %s", marker, item.Project.Name))
			line += mutedStyle().Render(fmt.Sprintf("  (%d)", len(item.Project.Worktrees)))
			b.WriteString(cursor + line + "\n")

		case ItemWorktree:
			b.WriteString(cursor + "  " + m.renderWorktree(item, i == m.state.Cursor) + "\n")
		}
	}

	if m.state.ShowDetail {
		b.WriteString("\n" + m.viewDetail())
	}
	return b.String()
}

func (m *Model) renderWorktree(item Item, selected bool) string {
	wt := item.Worktree

	name := wt.Branch
	if wt.Detached() {
		name = mutedStyle().Render("(detached " + shortHead(wt.Head) + ")")
	} else if selected {
		name = selectedStyle().Render(name)
	}

	var badges []string
	if wt.IsMain {
		badges = append(badges, mainBadgeStyle().Render("[main]"))
	}
	if wt.Dirty == git.Dirty {
		badges = append(badges, dirtyStyle().Render("●"))
	}
	if wt.Locked {
		badges = append(badges, mutedStyle().Render("[locked]"))
	}
	if wt.Prunable {
		badges = append(badges, mutedStyle().Render("[prunable]"))
	}

	line := name
	if len(badges) > 0 {
		line += " " + strings.Join(badges, " ")
	}
	return line
}

func (m *Model) viewDetail() string {
	item := m.state.Current()
	if item == nil || item.Kind != ItemWorktree {
		return ""
	}
	wt := item.Worktree

	var lines []string
	lines = append(lines, "path    "+wt.Path)
	lines = append(lines, "head    "+shortHead(wt.Head))
	switch wt.Dirty {
	case git.Dirty:
		lines = append(lines, "status  "+dirtyStyle().Render("uncommitted changes"))
	case git.NotDirty:
		lines = append(lines, "status  clean")
	default:
		lines = append(lines, "status  "+mutedStyle().Render("checking..."))
	}
	if pr, ok := m.prs[wt.Path]; ok && pr != nil {
		lines = append(lines, fmt.Sprintf("pr      #%d %s (%s)", pr.Number, pr.Title, strings.ToLower(pr.State)))
	}

	return dialogStyle().Render(strings.Join(lines, "\n"))
}

func (m *Model) viewCreate() string {
	projectName := "?"
	if m.state.Active != nil {
		projectName = m.state.Active.Name
	}
	content := fmt.Sprintf("New worktree in %s (from %s)\n\n%s",
		projectStyle().Render(projectName),
		m.opts.BaseBranch,
		m.branchInput.View())
	return dialogStyle().Render(content)
}

func (m *Model) viewConfirm() string {
	item := m.state.Current()
	if item == nil || item.Kind != ItemWorktree {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Delete worktree %s?\n%s\n",
		selectedStyle().Render(item.Worktree.Branch),
		mutedStyle().Render(item.Worktree.Path))
	if m.confirmDirty {
		b.WriteString(dirtyStyle().Render("\nworktree has uncommitted changes — press f to force") + "\n")
		b.WriteString(mutedStyle().Render("esc cancel"))
	} else {
		b.WriteString(mutedStyle().Render("\ny confirm · f force · esc cancel"))
	}
	return dialogStyle().Render(b.String())
}

func (m *Model) viewPicker() string {
	var b strings.Builder
	b.WriteString("Switch project\n\n")
	b.WriteString(m.pickerInput.View() + "\n\n")

	matches := m.pickerMatches()
	for i, idx := range matches {
		p := m.state.Projects[idx]
		if i == m.pickerIndex {
			b.WriteString(selectedStyle().Render("> "+p.Name) + "\n")
		} else {
			b.WriteString("  " + p.Name + "\n")
		}
	}
	if len(matches) == 0 {
		b.WriteString(mutedStyle().Render("no matching projects") + "\n")
	}
	return dialogStyle().Render(b.String())
}

func (m *Model) viewHelp() string {
	help := [][2]string{
		{"enter", "jump to worktree"},
		{"j/k", "move selection"},
		{"/", "filter"},
		{"tab", "collapse project"},
		{"n", "new worktree"},
		{"d", "delete worktree"},
		{"p", "switch project"},
		{"v", "detail pane"},
		{"y", "copy path"},
		{"r", "refresh"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString("Keys\n\n")
	for _, h := range help {
		fmt.Fprintf(&b, "%s  %s\n", selectedStyle().Render(fmt.Sprintf("%-6s", h[0])), h[1])
	}
	return dialogStyle().Render(b.String())
}

func (m *Model) viewFooter() string {
	if m.filtering {
		return "\n" + m.filterInput.View()
	}
	if m.state.Filter != "" {
		return helpStyle().Render("filter: " + m.state.Filter + " (esc to clear)")
	}
	return helpStyle().Render("enter jump · n new · d delete · / filter · ? help · q quit")
}

func shortHead(head string) string {
	if len(head) > 8 {
		return head[:8]
	}
	return head
}

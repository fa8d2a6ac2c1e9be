package ui

import (
	"charm.land/lipgloss/v2"
	catppuccin "github.com/catppuccin/go"
)

var flavor = catppuccin.Mocha

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(flavor.Mauve().Hex))
}

func projectStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(flavor.Blue().Hex))
}

func selectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(flavor.Peach().Hex))
}

func mainBadgeStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(flavor.Green().Hex))
}

func dirtyStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(flavor.Yellow().Hex))
}

func mutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(flavor.Overlay0().Hex))
}

func errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(flavor.Red().Hex))
}

func dialogStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(flavor.Surface1().Hex)).
		Padding(1, 2)
}

func helpStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(flavor.Overlay0().Hex)).
		MarginTop(1)
}

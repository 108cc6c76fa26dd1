package bubbletea

import "github.com/charmbracelet/lipgloss"

var (
	primary   = lipgloss.Color("#7C3AED")
	secondary = lipgloss.Color("#10B981")
	muted     = lipgloss.Color("#6B7280")
	danger    = lipgloss.Color("#EF4444")
	gold      = lipgloss.Color("#F59E0B")

	appStyle = lipgloss.NewStyle().Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primary)

	labelStyle = lipgloss.NewStyle().
			Foreground(secondary).
			Bold(true).
			Width(10)

	focusedLabelStyle = labelStyle.
				Foreground(primary)

	mutedStyle = lipgloss.NewStyle().Foreground(muted)

	errorStyle = lipgloss.NewStyle().Foreground(danger)

	highlightStyle = lipgloss.NewStyle().Foreground(gold)

	selectedStyle = lipgloss.NewStyle().
			Background(primary).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true)

	locationStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Width(28).
			MarginRight(2)
)

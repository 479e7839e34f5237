package tui

import "github.com/charmbracelet/lipgloss"

var (
	Amber     = lipgloss.Color("#FFB000")
	Cyan      = lipgloss.Color("#00D4AA")
	Red       = lipgloss.Color("#FF4136")
	MidGray   = lipgloss.Color("#3a3a4e")
	LightGray = lipgloss.Color("#aaaaaa")
	White     = lipgloss.Color("#e0e0e0")

	DisplayStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true).
			Align(lipgloss.Right).
			Padding(0, 1)

	ExpressionStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Align(lipgloss.Right).
			Padding(0, 1)

	ScreenStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Amber)

	PanelTitleStyle = lipgloss.NewStyle().
			Foreground(Amber).
			Bold(true)

	PanelInactiveTitleStyle = lipgloss.NewStyle().
				Foreground(MidGray)

	ItemStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			PaddingLeft(2)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(Cyan).
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(Cyan).
				PaddingLeft(1)

	EmptyStyle = lipgloss.NewStyle().
			Foreground(MidGray).
			Italic(true).
			PaddingLeft(2)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)
)

package tui

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	colorAccent  = lipgloss.Color("#E5C07B")
	colorBlue    = lipgloss.Color("#61AFEF")
	colorLightFg = lipgloss.Color("#E1E8ED")
	colorMuted   = lipgloss.Color("#657786")
	colorRed     = lipgloss.Color("#E0245E")
	colorSelBg   = lipgloss.Color("#3E4451")
)

// Styles
var (
	menuStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	tabActiveStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	tabKeyStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Underline(true)

	tabNormalStyle = lipgloss.NewStyle().
			Foreground(colorLightFg)

	tabDividerStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	errorMsgStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBlue).
			Padding(0, 1)

	detailTitleStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Bold(true)

	detailLabelStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Width(10)

	tableHeaderStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Bold(true).
				Padding(0, 1)

	tableSelectedStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Background(colorSelBg).
				Bold(true)
)

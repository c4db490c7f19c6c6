package ui

import "github.com/charmbracelet/lipgloss"

var (
	purple     = lipgloss.AdaptiveColor{Light: "#4C1D95", Dark: "#A78BFA"}
	gold       = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}
	cream      = lipgloss.AdaptiveColor{Light: "#FDFBF7", Dark: "#1C1917"}
	gray       = lipgloss.AdaptiveColor{Light: "#909090", Dark: "#626262"}
	midGray    = lipgloss.AdaptiveColor{Light: "#4A4A4A", Dark: "#B2B2B2"}
	red        = lipgloss.AdaptiveColor{Light: "#FF4672", Dark: "#ED567A"}
	green      = lipgloss.Color("#04B575")
	mintGreen  = lipgloss.AdaptiveColor{Light: "#89F0CB", Dark: "#89F0CB"}
	darkGreen  = lipgloss.AdaptiveColor{Light: "#1C8760", Dark: "#1C8760"}
	fuchsia    = lipgloss.Color("#EE6FF8")
	dimFuchsia = lipgloss.AdaptiveColor{Light: "#F1A8FF", Dark: "#99519E"}

	statusBarNoteFg = lipgloss.AdaptiveColor{Light: "#656565", Dark: "#7D7D7D"}
	statusBarBg     = lipgloss.AdaptiveColor{Light: "#E6E6E6", Dark: "#242424"}

	logoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(purple).
			Bold(true).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(purple).
			Bold(true)

	headingStyle = lipgloss.NewStyle().
			Foreground(gold).
			Bold(true).
			MarginTop(1)

	subtleStyle = lipgloss.NewStyle().Foreground(gray)

	italicStyle = lipgloss.NewStyle().Foreground(midGray).Italic(true)

	errorTitleStyle = lipgloss.NewStyle().
			Foreground(cream).
			Background(red).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(fuchsia).
			Bold(true)

	selectedBarStyle = lipgloss.NewStyle().
				Foreground(dimFuchsia).
				SetString("│")

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(gold).
			Padding(0, 2)

	tabStyle = lipgloss.NewStyle().
			Foreground(statusBarNoteFg).
			Padding(0, 1)

	activeTabStyle = tabStyle.
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(purple).
			Bold(true)

	statusBarNoteStyle = lipgloss.NewStyle().
				Foreground(statusBarNoteFg).
				Background(statusBarBg).
				Render

	statusBarHelpStyle = lipgloss.NewStyle().
				Foreground(statusBarNoteFg).
				Background(lipgloss.AdaptiveColor{Light: "#DCDCDC", Dark: "#323232"}).
				Render

	statusBarMessageStyle = lipgloss.NewStyle().
				Foreground(mintGreen).
				Background(darkGreen).
				Render

	statusBarErrorStyle = lipgloss.NewStyle().
				Foreground(cream).
				Background(red).
				Render

	spinnerStyle = lipgloss.NewStyle().Foreground(fuchsia)

	audioPlayingStyle = lipgloss.NewStyle().
				Foreground(cream).
				Background(green).
				Padding(0, 1)

	audioIdleStyle = lipgloss.NewStyle().
			Foreground(purple).
			Padding(0, 1)
)

func logoView() string {
	return logoStyle.Render("✝ Fé e Oração")
}

package tui

import (
	"github.com/charmbracelet/lipgloss"
)

const appTitle = "configviewer"

func renderHeader(width int, title string) string {
	logoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorLogo)).
		Bold(true)

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDim))

	headerPadding := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1).
		Width(width)

	logo := logoStyle.Render(appTitle)
	if title == "" {
		return headerPadding.Render(logo)
	}

	// -2 for left and right padding
	contentWidth := width - 2
	gap := contentWidth - lipgloss.Width(logo) - lipgloss.Width(title)
	if gap < 1 {
		gap = 1
	}

	return headerPadding.Render(lipgloss.JoinHorizontal(
		lipgloss.Top,
		logo,
		lipgloss.NewStyle().Width(gap).Render(""),
		titleStyle.Render(title),
	))
}

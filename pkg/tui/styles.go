package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color constants
const (
	ColorActive   = "170" // Purple/magenta for active elements
	ColorInactive = "240" // Gray for inactive elements
	ColorSelected = "236" // Dark gray for background selection
	ColorNormal   = "245" // Light gray for normal text
	ColorDim      = "241"
	ColorWarning  = "214"
	ColorSuccess  = "28"
	ColorWhite    = "255"
	ColorDark     = "235"
	ColorPrimary  = "33"
	ColorError    = "196"
	ColorLogo     = "205"
)

// Common styles
var (
	ActiveTabStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorActive)).
			Foreground(lipgloss.Color(ColorActive)).
			Bold(true).
			Padding(0, 2)

	InactiveTabStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorInactive)).
				Foreground(lipgloss.Color(ColorNormal)).
				Padding(0, 2)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorActive)).
			Background(lipgloss.Color(ColorSelected)).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorNormal))

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorDim))

	ContentPaddingStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				PaddingRight(1)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWhite)).
			Background(lipgloss.Color(ColorPrimary)).
			Bold(true).
			Padding(0, 2)

	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorActive)).
			Padding(0, 1)

	DescriptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorDim))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorPrimary)).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError))

	CursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorActive)).
			Bold(true)

	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorDim)).
				Italic(true)

	PreviewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorInactive)).
			Padding(0, 1)
)

// GetStatusStyle returns the status bar style for a status type
func GetStatusStyle(statusType StatusType) lipgloss.Style {
	base := lipgloss.NewStyle().Padding(0, 1)
	switch statusType {
	case StatusTypeSuccess:
		return base.Background(lipgloss.Color(ColorSuccess)).Foreground(lipgloss.Color(ColorWhite))
	case StatusTypeWarning:
		return base.Background(lipgloss.Color(ColorWarning)).Foreground(lipgloss.Color(ColorDark))
	case StatusTypeError:
		return base.Background(lipgloss.Color(ColorError)).Foreground(lipgloss.Color(ColorWhite))
	default:
		return base.Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230"))
	}
}

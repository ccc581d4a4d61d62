package styles

import "github.com/charmbracelet/lipgloss"

var (
	Header = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	Footer = lipgloss.NewStyle().Foreground(lipgloss.Color("#777777"))
	Box    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	Danger = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	Warn   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAF00"))
	Good   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD7AF"))
	Faint  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C"))
)

// ForFraction picks the status style of a 0..1 reading.
func ForFraction(f float64) lipgloss.Style {
	switch {
	case f < 0.2:
		return Danger
	case f < 0.5:
		return Warn
	default:
		return Good
	}
}

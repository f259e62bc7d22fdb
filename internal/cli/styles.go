package cli

import "github.com/charmbracelet/lipgloss"

// Semantic colors, adaptive for light/dark terminals.
var (
	emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}
	rose    = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}
	amber   = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}
	cyan    = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(cyan)
	successStyle = lipgloss.NewStyle().Foreground(emerald)
	errorStyle   = lipgloss.NewStyle().Foreground(rose)
	warnStyle    = lipgloss.NewStyle().Foreground(amber)
	promptStyle  = lipgloss.NewStyle().Faint(true)
)

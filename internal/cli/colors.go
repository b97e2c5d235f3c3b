package cli

import "github.com/charmbracelet/lipgloss"

// Scope colour palette
// Shared trace theme colours for consistent branding across CLI and TUI
var (
	// Trace colours (bright to dark)
	TraceYellow = lipgloss.Color("#F8B31D") // Channel 1 trace
	TraceAmber  = lipgloss.Color("#FF8C00") // Deep amber
	TraceRed    = lipgloss.Color("#FF4500") // Orange-red
	TraceCyan   = lipgloss.Color("#1DC8F8") // Channel 2 trace

	// Accent colours
	GridGray = lipgloss.Color("#8A8A7A") // Graticule grey for subtle text
)

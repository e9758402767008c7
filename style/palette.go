// Package style provides a functional API for composing and applying lipgloss-based TUI styles.
package style

import "github.com/charmbracelet/lipgloss"

// Base palette.
var (
	Base    = lipgloss.Color("#1e1e2e")
	Text    = lipgloss.Color("#cdd6f4")
	Subtext = lipgloss.Color("#a6adc8")
	Overlay = lipgloss.Color("#6c7086")
	Surface = lipgloss.Color("#313244")

	Red      = lipgloss.Color("#f38ba8")
	Peach    = lipgloss.Color("#fab387")
	Yellow   = lipgloss.Color("#f9e2af")
	Green    = lipgloss.Color("#a6e3a1")
	Blue     = lipgloss.Color("#89b4fa")
	Lavender = lipgloss.Color("#b4befe")

	// Pokédex shell red, used for titles and the selection marker.
	DexRed = lipgloss.Color("#e3350d")

	AccentColor = DexRed
	FaintColor  = Overlay
	GaugeTrack  = lipgloss.Color("#e0e0e0")
	GaugeFill   = lipgloss.Color("#0000ff")
	AbilityFill = lipgloss.Color("#ff0000")
)

// Package color provides a curated palette of colors.
package color

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// New initializes a lipgloss.Color from a string value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// Standard ANSI palette.
var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")
	Cyan   = New("6")
	White  = New("7")
	Black  = New("0")
)

// High-intensity ANSI extension.
var (
	HiRed    = New("9")
	HiYellow = New("11")
	HiBlue   = New("12")
	HiPurple = New("13")
	HiCyan   = New("14")
)

// Contrast picks black or white text for a "#rgb" or "#rrggbb" background.
func Contrast(hex string) lipgloss.Color {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return White
	}

	// ITU-R BT.601 luma
	luma := (299*r + 587*g + 114*b) / 1000
	if luma > 150 {
		return Black
	}
	return New("#ffffff")
}

func parseHex(hex string) (r, g, b int, ok bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 3 {
		hex = strings.Repeat(hex[0:1], 2) + strings.Repeat(hex[1:2], 2) + strings.Repeat(hex[2:3], 2)
	}
	if len(hex) != 6 {
		return 0, 0, 0, false
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}

package dex

import (
	"strings"

	"github.com/alphadex-cli/alphadex/pokeapi"
	"github.com/samber/lo"
)

// DefaultTypeColor is used for types missing from the table.
const DefaultTypeColor = "#777"

var typeColors = map[string]string{
	"bug":      "#a6b91a",
	"dark":     "#705746",
	"dragon":   "#6f35fc",
	"electric": "#f7d02c",
	"fairy":    "#d685ad",
	"fighting": "#c22e28",
	"fire":     "#ee8130",
	"flying":   "#a98ff3",
	"ghost":    "#735797",
	"grass":    "#7ac74c",
	"ground":   "#e2bf65",
	"ice":      "#96d9d6",
	"normal":   "#a8a77a",
	"poison":   "#a33ea1",
	"psychic":  "#f95587",
	"rock":     "#b6a136",
	"steel":    "#b7b7ce",
	"water":    "#6390f0",
}

// TypeColor returns the hex color of a type name.
func TypeColor(name string) string {
	if c, ok := typeColors[strings.ToLower(name)]; ok {
		return c
	}
	return DefaultTypeColor
}

// PrimaryColor returns the color of the first type slot.
func PrimaryColor(p *pokeapi.Pokemon) string {
	return TypeColor(p.PrimaryType())
}

// Gradient returns one color per type slot, primary first.
func Gradient(p *pokeapi.Pokemon) []string {
	if len(p.Types) == 0 {
		return []string{DefaultTypeColor}
	}
	return lo.Map(p.Types, func(t pokeapi.TypeSlot, _ int) string {
		return TypeColor(t.Type.Name)
	})
}

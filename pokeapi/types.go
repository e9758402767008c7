package pokeapi

import (
	"fmt"

	"github.com/samber/lo"
)

// NamedResource is the {name, url} pair the API uses for every reference.
type NamedResource struct {
	Name string `json:"name" jsonschema:"description=Resource name"`
	URL  string `json:"url" jsonschema:"description=Resource URL"`
}

// ListResponse is one page of the paged list endpoint.
// Next and Previous are empty when there is no such page.
type ListResponse struct {
	Count    int             `json:"count"`
	Next     string          `json:"next"`
	Previous string          `json:"previous"`
	Results  []NamedResource `json:"results"`
}

// TypeSlot is one elemental type of a Pokémon. Slot 1 is the primary type.
type TypeSlot struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

// AbilityRef references an ability and whether it is hidden.
type AbilityRef struct {
	Ability  NamedResource `json:"ability"`
	IsHidden bool          `json:"is_hidden"`
	Slot     int           `json:"slot"`
}

// StatEntry is a base stat, e.g. hp or speed.
type StatEntry struct {
	BaseStat int           `json:"base_stat"`
	Effort   int           `json:"effort"`
	Stat     NamedResource `json:"stat"`
}

// Sprites holds the default sprite shipped with the detail record.
type Sprites struct {
	FrontDefault string `json:"front_default"`
}

// Pokemon is the full detail record. It is never mutated after decoding.
type Pokemon struct {
	ID        int           `json:"id"`
	Name      string        `json:"name"`
	Height    int           `json:"height" jsonschema:"description=Height in decimetres"`
	Weight    int           `json:"weight" jsonschema:"description=Weight in hectograms"`
	Types     []TypeSlot    `json:"types"`
	Abilities []AbilityRef  `json:"abilities"`
	Stats     []StatEntry   `json:"stats"`
	Sprites   Sprites       `json:"sprites"`
	Species   NamedResource `json:"species"`
}

// TypeNames returns the type names ordered by slot as delivered.
func (p *Pokemon) TypeNames() []string {
	return lo.Map(p.Types, func(t TypeSlot, _ int) string {
		return t.Type.Name
	})
}

// PrimaryType returns the name of the first type slot, or an empty string.
func (p *Pokemon) PrimaryType() string {
	if len(p.Types) == 0 {
		return ""
	}
	return p.Types[0].Type.Name
}

// DisplayID returns the zero-padded id, e.g. #001.
func (p *Pokemon) DisplayID() string {
	return FormatID(p.ID)
}

// HeightMeters converts the decimetre height.
func (p *Pokemon) HeightMeters() float64 {
	return float64(p.Height) / 10
}

// WeightKilograms converts the hectogram weight.
func (p *Pokemon) WeightKilograms() float64 {
	return float64(p.Weight) / 10
}

// LocalizedName is a species name in one language.
type LocalizedName struct {
	Name     string        `json:"name"`
	Language NamedResource `json:"language"`
}

// Species is the subset of the species resource used for localization.
type Species struct {
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Names []LocalizedName `json:"names"`
}

// FormatID pads an id to at least three digits.
func FormatID(id int) string {
	return fmt.Sprintf("#%03d", id)
}

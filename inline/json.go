package inline

import (
	"encoding/json"

	"github.com/alphadex-cli/alphadex/dex"
	"github.com/alphadex-cli/alphadex/pokeapi"
)

// Pokemon is one result of inline mode.
type Pokemon struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	// The fields below are only set for hydrated results.
	ID          int              `json:"id,omitempty"`
	DisplayID   string           `json:"display_id,omitempty"`
	DisplayName string           `json:"display_name,omitempty"`
	Types       []string         `json:"types,omitempty"`
	Colors      []string         `json:"colors,omitempty"`
	Artwork     string           `json:"artwork,omitempty"`
	Showdown    string           `json:"showdown,omitempty"`
	Gauges      []dex.Gauge      `json:"gauges,omitempty"`
	Detail      *pokeapi.Pokemon `json:"detail,omitempty"`
}

// Output is the document written in JSON mode.
type Output struct {
	Query      string     `json:"query,omitempty"`
	Page       int        `json:"page,omitempty"`
	TotalPages int        `json:"total_pages,omitempty"`
	Count      int        `json:"count,omitempty"`
	Result     []*Pokemon `json:"result"`
}

func newPokemon(entry dex.Entry, clamp bool) *Pokemon {
	out := &Pokemon{Name: entry.Name, URL: entry.URL}
	if p := entry.Detail; p != nil {
		out.ID = p.ID
		out.DisplayID = p.DisplayID()
		out.DisplayName = p.Name
		out.Types = p.TypeNames()
		out.Colors = dex.Gradient(p)
		out.Artwork = pokeapi.ArtworkURL(p.ID)
		out.Showdown = pokeapi.ShowdownURL(p.ID)
		out.Gauges = dex.Gauges(p, clamp)
		out.Detail = p
	}
	return out
}

func fromDetail(entry dex.Entry, detail *dex.Detail, clamp bool) *Pokemon {
	entry.Detail = detail.Pokemon
	out := newPokemon(entry, clamp)
	out.DisplayName = detail.DisplayName
	return out
}

func asJson(output *Output) ([]byte, error) {
	if output.Result == nil {
		output.Result = []*Pokemon{}
	}
	return json.Marshal(output)
}

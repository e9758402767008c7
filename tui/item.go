package tui

import (
	"strings"

	"github.com/alphadex-cli/alphadex/dex"
	"github.com/alphadex-cli/alphadex/pokeapi"
	"github.com/alphadex-cli/alphadex/style"
	"github.com/alphadex-cli/alphadex/util"
	"github.com/samber/lo"
)

// listItem implements list.Item for a collection entry.
type listItem struct {
	entry    dex.Entry
	showURLs bool
}

// Title is the padded id and name when the entry is hydrated, the name otherwise.
func (t *listItem) Title() string {
	name := util.Capitalize(t.entry.Name)
	if !t.entry.Hydrated() {
		return name
	}
	return style.Faint(t.entry.Detail.DisplayID()) + " " + name
}

// Description shows the type badges of a hydrated entry.
func (t *listItem) Description() string {
	var parts []string

	if t.entry.Hydrated() {
		parts = append(parts, typeBadges(t.entry.Detail))
	}

	if t.showURLs {
		if t.entry.Hydrated() {
			parts = append(parts, style.Faint(pokeapi.ArtworkURL(t.entry.Detail.ID)))
		} else {
			parts = append(parts, style.Faint(t.entry.URL))
		}
	}

	return strings.Join(parts, " ")
}

// FilterValue returns the name used by the search filter.
func (t *listItem) FilterValue() string {
	return t.entry.Name
}

func typeBadges(p *pokeapi.Pokemon) string {
	return strings.Join(lo.Map(p.TypeNames(), func(name string, _ int) string {
		return style.Badge(dex.TypeColor(name))(name)
	}), " ")
}

package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alphadex-cli/alphadex/dex"
	"github.com/alphadex-cli/alphadex/util"
	"github.com/samber/mo"
)

// Client is the API surface inline mode needs.
type Client interface {
	dex.Fetcher
	PokemonURL(nameOrID string) string
}

// Picker narrows a filtered page down to a single entry.
type Picker func([]dex.Entry) mo.Option[dex.Entry]

type Options struct {
	Out    io.Writer
	Client Client

	// Pokemon fetches a single Pokémon by name or id instead of listing pages.
	Pokemon string

	Page     int
	Pages    int
	PageSize int
	Hydrate  bool
	Query    string
	Picker   mo.Option[Picker]

	Localize    bool
	Language    string
	ClampGauges bool

	Json bool
}

// ParsePicker builds a picker from its kind: first, last, exact or index.
func ParsePicker(kind, value string) (Picker, error) {
	some := func(entries []dex.Entry, i int) mo.Option[dex.Entry] {
		if i < 0 || i >= len(entries) {
			return mo.None[dex.Entry]()
		}
		return mo.Some(entries[i])
	}

	switch kind {
	case "first":
		return func(entries []dex.Entry) mo.Option[dex.Entry] {
			return some(entries, 0)
		}, nil
	case "last":
		return func(entries []dex.Entry) mo.Option[dex.Entry] {
			return some(entries, len(entries)-1)
		}, nil
	case "exact":
		return func(entries []dex.Entry) mo.Option[dex.Entry] {
			for i, e := range entries {
				if strings.EqualFold(e.Name, value) {
					return some(entries, i)
				}
			}
			return mo.None[dex.Entry]()
		}, nil
	default:
		idx, err := strconv.ParseUint(kind, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("unknown picker: %s", kind)
		}
		return func(entries []dex.Entry) mo.Option[dex.Entry] {
			if len(entries) == 0 {
				return mo.None[dex.Entry]()
			}
			return some(entries, int(util.Min(idx, uint64(len(entries)-1))))
		}, nil
	}
}

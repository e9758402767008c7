// Package query remembers search queries and suggests them back while typing.
package query

import (
	"strings"
	"sync"

	"github.com/alphadex-cli/alphadex/filesystem"
	"github.com/alphadex-cli/alphadex/key"
	"github.com/alphadex-cli/alphadex/where"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

type queryRecord struct {
	Rank  int    `json:"rank"`
	Query string `json:"query"`
}

var (
	mu              sync.Mutex
	suggestionCache = make(map[string][]*queryRecord)
)

var cacher = gache.New[map[string]*queryRecord](
	&gache.Options{
		Path:       where.Queries(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Remember records a search query or raises its rank by weight.
// It is a no-op unless search.remember_queries is enabled.
func Remember(q string, weight int) error {
	if !viper.GetBool(key.SearchRememberQueries) {
		return nil
	}

	q = sanitize(q)
	if q == "" {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	cached, expired, err := cacher.Get()
	if expired || err != nil || cached == nil {
		cached = make(map[string]*queryRecord)
	}

	if record, ok := cached[q]; ok {
		record.Rank += weight
	} else {
		cached[q] = &queryRecord{Rank: weight, Query: q}
	}

	clear(suggestionCache)
	return cacher.Set(cached)
}

// Suggest returns the best ranked suggestion for a partial input.
func Suggest(q string) mo.Option[string] {
	suggestions := SuggestMany(q)
	if len(suggestions) == 0 {
		return mo.None[string]()
	}
	return mo.Some(suggestions[0])
}

// SuggestMany returns remembered queries fuzzily matching the input, highest rank first.
func SuggestMany(q string) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return []string{}
	}

	q = sanitize(q)

	mu.Lock()
	defer mu.Unlock()

	records, ok := suggestionCache[q]
	if !ok {
		cached, expired, err := cacher.Get()
		if err != nil || expired || cached == nil {
			return []string{}
		}

		for _, record := range cached {
			if record.Query != q && fuzzy.Match(q, record.Query) {
				records = append(records, record)
			}
		}

		slices.SortFunc(records, func(a, b *queryRecord) int {
			if a.Rank == b.Rank {
				return strings.Compare(a.Query, b.Query)
			}
			return b.Rank - a.Rank
		})

		suggestionCache[q] = records
	}

	return lo.Map(records, func(r *queryRecord, _ int) string {
		return r.Query
	})
}

// Clear forgets every remembered query.
func Clear() error {
	mu.Lock()
	defer mu.Unlock()

	clear(suggestionCache)
	return cacher.Set(make(map[string]*queryRecord))
}

func sanitize(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}

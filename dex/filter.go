package dex

import (
	"strings"

	"github.com/samber/lo"
)

// Filter keeps the entries whose name contains query, ignoring case.
// An empty query keeps everything.
func Filter(entries []Entry, query string) []Entry {
	query = strings.ToLower(query)
	if query == "" {
		return entries
	}
	return lo.Filter(entries, func(e Entry, _ int) bool {
		return strings.Contains(strings.ToLower(e.Name), query)
	})
}

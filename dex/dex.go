// Package dex implements the Pokédex collection: paged loading, load triggers,
// the selection store and the pure presentation helpers used by every front end.
package dex

import (
	"context"
	"errors"

	"github.com/alphadex-cli/alphadex/pokeapi"
)

var (
	// ErrExhausted is returned by LoadNext once the last page has been appended.
	ErrExhausted = errors.New("no more pages")
	// ErrBusy is returned when a page fetch is already in flight.
	ErrBusy = errors.New("a page is already loading")
	// ErrStale is returned for a fetch whose result was superseded.
	ErrStale = errors.New("result superseded")
	// ErrMissingLocalization is returned when a species has no name in the requested language.
	ErrMissingLocalization = errors.New("no localized name")
)

// Fetcher is the subset of the API client the collection needs.
type Fetcher interface {
	ListURL(limit, offset int) string
	List(ctx context.Context, url string) (*pokeapi.ListResponse, error)
	Pokemon(ctx context.Context, url string) (*pokeapi.Pokemon, error)
	Species(ctx context.Context, url string) (*pokeapi.Species, error)
}

// Entry is a list entry, optionally hydrated with its detail record.
type Entry struct {
	Name   string           `json:"name"`
	URL    string           `json:"url"`
	Detail *pokeapi.Pokemon `json:"detail,omitempty"`
}

// Hydrated reports whether the detail record is attached.
func (e Entry) Hydrated() bool {
	return e.Detail != nil
}

// Page is one fetched page of entries. Next is empty on the last page.
type Page struct {
	Entries  []Entry `json:"entries"`
	Next     string  `json:"next,omitempty"`
	Previous string  `json:"previous,omitempty"`
	Count    int     `json:"count"`
}

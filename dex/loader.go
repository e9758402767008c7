package dex

import (
	"context"
	"fmt"
	"sync"

	"github.com/alphadex-cli/alphadex/constant"
	"github.com/alphadex-cli/alphadex/log"
	"github.com/alphadex-cli/alphadex/pokeapi"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// hydrationLimit bounds concurrent detail fetches per page.
const hydrationLimit = 16

// Loader owns the ordered collection and the pagination cursor.
// Page fetches are sequential; concurrent calls get ErrBusy.
type Loader struct {
	api     Fetcher
	hydrate bool

	mu       sync.Mutex
	pageSize int
	entries  []Entry
	cursor   string
	started  bool
	busy     bool
	count    int
	page     int
	gen      uint64
}

// NewLoader returns an empty loader. When hydrate is set every entry of a page
// is fetched with its detail record before the page is accepted.
func NewLoader(api Fetcher, pageSize int, hydrate bool) *Loader {
	return &Loader{
		api:      api,
		hydrate:  hydrate,
		pageSize: max(1, pageSize),
	}
}

// FetchPage fetches the page at cursor, or the first page if cursor is empty.
// It does not touch the collection.
func (l *Loader) FetchPage(ctx context.Context, cursor string) (*Page, error) {
	if cursor == "" {
		cursor = l.api.ListURL(l.PageSize(), 0)
	}

	list, err := l.api.List(ctx, cursor)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", cursor, err)
	}

	page := &Page{
		Entries: lo.Map(list.Results, func(r pokeapi.NamedResource, _ int) Entry {
			return Entry{Name: r.Name, URL: r.URL}
		}),
		Next:     list.Next,
		Previous: list.Previous,
		Count:    list.Count,
	}

	if l.hydrate {
		if err := l.hydratePage(ctx, page); err != nil {
			return nil, err
		}
	}

	return page, nil
}

// hydratePage fills every entry in place. Any failure fails the whole page.
func (l *Loader) hydratePage(ctx context.Context, page *Page) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(hydrationLimit)

	for i := range page.Entries {
		g.Go(func() error {
			detail, err := l.api.Pokemon(ctx, page.Entries[i].URL)
			if err != nil {
				return fmt.Errorf("hydrate %s: %w", page.Entries[i].Name, err)
			}
			page.Entries[i].Detail = detail
			return nil
		})
	}

	return g.Wait()
}

// begin marks a fetch in flight and returns its generation.
func (l *Loader) begin() (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.busy {
		return 0, ErrBusy
	}
	l.busy = true
	return l.gen, nil
}

// LoadNext fetches the page at the cursor and appends it.
// On failure the collection and cursor are left untouched.
func (l *Loader) LoadNext(ctx context.Context) (*Page, error) {
	l.mu.Lock()
	switch {
	case l.busy:
		l.mu.Unlock()
		return nil, ErrBusy
	case l.started && l.cursor == "":
		l.mu.Unlock()
		return nil, ErrExhausted
	}
	l.busy = true
	gen, cursor := l.gen, l.cursor
	l.mu.Unlock()

	page, err := l.FetchPage(ctx, cursor)

	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.gen {
		return nil, ErrStale
	}
	l.busy = false

	if err != nil {
		log.With(log.Fields{"cursor": cursor}).Errorf("page load failed: %s", err)
		return nil, err
	}

	l.entries = append(l.entries, page.Entries...)
	l.cursor = page.Next
	l.count = page.Count
	if !l.started {
		l.page = 1
	} else {
		l.page++
	}
	l.started = true

	log.With(log.Fields{"page": l.page, "entries": len(l.entries)}).Info("page loaded")
	return page, nil
}

// LoadPage replaces the collection with page n (1-based).
func (l *Loader) LoadPage(ctx context.Context, n int) (*Page, error) {
	n = max(1, n)

	gen, err := l.begin()
	if err != nil {
		return nil, err
	}

	size := l.PageSize()
	page, err := l.FetchPage(ctx, l.api.ListURL(size, (n-1)*size))

	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.gen {
		return nil, ErrStale
	}
	l.busy = false

	if err != nil {
		log.With(log.Fields{"page": n}).Errorf("page load failed: %s", err)
		return nil, err
	}

	l.entries = page.Entries
	l.cursor = page.Next
	l.count = page.Count
	l.page = n
	l.started = true

	log.With(log.Fields{"page": n, "entries": len(l.entries)}).Info("page loaded")
	return page, nil
}

// Entries returns a copy of the collection in fetch order.
func (l *Loader) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Entry(nil), l.entries...)
}

// Len returns the number of loaded entries.
func (l *Loader) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// HasNext reports whether LoadNext can still fetch a page.
func (l *Loader) HasNext() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.started || l.cursor != ""
}

// Busy reports whether a page fetch is in flight.
func (l *Loader) Busy() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.busy
}

// Page returns the number of the last loaded page, 0 before the first load.
func (l *Loader) Page() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.page
}

// PageSize returns the current page size.
func (l *Loader) PageSize() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pageSize
}

// Count returns the collection size reported by the API, or a fallback before it is known.
func (l *Loader) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.count <= 0 {
		return constant.FallbackTotal
	}
	return l.count
}

// TotalPages returns ceil(count / pageSize).
func (l *Loader) TotalPages() int {
	count := l.Count()
	size := l.PageSize()
	return (count + size - 1) / size
}

// Reset empties the collection and rewinds to the first page.
// A fetch in flight at the time of the reset is discarded with ErrStale.
func (l *Loader) Reset(pageSize int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.gen++
	l.pageSize = max(1, pageSize)
	l.entries = nil
	l.cursor = ""
	l.started = false
	l.busy = false
	l.count = 0
	l.page = 0
}

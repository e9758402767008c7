package dex

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/alphadex-cli/alphadex/log"
	"github.com/alphadex-cli/alphadex/pokeapi"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"golang.org/x/sync/singleflight"
)

// Detail is what the overlay shows for a selected entry.
type Detail struct {
	Pokemon     *pokeapi.Pokemon `json:"pokemon"`
	Species     *pokeapi.Species `json:"species,omitempty"`
	DisplayName string           `json:"display_name"`
}

// SelectionOptions configures the species localization chain.
type SelectionOptions struct {
	Localize bool
	Language string
}

// Selection holds at most one selected entry and its detail.
// The last call to Select wins; earlier in-flight selections resolve to ErrStale.
type Selection struct {
	api   Fetcher
	lock  *ScrollLock
	opts  SelectionOptions
	group singleflight.Group

	mu       sync.Mutex
	current  mo.Option[Entry]
	gen      uint64
	fetchCtx context.Context
	cancel   context.CancelFunc
	release  func()
	cache    map[string]*Detail
}

// NewSelection returns an empty selection. lock may be nil.
func NewSelection(api Fetcher, lock *ScrollLock, opts SelectionOptions) *Selection {
	if lock == nil {
		lock = &ScrollLock{}
	}
	if opts.Language == "" {
		opts.Language = "en"
	}
	return &Selection{
		api:   api,
		lock:  lock,
		opts:  opts,
		cache: make(map[string]*Detail),
	}
}

// Current returns the selected entry, if any.
func (s *Selection) Current() mo.Option[Entry] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Cached returns the cached detail for name.
func (s *Selection) Cached(name string) mo.Option[*Detail] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.cache[name]; ok {
		return mo.Some(d)
	}
	return mo.None[*Detail]()
}

// Request is a selection started by Begin and resolved by Await.
type Request struct {
	entry  Entry
	gen    uint64
	ctx    context.Context
	cached *Detail
}

// Entry returns the selected entry.
func (r Request) Entry() Entry {
	return r.entry
}

// Begin makes entry the selection and acquires the scroll lock without
// touching the network. A Close after Begin turns the request stale.
// Reselecting the current entry reuses its cached detail or its running fetch.
func (s *Selection) Begin(ctx context.Context, entry Entry) Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	same := s.current.IsPresent() && s.current.MustGet().Name == entry.Name
	if same {
		if d, ok := s.cache[entry.Name]; ok {
			return Request{entry: entry, gen: s.gen, ctx: s.fetchCtx, cached: d}
		}
	}

	if !same || s.fetchCtx == nil || s.fetchCtx.Err() != nil {
		if s.cancel != nil {
			s.cancel()
		}
		s.gen++
		s.fetchCtx, s.cancel = context.WithCancel(ctx)
		s.current = mo.Some(entry)
		if s.release == nil {
			s.release = s.lock.Acquire()
		}
	}

	return Request{entry: entry, gen: s.gen, ctx: s.fetchCtx}
}

// Await fetches the detail of a begun request.
// It returns ErrStale without a request if the selection changed or closed since Begin.
func (s *Selection) Await(ctx context.Context, r Request) (*Detail, error) {
	if r.cached != nil {
		return r.cached, nil
	}

	s.mu.Lock()
	stale := r.gen != s.gen
	s.mu.Unlock()
	if stale {
		return nil, ErrStale
	}

	return s.await(ctx, r.ctx, r.entry, r.gen)
}

// Select makes entry the selection and returns its detail.
// Reselecting the current entry returns the cached detail without a request,
// or joins the fetch already running for it.
func (s *Selection) Select(ctx context.Context, entry Entry) (*Detail, error) {
	return s.Await(ctx, s.Begin(ctx, entry))
}

// await runs the collapsed fetch and discards it if the selection moved on.
func (s *Selection) await(callerCtx, fetchCtx context.Context, entry Entry, gen uint64) (*Detail, error) {
	key := fmt.Sprintf("%s#%d", entry.Name, gen)
	ch := s.group.DoChan(key, func() (any, error) {
		return s.fetch(fetchCtx, entry)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-callerCtx.Done():
		return nil, callerCtx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return nil, ErrStale
	}
	if res.Err != nil {
		log.With(log.Fields{"pokemon": entry.Name}).Errorf("detail fetch failed: %s", res.Err)
		return nil, res.Err
	}

	detail := res.Val.(*Detail)
	s.cache[entry.Name] = detail
	return detail, nil
}

func (s *Selection) fetch(ctx context.Context, entry Entry) (*Detail, error) {
	pokemon := entry.Detail
	if pokemon == nil {
		var err error
		if pokemon, err = s.api.Pokemon(ctx, entry.URL); err != nil {
			return nil, fmt.Errorf("detail %s: %w", entry.Name, err)
		}
	}

	detail := &Detail{Pokemon: pokemon, DisplayName: pokemon.Name}
	if !s.opts.Localize || pokemon.Species.URL == "" {
		return detail, nil
	}

	species, err := s.api.Species(ctx, pokemon.Species.URL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.With(log.Fields{"pokemon": entry.Name}).Warnf("species fetch failed, using default name: %s", err)
		return detail, nil
	}

	detail.Species = species
	if name, err := LocalizedName(species, s.opts.Language); err == nil {
		detail.DisplayName = name
	} else {
		log.With(log.Fields{"pokemon": entry.Name, "language": s.opts.Language}).Debug(err.Error())
	}
	return detail, nil
}

// Close clears the selection, cancels its fetch, drops its cached detail and
// releases the scroll lock.
func (s *Selection) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.fetchCtx = nil
	s.gen++

	if entry, ok := s.current.Get(); ok {
		delete(s.cache, entry.Name)
	}
	s.current = mo.None[Entry]()

	if s.release != nil {
		s.release()
		s.release = nil
	}
}

// LocalizedName returns the species name in language.
func LocalizedName(species *pokeapi.Species, language string) (string, error) {
	name, ok := lo.Find(species.Names, func(n pokeapi.LocalizedName) bool {
		return strings.EqualFold(n.Language.Name, language)
	})
	if !ok {
		return "", fmt.Errorf("%w: %s has no %q name", ErrMissingLocalization, species.Name, language)
	}
	return name.Name, nil
}

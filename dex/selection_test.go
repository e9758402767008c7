package dex

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/alphadex-cli/alphadex/internal/fakeapi"
	"github.com/alphadex-cli/alphadex/pokeapi"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSelection(t *testing.T) {
	Convey("Given a selection store", t, func() {
		server := fakeapi.New(40)
		defer server.Close()

		ctx := context.Background()
		entry := func(id int) Entry {
			return Entry{Name: fakeapi.Name(id), URL: server.URL + fakeapi.DetailPath(id)}
		}

		lock := &ScrollLock{}
		selection := NewSelection(pokeapi.NewClient(server.URL), lock, SelectionOptions{})

		Convey("Selecting fetches the detail and locks scrolling", func() {
			detail, err := selection.Select(ctx, entry(4))
			So(err, ShouldBeNil)
			So(detail.Pokemon.Name, ShouldEqual, "charmander")
			So(detail.DisplayName, ShouldEqual, "charmander")
			So(detail.Species, ShouldBeNil)
			So(selection.Current().MustGet().Name, ShouldEqual, "charmander")
			So(lock.Locked(), ShouldBeTrue)

			Convey("Reselecting returns the cached detail without a request", func() {
				again, err := selection.Select(ctx, entry(4))
				So(err, ShouldBeNil)
				So(again, ShouldPointTo, detail)
				So(server.Hits(fakeapi.DetailPath(4)), ShouldEqual, 1)
			})

			Convey("Close clears the selection and its cache and unlocks scrolling", func() {
				selection.Close()
				So(selection.Current().IsAbsent(), ShouldBeTrue)
				So(selection.Cached("charmander").IsAbsent(), ShouldBeTrue)
				So(lock.Locked(), ShouldBeFalse)

				_, err := selection.Select(ctx, entry(4))
				So(err, ShouldBeNil)
				So(server.Hits(fakeapi.DetailPath(4)), ShouldEqual, 2)
			})
		})

		Convey("Begin takes the selection and the lock before any request", func() {
			request := selection.Begin(ctx, entry(7))
			So(request.Entry().Name, ShouldEqual, "squirtle")
			So(selection.Current().MustGet().Name, ShouldEqual, "squirtle")
			So(lock.Locked(), ShouldBeTrue)
			So(server.Hits(fakeapi.DetailPath(7)), ShouldEqual, 0)

			Convey("A close before the fetch runs leaves nothing behind", func() {
				selection.Close()
				So(lock.Locked(), ShouldBeFalse)

				_, err := selection.Await(ctx, request)
				So(errors.Is(err, ErrStale), ShouldBeTrue)
				So(lock.Locked(), ShouldBeFalse)
				So(selection.Current().IsAbsent(), ShouldBeTrue)
				So(server.Hits(fakeapi.DetailPath(7)), ShouldEqual, 0)
			})

			Convey("Await completes it", func() {
				detail, err := selection.Await(ctx, request)
				So(err, ShouldBeNil)
				So(detail.Pokemon.ID, ShouldEqual, 7)
				So(selection.Cached("squirtle").IsPresent(), ShouldBeTrue)
			})
		})

		Convey("The last selection wins", func() {
			server.Delay(fakeapi.DetailPath(1), 300*time.Millisecond)

			first := make(chan error, 1)
			go func() {
				_, err := selection.Select(ctx, entry(1))
				first <- err
			}()
			So(waitUntil(func() bool { return selection.Current().IsPresent() }), ShouldBeTrue)

			detail, err := selection.Select(ctx, entry(7))
			So(err, ShouldBeNil)
			So(detail.Pokemon.Name, ShouldEqual, "squirtle")

			So(<-first, ShouldEqual, ErrStale)
			So(selection.Current().MustGet().Name, ShouldEqual, "squirtle")
			So(selection.Cached("bulbasaur").IsAbsent(), ShouldBeTrue)
		})

		Convey("Concurrent selections of one entry share a single request", func() {
			server.Delay(fakeapi.DetailPath(2), 100*time.Millisecond)

			var wg sync.WaitGroup
			results := make([]*Detail, 3)
			for i := range results {
				wg.Add(1)
				go func() {
					defer wg.Done()
					results[i], _ = selection.Select(ctx, entry(2))
				}()
			}
			wg.Wait()

			So(server.Hits(fakeapi.DetailPath(2)), ShouldEqual, 1)
			So(results[0], ShouldNotBeNil)
			So(results[1], ShouldPointTo, results[0])
			So(results[2], ShouldPointTo, results[0])
		})

		Convey("A hydrated entry needs no detail request", func() {
			pokemon := &pokeapi.Pokemon{ID: 25, Name: "pikachu"}
			detail, err := selection.Select(ctx, Entry{Name: "pikachu", Detail: pokemon})
			So(err, ShouldBeNil)
			So(detail.Pokemon, ShouldPointTo, pokemon)
			So(server.Hits(fakeapi.DetailPath(25)), ShouldEqual, 0)
		})

		Convey("A failed fetch is reported and keeps the selection", func() {
			server.Fail(fakeapi.DetailPath(9), http.StatusNotFound)
			_, err := selection.Select(ctx, entry(9))
			So(errors.Is(err, pokeapi.ErrNetwork), ShouldBeTrue)
			So(selection.Current().MustGet().Name, ShouldEqual, "blastoise")
		})
	})

	Convey("Given a selection store that localizes names", t, func() {
		server := fakeapi.New(40)
		defer server.Close()

		ctx := context.Background()
		bulbasaur := Entry{Name: "bulbasaur", URL: server.URL + fakeapi.DetailPath(1)}

		Convey("The species chain yields the localized name", func() {
			selection := NewSelection(pokeapi.NewClient(server.URL), nil, SelectionOptions{Localize: true, Language: "fr"})
			detail, err := selection.Select(ctx, bulbasaur)
			So(err, ShouldBeNil)
			So(detail.DisplayName, ShouldEqual, "Bulbizarre")
			So(detail.Species, ShouldNotBeNil)
			So(server.Hits(fakeapi.SpeciesPath(1)), ShouldEqual, 1)
		})

		Convey("A missing language falls back to the default name", func() {
			selection := NewSelection(pokeapi.NewClient(server.URL), nil, SelectionOptions{Localize: true, Language: "de"})
			detail, err := selection.Select(ctx, bulbasaur)
			So(err, ShouldBeNil)
			So(detail.DisplayName, ShouldEqual, "bulbasaur")
		})

		Convey("A failed species fetch falls back to the default name", func() {
			server.Fail(fakeapi.SpeciesPath(1), http.StatusBadGateway)
			selection := NewSelection(pokeapi.NewClient(server.URL), nil, SelectionOptions{Localize: true, Language: "fr"})
			detail, err := selection.Select(ctx, bulbasaur)
			So(err, ShouldBeNil)
			So(detail.DisplayName, ShouldEqual, "bulbasaur")
		})
	})
}

func TestLocalizedName(t *testing.T) {
	Convey("Given a species with english and french names", t, func() {
		species := &pokeapi.Species{
			Name: "pikachu",
			Names: []pokeapi.LocalizedName{
				{Name: "Pikachu", Language: pokeapi.NamedResource{Name: "en"}},
				{Name: "ピカチュウ", Language: pokeapi.NamedResource{Name: "ja-Hrkt"}},
			},
		}

		name, err := LocalizedName(species, "JA-hrkt")
		So(err, ShouldBeNil)
		So(name, ShouldEqual, "ピカチュウ")

		_, err = LocalizedName(species, "de")
		So(errors.Is(err, ErrMissingLocalization), ShouldBeTrue)
	})
}

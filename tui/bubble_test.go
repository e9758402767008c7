package tui

import (
	"net/http"
	"testing"
	"time"

	"github.com/alphadex-cli/alphadex/config"
	"github.com/alphadex-cli/alphadex/dex"
	"github.com/alphadex-cli/alphadex/filesystem"
	"github.com/alphadex-cli/alphadex/internal/fakeapi"
	"github.com/alphadex-cli/alphadex/pokeapi"
	tea "github.com/charmbracelet/bubbletea"
	. "github.com/smartystreets/goconvey/convey"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drain runs cmd and any batched commands it yields, discarding their messages.
func drain(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	if batch, ok := cmd().(tea.BatchMsg); ok {
		for _, c := range batch {
			drain(c)
		}
	}
}

func firstPage(b *statefulBubble) {
	b.loadFirstPage()()
	b.Update(b.waitForPages()())
}

// scrollTo moves the list cursor down to index, one key press at a time.
func scrollTo(b *statefulBubble, index int) {
	for i := 0; i < 100 && b.pokemonC.Index() < index; i++ {
		b.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
}

func eventually(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestBubble(t *testing.T) {
	Convey("Given the viewer in infinite scroll mode", t, func() {
		server := fakeapi.New(40)
		defer server.Close()

		b := newBubble(&Options{
			API:            pokeapi.NewClient(server.URL),
			PageSize:       15,
			PaginationMode: config.PaginationInfiniteScroll,
			Hydrate:        true,
			ScrollPercent:  70,
			ModalSprite:    config.SpriteArtwork,
		})
		defer b.teardown()
		b.resize(100, 60)

		So(b.state, ShouldEqual, loadingState)

		Convey("The first page fills the list", func() {
			firstPage(b)
			So(b.state, ShouldEqual, listState)
			So(b.pokemonC.Items(), ShouldHaveLength, 15)
			So(b.pokemonC.Items()[0].(*listItem).Title(), ShouldContainSubstring, "Bulbasaur")

			Convey("Searching filters the list by name", func() {
				b.Update(runes("/"))
				So(b.state, ShouldEqual, searchState)

				b.Update(runes("CHAR"))
				So(b.pokemonC.Items(), ShouldHaveLength, 3)

				b.Update(runes("zzz"))
				So(b.noResults(), ShouldBeTrue)
				So(b.View(), ShouldContainSubstring, "No Pokémon match")

				b.Update(tea.KeyMsg{Type: tea.KeyEsc})
				So(b.state, ShouldEqual, listState)
				So(b.inputC.Value(), ShouldBeEmpty)
				So(b.pokemonC.Items(), ShouldHaveLength, 15)
			})

			Convey("Selecting an entry opens the detail overlay", func() {
				entry := b.pokemonC.Items()[5].(*listItem).entry
				cmd := b.selectEntry(entry)
				So(b.state, ShouldEqual, detailState)

				b.Update(cmd())
				So(b.detail, ShouldNotBeNil)
				So(b.lock.Locked(), ShouldBeTrue)

				view := b.View()
				So(view, ShouldContainSubstring, "#006")
				So(view, ShouldContainSubstring, "Charizard")
				So(view, ShouldContainSubstring, "(Hidden)")
				So(view, ShouldContainSubstring, "official-artwork/6.png")

				Convey("Closing it returns to the list and unlocks scrolling", func() {
					b.Update(tea.KeyMsg{Type: tea.KeyEsc})
					So(b.state, ShouldEqual, listState)
					So(b.detail, ShouldBeNil)
					So(b.lock.Locked(), ShouldBeFalse)
					So(b.selection.Current().IsAbsent(), ShouldBeTrue)
				})
			})

			Convey("Scrolling past the threshold appends the next page", func() {
				scrollTo(b, 9)
				So(b.loading, ShouldBeFalse)

				scrollTo(b, 10)
				So(b.loading, ShouldBeTrue)
				So(b.View(), ShouldContainSubstring, "Catching more Pokémon")

				So(eventually(func() bool {
					return b.loader.Len() == 30 && !b.watcher.InFlight()
				}), ShouldBeTrue)

				// The list still shows the first page until the load is applied.
				scrollTo(b, 11)
				time.Sleep(50 * time.Millisecond)
				So(server.ListHits(), ShouldEqual, 2)

				b.Update(b.waitForPages()())
				So(b.loading, ShouldBeFalse)
				So(b.pokemonC.Items(), ShouldHaveLength, 30)
				So(b.pokemonC.Title, ShouldContainSubstring, "30/40")
				So(b.View(), ShouldNotContainSubstring, "Catching more Pokémon")
			})

			Convey("An active search filter keeps scrolling idle", func() {
				filesystem.SetMemMapFs()

				b.Update(runes("/"))
				b.Update(runes("saur"))
				b.Update(tea.KeyMsg{Type: tea.KeyEnter})
				So(b.state, ShouldEqual, listState)
				So(b.pokemonC.Items(), ShouldHaveLength, 3)

				scrollTo(b, 2)
				So(b.loading, ShouldBeFalse)
				time.Sleep(50 * time.Millisecond)
				So(server.ListHits(), ShouldEqual, 1)
			})

			Convey("An open overlay keeps scrolling idle", func() {
				b.selectEntry(b.pokemonC.Items()[5].(*listItem).entry)
				So(b.lock.Locked(), ShouldBeTrue)

				b.pokemonC.Select(12)
				So(b.observeScroll(), ShouldBeNil)
				So(b.loading, ShouldBeFalse)
				time.Sleep(50 * time.Millisecond)
				So(server.ListHits(), ShouldEqual, 1)
			})

			Convey("Closing the overlay before its lookup runs leaves scrolling unlocked", func() {
				cmd := b.selectEntry(b.pokemonC.Items()[5].(*listItem).entry)
				b.Update(tea.KeyMsg{Type: tea.KeyEsc})
				b.Update(cmd())

				So(b.state, ShouldEqual, listState)
				So(b.detail, ShouldBeNil)
				So(b.lock.Locked(), ShouldBeFalse)
				So(b.selection.Current().IsAbsent(), ShouldBeTrue)

				scrollTo(b, 10)
				So(b.loading, ShouldBeTrue)
				So(eventually(func() bool { return server.ListHits() == 2 }), ShouldBeTrue)
			})
		})

		Convey("A failed first page shows the error screen", func() {
			server.Fail("/pokemon", http.StatusServiceUnavailable)
			firstPage(b)
			So(b.state, ShouldEqual, errorState)
			So(b.View(), ShouldContainSubstring, "could not be loaded")
			So(b.lastError.Error(), ShouldContainSubstring, "503")

			Convey("And retry loads it once the API recovers", func() {
				server.Heal()
				b.Update(runes("r"))
				So(b.state, ShouldEqual, loadingState)

				firstPage(b)
				So(b.state, ShouldEqual, listState)
				So(b.pokemonC.Items(), ShouldHaveLength, 15)
			})
		})
	})

	Convey("Given the viewer in page mode", t, func() {
		server := fakeapi.New(40)
		defer server.Close()

		b := newBubble(&Options{
			API:            pokeapi.NewClient(server.URL),
			PageSize:       15,
			PaginationMode: config.PaginationPage,
			ModalSprite:    config.SpriteShowdown,
		})
		defer b.teardown()

		firstPage(b)
		So(b.pager.Pages(), ShouldEqual, 3)

		Convey("The next page replaces the list", func() {
			_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyRight})
			drain(cmd)
			b.Update(b.waitForPages()())

			So(b.pager.Page(), ShouldEqual, 2)
			So(b.pokemonC.Items(), ShouldHaveLength, 15)
			So(b.pokemonC.Items()[0].(*listItem).entry.Name, ShouldEqual, fakeapi.Name(16))
			So(b.pokemonC.Title, ShouldContainSubstring, "2/3")
		})

		Convey("The first page has no previous page", func() {
			_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyLeft})
			So(cmd, ShouldBeNil)
			So(b.pager.Page(), ShouldEqual, 1)
		})

		Convey("The modal shows the showdown sprite", func() {
			So(b.spriteURL(&pokeapi.Pokemon{ID: 25}), ShouldEndWith, "showdown/25.gif")
		})
	})
}

func TestNewTrigger(t *testing.T) {
	Convey("The scroll threshold picks the trigger", t, func() {
		So(newTrigger(100), ShouldHaveSameTypeAs, dex.BottomTrigger{})
		So(newTrigger(0), ShouldResemble, dex.ThresholdTrigger{Ratio: dex.DefaultRatio})
		So(newTrigger(50), ShouldResemble, dex.ThresholdTrigger{Ratio: 0.5})
	})
}

package tui

import (
	"errors"
	"fmt"

	"github.com/alphadex-cli/alphadex/config"
	"github.com/alphadex-cli/alphadex/dex"
	"github.com/alphadex-cli/alphadex/internal/ui"
	"github.com/alphadex-cli/alphadex/log"
	"github.com/alphadex-cli/alphadex/open"
	"github.com/alphadex-cli/alphadex/pokeapi"
	"github.com/alphadex-cli/alphadex/util"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

type pageLoadedMsg struct {
	page    *dex.Page
	err     error
	initial bool
}

type detailLoadedMsg struct {
	entry  dex.Entry
	detail *dex.Detail
	err    error
}

// loadFirstPage fetches the first page, or the pager's page in page mode.
func (b *statefulBubble) loadFirstPage() tea.Cmd {
	b.progressStatus = "Catching the first Pokémon"

	return func() tea.Msg {
		var (
			page *dex.Page
			err  error
		)

		if b.options.infinite() {
			page, err = b.loader.LoadNext(b.ctx)
		} else {
			page, err = b.loader.LoadPage(b.ctx, b.pager.Page())
		}

		b.sendPage(pageLoadedMsg{page: page, err: err, initial: true})
		return nil
	}
}

// loadPage replaces the collection with page n.
func (b *statefulBubble) loadPage(n int) tea.Cmd {
	b.progressStatus = fmt.Sprintf("Loading page %d of %d", n, b.pager.Pages())

	return func() tea.Msg {
		page, err := b.loader.LoadPage(b.ctx, n)
		b.sendPage(pageLoadedMsg{page: page, err: err})
		return nil
	}
}

func (b *statefulBubble) sendPage(msg pageLoadedMsg) {
	select {
	case b.pageLoadedChannel <- msg:
	case <-b.ctx.Done():
	}
}

func (b *statefulBubble) waitForPages() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-b.pageLoadedChannel:
			return msg
		case <-b.ctx.Done():
			return nil
		}
	}
}

// onPageLoaded applies a finished page load and keeps listening for the next one.
func (b *statefulBubble) onPageLoaded(msg pageLoadedMsg) tea.Cmd {
	cmds := []tea.Cmd{b.waitForPages()}
	b.stopLoading()

	switch {
	case msg.err == nil:
	case errors.Is(msg.err, dex.ErrStale), errors.Is(msg.err, dex.ErrBusy):
		return tea.Batch(cmds...)
	case msg.initial:
		b.raiseError(msg.err)
		return tea.Batch(cmds...)
	default:
		return tea.Batch(append(cmds, ui.NotifyError("Could not load page", msg.err))...)
	}

	if b.pager != nil {
		b.pager.SetTotal(b.loader.Count())
		b.pokemonC.Title = fmt.Sprintf("Pokédex %d/%d", b.pager.Page(), b.pager.Pages())
	} else {
		b.pokemonC.Title = fmt.Sprintf("Pokédex %d/%d", b.loader.Len(), b.loader.Count())
	}

	if b.state == loadingState {
		b.newState(listState)
	}
	if b.pager != nil {
		b.pokemonC.ResetSelected()
	}

	return tea.Batch(append(cmds, b.refreshItems())...)
}

// refreshItems projects the filtered collection into the list.
func (b *statefulBubble) refreshItems() tea.Cmd {
	entries := dex.Filter(b.loader.Entries(), b.inputC.Value())
	items := lo.Map(entries, func(e dex.Entry, _ int) list.Item {
		return &listItem{entry: e, showURLs: b.options.ShowURLs}
	})
	return b.pokemonC.SetItems(items)
}

// noResults reports whether a non-empty query filtered everything out.
func (b *statefulBubble) noResults() bool {
	return b.inputC.Value() != "" && len(b.pokemonC.Items()) == 0 && b.loader.Len() > 0
}

// observeScroll reports the cursor position to the scroll watcher and starts
// the loading indicator when the position is going to load the next page.
func (b *statefulBubble) observeScroll() tea.Cmd {
	if b.watcher == nil || b.inputC.Value() != "" {
		return nil
	}

	v := dex.Viewport{
		Offset: b.pokemonC.Index(),
		Height: 1,
		Total:  len(b.pokemonC.Items()),
	}
	if !b.watcher.Observe(v) {
		return nil
	}

	if b.loading || b.lock.Locked() || !b.loader.HasNext() || v.Total < b.loader.Len() || !b.trigger.Fire(v) {
		return nil
	}

	b.progressStatus = "Catching more Pokémon"
	return b.startLoading()
}

// selectEntry opens the detail overlay and fetches the entry's detail.
func (b *statefulBubble) selectEntry(entry dex.Entry) tea.Cmd {
	b.selected = mo.Some(entry)
	b.detail = b.selection.Cached(entry.Name).OrEmpty()
	b.progressStatus = "Looking up " + util.Capitalize(entry.Name)
	b.newState(detailState)

	// The selection and its scroll lock are taken now, so a close handled
	// before the fetch runs always has something to undo.
	request := b.selection.Begin(b.ctx, entry)
	return func() tea.Msg {
		detail, err := b.selection.Await(b.ctx, request)
		return detailLoadedMsg{entry: entry, detail: detail, err: err}
	}
}

// onDetailLoaded shows a fetched detail unless the overlay moved on.
func (b *statefulBubble) onDetailLoaded(msg detailLoadedMsg) tea.Cmd {
	current, ok := b.selected.Get()
	if !ok || current.Name != msg.entry.Name || errors.Is(msg.err, dex.ErrStale) {
		return nil
	}

	if msg.err != nil {
		b.closeDetail()
		return ui.NotifyError("Could not load "+util.Capitalize(msg.entry.Name), msg.err)
	}

	b.detail = msg.detail
	return nil
}

// closeDetail clears the selection and returns to the list.
func (b *statefulBubble) closeDetail() {
	b.selection.Close()
	b.selected = mo.None[dex.Entry]()
	b.detail = nil
	if b.state == detailState {
		b.previousState()
	}
}

func (b *statefulBubble) spriteURL(p *pokeapi.Pokemon) string {
	if b.options.ModalSprite == config.SpriteShowdown {
		return pokeapi.ShowdownURL(p.ID)
	}
	return pokeapi.ArtworkURL(p.ID)
}

func (b *statefulBubble) openSprite() tea.Cmd {
	if b.detail == nil {
		return nil
	}

	url := b.spriteURL(b.detail.Pokemon)
	name := util.Capitalize(b.detail.DisplayName)
	return func() tea.Msg {
		if err := open.Start(url); err != nil {
			log.Error(err)
			return ui.NotificationMsg{Text: "Could not open sprite: " + err.Error()}
		}
		return ui.NotificationMsg{Text: "Opened " + name}
	}
}

package tui

import (
	"github.com/alphadex-cli/alphadex/log"
	"github.com/alphadex-cli/alphadex/query"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/mo"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, handled := b.notifier.Update(msg); handled {
		return b, cmd
	}

	switch msg := msg.(type) {
	case pageLoadedMsg:
		return b, b.onPageLoaded(msg)
	case detailLoadedMsg:
		return b, b.onDetailLoaded(msg)
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}
	}

	switch b.state {
	case loadingState:
		return b.updateLoading(msg)
	case listState:
		return b.updateList(msg)
	case searchState:
		return b.updateSearch(msg)
	case detailState:
		return b.updateDetail(msg)
	case errorState:
		return b.updateError(msg)
	}

	return b, nil
}

func (b *statefulBubble) updateLoading(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case spinner.TickMsg:
		b.spinnerC, cmd = b.spinnerC.Update(msg)
	}
	return b, cmd
}

func (b *statefulBubble) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.search):
			b.newState(searchState)
			return b, b.inputC.Focus()
		case bubblesKey.Matches(msg, b.keymap.confirm):
			item, ok := b.pokemonC.SelectedItem().(*listItem)
			if !ok {
				break
			}
			go func() {
				if err := query.Remember(item.entry.Name, 2); err != nil {
					log.Warn(err)
				}
			}()
			return b, tea.Batch(b.spinnerC.Tick, b.selectEntry(item.entry))
		case b.pager != nil && bubblesKey.Matches(msg, b.keymap.prevPage, b.keymap.nextPage):
			if b.loading {
				return b, nil
			}
			var (
				page    int
				changed bool
			)
			if bubblesKey.Matches(msg, b.keymap.nextPage) {
				page, changed = b.pager.Next()
			} else {
				page, changed = b.pager.Prev()
			}
			if !changed {
				return b, nil
			}
			return b, tea.Batch(b.startLoading(), b.loadPage(page))
		case bubblesKey.Matches(msg, b.keymap.back):
			if b.inputC.Value() != "" {
				b.inputC.SetValue("")
				return b, b.refreshItems()
			}
			return b, nil
		}
	case spinner.TickMsg:
		if msg.ID == b.spinnerC.ID() {
			if !b.loading {
				return b, nil
			}
			b.spinnerC, cmd = b.spinnerC.Update(msg)
			return b, cmd
		}
	}

	b.pokemonC, cmd = b.pokemonC.Update(msg)
	return b, tea.Batch(cmd, b.observeScroll())
}

func (b *statefulBubble) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if value := b.inputC.Value(); value != "" {
				go func() {
					if err := query.Remember(value, 1); err != nil {
						log.Warn(err)
					}
				}()
			}
			b.inputC.Blur()
			b.searchSuggestion = mo.None[string]()
			b.previousState()
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.acceptSearchSuggestion) && b.searchSuggestion.IsPresent():
			b.inputC.SetValue(b.searchSuggestion.MustGet())
			b.searchSuggestion = mo.None[string]()
			b.inputC.CursorEnd()
			return b, b.refreshItems()
		case bubblesKey.Matches(msg, b.keymap.back):
			b.inputC.SetValue("")
			b.inputC.Blur()
			b.searchSuggestion = mo.None[string]()
			b.previousState()
			return b, b.refreshItems()
		}
	}

	before := b.inputC.Value()
	b.inputC, cmd = b.inputC.Update(msg)

	if value := b.inputC.Value(); value != "" {
		if suggestion, ok := query.Suggest(value).Get(); ok && suggestion != value {
			b.searchSuggestion = mo.Some(suggestion)
		} else {
			b.searchSuggestion = mo.None[string]()
		}
	} else {
		b.searchSuggestion = mo.None[string]()
	}

	if before != b.inputC.Value() {
		b.pokemonC.ResetSelected()
		return b, tea.Batch(cmd, b.refreshItems())
	}
	return b, cmd
}

func (b *statefulBubble) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.back, b.keymap.quit):
			b.closeDetail()
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.openURL):
			return b, b.openSprite()
		}
	case spinner.TickMsg:
		b.spinnerC, cmd = b.spinnerC.Update(msg)
	}

	return b, cmd
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.retry):
			b.lastError = nil
			b.loader.Reset(b.options.PageSize)
			b.setState(loadingState)
			return b, tea.Batch(b.startLoading(), b.loadFirstPage())
		case bubblesKey.Matches(msg, b.keymap.back):
			if b.statesHistory.Len() == 0 {
				return b, tea.Quit
			}
			b.previousState()
			return b, nil
		}
	}
	return b, nil
}

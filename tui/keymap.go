package tui

import (
	"github.com/alphadex-cli/alphadex/color"
	"github.com/alphadex-cli/alphadex/style"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
)

// statefulKeymap defines the keyboard interactions available within each state.
type statefulKeymap struct {
	state    state
	infinite bool

	quit, forceQuit,
	confirm,
	back,
	search,
	acceptSearchSuggestion,
	openURL,
	retry,
	up, down,
	prevPage, nextPage,
	listPrevPage, listNextPage,
	top, bottom,
	showHelp key.Binding
}

func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

func newStatefulKeymap(infinite bool) *statefulKeymap {
	return &statefulKeymap{
		infinite: infinite,
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		acceptSearchSuggestion: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "accept suggestion"),
		),
		openURL: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open sprite"),
		),
		retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp(style.Fg(color.Yellow)("r"), style.Fg(color.Yellow)("retry")),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "down"),
		),
		prevPage: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "previous page"),
		),
		nextPage: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "next page"),
		),
		listPrevPage: key.NewBinding(
			key.WithKeys("pgup", "b"),
			key.WithHelp("pgup", "scroll up"),
		),
		listNextPage: key.NewBinding(
			key.WithKeys("pgdown", "f"),
			key.WithHelp("pgdown", "scroll down"),
		),
		top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	to2 := func(a []key.Binding) ([]key.Binding, []key.Binding) {
		return a, a
	}

	switch k.state {
	case loadingState:
		return to2(h(k.forceQuit))
	case listState:
		if k.infinite {
			return h(k.confirm, k.search), h(k.confirm, k.search, k.listPrevPage, k.listNextPage, k.top, k.bottom)
		}
		return h(k.confirm, k.search, k.prevPage, k.nextPage), h(k.confirm, k.search, k.prevPage, k.nextPage, k.top, k.bottom)
	case searchState:
		return to2(h(k.confirm, k.acceptSearchSuggestion, k.back))
	case detailState:
		return to2(h(k.openURL, k.back))
	case errorState:
		return to2(h(k.retry, k.back, k.quit))
	default:
		return to2(h())
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}

func (k *statefulKeymap) forList() list.KeyMap {
	return list.KeyMap{
		CursorUp:      k.up,
		CursorDown:    k.down,
		NextPage:      k.listNextPage,
		PrevPage:      k.listPrevPage,
		GoToStart:     k.top,
		GoToEnd:       k.bottom,
		ShowFullHelp:  k.showHelp,
		CloseFullHelp: k.showHelp,
		Quit:          k.quit,
		ForceQuit:     k.forceQuit,
	}
}

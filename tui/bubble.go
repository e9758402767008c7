package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/alphadex-cli/alphadex/constant"
	"github.com/alphadex-cli/alphadex/dex"
	"github.com/alphadex-cli/alphadex/internal/ui"
	"github.com/alphadex-cli/alphadex/key"
	"github.com/alphadex-cli/alphadex/style"
	"github.com/alphadex-cli/alphadex/util"
	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// statefulBubble is the whole viewer state: components, collection and selection.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]
	loading       bool

	keymap *statefulKeymap

	// components
	spinnerC spinner.Model
	inputC   textinput.Model
	pokemonC list.Model
	gaugeC   progress.Model
	helpC    help.Model

	loader    *dex.Loader
	pager     *dex.Pager
	trigger   dex.Trigger
	watcher   *dex.Watcher
	lock      *dex.ScrollLock
	selection *dex.Selection

	ctx    context.Context
	cancel context.CancelFunc

	pageLoadedChannel chan pageLoadedMsg

	selected       mo.Option[dex.Entry]
	detail         *dex.Detail
	progressStatus string
	lastError      error

	width, height    int
	searchSuggestion mo.Option[string]
	notifier         *ui.Model

	options *Options
}

// raiseError shows the error screen.
func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState moves to s, remembering the previous state unless it was transient.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if !lo.Contains([]state{loadingState, errorState}, b.state) {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		b.setState(b.statesHistory.Pop())
	}
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	listWidth := width - xx
	listHeight := height - yy - 2 // search line

	b.pokemonC.SetSize(listWidth, listHeight)
	b.pokemonC.Help.Width = listWidth

	b.gaugeC.Width = util.Clamp(listWidth/2, 10, 40)
	b.inputC.Width = listWidth

	b.width = width - x
	b.height = height - y
	b.helpC.Width = listWidth
}

func (b *statefulBubble) startLoading() tea.Cmd {
	b.loading = true
	return tea.Batch(b.spinnerC.Tick, b.pokemonC.StartSpinner())
}

func (b *statefulBubble) stopLoading() {
	b.loading = false
	b.pokemonC.StopSpinner()
}

// teardown stops the scroll listener and releases the selection.
func (b *statefulBubble) teardown() {
	b.cancel()
	if b.watcher != nil {
		b.watcher.Stop()
	}
	b.selection.Close()
}

func newBubble(options *Options) *statefulBubble {
	keymap := newStatefulKeymap(options.infinite())
	lock := &dex.ScrollLock{}

	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        keymap,

		loader: dex.NewLoader(options.API, options.PageSize, options.Hydrate),
		lock:   lock,
		selection: dex.NewSelection(options.API, lock, dex.SelectionOptions{
			Localize: options.Localize,
			Language: options.Language,
		}),

		pageLoadedChannel: make(chan pageLoadedMsg, 4),

		notifier: &ui.Model{},
		options:  options,
	}
	bubble.ctx, bubble.cancel = context.WithCancel(context.Background())

	if options.infinite() {
		bubble.trigger = newTrigger(options.ScrollPercent)
		bubble.watcher = dex.NewWatcher(bubble.loader, bubble.trigger, lock, func(page *dex.Page, err error) {
			select {
			case bubble.pageLoadedChannel <- pageLoadedMsg{page: page, err: err}:
			case <-bubble.ctx.Done():
			}
		})
		bubble.watcher.Start(bubble.ctx)
	} else {
		bubble.pager = dex.NewPager(options.PageSize, constant.FallbackTotal)
	}

	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(style.AccentColor).
		Foreground(style.AccentColor).
		Padding(0, 0, 0, 1)
	delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.BorderForeground(style.AccentColor)

	bubble.pokemonC = list.New([]list.Item{}, delegate, 0, 0)
	bubble.pokemonC.KeyMap = keymap.forList()
	bubble.pokemonC.AdditionalShortHelpKeys = keymap.ShortHelp
	bubble.pokemonC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
		return keymap.FullHelp()[0]
	}
	bubble.pokemonC.Title = "Pokédex"
	bubble.pokemonC.Styles.Title = lipgloss.NewStyle().Foreground(style.Base).Background(style.AccentColor).Padding(0, 1)
	bubble.pokemonC.Styles.NoItems = paddingStyle
	bubble.pokemonC.SetStatusBarItemName("pokémon", "pokémon")
	bubble.pokemonC.SetFilteringEnabled(false)
	bubble.pokemonC.StatusMessageLifetime = time.Hour * 999

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(style.AccentColor)

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = fmt.Sprintf("Search Pokémon (v%s)", constant.Version)
	bubble.inputC.CharLimit = 40
	bubble.inputC.Prompt = viper.GetString(key.TUISearchPromptString)
	bubble.inputC.SetValue(options.Query)

	bubble.gaugeC = progress.New(
		progress.WithSolidFill(string(style.GaugeFill)),
		progress.WithoutPercentage(),
	)
	bubble.gaugeC.EmptyColor = string(style.GaugeTrack)

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.setState(loadingState)
	return &bubble
}

// newTrigger maps the scroll threshold percentage to a trigger. 100 means the very bottom.
func newTrigger(percent int) dex.Trigger {
	if percent >= 100 {
		return dex.BottomTrigger{}
	}
	if percent <= 0 {
		return dex.ThresholdTrigger{Ratio: dex.DefaultRatio}
	}
	return dex.ThresholdTrigger{Ratio: float64(percent) / 100}
}

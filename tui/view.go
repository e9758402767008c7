package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/alphadex-cli/alphadex/color"
	"github.com/alphadex-cli/alphadex/dex"
	"github.com/alphadex-cli/alphadex/icon"
	"github.com/alphadex-cli/alphadex/pokeapi"
	"github.com/alphadex-cli/alphadex/style"
	"github.com/alphadex-cli/alphadex/util"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wrap"
	"github.com/samber/lo"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case listState, searchState:
		output = b.viewList()
	case detailState:
		output = b.viewDetail()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Loading"),
			"",
			b.spinnerC.View() + " " + b.progressStatus,
		},
	)
}

func (b *statefulBubble) viewList() string {
	var search string
	switch {
	case b.state == searchState:
		search = b.inputC.View()
		if suggestion, ok := b.searchSuggestion.Get(); ok {
			search += "  " + style.Faint(icon.Get(icon.Search)+" "+suggestion)
		}
	case b.inputC.Value() != "":
		search = style.Faint(b.inputC.Prompt) + b.inputC.Value()
	default:
		search = style.Faint("press / to search")
	}
	if b.watcher != nil && b.loading {
		search += "  " + b.spinnerC.View() + " " + style.Faint(b.progressStatus)
	}

	body := b.pokemonC.View()
	if b.noResults() {
		body = lipgloss.JoinVertical(
			lipgloss.Left,
			style.Title(b.pokemonC.Title),
			"",
			style.Fg(color.Yellow)(fmt.Sprintf("No Pokémon match %q", b.inputC.Value())),
		)
	}

	return listExtraPaddingStyle.Render(lipgloss.JoinVertical(lipgloss.Left, "  "+search, "", body))
}

func (b *statefulBubble) viewDetail() string {
	if b.detail == nil {
		return b.renderLines(
			true,
			[]string{
				style.Title(util.Capitalize(b.selected.OrEmpty().Name)),
				"",
				b.spinnerC.View() + " " + b.progressStatus,
			},
		)
	}

	p := b.detail.Pokemon
	gradient := dex.Gradient(p)

	header := style.Badge(gradient[0])(fmt.Sprintf("%s %s", p.DisplayID(), util.Capitalize(b.detail.DisplayName)))
	strip := strings.Join(lo.Map(gradient, func(c string, _ int) string {
		return style.Fg(lipgloss.Color(c))(strings.Repeat("▀", 6))
	}), "")

	lines := []string{
		header + " " + strip,
		"",
		typeBadges(p),
		"",
		fmt.Sprintf("%s %.1f m   %s %.1f kg", style.Faint("Height"), p.HeightMeters(), style.Faint("Weight"), p.WeightKilograms()),
		"",
		style.Bold("Abilities"),
	}

	for _, a := range p.Abilities {
		name := util.Capitalize(strings.ReplaceAll(a.Ability.Name, "-", " "))
		if a.IsHidden {
			name += " " + style.Fg(style.AbilityFill)("(Hidden) "+icon.Get(icon.Hidden))
		}
		lines = append(lines, indent.String("• "+name, 2))
	}

	lines = append(lines, "", style.Bold("Base stats"))

	nameWidth := lo.Max(lo.Map(p.Stats, func(s pokeapi.StatEntry, _ int) int { return len(s.Stat.Name) }))
	for _, g := range dex.Gauges(p, b.options.ClampGauges) {
		row := fmt.Sprintf("%-*s %3d ", nameWidth, g.Stat, g.Value) + b.gaugeC.ViewAs(math.Min(g.Fraction, 1))
		if g.Overdraw() {
			row += " " + style.Fg(style.AbilityFill)(fmt.Sprintf("+%d%%", int(math.Round((g.Fraction-1)*100))))
		}
		lines = append(lines, indent.String(row, 2))
	}

	lines = append(lines, "", style.Faint("Sprite ")+wrap.String(b.spriteURL(p), max(20, b.width-7)))

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(style.Red).Bold(true)
	errorBody := errorStyle.Render(b.lastError.Error())
	errorMsg := wrap.String(errorBody, b.width)
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " The Pokédex could not be loaded:",
			"",
			errorMsg,
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}

// Package tui provides the interactive Pokédex viewer.
package tui

import (
	"github.com/alphadex-cli/alphadex/config"
	"github.com/alphadex-cli/alphadex/dex"
	"github.com/alphadex-cli/alphadex/key"
	"github.com/alphadex-cli/alphadex/pokeapi"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"
)

// Options is the runtime configuration of the viewer.
type Options struct {
	API dex.Fetcher

	PageSize       int
	PaginationMode string
	Hydrate        bool
	Localize       bool
	Language       string
	ScrollPercent  int
	ClampGauges    bool
	ModalSprite    string
	ShowURLs       bool

	// Query pre-fills the search filter.
	Query string
}

// OptionsFromConfig reads the dex.* and tui.* settings.
func OptionsFromConfig() *Options {
	return &Options{
		API:            pokeapi.FromConfig(),
		PageSize:       viper.GetInt(key.DexPageSize),
		PaginationMode: viper.GetString(key.DexPaginationMode),
		Hydrate:        viper.GetBool(key.DexHydrateList),
		Localize:       viper.GetBool(key.DexSpeciesLocalization),
		Language:       viper.GetString(key.DexLanguage),
		ScrollPercent:  viper.GetInt(key.DexScrollThreshold),
		ClampGauges:    viper.GetBool(key.TUIClampGauges),
		ModalSprite:    viper.GetString(key.TUIModalSprite),
		ShowURLs:       viper.GetBool(key.TUIShowURLs),
	}
}

func (o *Options) infinite() bool {
	return o.PaginationMode != config.PaginationPage
}

// Run starts the viewer and blocks until it exits.
func Run(options *Options) error {
	bubble := newBubble(options)
	defer bubble.teardown()

	_, err := tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	return err
}

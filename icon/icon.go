// Package icon provides a multi-variant rendering engine for UI symbols and feedback indicators.
//
// Icons can be displayed as emoji, nerd-font glyphs, plain ASCII
// or Unicode squares depending on user preference.
package icon

import (
	"github.com/alphadex-cli/alphadex/key"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	squares = "squares"
)

// AvailableVariants returns a slice of all registered icon style identifiers.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, squares}
}

// Icon identifies a UI symbol.
type Icon int

const (
	Fail Icon = iota
	Success
	Progress
	Search
	Mark
	Hidden
	Upload
)

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	squares string
}

func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case squares:
		return d.squares
	default:
		return ""
	}
}

var icons = map[Icon]*iconDef{
	Fail:     {emoji: "💀", nerd: "\uf00d", plain: "X", squares: "🟥"},
	Success:  {emoji: "🎉", nerd: "\uf00c", plain: "✓", squares: "🟩"},
	Progress: {emoji: "⏳", nerd: "\uf110", plain: "~", squares: "🟦"},
	Search:   {emoji: "🔍", nerd: "\uf002", plain: "?", squares: "🟪"},
	Mark:     {emoji: "⭐", nerd: "\uf005", plain: "*", squares: "🟨"},
	Hidden:   {emoji: "🙈", nerd: "\uf070", plain: "(H)", squares: "⬛"},
	Upload:   {emoji: "☁️", nerd: "\uf0ee", plain: "^", squares: "🟧"},
}

// Get returns the rendered string for an icon under the configured variant.
func Get(i Icon) string {
	d, ok := icons[i]
	if !ok {
		return ""
	}
	return d.Get()
}

package pokeapi

import (
	"fmt"

	"github.com/alphadex-cli/alphadex/constant"
)

// ArtworkURL returns the official artwork PNG for a Pokémon id.
func ArtworkURL(id int) string {
	return fmt.Sprintf(constant.ArtworkURLTemplate, id)
}

// ShowdownURL returns the animated showdown GIF for a Pokémon id.
func ShowdownURL(id int) string {
	return fmt.Sprintf(constant.ShowdownURLTemplate, id)
}

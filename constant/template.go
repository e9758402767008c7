package constant

// Sprite URL templates, parameterized by the numeric Pokémon id.
const (
	ArtworkURLTemplate  = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/official-artwork/%d.png"
	ShowdownURLTemplate = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/showdown/%d.gif"
)

// DefaultBaseURL is the root of the public Pokémon REST API.
const DefaultBaseURL = "https://pokeapi.co/api/v2"

// FallbackTotal is the collection size assumed when the API does not report a count.
const FallbackTotal = 1118

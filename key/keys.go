// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// API access - these keys configure how the Pokémon REST API is reached.
const (
	APIBaseURL        = "api.base_url"
	APITimeoutSeconds = "api.timeout_seconds"
)

// Response cache - these keys govern the optional on-disk cache of API responses.
const (
	CacheEnable   = "cache.enable"
	CacheTTLHours = "cache.ttl_hours"
)

// Pokédex behaviour - these keys select the loading and detail strategies.
const (
	DexPageSize            = "dex.page_size"
	DexPaginationMode      = "dex.pagination_mode"
	DexHydrateList         = "dex.hydrate_list"
	DexSpeciesLocalization = "dex.species_localization"
	DexLanguage            = "dex.language"
	DexScrollThreshold     = "dex.scroll_threshold"
)

// Search Interaction - these keys define the UI/UX parameters for search discovery.
const (
	SearchRememberQueries      = "search.remember_queries"
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the primary interactive environment's styling and logic.
const (
	TUIItemSpacing        = "tui.item_spacing"
	TUISearchPromptString = "tui.search_prompt"
	TUIShowURLs           = "tui.show_urls"
	TUIClampGauges        = "tui.clamp_gauges"
	TUIModalSprite        = "tui.modal_sprite"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored = "cli.colored"
)

// Export - these keys configure the export command defaults.
const (
	ExportFormat   = "export.format"
	ExportS3Bucket = "export.s3_bucket"
	ExportS3Region = "export.s3_region"
)

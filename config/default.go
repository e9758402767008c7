// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/alphadex-cli/alphadex/color"
	"github.com/alphadex-cli/alphadex/constant"
	"github.com/alphadex-cli/alphadex/key"
	"github.com/alphadex-cli/alphadex/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.App + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

// Pagination modes accepted by key.DexPaginationMode.
const (
	PaginationPage           = "page"
	PaginationInfiniteScroll = "infinite-scroll"
)

// Modal sprite variants accepted by key.TUIModalSprite.
const (
	SpriteArtwork  = "artwork"
	SpriteShowdown = "showdown"
)

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.APIBaseURL, constant.DefaultBaseURL, "Base URL of the Pokémon REST API")
	register(key.APITimeoutSeconds, 60, "HTTP request timeout in seconds")
	register(key.CacheEnable, false, "Cache API responses on disk between sessions")
	register(key.CacheTTLHours, 24*7, "Lifetime of cached API responses in hours")
	register(key.DexPageSize, 15, "Number of Pokémon fetched per page")
	register(key.DexPaginationMode, PaginationInfiniteScroll, "How the next page is requested.\nAvailable options are: page, infinite-scroll")
	register(key.DexHydrateList, true, "Fetch the full record of every listed Pokémon while loading a page")
	register(key.DexSpeciesLocalization, false, "Fetch the species record and show the localized name")
	register(key.DexLanguage, "en", "Language used for localized Pokémon names")
	register(key.DexScrollThreshold, 70, "Scroll position (percent of the loaded list) that triggers the next page")
	register(key.SearchRememberQueries, false, "Remember search queries on disk for suggestions")
	register(key.SearchShowQuerySuggestions, true, "Show query suggestions when searching")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, plain, squares, nerd (nerd-font required)")
	register(key.TUIItemSpacing, 1, "Spacing between items in the TUI")
	register(key.TUISearchPromptString, "> ", "Search prompt string to use")
	register(key.TUIShowURLs, false, "Show sprite URLs under list items")
	register(key.TUIClampGauges, false, "Clamp stat gauges at 100%.\nWhen disabled, stats above 100 overdraw the gauge")
	register(key.TUIModalSprite, SpriteArtwork, "Sprite shown in the detail view.\nAvailable options are: artwork, showdown")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.ExportFormat, "csv", "Default export format.\nAvailable options are: csv, parquet")
	register(key.ExportS3Bucket, "", "S3 bucket to upload exports to.\nExports are written locally if empty")
	register(key.ExportS3Region, "", "AWS region of the export bucket.\nFalls back to the SDK default chain if empty")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))

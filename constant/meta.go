// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// App is the canonical application identifier used for filesystem paths and CLI branding.
	App = "alphadex"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// UserAgent is sent with every request to the Pokémon API.
	UserAgent = App + "/" + Version
)

// Build metadata, injected with -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

package cache

// Config holds configuration for the cache feature.
type Config struct {
	// Prefix marks ids of cached external records, e.g. "ext-42".
	Prefix string `mapstructure:"prefix" default:"ext-"`
	// SourceURL is the base URL of the numeric-id external catalog.
	// Empty disables the on-demand fetch-and-cache path.
	SourceURL string `mapstructure:"source_url" default:"https://gutendex.com/books"`
	// SourceTimeoutSeconds bounds every remote catalog request.
	SourceTimeoutSeconds int `mapstructure:"source_timeout_seconds" default:"15"`
}

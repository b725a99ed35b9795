package proxy

// Config holds configuration for the content proxy.
type Config struct {
	// TimeoutSeconds bounds every upstream fetch; on expiry the in-flight
	// request is cancelled and the connection released.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"15"`
	// UserAgent is the identifying header sent with every upstream request.
	UserAgent string `mapstructure:"user_agent" default:"openshelf-proxy/1.0"`
	// CacheMaxAgeSeconds is advertised to downstream infrastructure via
	// Cache-Control on successful responses. Advisory only; it never
	// substitutes for the durable cache store.
	CacheMaxAgeSeconds int `mapstructure:"cache_max_age_seconds" default:"3600"`
}

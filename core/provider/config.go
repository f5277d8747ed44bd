package provider

import "time"

// Config holds configuration for the TMDb metadata provider.
type Config struct {
	// APIKey is the TMDb v3 api key. Enrichment is disabled when empty.
	APIKey string `mapstructure:"api_key" default:""`
	// BaseURL is the TMDb API root.
	BaseURL string `mapstructure:"base_url" default:"https://api.themoviedb.org/3"`
	// ImageBaseURL is used when the configuration endpoint omits one.
	ImageBaseURL string `mapstructure:"image_base_url" default:"https://image.tmdb.org/t/p/"`
	// Language is sent with every request.
	Language string `mapstructure:"language" default:"en-US"`
	// RequestsPerSecond caps the outgoing request rate.
	RequestsPerSecond float64 `mapstructure:"requests_per_second" default:"4"`
	// TimeoutSeconds is the per-request HTTP timeout.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
}

func (c Config) timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

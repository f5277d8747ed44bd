package export

// Config holds configuration for export runs.
type Config struct {
	// Types lists the content types to export.
	Types []string `mapstructure:"types" default:"shows,movies"`
	// Schedule is the cron expression of periodic runs. Empty disables scheduling.
	Schedule string `mapstructure:"schedule" default:"@every 6h"`
	// SimilarConcurrency bounds concurrent lookups of similar titles.
	SimilarConcurrency int `mapstructure:"similar_concurrency" default:"5"`
	// RunOnStart triggers a run as soon as the server starts.
	RunOnStart bool `mapstructure:"run_on_start" default:"false"`
}

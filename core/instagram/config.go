package instagram

// Config holds configuration for the Instagram remote adapter.
type Config struct {
	// SessionFile is the path to the exported session JSON. When empty, the
	// client looks for sessions/<username>.json under the working directory.
	SessionFile string `mapstructure:"session_file" default:""`
	// TimeoutSeconds is the per-request HTTP timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// UserAgent is sent on every request. Instagram rejects blank agents.
	UserAgent string `mapstructure:"user_agent" default:"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"`
	// PageSize is the number of accounts requested per page.
	PageSize int `mapstructure:"page_size" default:"100"`
}

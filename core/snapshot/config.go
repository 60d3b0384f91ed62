package snapshot

// Config holds configuration for snapshot persistence.
type Config struct {
	// Backend selects the persistence backend (file or s3).
	Backend string `mapstructure:"backend" default:"file"`
	// Dir is the directory the file backend writes snapshots to.
	Dir string `mapstructure:"dir" default:"data"`
}

const (
	// BackendFile persists snapshots as local JSON files.
	BackendFile = "file"
	// BackendS3 persists snapshots in an object storage bucket.
	BackendS3 = "s3"
)

// IsValidBackend checks if the configured backend is valid.
func (c Config) IsValidBackend() bool {
	switch c.Backend {
	case BackendFile, BackendS3:
		return true
	default:
		return false
	}
}

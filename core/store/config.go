package store

// Backends selectable through Config.Backend.
const (
	BackendAppwrite = "appwrite"
	BackendSQL      = "sql"
	BackendMemory   = "memory"
)

// Config selects the structured store implementation.
type Config struct {
	// Backend is one of appwrite, sql or memory.
	Backend string `mapstructure:"backend" default:"appwrite"`
}

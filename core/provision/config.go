package provision

// Config holds configuration for schema provisioning.
type Config struct {
	// DatabaseName is the name of the database that holds the collections.
	DatabaseName string `mapstructure:"database_name" default:"NMI"`
	// CheckOnStartup runs reconciliation before a request is handled.
	CheckOnStartup bool `mapstructure:"check_on_startup" default:"true"`
	// StartupRetries bounds the startup retries while the store is unavailable.
	StartupRetries int `mapstructure:"startup_retries" default:"5"`
}

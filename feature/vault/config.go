package vault

// Config holds configuration for the vault sync feature.
type Config struct {
	// Enabled mounts the user-event route.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// RelayFunctionID is the platform function executed with the envelope.
	// Empty means envelopes are relayed in-process.
	RelayFunctionID string `mapstructure:"relay_function_id" default:""`
}

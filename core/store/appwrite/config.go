package appwrite

// Config holds configuration for the platform REST API.
type Config struct {
	// Endpoint is the API root, including the /v1 suffix.
	Endpoint string `mapstructure:"endpoint" default:"https://cloud.appwrite.io/v1"`
	// ProjectID is sent as X-Appwrite-Project.
	ProjectID string `mapstructure:"project_id" default:""`
	// APIKey is sent as X-Appwrite-Key.
	APIKey string `mapstructure:"api_key" default:""`
	// TimeoutSeconds bounds connection setup and the wait for response headers.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

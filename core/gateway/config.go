package gateway

// Config holds configuration for the payment gateway.
type Config struct {
	// Endpoint is the Direct Post URL.
	Endpoint string `mapstructure:"endpoint" default:"https://secure.nmi.com/api/transact.php"`
	// SecurityKey is the merchant private key.
	SecurityKey string `mapstructure:"security_key" default:""`
	// TimeoutSeconds bounds the whole request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

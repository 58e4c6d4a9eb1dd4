package config

import (
	"fmt"
	"reflect"
	"strings"

	"payment-relay/core/database"
	"payment-relay/core/gateway"
	"payment-relay/core/logger"
	"payment-relay/core/provision"
	"payment-relay/core/server"
	"payment-relay/core/storage"
	"payment-relay/core/store"
	"payment-relay/core/store/appwrite"
	"payment-relay/feature/vault"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Store selects the structured store backend.
	Store store.Config `mapstructure:"store"`
	// Appwrite holds the platform endpoint and credentials.
	Appwrite appwrite.Config `mapstructure:"appwrite"`
	// Gateway holds the payment gateway endpoint and key.
	Gateway gateway.Config `mapstructure:"gateway"`
	// Provisioning holds the target database and startup behaviour.
	Provisioning provision.Config `mapstructure:"provisioning"`
	// Database holds configuration for the sql store backend.
	Database database.Config `mapstructure:"database"`
	// Storage holds configuration for the payload archive.
	Storage storage.Config `mapstructure:"storage"`
	// Vault holds configuration for user to customer vault sync.
	Vault vault.Config `mapstructure:"vault"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks settings that have no usable default.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case store.BackendAppwrite, store.BackendSQL, store.BackendMemory:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Provisioning.DatabaseName == "" {
		return fmt.Errorf("provisioning.database_name is required")
	}
	return nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}

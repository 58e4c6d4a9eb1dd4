// Package config loads application settings from the environment and an
// optional .env file using Viper.
//
// Every setting lives in a section struct owned by the package that uses
// it. Defaults come from `default` struct tags and environment keys are
// SECTION_KEY, e.g. PROVISIONING_DATABASE_NAME or GATEWAY_SECURITY_KEY.
//
// Sections:
//   - Server: port, API key, body limit, shutdown timeout
//   - Log: level and format
//   - Store: structured store backend (appwrite, sql, memory)
//   - Appwrite: platform endpoint, project and key
//   - Gateway: payment gateway endpoint and security key
//   - Provisioning: database name, check on startup
//   - Database: sql backend connection
//   - Storage: payload archive bucket
//   - Vault: relay function id
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Provisioning.DatabaseName)
package config

// Package config provides configuration management for collbool.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults come from the `default` struct tags of each
// section and are registered by reflection so every key is reachable through
// AutomaticEnv.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP port, API key, scene backend
//   - Storage: S3/MinIO credentials, bucket and scene prefix
//   - Log: Logging level and format
//   - Database: driver (mysql, sqlite) and connection details
//   - Engine: effect name prefix, settle rounds, scene cache TTL
//   - Metrics: Prometheus endpoint toggle and path
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	port := cfg.Server.Port // SERVER_PORT
package config

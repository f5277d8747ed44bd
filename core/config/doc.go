// Package config provides configuration management for the catalog exporter.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults come from the `default` struct tags of each section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP API settings (port, API key)
//   - Storage: S3/MinIO credentials, asset bucket and public URL
//   - Log: Logging level and format
//   - Database: catalog database driver and connection details
//   - Source: source document store (MongoDB or JSON exports in the bucket)
//   - Provider: TMDb api key, endpoints and rate limit
//   - Cache: provider response cache (memory or redis)
//   - Export: content types, cron schedule and lookup concurrency
//
// Environment variables use the section as prefix, e.g. PROVIDER_API_KEY or
// EXPORT_SCHEDULE.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Export.Types)
package config

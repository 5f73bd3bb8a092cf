// Package config provides configuration management for Pantry Tracker.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file (via godotenv).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, body limit)
//   - Database: MySQL/SQLite connection details
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//   - AI: Vision classifier endpoint (base URL, model, API key)
//
// Defaults come from `default` struct tags; environment variables override
// them using the SECTION_KEY convention (e.g. AI_API_KEY, DATABASE_HOST).
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config

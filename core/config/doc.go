// Package config provides configuration management for the follow checker.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: paste-UI listen address and default target label
//   - Snapshot: snapshot backend and directory
//   - Storage: S3/MinIO credentials for the s3 snapshot backend
//   - Remote: Instagram session file and HTTP settings
//   - Database: optional MySQL run-history connection
//   - Log: logging level and format
//
// Settings the CLI also exposes as flags (snapshot dir, retries, base wait)
// are overridden by the flag value when one is given; nothing reads ambient
// globals.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config

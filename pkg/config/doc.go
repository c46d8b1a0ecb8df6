// Package config loads typed configuration from environment variables.
//
// Config structs declare their variables with caarlos0/env tags. Load
// reads an optional .env file through godotenv, parses the struct and caches
// the result per type, so packages can call it freely:
//
//	var cfg store.Config
//	config.MustLoad(&cfg)
//
// Failures wrap ErrParsingConfig and can be checked with errors.Is.
package config

// Package config resolves the small amount of runtime configuration the
// registry accepts: listen address and database path.
package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Environment variable names.
const (
	EnvPort   = "PORT"
	EnvDBPath = "DEVICES_DB"
)

// Load reads a .env file if one is present. A missing file is not an error.
func Load() {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Msg("Could not load .env file")
		}
	}
}

// Addr returns the listen address: the flag value when set, otherwise
// the PORT environment variable, otherwise the default.
func Addr(flagValue, def string) string {
	if flagValue != "" {
		return flagValue
	}
	if port := os.Getenv(EnvPort); port != "" {
		return ":" + port
	}
	return def
}

// DBPath returns the database path: the flag value when set, otherwise
// the DEVICES_DB environment variable, otherwise empty (store default).
func DBPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(EnvDBPath)
}

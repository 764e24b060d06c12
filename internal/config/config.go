// Package config reads pulse's environment, optionally seeded from .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/pulsecheck/pulse/internal/constants"
)

// Config is the environment-level configuration. Command-line flags take
// precedence over every field.
type Config struct {
	DBConnection string // PULSE_DB_CONNECTION: SQLite path or PostgreSQL URI/DSN
	User         string // PULSE_USER
	Addr         string // PULSE_ADDR: listen address for `pulse serve`
	Debug        bool   // PULSE_DEBUG
	LogLevel     string // PULSE_LOG_LEVEL
}

// EnvLogLevel overrides the log level derived from Debug.
const EnvLogLevel = "PULSE_LOG_LEVEL"

// DotenvPaths returns the .env files pulse reads, in priority order: the
// working directory first, then the config directory.
func DotenvPaths(configDir string) []string {
	paths := []string{".env"}
	if configDir != "" {
		paths = append(paths, filepath.Join(configDir, ".env"))
	}
	return paths
}

// LoadDotenv loads each existing file into the process environment. Variables
// that are already set are never overwritten, and missing files are skipped.
func LoadDotenv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads the dotenv files and then the environment.
func Load(paths ...string) (Config, error) {
	if err := LoadDotenv(paths...); err != nil {
		return Config{}, err
	}
	return FromEnv(), nil
}

// FromEnv reads Config from the current environment.
func FromEnv() Config {
	return Config{
		DBConnection: os.Getenv(constants.EnvDBConnection),
		User:         getEnvWithDefault(constants.EnvUser, ""),
		Addr:         getEnvWithDefault(constants.EnvAddr, constants.DefaultAddr),
		Debug:        getEnvBool(constants.EnvDebug, false),
		LogLevel:     strings.ToLower(os.Getenv(EnvLogLevel)),
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes":
			return true
		default:
			return false
		}
	}
	return defaultValue
}

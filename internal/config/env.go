package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// GetEnvString returns the named environment variable, or the default when
// it is unset.
func GetEnvString(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// GetEnvInt returns the named environment variable parsed as an integer.
// Unset or unparseable values fall back to the default.
func GetEnvInt(key string, defaultValue int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}

// GetEnvBool returns the named environment variable parsed as a boolean.
// Unset or unparseable values fall back to the default.
func GetEnvBool(key string, defaultValue bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue
	}
	return b
}

// GetEnvDuration returns the named environment variable parsed as a duration.
// Values carrying a unit suffix go through time.ParseDuration; a bare integer
// is read as minutes. Unset or unparseable values fall back to the default.
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return defaultValue
	}

	if strings.ContainsAny(v, "smh") {
		d, err := time.ParseDuration(v)
		if err != nil {
			return defaultValue
		}
		return d
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return time.Duration(n) * time.Minute
}

// GetEnvLogLevel returns the named environment variable parsed as a zerolog
// level. Unset or unrecognized values fall back to the default.
func GetEnvLogLevel(key string, defaultValue zerolog.Level) zerolog.Level {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return defaultValue
	}
	level, err := zerolog.ParseLevel(v)
	if err != nil {
		return defaultValue
	}
	return level
}

package config

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Config holds all configuration for the application
type Config struct {
	// Storage
	DBPath       string
	CacheEnabled bool

	// Server settings
	ServerHost string
	ServerPort int

	// Upstream fetch settings
	UserAgent      string
	RequestTimeout time.Duration

	// Feed cache settings
	FeedTTL       time.Duration
	SweepInterval time.Duration

	// Log settings
	LogLevel zerolog.Level
}

// DefaultConfig returns an initial configuration with hardcoded defaults.
func DefaultConfig() *Config {
	defaultLevel, _ := zerolog.ParseLevel(DefaultLogLevel)

	return &Config{
		DBPath:         DefaultDBPath,
		CacheEnabled:   GetEnvBool("PLAYEMBED_CACHE_ENABLED", DefaultCacheEnabled),
		ServerHost:     DefaultServerHost,
		ServerPort:     DefaultServerPort,
		UserAgent:      GetEnvString("PLAYEMBED_USER_AGENT", DefaultUserAgent),
		RequestTimeout: DefaultRequestTimeout,
		FeedTTL:        GetEnvDuration("PLAYEMBED_FEED_TTL", DefaultFeedTTL),
		SweepInterval:  GetEnvDuration("PLAYEMBED_SWEEP_INTERVAL", DefaultSweepInterval),
		LogLevel:       GetEnvLogLevel("PLAYEMBED_LOG_LEVEL", defaultLevel),
	}
}

// ListenAddr returns the formatted listen address for the HTTP server.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

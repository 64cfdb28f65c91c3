package config

import "time"

// Constants defining default values for application configuration
const (
	DefaultDBPath = "./playembed.db"

	DefaultServerPort = 8080
	DefaultServerHost = "" // Empty string means all interfaces

	DefaultUserAgent      = "playembed/1.0"
	DefaultRequestTimeout = 15 * time.Second

	DefaultFeedTTL       = 5 * time.Minute  // Freshness window for cached feeds
	DefaultSweepInterval = 15 * time.Minute // How often stale cache rows are purged
	DefaultCacheEnabled  = true

	DefaultLogLevel = "info"
)

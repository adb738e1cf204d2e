package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// LobbyTTL bounds how long an abandoned registration survives
	LobbyTTL time.Duration

	// HistoryTTL applies to finished game summaries. Zero keeps them forever.
	HistoryTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		LobbyTTL:     24 * time.Hour,
		HistoryTTL:   30 * 24 * time.Hour,
	}
}

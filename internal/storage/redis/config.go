package redis

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// ActivityFeedCap is the maximum number of activity entries retained
	// per user; older entries are trimmed
	ActivityFeedCap int

	// TxRetries is how many times an atomic collection update is retried
	// when a concurrent writer invalidates the watched keys before the
	// conflict is surfaced to the caller
	TxRetries int
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:             "redis://localhost:6379",
		PoolSize:        10,
		MinIdleConns:    2,
		ActivityFeedCap: 100,
		TxRetries:       5,
	}
}

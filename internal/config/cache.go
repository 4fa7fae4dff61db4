package config

import (
	"strconv"
	"time"
)

// CacheConfig controls the Redis response cache applied to the public
// catalogue endpoints (service listings, staff roster).  When Enabled is
// false or no Redis client could be created the middleware is a no-op.
// TTL is deliberately short; the catalogue is editable from the admin
// panel.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads CACHE_* environment variables, falling back to
// defaults suitable for the salon front-end polling rate.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      getenvDefault("CACHE_ENABLED", "true") == "true",
		TTL:          parseDur(getenvDefault("CACHE_TTL", "15s")),
		Prefix:       getenvDefault("CACHE_PREFIX", "salon:cache"),
		MaxBodyBytes: atoi(getenvDefault("CACHE_MAX_BODY_BYTES", "1048576")),
	}
}

func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Second
	}
	return d
}

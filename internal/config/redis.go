package config

// Redis backs the response cache and the booking/login rate limiter.  Both
// features are optional: when the server cannot reach Redis at startup the
// constructor returns nil and the middleware degrades to a pass-through.

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds a Redis client from REDIS_ADDR (or REDIS_HOST and
// REDIS_PORT), REDIS_PASSWORD and REDIS_DB.  It pings the server with a
// short timeout and returns nil when the server is unreachable so callers
// can run without caching or rate limiting.
func NewRedisClient() *redis.Client {
	addr := getenvDefault("REDIS_ADDR", "")
	if host, port := getenvDefault("REDIS_HOST", ""), getenvDefault("REDIS_PORT", ""); host != "" && port != "" {
		addr = host + ":" + port
	}
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: getenvDefault("REDIS_PASSWORD", ""),
		DB:       atoi(getenvDefault("REDIS_DB", "0")),
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}

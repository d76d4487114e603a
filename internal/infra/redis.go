// README: Redis client initialization for the ride history list.
package infra

import "github.com/redis/go-redis/v9"

// NewRedis returns nil when no address is configured so callers can fall
// back to the in-memory store.
func NewRedis(addr string) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr})
}

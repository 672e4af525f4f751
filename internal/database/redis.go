package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"humblespace/internal/config"
)

// NewRedis creates the Redis client backing the cover-lookup cache. It
// parses the URL, connects, and pings to verify connectivity before
// returning. Sessions do not live here -- the admin session is stateless,
// so losing Redis only costs cover-lookup latency, never a login.
func NewRedis(cfg config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	// Verify the connection is alive before returning.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return client, nil
}

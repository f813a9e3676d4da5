// Package redis keeps revoked access tokens in Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultDialTimeout = 5 * time.Second
	defaultOpTimeout   = 2 * time.Second
)

// Config selects the Redis database that holds revocations.
type Config struct {
	Addr     string
	Password string
	DB       int
	// DialTimeout bounds the initial connection and ping.
	DialTimeout time.Duration
	// OpTimeout bounds each revocation read or write.
	OpTimeout time.Duration
}

func (c Config) options() *redis.Options {
	dial := c.DialTimeout
	if dial <= 0 {
		dial = defaultDialTimeout
	}
	op := c.OpTimeout
	if op <= 0 {
		op = defaultOpTimeout
	}
	return &redis.Options{
		Addr:         c.Addr,
		Password:     c.Password,
		DB:           c.DB,
		DialTimeout:  dial,
		ReadTimeout:  op,
		WriteTimeout: op,
	}
}

// Connect opens the client used by TokenStore and fails fast when the server
// does not answer a ping within the dial timeout.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	opts := cfg.options()
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, opts.DialTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to revocation store at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

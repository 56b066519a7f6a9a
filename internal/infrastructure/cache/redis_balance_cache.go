package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crp/backend/internal/domain/ledger"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// RedisBalanceCache implements ledger.BalanceCache using Redis. This is
// suitable for distributed deployments where multiple instances share
// cached opening balances.
type RedisBalanceCache struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisBalanceCache creates a new Redis-based balance cache
func NewRedisBalanceCache(cfg RedisConfig) (*RedisBalanceCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisBalanceCache{
		client:    client,
		keyPrefix: "ledger:",
	}, nil
}

// NewRedisBalanceCacheWithClient creates a cache with an existing Redis
// client. Useful for testing or sharing a client across components.
func NewRedisBalanceCacheWithClient(client *redis.Client, keyPrefix string) *RedisBalanceCache {
	if keyPrefix == "" {
		keyPrefix = "ledger:"
	}
	return &RedisBalanceCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Get retrieves a cached balance. A missing key is a miss, not an error.
func (c *RedisBalanceCache) Get(ctx context.Context, key string) (decimal.Decimal, bool, error) {
	raw, err := c.client.Get(ctx, c.keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("failed to read balance from cache: %w", err)
	}
	balance, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("corrupt cached balance %q: %w", raw, err)
	}
	return balance, true, nil
}

// Set stores a balance with the given TTL
func (c *RedisBalanceCache) Set(ctx context.Context, key string, balance decimal.Decimal, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.keyPrefix+key, balance.String(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to write balance to cache: %w", err)
	}
	return nil
}

// Delete removes a balance from the cache
func (c *RedisBalanceCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete balance from cache: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisBalanceCache) Close() error {
	return c.client.Close()
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (c *RedisBalanceCache) GetClient() *redis.Client {
	return c.client
}

// Ensure RedisBalanceCache implements BalanceCache
var _ ledger.BalanceCache = (*RedisBalanceCache)(nil)

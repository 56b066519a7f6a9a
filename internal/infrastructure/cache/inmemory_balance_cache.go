package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/crp/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Constants for in-memory cache configuration
const (
	defaultCleanupInterval = 30 * time.Second
	defaultBalanceTTL      = 15 * time.Minute
)

// InMemoryBalanceCache implements ledger.BalanceCache with process-local
// storage. Suitable for single-instance deployments and testing.
type InMemoryBalanceCache struct {
	entries sync.Map // map[string]*balanceEntry
	ttl     time.Duration
	logger  *zap.Logger
	stopCh  chan struct{}
	stopped int32

	// Stats for monitoring
	hits   int64
	misses int64
}

// balanceEntry wraps a cached balance with its expiration time
type balanceEntry struct {
	balance   decimal.Decimal
	expiresAt time.Time
}

func (e *balanceEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// InMemoryBalanceCacheOption is a functional option for configuring the cache
type InMemoryBalanceCacheOption func(*InMemoryBalanceCache)

// WithInMemoryTTL sets the default TTL used when Set receives a zero TTL
func WithInMemoryTTL(ttl time.Duration) InMemoryBalanceCacheOption {
	return func(c *InMemoryBalanceCache) {
		c.ttl = ttl
	}
}

// WithInMemoryLogger sets the logger for the cache
func WithInMemoryLogger(logger *zap.Logger) InMemoryBalanceCacheOption {
	return func(c *InMemoryBalanceCache) {
		c.logger = logger
	}
}

// NewInMemoryBalanceCache creates a new in-memory balance cache
func NewInMemoryBalanceCache(opts ...InMemoryBalanceCacheOption) *InMemoryBalanceCache {
	cache := &InMemoryBalanceCache{
		ttl:    defaultBalanceTTL,
		logger: zap.NewNop(),
		stopCh: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(cache)
	}

	go cache.cleanupExpired()

	return cache
}

// Get retrieves a cached balance
func (c *InMemoryBalanceCache) Get(ctx context.Context, key string) (decimal.Decimal, bool, error) {
	if value, ok := c.entries.Load(key); ok {
		entry := value.(*balanceEntry)
		if !entry.isExpired() {
			atomic.AddInt64(&c.hits, 1)
			return entry.balance, true, nil
		}
		// Expired, remove from cache
		c.entries.Delete(key)
	}

	atomic.AddInt64(&c.misses, 1)
	return decimal.Zero, false, nil
}

// Set stores a balance with the given TTL
func (c *InMemoryBalanceCache) Set(ctx context.Context, key string, balance decimal.Decimal, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.ttl
	}
	c.entries.Store(key, &balanceEntry{
		balance:   balance,
		expiresAt: time.Now().Add(ttl),
	})
	c.logger.Debug("Cached balance",
		zap.String("key", key),
		zap.Duration("ttl", ttl))
	return nil
}

// Delete removes a balance from the cache
func (c *InMemoryBalanceCache) Delete(ctx context.Context, key string) error {
	c.entries.Delete(key)
	return nil
}

// Close stops the background cleanup goroutine
func (c *InMemoryBalanceCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

// GetStats returns cache statistics
func (c *InMemoryBalanceCache) GetStats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// Count returns the number of entries in the cache
func (c *InMemoryBalanceCache) Count() int {
	count := 0
	c.entries.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

// cleanupExpired periodically removes expired entries
func (c *InMemoryBalanceCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.doCleanup()
		}
	}
}

func (c *InMemoryBalanceCache) doCleanup() {
	removed := 0
	c.entries.Range(func(key, value any) bool {
		if value.(*balanceEntry).isExpired() {
			c.entries.Delete(key)
			removed++
		}
		return true
	})
	if removed > 0 {
		c.logger.Debug("Cleaned up expired balance cache entries",
			zap.Int("removed", removed))
	}
}

// Ensure InMemoryBalanceCache implements BalanceCache
var _ ledger.BalanceCache = (*InMemoryBalanceCache)(nil)

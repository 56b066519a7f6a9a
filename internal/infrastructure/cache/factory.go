package cache

import (
	"fmt"

	"github.com/crp/backend/internal/domain/ledger"
	"github.com/crp/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// BalanceCacheFactory creates balance caches based on configuration
type BalanceCacheFactory struct {
	redisConfig           config.RedisConfig
	ledgerConfig          config.LedgerConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// BalanceCacheFactoryOption is a functional option for configuring the factory
type BalanceCacheFactoryOption func(*BalanceCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) BalanceCacheFactoryOption {
	return func(f *BalanceCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory
// cache when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) BalanceCacheFactoryOption {
	return func(f *BalanceCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewBalanceCacheFactory creates a new factory
func NewBalanceCacheFactory(redisCfg config.RedisConfig, ledgerCfg config.LedgerConfig, opts ...BalanceCacheFactoryOption) *BalanceCacheFactory {
	f := &BalanceCacheFactory{
		redisConfig:           redisCfg,
		ledgerConfig:          ledgerCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateCache creates the balance cache selected by configuration.
// With the redis backend, a connection failure falls back to the
// in-memory cache unless fallback is disabled.
func (f *BalanceCacheFactory) CreateCache() (ledger.BalanceCache, error) {
	switch f.ledgerConfig.CacheBackend {
	case "redis":
		cache, err := NewRedisBalanceCache(RedisConfig{
			Host:     f.redisConfig.Host,
			Port:     f.redisConfig.Port,
			Password: f.redisConfig.Password,
			DB:       f.redisConfig.DB,
		})
		if err == nil {
			f.logger.Info("using Redis balance cache",
				zap.String("addr", fmt.Sprintf("%s:%d", f.redisConfig.Host, f.redisConfig.Port)))
			return cache, nil
		}
		if !f.allowInMemoryFallback {
			return nil, fmt.Errorf("failed to create Redis balance cache: %w", err)
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory balance cache",
			zap.Error(err))
		fallthrough
	case "memory":
		return NewInMemoryBalanceCache(
			WithInMemoryTTL(f.ledgerConfig.OpeningBalanceTTL),
			WithInMemoryLogger(f.logger),
		), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", f.ledgerConfig.CacheBackend)
	}
}

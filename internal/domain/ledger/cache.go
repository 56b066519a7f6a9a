package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BalanceCache stores computed opening balances so ledger views do not
// re-aggregate history on every request. The cache is strictly an
// optimization: reads that fail are treated as misses and writes are
// best effort, the ledger never depends on it for correctness.
//
// Keys follow the pattern acc_ob_{account_id}_{yyyy-mm-dd}.
type BalanceCache interface {
	// Get retrieves a cached balance. The second return is false on a
	// cache miss.
	Get(ctx context.Context, key string) (decimal.Decimal, bool, error)

	// Set stores a balance with the given TTL. If ttl is 0 the
	// implementation uses its default.
	Set(ctx context.Context, key string, balance decimal.Decimal, ttl time.Duration) error

	// Delete removes one entry
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache
	Close() error
}

// OpeningBalanceKey builds the cache key for an account's balance as
// of the start of the given date (exclusive cutoff)
func OpeningBalanceKey(accountID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("acc_ob_%s_%s", accountID, date.Format("2006-01-02"))
}

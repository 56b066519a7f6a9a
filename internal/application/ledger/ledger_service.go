package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/crp/backend/internal/domain/ledger"
	"github.com/crp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// LedgerService produces per-account ledger listings with running
// balances. Opening balances are cached; the cache is best effort and
// every failure degrades to recomputation.
type LedgerService struct {
	accountRepo ledger.AccountRepository
	queryRepo   ledger.LedgerQueryRepository
	cache       ledger.BalanceCache
	openingTTL  time.Duration
	logger      *zap.Logger
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	accountRepo ledger.AccountRepository,
	queryRepo ledger.LedgerQueryRepository,
	cache ledger.BalanceCache,
	openingTTL time.Duration,
	logger *zap.Logger,
) *LedgerService {
	if openingTTL <= 0 {
		openingTTL = 15 * time.Minute
	}
	return &LedgerService{
		accountRepo: accountRepo,
		queryRepo:   queryRepo,
		cache:       cache,
		openingTTL:  openingTTL,
		logger:      logger,
	}
}

// LedgerRow is one displayed ledger line with the balance after it
type LedgerRow struct {
	ledger.LedgerEntry
	RunningBalance decimal.Decimal `json:"running_balance"`
}

// AccountLedger is the full ledger listing for one account and window
type AccountLedger struct {
	AccountID      uuid.UUID            `json:"account_id"`
	AccountNumber  string               `json:"account_number"`
	AccountName    string               `json:"account_name"`
	AccountNature  ledger.AccountNature `json:"account_nature"`
	StartDate      time.Time            `json:"start_date"`
	EndDate        time.Time            `json:"end_date"`
	OpeningBalance decimal.Decimal      `json:"opening_balance"`
	Rows           []LedgerRow          `json:"rows"`
	TotalDebit     decimal.Decimal      `json:"total_debit"`
	TotalCredit    decimal.Decimal      `json:"total_credit"`
	ClosingBalance decimal.Decimal      `json:"closing_balance"`
}

// AccountLedger builds the ledger for an account over [start, end],
// with a cached opening balance and a running balance per row
func (s *LedgerService) AccountLedger(ctx context.Context, accountID uuid.UUID, start, end time.Time) (*AccountLedger, error) {
	if end.Before(start) {
		return nil, shared.NewDomainError("INVALID_DATE_RANGE", "End date must not precede start date")
	}
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	opening, err := s.OpeningBalance(ctx, account, start)
	if err != nil {
		return nil, err
	}
	entries, err := s.queryRepo.PostedEntries(ctx, accountID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger entries: %w", err)
	}

	result := &AccountLedger{
		AccountID:      account.ID,
		AccountNumber:  account.AccountNumber,
		AccountName:    account.AccountName,
		AccountNature:  account.AccountNature,
		StartDate:      start,
		EndDate:        end,
		OpeningBalance: opening,
		Rows:           make([]LedgerRow, 0, len(entries)),
		TotalDebit:     decimal.Zero,
		TotalCredit:    decimal.Zero,
	}

	running := opening
	for _, entry := range entries {
		delta, err := signedAmount(account.AccountNature, entry.DrCr, entry.Amount)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_ACCOUNT_NATURE",
				fmt.Sprintf("Account %s has unrecognized nature %q", account.AccountNumber, account.AccountNature))
		}
		running = running.Add(delta)
		if entry.DrCr == ledger.DrCrDebit {
			result.TotalDebit = result.TotalDebit.Add(entry.Amount)
		} else {
			result.TotalCredit = result.TotalCredit.Add(entry.Amount)
		}
		result.Rows = append(result.Rows, LedgerRow{LedgerEntry: entry, RunningBalance: running})
	}
	result.ClosingBalance = running
	return result, nil
}

// OpeningBalance returns the account's signed balance over all posted
// lines strictly before the date. Cache reads that fail count as
// misses; cache writes that fail are logged and ignored.
func (s *LedgerService) OpeningBalance(ctx context.Context, account *ledger.Account, before time.Time) (decimal.Decimal, error) {
	key := ledger.OpeningBalanceKey(account.ID, before)
	if s.cache != nil {
		balance, found, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("opening balance cache read failed",
				zap.String("key", key), zap.Error(err))
		} else if found {
			return balance, nil
		}
	}

	totals, err := s.queryRepo.AccountTotalsBefore(ctx, account.ID, before)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to aggregate opening balance: %w", err)
	}
	balance, err := signedNet(account.AccountNature, totals.DebitTotal, totals.CreditTotal)
	if err != nil {
		return decimal.Zero, shared.NewDomainError("INVALID_ACCOUNT_NATURE",
			fmt.Sprintf("Account %s has unrecognized nature %q", account.AccountNumber, account.AccountNature))
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, balance, s.openingTTL); err != nil {
			s.logger.Warn("opening balance cache write failed",
				zap.String("key", key), zap.Error(err))
		}
	}
	return balance, nil
}

// signedNet nets raw totals by nature without clamping into columns
func signedNet(nature ledger.AccountNature, debitTotal, creditTotal decimal.Decimal) (decimal.Decimal, error) {
	switch nature {
	case ledger.NatureDebit:
		return debitTotal.Sub(creditTotal), nil
	case ledger.NatureCredit:
		return creditTotal.Sub(debitTotal), nil
	default:
		return decimal.Zero, fmt.Errorf("unrecognized account nature %q", nature)
	}
}

// signedAmount converts one line into its effect on the balance of an
// account with the given nature
func signedAmount(nature ledger.AccountNature, drCr ledger.DrCrType, amount decimal.Decimal) (decimal.Decimal, error) {
	if drCr == ledger.DrCrDebit {
		return signedNet(nature, amount, decimal.Zero)
	}
	return signedNet(nature, decimal.Zero, amount)
}

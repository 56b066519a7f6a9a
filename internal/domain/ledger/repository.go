package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountFilter defines filtering options for account queries
type AccountFilter struct {
	Types      []AccountType // Restrict to these account types
	ActiveOnly bool          // Drop inactive accounts
	GroupID    *uuid.UUID    // Restrict to one group
	Search     string        // Match against number or name
}

// VoucherFilter defines filtering options for voucher queries
type VoucherFilter struct {
	Status   *TransactionStatus
	Type     *VoucherType
	PeriodID *uuid.UUID
	FromDate *time.Time
	ToDate   *time.Time
	Page     int
	PageSize int
}

// AccountRepository defines persistence for accounts
type AccountRepository interface {
	// FindByID finds an account by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// FindByNumber finds an account by its account number
	FindByNumber(ctx context.Context, number string) (*Account, error)

	// FindAll finds accounts matching the filter, ordered by account number
	FindAll(ctx context.Context, filter AccountFilter) ([]Account, error)

	// FindByIDs finds the accounts with the given IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Account, error)

	// ExistsByNumber reports whether an account with the number exists
	ExistsByNumber(ctx context.Context, number string) (bool, error)

	// Save creates or updates an account
	Save(ctx context.Context, account *Account) error
}

// AccountGroupRepository defines persistence for account groups
type AccountGroupRepository interface {
	// FindByID finds a group by ID
	FindByID(ctx context.Context, id uuid.UUID) (*AccountGroup, error)

	// FindAll returns every group, ordered by name
	FindAll(ctx context.Context) ([]AccountGroup, error)

	// Save creates or updates a group
	Save(ctx context.Context, group *AccountGroup) error
}

// VoucherRepository defines persistence for vouchers. Loads include
// lines and the approval log.
type VoucherRepository interface {
	// FindByID finds a voucher with its lines and approvals
	FindByID(ctx context.Context, id uuid.UUID) (*Voucher, error)

	// FindAll finds vouchers matching the filter, newest first
	FindAll(ctx context.Context, filter VoucherFilter) ([]Voucher, int64, error)

	// FindReversalOf finds the voucher reversing the given one, if any
	FindReversalOf(ctx context.Context, originalID uuid.UUID) (*Voucher, error)

	// Save creates or updates a voucher together with its lines and approvals
	Save(ctx context.Context, voucher *Voucher) error
}

// FiscalYearRepository defines persistence for fiscal years
type FiscalYearRepository interface {
	// FindByID finds a fiscal year by ID
	FindByID(ctx context.Context, id uuid.UUID) (*FiscalYear, error)

	// FindAll returns all fiscal years, newest first
	FindAll(ctx context.Context) ([]FiscalYear, error)

	// FindActive returns the active fiscal year, or shared.ErrNotFound
	FindActive(ctx context.Context) (*FiscalYear, error)

	// Save creates or updates a fiscal year
	Save(ctx context.Context, year *FiscalYear) error

	// DeactivateAllExcept clears the active flag on every other fiscal year
	DeactivateAllExcept(ctx context.Context, id uuid.UUID) error
}

// AccountingPeriodRepository defines persistence for accounting periods
type AccountingPeriodRepository interface {
	// FindByID finds a period by ID
	FindByID(ctx context.Context, id uuid.UUID) (*AccountingPeriod, error)

	// FindByDate finds the period containing the date
	FindByDate(ctx context.Context, date time.Time) (*AccountingPeriod, error)

	// FindByFiscalYear returns the periods of a fiscal year ordered by start date
	FindByFiscalYear(ctx context.Context, fiscalYearID uuid.UUID) ([]AccountingPeriod, error)

	// FindAll returns all periods ordered by start date
	FindAll(ctx context.Context) ([]AccountingPeriod, error)

	// Save creates or updates a period
	Save(ctx context.Context, period *AccountingPeriod) error
}

// VoucherSequenceRepository hands out voucher numbers. NextNumber runs
// get-or-create plus increment atomically under a row lock.
type VoucherSequenceRepository interface {
	NextNumber(ctx context.Context, voucherType VoucherType, period *AccountingPeriod) (string, error)
}

// AccountTotals carries the aggregated posted debit and credit sums
// for one account over some date window
type AccountTotals struct {
	AccountID   uuid.UUID
	DebitTotal  decimal.Decimal
	CreditTotal decimal.Decimal
}

// LedgerEntry is one posted voucher line projected for ledger display
type LedgerEntry struct {
	LineID        uuid.UUID       `json:"line_id"`
	VoucherID     uuid.UUID       `json:"voucher_id"`
	VoucherNumber string          `json:"voucher_number"`
	Date          time.Time       `json:"date"`
	Narration     string          `json:"narration"`
	Reference     string          `json:"reference"`
	DrCr          DrCrType        `json:"dr_cr"`
	Amount        decimal.Decimal `json:"amount"`
}

// LedgerQueryRepository exposes the read-side aggregations the report
// generators run over posted voucher lines. Only lines on POSTED
// vouchers count; draft and pending lines are invisible here.
type LedgerQueryRepository interface {
	// AccountTotalsAsOf sums posted lines per account with voucher
	// date on or before asOf, across all accounts
	AccountTotalsAsOf(ctx context.Context, asOf time.Time) ([]AccountTotals, error)

	// AccountTotalsBetween sums posted lines per account with voucher
	// date inside [start, end] inclusive
	AccountTotalsBetween(ctx context.Context, start, end time.Time) ([]AccountTotals, error)

	// AccountTotalsBefore sums posted lines for one account strictly
	// before the date, feeding opening-balance computation
	AccountTotalsBefore(ctx context.Context, accountID uuid.UUID, before time.Time) (AccountTotals, error)

	// PostedEntries lists posted lines for one account inside
	// [start, end] inclusive, ordered by voucher date then creation
	PostedEntries(ctx context.Context, accountID uuid.UUID, start, end time.Time) ([]LedgerEntry, error)
}

package ledger

import (
	"context"
	"time"

	"github.com/crp/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of ledger.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByNumber(ctx context.Context, number string) (*ledger.Account, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAll(ctx context.Context, filter ledger.AccountFilter) ([]ledger.Account, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]ledger.Account, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Account), args.Error(1)
}

func (m *MockAccountRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) Save(ctx context.Context, account *ledger.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// MockAccountGroupRepository is a mock implementation of ledger.AccountGroupRepository
type MockAccountGroupRepository struct {
	mock.Mock
}

func (m *MockAccountGroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.AccountGroup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.AccountGroup), args.Error(1)
}

func (m *MockAccountGroupRepository) FindAll(ctx context.Context) ([]ledger.AccountGroup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.AccountGroup), args.Error(1)
}

func (m *MockAccountGroupRepository) Save(ctx context.Context, group *ledger.AccountGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

// MockVoucherRepository is a mock implementation of ledger.VoucherRepository
type MockVoucherRepository struct {
	mock.Mock
}

func (m *MockVoucherRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Voucher, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) FindAll(ctx context.Context, filter ledger.VoucherFilter) ([]ledger.Voucher, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]ledger.Voucher), args.Get(1).(int64), args.Error(2)
}

func (m *MockVoucherRepository) FindReversalOf(ctx context.Context, originalID uuid.UUID) (*ledger.Voucher, error) {
	args := m.Called(ctx, originalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) Save(ctx context.Context, voucher *ledger.Voucher) error {
	args := m.Called(ctx, voucher)
	return args.Error(0)
}

// MockFiscalYearRepository is a mock implementation of ledger.FiscalYearRepository
type MockFiscalYearRepository struct {
	mock.Mock
}

func (m *MockFiscalYearRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.FiscalYear, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearRepository) FindAll(ctx context.Context) ([]ledger.FiscalYear, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearRepository) FindActive(ctx context.Context) (*ledger.FiscalYear, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.FiscalYear), args.Error(1)
}

func (m *MockFiscalYearRepository) Save(ctx context.Context, year *ledger.FiscalYear) error {
	args := m.Called(ctx, year)
	return args.Error(0)
}

func (m *MockFiscalYearRepository) DeactivateAllExcept(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAccountingPeriodRepository is a mock implementation of ledger.AccountingPeriodRepository
type MockAccountingPeriodRepository struct {
	mock.Mock
}

func (m *MockAccountingPeriodRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.AccountingPeriod, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.AccountingPeriod), args.Error(1)
}

func (m *MockAccountingPeriodRepository) FindByDate(ctx context.Context, date time.Time) (*ledger.AccountingPeriod, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.AccountingPeriod), args.Error(1)
}

func (m *MockAccountingPeriodRepository) FindByFiscalYear(ctx context.Context, fiscalYearID uuid.UUID) ([]ledger.AccountingPeriod, error) {
	args := m.Called(ctx, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.AccountingPeriod), args.Error(1)
}

func (m *MockAccountingPeriodRepository) FindAll(ctx context.Context) ([]ledger.AccountingPeriod, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.AccountingPeriod), args.Error(1)
}

func (m *MockAccountingPeriodRepository) Save(ctx context.Context, period *ledger.AccountingPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

// MockVoucherSequenceRepository is a mock implementation of ledger.VoucherSequenceRepository
type MockVoucherSequenceRepository struct {
	mock.Mock
}

func (m *MockVoucherSequenceRepository) NextNumber(ctx context.Context, voucherType ledger.VoucherType, period *ledger.AccountingPeriod) (string, error) {
	args := m.Called(ctx, voucherType, period)
	return args.String(0), args.Error(1)
}

// MockLedgerQueryRepository is a mock implementation of ledger.LedgerQueryRepository
type MockLedgerQueryRepository struct {
	mock.Mock
}

func (m *MockLedgerQueryRepository) AccountTotalsAsOf(ctx context.Context, asOf time.Time) ([]ledger.AccountTotals, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.AccountTotals), args.Error(1)
}

func (m *MockLedgerQueryRepository) AccountTotalsBetween(ctx context.Context, start, end time.Time) ([]ledger.AccountTotals, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.AccountTotals), args.Error(1)
}

func (m *MockLedgerQueryRepository) AccountTotalsBefore(ctx context.Context, accountID uuid.UUID, before time.Time) (ledger.AccountTotals, error) {
	args := m.Called(ctx, accountID, before)
	return args.Get(0).(ledger.AccountTotals), args.Error(1)
}

func (m *MockLedgerQueryRepository) PostedEntries(ctx context.Context, accountID uuid.UUID, start, end time.Time) ([]ledger.LedgerEntry, error) {
	args := m.Called(ctx, accountID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.LedgerEntry), args.Error(1)
}

// MockBalanceCache is a mock implementation of ledger.BalanceCache
type MockBalanceCache struct {
	mock.Mock
}

func (m *MockBalanceCache) Get(ctx context.Context, key string) (decimal.Decimal, bool, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(decimal.Decimal), args.Bool(1), args.Error(2)
}

func (m *MockBalanceCache) Set(ctx context.Context, key string, balance decimal.Decimal, ttl time.Duration) error {
	args := m.Called(ctx, key, balance, ttl)
	return args.Error(0)
}

func (m *MockBalanceCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockBalanceCache) Close() error {
	args := m.Called()
	return args.Error(0)
}

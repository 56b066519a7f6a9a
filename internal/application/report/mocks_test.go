package report

import (
	"context"
	"time"

	"github.com/crp/backend/internal/domain/ledger"
	"github.com/google/uuid"
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

package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/crp/backend/internal/domain/ledger"
	"github.com/crp/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPeriodServiceFixture(t *testing.T) (*PeriodService, *MockFiscalYearRepository, *MockAccountingPeriodRepository) {
	t.Helper()
	fiscalYearRepo := new(MockFiscalYearRepository)
	periodRepo := new(MockAccountingPeriodRepository)
	service := NewPeriodService(fiscalYearRepo, periodRepo)
	return service, fiscalYearRepo, periodRepo
}

func fiscalYear2026(t *testing.T) *ledger.FiscalYear {
	t.Helper()
	year, err := ledger.NewFiscalYear("FY2026",
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return year
}

func TestPeriodService_CreateFiscalYear(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an open year", func(t *testing.T) {
		service, fiscalYearRepo, _ := newPeriodServiceFixture(t)

		fiscalYearRepo.On("FindAll", ctx).Return([]ledger.FiscalYear{}, nil)
		fiscalYearRepo.On("Save", ctx, mock.AnythingOfType("*ledger.FiscalYear")).Return(nil)

		year, err := service.CreateFiscalYear(ctx, "FY2026",
			time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC))

		require.NoError(t, err)
		assert.Equal(t, ledger.FiscalYearOpen, year.Status)
		fiscalYearRepo.AssertExpectations(t)
	})

	t.Run("rejects a duplicate name", func(t *testing.T) {
		service, fiscalYearRepo, _ := newPeriodServiceFixture(t)
		existing := fiscalYear2026(t)

		fiscalYearRepo.On("FindAll", ctx).Return([]ledger.FiscalYear{*existing}, nil)

		_, err := service.CreateFiscalYear(ctx, "FY2026",
			time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2027, 12, 31, 0, 0, 0, 0, time.UTC))

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("rejects an overlapping range", func(t *testing.T) {
		service, fiscalYearRepo, _ := newPeriodServiceFixture(t)
		existing := fiscalYear2026(t)

		fiscalYearRepo.On("FindAll", ctx).Return([]ledger.FiscalYear{*existing}, nil)

		_, err := service.CreateFiscalYear(ctx, "FY2026-27",
			time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC))

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "OVERLAPPING_FISCAL_YEAR", domainErr.Code)
	})
}

func TestPeriodService_ActivateFiscalYear(t *testing.T) {
	ctx := context.Background()

	t.Run("activates and deactivates the rest", func(t *testing.T) {
		service, fiscalYearRepo, _ := newPeriodServiceFixture(t)
		year := fiscalYear2026(t)

		fiscalYearRepo.On("FindByID", ctx, year.ID).Return(year, nil)
		fiscalYearRepo.On("DeactivateAllExcept", ctx, year.ID).Return(nil)
		fiscalYearRepo.On("Save", ctx, year).Return(nil)

		got, err := service.ActivateFiscalYear(ctx, year.ID)

		require.NoError(t, err)
		assert.True(t, got.IsActive)
		fiscalYearRepo.AssertExpectations(t)
	})

	t.Run("refuses a closed year", func(t *testing.T) {
		service, fiscalYearRepo, _ := newPeriodServiceFixture(t)
		year := fiscalYear2026(t)
		require.NoError(t, year.Close(time.Now()))

		fiscalYearRepo.On("FindByID", ctx, year.ID).Return(year, nil)

		_, err := service.ActivateFiscalYear(ctx, year.ID)

		require.Error(t, err)
		fiscalYearRepo.AssertNotCalled(t, "DeactivateAllExcept", mock.Anything, mock.Anything)
	})
}

func TestPeriodService_CloseFiscalYear(t *testing.T) {
	ctx := context.Background()

	t.Run("closes once every period is locked", func(t *testing.T) {
		service, fiscalYearRepo, periodRepo := newPeriodServiceFixture(t)
		year := fiscalYear2026(t)
		period, err := ledger.NewAccountingPeriod(year.ID, "2026-01",
			time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.NoError(t, period.Lock(time.Now()))

		fiscalYearRepo.On("FindByID", ctx, year.ID).Return(year, nil)
		periodRepo.On("FindByFiscalYear", ctx, year.ID).Return([]ledger.AccountingPeriod{*period}, nil)
		fiscalYearRepo.On("Save", ctx, year).Return(nil)

		got, err := service.CloseFiscalYear(ctx, year.ID)

		require.NoError(t, err)
		assert.Equal(t, ledger.FiscalYearClosed, got.Status)
		require.NotNil(t, got.ClosedAt)
	})

	t.Run("refuses while any period is open", func(t *testing.T) {
		service, fiscalYearRepo, periodRepo := newPeriodServiceFixture(t)
		year := fiscalYear2026(t)
		period, err := ledger.NewAccountingPeriod(year.ID, "2026-01",
			time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		fiscalYearRepo.On("FindByID", ctx, year.ID).Return(year, nil)
		periodRepo.On("FindByFiscalYear", ctx, year.ID).Return([]ledger.AccountingPeriod{*period}, nil)

		_, err = service.CloseFiscalYear(ctx, year.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PERIOD_NOT_LOCKED", domainErr.Code)
	})
}

func TestPeriodService_CreatePeriod(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a period inside the year", func(t *testing.T) {
		service, fiscalYearRepo, periodRepo := newPeriodServiceFixture(t)
		year := fiscalYear2026(t)

		fiscalYearRepo.On("FindByID", ctx, year.ID).Return(year, nil)
		periodRepo.On("FindByFiscalYear", ctx, year.ID).Return([]ledger.AccountingPeriod{}, nil)
		periodRepo.On("Save", ctx, mock.AnythingOfType("*ledger.AccountingPeriod")).Return(nil)

		period, err := service.CreatePeriod(ctx, year.ID, "2026-03",
			time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC))

		require.NoError(t, err)
		assert.False(t, period.IsLocked)
		assert.Equal(t, year.ID, period.FiscalYearID)
	})

	t.Run("rejects a range leaving the year", func(t *testing.T) {
		service, fiscalYearRepo, _ := newPeriodServiceFixture(t)
		year := fiscalYear2026(t)

		fiscalYearRepo.On("FindByID", ctx, year.ID).Return(year, nil)

		_, err := service.CreatePeriod(ctx, year.ID, "2026-12",
			time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2027, 1, 31, 0, 0, 0, 0, time.UTC))

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_DATE_RANGE", domainErr.Code)
	})

	t.Run("rejects an overlap with a sibling", func(t *testing.T) {
		service, fiscalYearRepo, periodRepo := newPeriodServiceFixture(t)
		year := fiscalYear2026(t)
		sibling, err := ledger.NewAccountingPeriod(year.ID, "2026-03",
			time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		fiscalYearRepo.On("FindByID", ctx, year.ID).Return(year, nil)
		periodRepo.On("FindByFiscalYear", ctx, year.ID).Return([]ledger.AccountingPeriod{*sibling}, nil)

		_, err = service.CreatePeriod(ctx, year.ID, "2026-03b",
			time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 4, 14, 0, 0, 0, 0, time.UTC))

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "OVERLAPPING_PERIOD", domainErr.Code)
	})

	t.Run("rejects a closed fiscal year", func(t *testing.T) {
		service, fiscalYearRepo, _ := newPeriodServiceFixture(t)
		year := fiscalYear2026(t)
		require.NoError(t, year.Close(time.Now()))

		fiscalYearRepo.On("FindByID", ctx, year.ID).Return(year, nil)

		_, err := service.CreatePeriod(ctx, year.ID, "2026-03",
			time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC))

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FISCAL_YEAR_CLOSED", domainErr.Code)
	})
}

func TestPeriodService_LockUnlock(t *testing.T) {
	ctx := context.Background()

	t.Run("locks and reopens a period", func(t *testing.T) {
		service, fiscalYearRepo, periodRepo := newPeriodServiceFixture(t)
		year := fiscalYear2026(t)
		period, err := ledger.NewAccountingPeriod(year.ID, "2026-05",
			time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		periodRepo.On("FindByID", ctx, period.ID).Return(period, nil)
		periodRepo.On("Save", ctx, period).Return(nil)
		fiscalYearRepo.On("FindByID", ctx, year.ID).Return(year, nil)

		locked, err := service.LockPeriod(ctx, period.ID)
		require.NoError(t, err)
		assert.True(t, locked.IsLocked)
		require.NotNil(t, locked.LockedAt)

		unlocked, err := service.UnlockPeriod(ctx, period.ID)
		require.NoError(t, err)
		assert.False(t, unlocked.IsLocked)
		assert.Nil(t, unlocked.LockedAt)
	})

	t.Run("refuses to unlock inside a closed year", func(t *testing.T) {
		service, fiscalYearRepo, periodRepo := newPeriodServiceFixture(t)
		year := fiscalYear2026(t)
		period, err := ledger.NewAccountingPeriod(year.ID, "2026-05",
			time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.NoError(t, period.Lock(time.Now()))
		require.NoError(t, year.Close(time.Now()))

		periodRepo.On("FindByID", ctx, period.ID).Return(period, nil)
		fiscalYearRepo.On("FindByID", ctx, year.ID).Return(year, nil)

		_, err = service.UnlockPeriod(ctx, period.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FISCAL_YEAR_CLOSED", domainErr.Code)
	})
}

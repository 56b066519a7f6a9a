package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/crp/backend/internal/domain/ledger"
	"github.com/crp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PeriodService manages fiscal years and accounting periods
type PeriodService struct {
	fiscalYearRepo ledger.FiscalYearRepository
	periodRepo     ledger.AccountingPeriodRepository
}

// NewPeriodService creates a new PeriodService
func NewPeriodService(fiscalYearRepo ledger.FiscalYearRepository, periodRepo ledger.AccountingPeriodRepository) *PeriodService {
	return &PeriodService{
		fiscalYearRepo: fiscalYearRepo,
		periodRepo:     periodRepo,
	}
}

// CreateFiscalYear creates a new open fiscal year
func (s *PeriodService) CreateFiscalYear(ctx context.Context, name string, startDate, endDate time.Time) (*ledger.FiscalYear, error) {
	years, err := s.fiscalYearRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load fiscal years: %w", err)
	}
	for _, existing := range years {
		if existing.Name == name {
			return nil, shared.NewDomainError("ALREADY_EXISTS",
				fmt.Sprintf("Fiscal year %s already exists", name))
		}
		if !startDate.After(existing.EndDate) && !endDate.Before(existing.StartDate) {
			return nil, shared.NewDomainError("OVERLAPPING_FISCAL_YEAR",
				fmt.Sprintf("Date range overlaps fiscal year %s", existing.Name))
		}
	}

	year, err := ledger.NewFiscalYear(name, startDate, endDate)
	if err != nil {
		return nil, err
	}
	if err := s.fiscalYearRepo.Save(ctx, year); err != nil {
		return nil, fmt.Errorf("failed to save fiscal year: %w", err)
	}
	return year, nil
}

// ActivateFiscalYear makes the fiscal year the single active one
func (s *PeriodService) ActivateFiscalYear(ctx context.Context, id uuid.UUID) (*ledger.FiscalYear, error) {
	year, err := s.fiscalYearRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := year.Activate(); err != nil {
		return nil, err
	}
	if err := s.fiscalYearRepo.DeactivateAllExcept(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to deactivate other fiscal years: %w", err)
	}
	if err := s.fiscalYearRepo.Save(ctx, year); err != nil {
		return nil, fmt.Errorf("failed to save fiscal year: %w", err)
	}
	return year, nil
}

// CloseFiscalYear closes the year once every one of its periods is locked
func (s *PeriodService) CloseFiscalYear(ctx context.Context, id uuid.UUID) (*ledger.FiscalYear, error) {
	year, err := s.fiscalYearRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	periods, err := s.periodRepo.FindByFiscalYear(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load periods: %w", err)
	}
	for _, period := range periods {
		if !period.IsLocked {
			return nil, shared.NewDomainError("PERIOD_NOT_LOCKED",
				fmt.Sprintf("Period %s must be locked before closing the fiscal year", period.Name))
		}
	}
	if err := year.Close(time.Now()); err != nil {
		return nil, err
	}
	if err := s.fiscalYearRepo.Save(ctx, year); err != nil {
		return nil, fmt.Errorf("failed to save fiscal year: %w", err)
	}
	return year, nil
}

// ListFiscalYears returns all fiscal years
func (s *PeriodService) ListFiscalYears(ctx context.Context) ([]ledger.FiscalYear, error) {
	return s.fiscalYearRepo.FindAll(ctx)
}

// GetFiscalYear finds a fiscal year by ID
func (s *PeriodService) GetFiscalYear(ctx context.Context, id uuid.UUID) (*ledger.FiscalYear, error) {
	return s.fiscalYearRepo.FindByID(ctx, id)
}

// CreatePeriod creates a period inside an open fiscal year, rejecting
// ranges that leave the year or overlap a sibling period
func (s *PeriodService) CreatePeriod(ctx context.Context, fiscalYearID uuid.UUID, name string, startDate, endDate time.Time) (*ledger.AccountingPeriod, error) {
	year, err := s.fiscalYearRepo.FindByID(ctx, fiscalYearID)
	if err != nil {
		return nil, err
	}
	if year.Status == ledger.FiscalYearClosed {
		return nil, shared.NewDomainError("FISCAL_YEAR_CLOSED", "Cannot add periods to a closed fiscal year")
	}
	if !year.Contains(startDate) || !year.Contains(endDate) {
		return nil, shared.NewDomainError("INVALID_DATE_RANGE",
			fmt.Sprintf("Period must fall within fiscal year %s", year.Name))
	}
	siblings, err := s.periodRepo.FindByFiscalYear(ctx, fiscalYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to load periods: %w", err)
	}
	for _, sibling := range siblings {
		if !startDate.After(sibling.EndDate) && !endDate.Before(sibling.StartDate) {
			return nil, shared.NewDomainError("OVERLAPPING_PERIOD",
				fmt.Sprintf("Date range overlaps period %s", sibling.Name))
		}
	}

	period, err := ledger.NewAccountingPeriod(fiscalYearID, name, startDate, endDate)
	if err != nil {
		return nil, err
	}
	if err := s.periodRepo.Save(ctx, period); err != nil {
		return nil, fmt.Errorf("failed to save period: %w", err)
	}
	return period, nil
}

// LockPeriod closes the period for posting
func (s *PeriodService) LockPeriod(ctx context.Context, id uuid.UUID) (*ledger.AccountingPeriod, error) {
	period, err := s.periodRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := period.Lock(time.Now()); err != nil {
		return nil, err
	}
	if err := s.periodRepo.Save(ctx, period); err != nil {
		return nil, fmt.Errorf("failed to save period: %w", err)
	}
	return period, nil
}

// UnlockPeriod reopens a period unless its fiscal year is closed
func (s *PeriodService) UnlockPeriod(ctx context.Context, id uuid.UUID) (*ledger.AccountingPeriod, error) {
	period, err := s.periodRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	year, err := s.fiscalYearRepo.FindByID(ctx, period.FiscalYearID)
	if err != nil {
		return nil, err
	}
	if year.Status == ledger.FiscalYearClosed {
		return nil, shared.NewDomainError("FISCAL_YEAR_CLOSED", "Cannot unlock a period of a closed fiscal year")
	}
	if err := period.Unlock(); err != nil {
		return nil, err
	}
	if err := s.periodRepo.Save(ctx, period); err != nil {
		return nil, fmt.Errorf("failed to save period: %w", err)
	}
	return period, nil
}

// ListPeriods returns all periods, optionally scoped to one fiscal year
func (s *PeriodService) ListPeriods(ctx context.Context, fiscalYearID *uuid.UUID) ([]ledger.AccountingPeriod, error) {
	if fiscalYearID != nil {
		return s.periodRepo.FindByFiscalYear(ctx, *fiscalYearID)
	}
	return s.periodRepo.FindAll(ctx)
}

// GetPeriod finds a period by ID
func (s *PeriodService) GetPeriod(ctx context.Context, id uuid.UUID) (*ledger.AccountingPeriod, error) {
	return s.periodRepo.FindByID(ctx, id)
}

package ledger

import (
	"time"

	"github.com/crp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// FiscalYearStatus represents the lifecycle state of a fiscal year
type FiscalYearStatus string

const (
	FiscalYearOpen   FiscalYearStatus = "OPEN"
	FiscalYearClosed FiscalYearStatus = "CLOSED"
)

// IsValid checks if the status is a valid FiscalYearStatus
func (s FiscalYearStatus) IsValid() bool {
	return s == FiscalYearOpen || s == FiscalYearClosed
}

// String returns the string representation
func (s FiscalYearStatus) String() string {
	return string(s)
}

// FiscalYear represents one accounting year. At most one fiscal year
// is active at a time; activation of one deactivates the rest.
type FiscalYear struct {
	shared.BaseAggregateRoot
	Name      string           `json:"name"`
	StartDate time.Time        `json:"start_date"`
	EndDate   time.Time        `json:"end_date"`
	Status    FiscalYearStatus `json:"status"`
	IsActive  bool             `json:"is_active"`
	ClosedAt  *time.Time       `json:"closed_at"`
}

// NewFiscalYear creates a new open, inactive fiscal year
func NewFiscalYear(name string, startDate, endDate time.Time) (*FiscalYear, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_FISCAL_YEAR_NAME", "Fiscal year name cannot be empty")
	}
	if !endDate.After(startDate) {
		return nil, shared.NewDomainError("INVALID_DATE_RANGE", "Fiscal year end date must be after start date")
	}
	return &FiscalYear{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		StartDate:         startDate,
		EndDate:           endDate,
		Status:            FiscalYearOpen,
	}, nil
}

// Activate marks the fiscal year as the current one
func (fy *FiscalYear) Activate() error {
	if fy.Status == FiscalYearClosed {
		return shared.NewDomainError("FISCAL_YEAR_CLOSED", "Cannot activate a closed fiscal year")
	}
	fy.IsActive = true
	return nil
}

// Deactivate clears the active flag
func (fy *FiscalYear) Deactivate() {
	fy.IsActive = false
}

// Close permanently closes the fiscal year. All of its periods must be
// locked first; the service enforces that before calling Close.
func (fy *FiscalYear) Close(at time.Time) error {
	if fy.Status == FiscalYearClosed {
		return shared.NewDomainError("FISCAL_YEAR_CLOSED", "Fiscal year is already closed")
	}
	fy.Status = FiscalYearClosed
	fy.IsActive = false
	fy.ClosedAt = &at
	return nil
}

// Contains reports whether the date falls within the fiscal year, inclusive
func (fy *FiscalYear) Contains(date time.Time) bool {
	return !date.Before(fy.StartDate) && !date.After(fy.EndDate)
}

// AccountingPeriod represents a posting window within a fiscal year.
// Locked periods reject new postings and voucher workflow transitions.
type AccountingPeriod struct {
	shared.BaseAggregateRoot
	FiscalYearID uuid.UUID  `json:"fiscal_year_id"`
	Name         string     `json:"name"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      time.Time  `json:"end_date"`
	IsLocked     bool       `json:"is_locked"`
	LockedAt     *time.Time `json:"locked_at"`
}

// NewAccountingPeriod creates a new unlocked period. The caller
// verifies the range sits inside the fiscal year.
func NewAccountingPeriod(fiscalYearID uuid.UUID, name string, startDate, endDate time.Time) (*AccountingPeriod, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PERIOD_NAME", "Period name cannot be empty")
	}
	if !endDate.After(startDate) {
		return nil, shared.NewDomainError("INVALID_DATE_RANGE", "Period end date must be after start date")
	}
	return &AccountingPeriod{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FiscalYearID:      fiscalYearID,
		Name:              name,
		StartDate:         startDate,
		EndDate:           endDate,
	}, nil
}

// Lock closes the period for posting
func (p *AccountingPeriod) Lock(at time.Time) error {
	if p.IsLocked {
		return shared.NewDomainError("PERIOD_LOCKED", "Period is already locked")
	}
	p.IsLocked = true
	p.LockedAt = &at
	return nil
}

// Unlock reopens the period for posting
func (p *AccountingPeriod) Unlock() error {
	if !p.IsLocked {
		return shared.NewDomainError("PERIOD_NOT_LOCKED", "Period is not locked")
	}
	p.IsLocked = false
	p.LockedAt = nil
	return nil
}

// Contains reports whether the date falls within the period, inclusive
func (p *AccountingPeriod) Contains(date time.Time) bool {
	return !date.Before(p.StartDate) && !date.After(p.EndDate)
}

// Quarter returns the calendar quarter of the period start, used in
// voucher number prefixes
func (p *AccountingPeriod) Quarter() int {
	return (int(p.StartDate.Month())-1)/3 + 1
}

package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/crp/backend/internal/domain/ledger"
	"github.com/crp/backend/internal/domain/shared"
	"github.com/crp/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAccountingPeriodRepository implements AccountingPeriodRepository using GORM
type GormAccountingPeriodRepository struct {
	db *gorm.DB
}

// NewGormAccountingPeriodRepository creates a new GormAccountingPeriodRepository
func NewGormAccountingPeriodRepository(db *gorm.DB) *GormAccountingPeriodRepository {
	return &GormAccountingPeriodRepository{db: db}
}

// FindByID finds an accounting period by its ID
func (r *GormAccountingPeriodRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.AccountingPeriod, error) {
	var model models.AccountingPeriodModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByDate finds the period containing the date
func (r *GormAccountingPeriodRepository) FindByDate(ctx context.Context, date time.Time) (*ledger.AccountingPeriod, error) {
	var model models.AccountingPeriodModel
	if err := r.db.WithContext(ctx).
		Where("start_date <= ? AND end_date >= ?", date, date).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByFiscalYear returns the periods of a fiscal year ordered by start date
func (r *GormAccountingPeriodRepository) FindByFiscalYear(ctx context.Context, fiscalYearID uuid.UUID) ([]ledger.AccountingPeriod, error) {
	var periodModels []models.AccountingPeriodModel
	if err := r.db.WithContext(ctx).
		Where("fiscal_year_id = ?", fiscalYearID).
		Order("start_date").
		Find(&periodModels).Error; err != nil {
		return nil, err
	}
	periods := make([]ledger.AccountingPeriod, len(periodModels))
	for i, model := range periodModels {
		periods[i] = *model.ToDomain()
	}
	return periods, nil
}

// FindAll returns all periods ordered by start date
func (r *GormAccountingPeriodRepository) FindAll(ctx context.Context) ([]ledger.AccountingPeriod, error) {
	var periodModels []models.AccountingPeriodModel
	if err := r.db.WithContext(ctx).
		Order("start_date").
		Find(&periodModels).Error; err != nil {
		return nil, err
	}
	periods := make([]ledger.AccountingPeriod, len(periodModels))
	for i, model := range periodModels {
		periods[i] = *model.ToDomain()
	}
	return periods, nil
}

// Save creates or updates an accounting period
func (r *GormAccountingPeriodRepository) Save(ctx context.Context, period *ledger.AccountingPeriod) error {
	model := models.AccountingPeriodModelFromDomain(period)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormAccountingPeriodRepository implements AccountingPeriodRepository
var _ ledger.AccountingPeriodRepository = (*GormAccountingPeriodRepository)(nil)

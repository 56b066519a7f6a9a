package persistence

import (
	"context"
	"errors"

	"github.com/crp/backend/internal/domain/ledger"
	"github.com/crp/backend/internal/domain/shared"
	"github.com/crp/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormFiscalYearRepository implements FiscalYearRepository using GORM
type GormFiscalYearRepository struct {
	db *gorm.DB
}

// NewGormFiscalYearRepository creates a new GormFiscalYearRepository
func NewGormFiscalYearRepository(db *gorm.DB) *GormFiscalYearRepository {
	return &GormFiscalYearRepository{db: db}
}

// FindByID finds a fiscal year by its ID
func (r *GormFiscalYearRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.FiscalYear, error) {
	var model models.FiscalYearModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all fiscal years, newest first
func (r *GormFiscalYearRepository) FindAll(ctx context.Context) ([]ledger.FiscalYear, error) {
	var yearModels []models.FiscalYearModel
	if err := r.db.WithContext(ctx).
		Order("start_date DESC").
		Find(&yearModels).Error; err != nil {
		return nil, err
	}
	years := make([]ledger.FiscalYear, len(yearModels))
	for i, model := range yearModels {
		years[i] = *model.ToDomain()
	}
	return years, nil
}

// FindActive returns the active fiscal year
func (r *GormFiscalYearRepository) FindActive(ctx context.Context) (*ledger.FiscalYear, error) {
	var model models.FiscalYearModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a fiscal year
func (r *GormFiscalYearRepository) Save(ctx context.Context, year *ledger.FiscalYear) error {
	model := models.FiscalYearModelFromDomain(year)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeactivateAllExcept clears the active flag on every other fiscal year
func (r *GormFiscalYearRepository) DeactivateAllExcept(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.FiscalYearModel{}).
		Where("id <> ? AND is_active = ?", id, true).
		Update("is_active", false).Error
}

// Ensure GormFiscalYearRepository implements FiscalYearRepository
var _ ledger.FiscalYearRepository = (*GormFiscalYearRepository)(nil)

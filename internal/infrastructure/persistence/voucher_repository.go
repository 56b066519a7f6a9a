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

// GormVoucherRepository implements VoucherRepository using GORM
type GormVoucherRepository struct {
	db *gorm.DB
}

// NewGormVoucherRepository creates a new GormVoucherRepository
func NewGormVoucherRepository(db *gorm.DB) *GormVoucherRepository {
	return &GormVoucherRepository{db: db}
}

// FindByID finds a voucher with its lines and approval log
func (r *GormVoucherRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Voucher, error) {
	var model models.VoucherModel
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("voucher_lines.created_at")
		}).
		Preload("Approvals", func(db *gorm.DB) *gorm.DB {
			return db.Order("voucher_approvals.action_at")
		}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds vouchers matching the filter, newest first, and
// returns the total match count for pagination
func (r *GormVoucherRepository) FindAll(ctx context.Context, filter ledger.VoucherFilter) ([]ledger.Voucher, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.VoucherModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Type != nil {
		query = query.Where("voucher_type = ?", *filter.Type)
	}
	if filter.PeriodID != nil {
		query = query.Where("period_id = ?", *filter.PeriodID)
	}
	if filter.FromDate != nil {
		query = query.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("date <= ?", *filter.ToDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if filter.Page > 0 {
			query = query.Offset((filter.Page - 1) * filter.PageSize)
		}
	}

	var voucherModels []models.VoucherModel
	if err := query.
		Order("date DESC, created_at DESC").
		Preload("Lines").
		Preload("Approvals").
		Find(&voucherModels).Error; err != nil {
		return nil, 0, err
	}
	vouchers := make([]ledger.Voucher, len(voucherModels))
	for i, model := range voucherModels {
		vouchers[i] = *model.ToDomain()
	}
	return vouchers, total, nil
}

// FindReversalOf finds the voucher reversing the given one, if any
func (r *GormVoucherRepository) FindReversalOf(ctx context.Context, originalID uuid.UUID) (*ledger.Voucher, error) {
	var model models.VoucherModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("Approvals").
		Where("reversal_of_id = ?", originalID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a voucher together with its lines and
// approval log. Lines removed from the aggregate are deleted; the
// approval log only ever grows.
func (r *GormVoucherRepository) Save(ctx context.Context, voucher *ledger.Voucher) error {
	model := models.VoucherModelFromDomain(voucher)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines", "Approvals").Save(model).Error; err != nil {
			return err
		}

		currentLineIDs := make([]uuid.UUID, len(model.Lines))
		for i, line := range model.Lines {
			currentLineIDs[i] = line.ID
		}
		if len(currentLineIDs) > 0 {
			if err := tx.Where("voucher_id = ? AND id NOT IN ?", model.ID, currentLineIDs).
				Delete(&models.VoucherLineModel{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("voucher_id = ?", model.ID).
				Delete(&models.VoucherLineModel{}).Error; err != nil {
				return err
			}
		}
		for i := range model.Lines {
			if err := tx.Save(&model.Lines[i]).Error; err != nil {
				return err
			}
		}

		for i := range model.Approvals {
			if err := tx.Save(&model.Approvals[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Ensure GormVoucherRepository implements VoucherRepository
var _ ledger.VoucherRepository = (*GormVoucherRepository)(nil)

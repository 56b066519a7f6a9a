package persistence

import (
	"context"
	"errors"

	"github.com/crp/backend/internal/domain/ledger"
	"github.com/crp/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormVoucherSequenceRepository implements VoucherSequenceRepository
// using GORM. NextNumber runs get-or-create plus increment inside one
// transaction holding a FOR UPDATE lock on the sequence row, so
// concurrent approvals never receive the same voucher number.
type GormVoucherSequenceRepository struct {
	db *gorm.DB
}

// NewGormVoucherSequenceRepository creates a new GormVoucherSequenceRepository
func NewGormVoucherSequenceRepository(db *gorm.DB) *GormVoucherSequenceRepository {
	return &GormVoucherSequenceRepository{db: db}
}

// NextNumber returns the next voucher number for the type and period
func (r *GormVoucherSequenceRepository) NextNumber(ctx context.Context, voucherType ledger.VoucherType, period *ledger.AccountingPeriod) (string, error) {
	var number string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.VoucherSequenceModel
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("voucher_type = ? AND period_id = ?", voucherType, period.ID).
			First(&model).Error

		var sequence *ledger.VoucherSequence
		switch {
		case err == nil:
			sequence = model.ToDomain()
		case errors.Is(err, gorm.ErrRecordNotFound):
			sequence, err = ledger.NewVoucherSequence(voucherType, period)
			if err != nil {
				return err
			}
		default:
			return err
		}

		number = sequence.Next()
		model.FromDomain(sequence)
		return tx.Save(&model).Error
	})
	if err != nil {
		return "", err
	}
	return number, nil
}

// Ensure GormVoucherSequenceRepository implements VoucherSequenceRepository
var _ ledger.VoucherSequenceRepository = (*GormVoucherSequenceRepository)(nil)

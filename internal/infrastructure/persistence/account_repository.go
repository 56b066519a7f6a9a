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

// GormAccountRepository implements AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// FindByID finds an account by its ID
func (r *GormAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Account, error) {
	var model models.AccountModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds an account by its account number
func (r *GormAccountRepository) FindByNumber(ctx context.Context, number string) (*ledger.Account, error) {
	var model models.AccountModel
	if err := r.db.WithContext(ctx).
		Where("account_number = ?", number).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds accounts matching the filter, ordered by account number
func (r *GormAccountRepository) FindAll(ctx context.Context, filter ledger.AccountFilter) ([]ledger.Account, error) {
	var accountModels []models.AccountModel
	query := r.db.WithContext(ctx).Model(&models.AccountModel{})

	if len(filter.Types) > 0 {
		query = query.Where("account_type IN ?", filter.Types)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.GroupID != nil {
		query = query.Where("group_id = ?", *filter.GroupID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("account_number ILIKE ? OR account_name ILIKE ?", pattern, pattern)
	}

	if err := query.Order("account_number").Find(&accountModels).Error; err != nil {
		return nil, err
	}
	accounts := make([]ledger.Account, len(accountModels))
	for i, model := range accountModels {
		accounts[i] = *model.ToDomain()
	}
	return accounts, nil
}

// FindByIDs finds the accounts with the given IDs
func (r *GormAccountRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]ledger.Account, error) {
	if len(ids) == 0 {
		return []ledger.Account{}, nil
	}
	var accountModels []models.AccountModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("account_number").
		Find(&accountModels).Error; err != nil {
		return nil, err
	}
	accounts := make([]ledger.Account, len(accountModels))
	for i, model := range accountModels {
		accounts[i] = *model.ToDomain()
	}
	return accounts, nil
}

// ExistsByNumber reports whether an account with the number exists
func (r *GormAccountRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.AccountModel{}).
		Where("account_number = ?", number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an account
func (r *GormAccountRepository) Save(ctx context.Context, account *ledger.Account) error {
	model := models.AccountModelFromDomain(account)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormAccountRepository implements AccountRepository
var _ ledger.AccountRepository = (*GormAccountRepository)(nil)

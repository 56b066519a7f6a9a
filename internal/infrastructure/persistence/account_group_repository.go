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

// GormAccountGroupRepository implements AccountGroupRepository using GORM
type GormAccountGroupRepository struct {
	db *gorm.DB
}

// NewGormAccountGroupRepository creates a new GormAccountGroupRepository
func NewGormAccountGroupRepository(db *gorm.DB) *GormAccountGroupRepository {
	return &GormAccountGroupRepository{db: db}
}

// FindByID finds an account group by its ID
func (r *GormAccountGroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.AccountGroup, error) {
	var model models.AccountGroupModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every account group, ordered by name
func (r *GormAccountGroupRepository) FindAll(ctx context.Context) ([]ledger.AccountGroup, error) {
	var groupModels []models.AccountGroupModel
	if err := r.db.WithContext(ctx).
		Order("name").
		Find(&groupModels).Error; err != nil {
		return nil, err
	}
	groups := make([]ledger.AccountGroup, len(groupModels))
	for i, model := range groupModels {
		groups[i] = *model.ToDomain()
	}
	return groups, nil
}

// Save creates or updates an account group
func (r *GormAccountGroupRepository) Save(ctx context.Context, group *ledger.AccountGroup) error {
	model := models.AccountGroupModelFromDomain(group)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormAccountGroupRepository implements AccountGroupRepository
var _ ledger.AccountGroupRepository = (*GormAccountGroupRepository)(nil)

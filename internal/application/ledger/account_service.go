package ledger

import (
	"context"
	"fmt"

	"github.com/crp/backend/internal/domain/ledger"
	"github.com/crp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AccountService manages the chart of accounts
type AccountService struct {
	accountRepo ledger.AccountRepository
	groupRepo   ledger.AccountGroupRepository
}

// NewAccountService creates a new AccountService
func NewAccountService(accountRepo ledger.AccountRepository, groupRepo ledger.AccountGroupRepository) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		groupRepo:   groupRepo,
	}
}

// CreateAccountRequest carries the fields for a new account
type CreateAccountRequest struct {
	AccountNumber string
	AccountName   string
	AccountType   ledger.AccountType
	PLSection     ledger.PLSection
	GroupID       *uuid.UUID
	CurrencyCode  string
	Description   string
}

// CreateAccount creates a new account after checking number uniqueness
// and that the referenced group exists
func (s *AccountService) CreateAccount(ctx context.Context, req CreateAccountRequest) (*ledger.Account, error) {
	exists, err := s.accountRepo.ExistsByNumber(ctx, req.AccountNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check account number: %w", err)
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS",
			fmt.Sprintf("Account number %s is already in use", req.AccountNumber))
	}
	if req.GroupID != nil {
		if _, err := s.groupRepo.FindByID(ctx, *req.GroupID); err != nil {
			return nil, err
		}
	}

	account, err := ledger.NewAccount(req.AccountNumber, req.AccountName, req.AccountType, req.PLSection, req.GroupID, req.CurrencyCode)
	if err != nil {
		return nil, err
	}
	account.Description = req.Description

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to save account: %w", err)
	}
	return account, nil
}

// UpdateAccountRequest carries the mutable account fields
type UpdateAccountRequest struct {
	AccountName string
	Description string
	GroupID     *uuid.UUID
	PLSection   ledger.PLSection
	IsActive    *bool
}

// UpdateAccount updates an account's descriptive fields and active flag
func (s *AccountService) UpdateAccount(ctx context.Context, id uuid.UUID, req UpdateAccountRequest) (*ledger.Account, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.GroupID != nil {
		if _, err := s.groupRepo.FindByID(ctx, *req.GroupID); err != nil {
			return nil, err
		}
	}
	if err := account.UpdateDetails(req.AccountName, req.Description, req.GroupID, req.PLSection); err != nil {
		return nil, err
	}
	if req.IsActive != nil {
		if *req.IsActive {
			account.Activate()
		} else {
			account.Deactivate()
		}
	}
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to save account: %w", err)
	}
	return account, nil
}

// GetAccount finds an account by ID
func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*ledger.Account, error) {
	return s.accountRepo.FindByID(ctx, id)
}

// ListAccounts returns accounts matching the filter
func (s *AccountService) ListAccounts(ctx context.Context, filter ledger.AccountFilter) ([]ledger.Account, error) {
	return s.accountRepo.FindAll(ctx, filter)
}

// CreateGroupRequest carries the fields for a new account group
type CreateGroupRequest struct {
	Name        string
	Description string
	ParentID    *uuid.UUID
}

// CreateGroup creates an account group under an optional parent
func (s *AccountService) CreateGroup(ctx context.Context, req CreateGroupRequest) (*ledger.AccountGroup, error) {
	if req.ParentID != nil {
		if _, err := s.groupRepo.FindByID(ctx, *req.ParentID); err != nil {
			return nil, err
		}
	}
	group, err := ledger.NewAccountGroup(req.Name, req.Description, req.ParentID)
	if err != nil {
		return nil, err
	}
	if err := s.groupRepo.Save(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to save group: %w", err)
	}
	return group, nil
}

// ReparentGroup moves a group under a new parent, rejecting moves that
// would close a cycle in the tree
func (s *AccountService) ReparentGroup(ctx context.Context, id uuid.UUID, parentID *uuid.UUID) (*ledger.AccountGroup, error) {
	group, err := s.groupRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if parentID != nil {
		groups, err := s.groupRepo.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load groups: %w", err)
		}
		if wouldCycle(groups, id, *parentID) {
			return nil, shared.NewDomainError("INVALID_GROUP_PARENT",
				"Moving the group under one of its descendants would create a cycle")
		}
	}
	if err := group.SetParent(parentID); err != nil {
		return nil, err
	}
	if err := s.groupRepo.Save(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to save group: %w", err)
	}
	return group, nil
}

// wouldCycle walks up from the candidate parent looking for the group
// being moved
func wouldCycle(groups []ledger.AccountGroup, groupID, newParentID uuid.UUID) bool {
	parents := make(map[uuid.UUID]*uuid.UUID, len(groups))
	for _, g := range groups {
		parents[g.ID] = g.ParentID
	}
	current := newParentID
	for i := 0; i <= len(groups); i++ {
		if current == groupID {
			return true
		}
		next, ok := parents[current]
		if !ok || next == nil {
			return false
		}
		current = *next
	}
	return true // Pre-existing cycle above the candidate parent
}

// ListGroups returns every account group
func (s *AccountService) ListGroups(ctx context.Context) ([]ledger.AccountGroup, error) {
	return s.groupRepo.FindAll(ctx)
}

// GetGroup finds a group by ID
func (s *AccountService) GetGroup(ctx context.Context, id uuid.UUID) (*ledger.AccountGroup, error) {
	return s.groupRepo.FindByID(ctx, id)
}

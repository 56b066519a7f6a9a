package ledger

import (
	"fmt"

	"github.com/crp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AccountGroup represents a node in the chart-of-accounts hierarchy.
// Groups form a tree; accounts hang off any group in the tree.
type AccountGroup struct {
	shared.BaseAggregateRoot
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ParentID    *uuid.UUID `json:"parent_id"` // Nil for root groups
}

// NewAccountGroup creates a new account group
func NewAccountGroup(name, description string, parentID *uuid.UUID) (*AccountGroup, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_GROUP_NAME", "Group name cannot be empty")
	}
	return &AccountGroup{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		ParentID:          parentID,
	}, nil
}

// Rename changes the group name
func (g *AccountGroup) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_GROUP_NAME", "Group name cannot be empty")
	}
	g.Name = name
	return nil
}

// SetParent reparents the group. Cycle detection is the caller's job
// since it needs the full tree.
func (g *AccountGroup) SetParent(parentID *uuid.UUID) error {
	if parentID != nil && *parentID == g.ID {
		return shared.NewDomainError("INVALID_GROUP_PARENT", "Group cannot be its own parent")
	}
	g.ParentID = parentID
	return nil
}

// Account represents a ledger account in the chart of accounts
type Account struct {
	shared.BaseAggregateRoot
	AccountNumber      string        `json:"account_number"`
	AccountName        string        `json:"account_name"`
	AccountType        AccountType   `json:"account_type"`
	AccountNature      AccountNature `json:"account_nature"` // Derived from AccountType
	PLSection          PLSection     `json:"pl_section"`
	GroupID            *uuid.UUID    `json:"group_id"`
	CurrencyCode       string        `json:"currency_code"`
	Description        string        `json:"description"`
	AllowDirectPosting bool          `json:"allow_direct_posting"`
	IsActive           bool          `json:"is_active"`
}

// NewAccount creates a new account. The nature is derived from the
// account type and the P&L section is validated against it.
func NewAccount(
	number, name string,
	accountType AccountType,
	plSection PLSection,
	groupID *uuid.UUID,
	currencyCode string,
) (*Account, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NUMBER", "Account number cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name cannot be empty")
	}
	if !accountType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_TYPE",
			fmt.Sprintf("Unknown account type %q", accountType))
	}
	if err := validatePLSection(accountType, plSection); err != nil {
		return nil, err
	}
	if currencyCode == "" {
		currencyCode = "USD"
	}

	return &Account{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		AccountNumber:      number,
		AccountName:        name,
		AccountType:        accountType,
		AccountNature:      accountType.Nature(),
		PLSection:          plSection,
		GroupID:            groupID,
		CurrencyCode:       currencyCode,
		AllowDirectPosting: true,
		IsActive:           true,
	}, nil
}

func validatePLSection(accountType AccountType, section PLSection) error {
	if !section.IsValid() {
		return shared.NewDomainError("INVALID_PL_SECTION",
			fmt.Sprintf("Unknown P&L section %q", section))
	}
	if accountType.IsIncomeStatement() && section == PLSectionNone {
		return shared.NewDomainError("INVALID_PL_SECTION",
			fmt.Sprintf("Accounts of type %s require a P&L section", accountType))
	}
	if !accountType.IsIncomeStatement() && section != PLSectionNone {
		return shared.NewDomainError("INVALID_PL_SECTION",
			fmt.Sprintf("Balance sheet accounts cannot carry P&L section %s", section))
	}
	return nil
}

// DisplayName returns the conventional "number - name" label
func (a *Account) DisplayName() string {
	return fmt.Sprintf("%s - %s", a.AccountNumber, a.AccountName)
}

// UpdateDetails changes the mutable descriptive fields. The account
// type (and hence nature) is fixed after creation; retyping an account
// with posted history would corrupt past reports.
func (a *Account) UpdateDetails(name, description string, groupID *uuid.UUID, plSection PLSection) error {
	if name == "" {
		return shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name cannot be empty")
	}
	if err := validatePLSection(a.AccountType, plSection); err != nil {
		return err
	}
	a.AccountName = name
	a.Description = description
	a.GroupID = groupID
	a.PLSection = plSection
	return nil
}

// SetDirectPosting toggles whether journal lines may reference the account directly
func (a *Account) SetDirectPosting(allowed bool) {
	a.AllowDirectPosting = allowed
}

// Activate marks the account as active
func (a *Account) Activate() {
	a.IsActive = true
}

// Deactivate marks the account as inactive. Inactive accounts keep
// their posted history but reject new postings and drop out of the
// trial balance.
func (a *Account) Deactivate() {
	a.IsActive = false
}

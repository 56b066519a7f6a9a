package models

import (
	"time"

	"github.com/crp/backend/internal/domain/ledger"
	"github.com/crp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountGroupModel is the persistence model for the AccountGroup aggregate root.
type AccountGroupModel struct {
	AggregateModel
	Name        string     `gorm:"type:varchar(200);not null;uniqueIndex"`
	Description string     `gorm:"type:text"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (AccountGroupModel) TableName() string {
	return "account_groups"
}

// ToDomain converts the persistence model to a domain AccountGroup entity.
func (m *AccountGroupModel) ToDomain() *ledger.AccountGroup {
	return &ledger.AccountGroup{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: m.BaseModel.ToDomain(),
			Version:    m.Version,
		},
		Name:        m.Name,
		Description: m.Description,
		ParentID:    m.ParentID,
	}
}

// FromDomain populates the persistence model from a domain AccountGroup entity.
func (m *AccountGroupModel) FromDomain(g *ledger.AccountGroup) {
	m.FromDomainAggregateRoot(g.BaseAggregateRoot)
	m.Name = g.Name
	m.Description = g.Description
	m.ParentID = g.ParentID
}

// AccountGroupModelFromDomain creates a new persistence model from a domain AccountGroup.
func AccountGroupModelFromDomain(g *ledger.AccountGroup) *AccountGroupModel {
	m := &AccountGroupModel{}
	m.FromDomain(g)
	return m
}

// AccountModel is the persistence model for the Account aggregate root.
type AccountModel struct {
	AggregateModel
	AccountNumber      string               `gorm:"type:varchar(50);not null;uniqueIndex"`
	AccountName        string               `gorm:"type:varchar(200);not null"`
	AccountType        ledger.AccountType   `gorm:"type:varchar(30);not null;index"`
	AccountNature      ledger.AccountNature `gorm:"type:varchar(10);not null"`
	PLSection          ledger.PLSection     `gorm:"type:varchar(30);not null;default:'NONE'"`
	GroupID            *uuid.UUID           `gorm:"type:uuid;index"`
	CurrencyCode       string               `gorm:"type:varchar(3);not null;default:'USD'"`
	Description        string               `gorm:"type:text"`
	AllowDirectPosting bool                 `gorm:"not null;default:true"`
	IsActive           bool                 `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to a domain Account entity.
func (m *AccountModel) ToDomain() *ledger.Account {
	return &ledger.Account{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: m.BaseModel.ToDomain(),
			Version:    m.Version,
		},
		AccountNumber:      m.AccountNumber,
		AccountName:        m.AccountName,
		AccountType:        m.AccountType,
		AccountNature:      m.AccountNature,
		PLSection:          m.PLSection,
		GroupID:            m.GroupID,
		CurrencyCode:       m.CurrencyCode,
		Description:        m.Description,
		AllowDirectPosting: m.AllowDirectPosting,
		IsActive:           m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Account entity.
func (m *AccountModel) FromDomain(a *ledger.Account) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.AccountNumber = a.AccountNumber
	m.AccountName = a.AccountName
	m.AccountType = a.AccountType
	m.AccountNature = a.AccountNature
	m.PLSection = a.PLSection
	m.GroupID = a.GroupID
	m.CurrencyCode = a.CurrencyCode
	m.Description = a.Description
	m.AllowDirectPosting = a.AllowDirectPosting
	m.IsActive = a.IsActive
}

// AccountModelFromDomain creates a new persistence model from a domain Account.
func AccountModelFromDomain(a *ledger.Account) *AccountModel {
	m := &AccountModel{}
	m.FromDomain(a)
	return m
}

// VoucherLineModel is the persistence model for a voucher line.
type VoucherLineModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	VoucherID uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountID uuid.UUID       `gorm:"type:uuid;not null;index"`
	DrCr      ledger.DrCrType `gorm:"type:varchar(10);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Narration string          `gorm:"type:varchar(500)"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (VoucherLineModel) TableName() string {
	return "voucher_lines"
}

// ToDomain converts the persistence model to a domain VoucherLine.
func (m *VoucherLineModel) ToDomain() ledger.VoucherLine {
	return ledger.VoucherLine{
		ID:        m.ID,
		VoucherID: m.VoucherID,
		AccountID: m.AccountID,
		DrCr:      m.DrCr,
		Amount:    m.Amount,
		Narration: m.Narration,
	}
}

// VoucherApprovalModel is the persistence model for a voucher approval log entry.
type VoucherApprovalModel struct {
	ID         uuid.UUID                 `gorm:"type:uuid;primary_key"`
	VoucherID  uuid.UUID                 `gorm:"type:uuid;not null;index"`
	ActionType ledger.ApprovalActionType `gorm:"type:varchar(20);not null"`
	ActorID    *uuid.UUID                `gorm:"type:uuid"`
	Comment    string                    `gorm:"type:varchar(500)"`
	ActionAt   time.Time                 `gorm:"not null"`
}

// TableName returns the table name for GORM
func (VoucherApprovalModel) TableName() string {
	return "voucher_approvals"
}

// ToDomain converts the persistence model to a domain VoucherApproval.
func (m *VoucherApprovalModel) ToDomain() ledger.VoucherApproval {
	return ledger.VoucherApproval{
		ID:         m.ID,
		VoucherID:  m.VoucherID,
		ActionType: m.ActionType,
		ActorID:    m.ActorID,
		Comment:    m.Comment,
		ActionAt:   m.ActionAt,
	}
}

// VoucherModel is the persistence model for the Voucher aggregate root.
// Lines and approvals are owned children replaced wholesale on save.
type VoucherModel struct {
	AggregateModel
	VoucherNumber string                   `gorm:"type:varchar(50);index"`
	VoucherType   ledger.VoucherType       `gorm:"type:varchar(20);not null;index"`
	PeriodID      uuid.UUID                `gorm:"type:uuid;not null;index"`
	Date          time.Time                `gorm:"not null;index"`
	Narration     string                   `gorm:"type:varchar(500)"`
	Reference     string                   `gorm:"type:varchar(100)"`
	Status        ledger.TransactionStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	Lines         []VoucherLineModel       `gorm:"foreignKey:VoucherID;references:ID"`
	Approvals     []VoucherApprovalModel   `gorm:"foreignKey:VoucherID;references:ID"`
	ReversalOfID  *uuid.UUID               `gorm:"type:uuid;index"`
	PostedAt      *time.Time
}

// TableName returns the table name for GORM
func (VoucherModel) TableName() string {
	return "vouchers"
}

// ToDomain converts the persistence model to a domain Voucher entity.
func (m *VoucherModel) ToDomain() *ledger.Voucher {
	lines := make([]ledger.VoucherLine, len(m.Lines))
	for i, line := range m.Lines {
		lines[i] = line.ToDomain()
	}
	approvals := make([]ledger.VoucherApproval, len(m.Approvals))
	for i, approval := range m.Approvals {
		approvals[i] = approval.ToDomain()
	}
	return &ledger.Voucher{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: m.BaseModel.ToDomain(),
			Version:    m.Version,
		},
		VoucherNumber: m.VoucherNumber,
		VoucherType:   m.VoucherType,
		PeriodID:      m.PeriodID,
		Date:          m.Date,
		Narration:     m.Narration,
		Reference:     m.Reference,
		Status:        m.Status,
		Lines:         lines,
		Approvals:     approvals,
		ReversalOfID:  m.ReversalOfID,
		PostedAt:      m.PostedAt,
	}
}

// FromDomain populates the persistence model from a domain Voucher entity.
func (m *VoucherModel) FromDomain(v *ledger.Voucher) {
	m.FromDomainAggregateRoot(v.BaseAggregateRoot)
	m.VoucherNumber = v.VoucherNumber
	m.VoucherType = v.VoucherType
	m.PeriodID = v.PeriodID
	m.Date = v.Date
	m.Narration = v.Narration
	m.Reference = v.Reference
	m.Status = v.Status
	m.ReversalOfID = v.ReversalOfID
	m.PostedAt = v.PostedAt
	m.Lines = make([]VoucherLineModel, len(v.Lines))
	for i, line := range v.Lines {
		m.Lines[i] = VoucherLineModel{
			ID:        line.ID,
			VoucherID: v.ID,
			AccountID: line.AccountID,
			DrCr:      line.DrCr,
			Amount:    line.Amount,
			Narration: line.Narration,
		}
	}
	m.Approvals = make([]VoucherApprovalModel, len(v.Approvals))
	for i, approval := range v.Approvals {
		m.Approvals[i] = VoucherApprovalModel{
			ID:         approval.ID,
			VoucherID:  v.ID,
			ActionType: approval.ActionType,
			ActorID:    approval.ActorID,
			Comment:    approval.Comment,
			ActionAt:   approval.ActionAt,
		}
	}
}

// VoucherModelFromDomain creates a new persistence model from a domain Voucher.
func VoucherModelFromDomain(v *ledger.Voucher) *VoucherModel {
	m := &VoucherModel{}
	m.FromDomain(v)
	return m
}

// FiscalYearModel is the persistence model for the FiscalYear aggregate root.
type FiscalYearModel struct {
	AggregateModel
	Name      string                  `gorm:"type:varchar(100);not null;uniqueIndex"`
	StartDate time.Time               `gorm:"not null;index"`
	EndDate   time.Time               `gorm:"not null"`
	Status    ledger.FiscalYearStatus `gorm:"type:varchar(10);not null;default:'OPEN'"`
	IsActive  bool                    `gorm:"not null;default:false;index"`
	ClosedAt  *time.Time
}

// TableName returns the table name for GORM
func (FiscalYearModel) TableName() string {
	return "fiscal_years"
}

// ToDomain converts the persistence model to a domain FiscalYear entity.
func (m *FiscalYearModel) ToDomain() *ledger.FiscalYear {
	return &ledger.FiscalYear{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: m.BaseModel.ToDomain(),
			Version:    m.Version,
		},
		Name:      m.Name,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		Status:    m.Status,
		IsActive:  m.IsActive,
		ClosedAt:  m.ClosedAt,
	}
}

// FromDomain populates the persistence model from a domain FiscalYear entity.
func (m *FiscalYearModel) FromDomain(fy *ledger.FiscalYear) {
	m.FromDomainAggregateRoot(fy.BaseAggregateRoot)
	m.Name = fy.Name
	m.StartDate = fy.StartDate
	m.EndDate = fy.EndDate
	m.Status = fy.Status
	m.IsActive = fy.IsActive
	m.ClosedAt = fy.ClosedAt
}

// FiscalYearModelFromDomain creates a new persistence model from a domain FiscalYear.
func FiscalYearModelFromDomain(fy *ledger.FiscalYear) *FiscalYearModel {
	m := &FiscalYearModel{}
	m.FromDomain(fy)
	return m
}

// AccountingPeriodModel is the persistence model for the AccountingPeriod aggregate root.
type AccountingPeriodModel struct {
	AggregateModel
	FiscalYearID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"type:varchar(100);not null"`
	StartDate    time.Time `gorm:"not null;index"`
	EndDate      time.Time `gorm:"not null;index"`
	IsLocked     bool      `gorm:"not null;default:false"`
	LockedAt     *time.Time
}

// TableName returns the table name for GORM
func (AccountingPeriodModel) TableName() string {
	return "accounting_periods"
}

// ToDomain converts the persistence model to a domain AccountingPeriod entity.
func (m *AccountingPeriodModel) ToDomain() *ledger.AccountingPeriod {
	return &ledger.AccountingPeriod{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: m.BaseModel.ToDomain(),
			Version:    m.Version,
		},
		FiscalYearID: m.FiscalYearID,
		Name:         m.Name,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		IsLocked:     m.IsLocked,
		LockedAt:     m.LockedAt,
	}
}

// FromDomain populates the persistence model from a domain AccountingPeriod entity.
func (m *AccountingPeriodModel) FromDomain(p *ledger.AccountingPeriod) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.FiscalYearID = p.FiscalYearID
	m.Name = p.Name
	m.StartDate = p.StartDate
	m.EndDate = p.EndDate
	m.IsLocked = p.IsLocked
	m.LockedAt = p.LockedAt
}

// AccountingPeriodModelFromDomain creates a new persistence model from a domain AccountingPeriod.
func AccountingPeriodModelFromDomain(p *ledger.AccountingPeriod) *AccountingPeriodModel {
	m := &AccountingPeriodModel{}
	m.FromDomain(p)
	return m
}

// VoucherSequenceModel is the persistence model for voucher number sequences.
// One row per (voucher type, period) pair, incremented under a row lock.
type VoucherSequenceModel struct {
	AggregateModel
	VoucherType   ledger.VoucherType `gorm:"type:varchar(20);not null;uniqueIndex:idx_sequence_type_period,priority:1"`
	PeriodID      uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_sequence_type_period,priority:2"`
	Prefix        string             `gorm:"type:varchar(20);not null"`
	PaddingDigits int                `gorm:"not null;default:4"`
	LastNumber    uint64             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (VoucherSequenceModel) TableName() string {
	return "voucher_sequences"
}

// ToDomain converts the persistence model to a domain VoucherSequence entity.
func (m *VoucherSequenceModel) ToDomain() *ledger.VoucherSequence {
	return &ledger.VoucherSequence{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: m.BaseModel.ToDomain(),
			Version:    m.Version,
		},
		VoucherType:   m.VoucherType,
		PeriodID:      m.PeriodID,
		Prefix:        m.Prefix,
		PaddingDigits: m.PaddingDigits,
		LastNumber:    m.LastNumber,
	}
}

// FromDomain populates the persistence model from a domain VoucherSequence entity.
func (m *VoucherSequenceModel) FromDomain(s *ledger.VoucherSequence) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.VoucherType = s.VoucherType
	m.PeriodID = s.PeriodID
	m.Prefix = s.Prefix
	m.PaddingDigits = s.PaddingDigits
	m.LastNumber = s.LastNumber
}

// VoucherSequenceModelFromDomain creates a new persistence model from a domain VoucherSequence.
func VoucherSequenceModelFromDomain(s *ledger.VoucherSequence) *VoucherSequenceModel {
	m := &VoucherSequenceModel{}
	m.FromDomain(s)
	return m
}

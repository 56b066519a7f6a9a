package ledger

import (
	"fmt"
	"time"

	"github.com/crp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ApprovalActionType records which workflow action an approval log entry describes
type ApprovalActionType string

const (
	ApprovalActionSubmitted ApprovalActionType = "SUBMITTED"
	ApprovalActionApproved  ApprovalActionType = "APPROVED"
	ApprovalActionRejected  ApprovalActionType = "REJECTED"
)

// IsValid checks if the action type is valid
func (a ApprovalActionType) IsValid() bool {
	switch a {
	case ApprovalActionSubmitted, ApprovalActionApproved, ApprovalActionRejected:
		return true
	}
	return false
}

// String returns the string representation
func (a ApprovalActionType) String() string {
	return string(a)
}

// VoucherLine represents a single debit or credit entry on a voucher
type VoucherLine struct {
	ID        uuid.UUID       `json:"id"`
	VoucherID uuid.UUID       `json:"voucher_id"`
	AccountID uuid.UUID       `json:"account_id"`
	DrCr      DrCrType        `json:"dr_cr"`
	Amount    decimal.Decimal `json:"amount"` // Always positive; side carried by DrCr
	Narration string          `json:"narration"`
}

// VoucherApproval is an audit log entry for a workflow action on a voucher
type VoucherApproval struct {
	ID         uuid.UUID          `json:"id"`
	VoucherID  uuid.UUID          `json:"voucher_id"`
	ActionType ApprovalActionType `json:"action_type"`
	ActorID    *uuid.UUID         `json:"actor_id"`
	Comment    string             `json:"comment"`
	ActionAt   time.Time          `json:"action_at"`
}

// Voucher represents a journal voucher aggregate root. It carries a
// set of balanced debit/credit lines and moves through the workflow
// DRAFT -> PENDING_APPROVAL -> POSTED, with REJECTED looping back to
// an editable state.
type Voucher struct {
	shared.BaseAggregateRoot
	VoucherNumber string            `json:"voucher_number"` // Assigned at posting
	VoucherType   VoucherType       `json:"voucher_type"`
	PeriodID      uuid.UUID         `json:"period_id"`
	Date          time.Time         `json:"date"` // Transaction date, drives report placement
	Narration     string            `json:"narration"`
	Reference     string            `json:"reference"`
	Status        TransactionStatus `json:"status"`
	Lines         []VoucherLine     `json:"lines"`
	Approvals     []VoucherApproval `json:"approvals"`
	ReversalOfID  *uuid.UUID        `json:"reversal_of_id"` // Set on reversing vouchers
	PostedAt      *time.Time        `json:"posted_at"`
}

// NewVoucher creates a new draft voucher without lines
func NewVoucher(voucherType VoucherType, periodID uuid.UUID, date time.Time, narration, reference string) (*Voucher, error) {
	if !voucherType.IsValid() {
		return nil, shared.NewDomainError("INVALID_VOUCHER_TYPE",
			fmt.Sprintf("Unknown voucher type %q", voucherType))
	}
	if periodID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Voucher requires an accounting period")
	}
	return &Voucher{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		VoucherType:       voucherType,
		PeriodID:          periodID,
		Date:              date,
		Narration:         narration,
		Reference:         reference,
		Status:            StatusDraft,
		Lines:             make([]VoucherLine, 0),
		Approvals:         make([]VoucherApproval, 0),
	}, nil
}

// AddLine appends a debit or credit line to an editable voucher
func (v *Voucher) AddLine(accountID uuid.UUID, drCr DrCrType, amount decimal.Decimal, narration string) error {
	if !v.Status.CanEdit() {
		return shared.NewDomainError("VOUCHER_NOT_EDITABLE",
			fmt.Sprintf("Cannot modify a voucher in status %s", v.Status))
	}
	if accountID == uuid.Nil {
		return shared.NewDomainError("INVALID_ACCOUNT", "Voucher line requires an account")
	}
	if !drCr.IsValid() {
		return shared.NewDomainError("INVALID_DR_CR", fmt.Sprintf("Unknown entry type %q", drCr))
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Voucher line amount must be positive")
	}
	v.Lines = append(v.Lines, VoucherLine{
		ID:        uuid.New(),
		VoucherID: v.ID,
		AccountID: accountID,
		DrCr:      drCr,
		Amount:    amount,
		Narration: narration,
	})
	return nil
}

// ClearLines removes all lines from an editable voucher
func (v *Voucher) ClearLines() error {
	if !v.Status.CanEdit() {
		return shared.NewDomainError("VOUCHER_NOT_EDITABLE",
			fmt.Sprintf("Cannot modify a voucher in status %s", v.Status))
	}
	v.Lines = v.Lines[:0]
	return nil
}

// TotalDebits returns the sum of all debit line amounts
func (v *Voucher) TotalDebits() decimal.Decimal {
	total := decimal.Zero
	for _, line := range v.Lines {
		if line.DrCr == DrCrDebit {
			total = total.Add(line.Amount)
		}
	}
	return total
}

// TotalCredits returns the sum of all credit line amounts
func (v *Voucher) TotalCredits() decimal.Decimal {
	total := decimal.Zero
	for _, line := range v.Lines {
		if line.DrCr == DrCrCredit {
			total = total.Add(line.Amount)
		}
	}
	return total
}

// IsBalanced returns true when debits equal credits
func (v *Voucher) IsBalanced() bool {
	return v.TotalDebits().Equal(v.TotalCredits())
}

// ValidateForSubmission checks the double-entry invariants that must
// hold before the voucher may enter the approval workflow
func (v *Voucher) ValidateForSubmission() error {
	if len(v.Lines) < 2 {
		return shared.NewDomainError("INSUFFICIENT_LINES", "Voucher requires at least two lines")
	}
	if !v.IsBalanced() {
		return shared.NewDomainError("UNBALANCED_VOUCHER",
			fmt.Sprintf("Debits %s do not equal credits %s", v.TotalDebits(), v.TotalCredits()))
	}
	return nil
}

// Submit moves the voucher into the approval queue
func (v *Voucher) Submit(actorID *uuid.UUID, at time.Time) error {
	if !v.Status.CanSubmit() {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot submit a voucher in status %s", v.Status))
	}
	if err := v.ValidateForSubmission(); err != nil {
		return err
	}
	v.Status = StatusPendingApproval
	v.logApproval(ApprovalActionSubmitted, actorID, "", at)
	return nil
}

// Approve posts the voucher, stamping it with its final number
func (v *Voucher) Approve(voucherNumber string, actorID *uuid.UUID, comment string, at time.Time) error {
	if !v.Status.CanApprove() {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot approve a voucher in status %s", v.Status))
	}
	if voucherNumber == "" {
		return shared.NewDomainError("INVALID_VOUCHER_NUMBER", "Posting requires a voucher number")
	}
	if err := v.ValidateForSubmission(); err != nil {
		return err
	}
	v.Status = StatusPosted
	v.VoucherNumber = voucherNumber
	v.PostedAt = &at
	v.logApproval(ApprovalActionApproved, actorID, comment, at)
	return nil
}

// Reject sends the voucher back to its author with a mandatory reason
func (v *Voucher) Reject(actorID *uuid.UUID, comment string, at time.Time) error {
	if !v.Status.CanApprove() {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot reject a voucher in status %s", v.Status))
	}
	if comment == "" {
		return shared.NewDomainError("REJECTION_REASON_REQUIRED", "Rejection requires a comment")
	}
	v.Status = StatusRejected
	v.logApproval(ApprovalActionRejected, actorID, comment, at)
	return nil
}

func (v *Voucher) logApproval(action ApprovalActionType, actorID *uuid.UUID, comment string, at time.Time) {
	v.Approvals = append(v.Approvals, VoucherApproval{
		ID:         uuid.New(),
		VoucherID:  v.ID,
		ActionType: action,
		ActorID:    actorID,
		Comment:    comment,
		ActionAt:   at,
	})
}

// BuildReversal creates a draft voucher that undoes this one: same
// accounts and amounts with the debit/credit side flipped. Only posted
// vouchers can be reversed.
func (v *Voucher) BuildReversal(date time.Time, periodID uuid.UUID) (*Voucher, error) {
	if !v.Status.IsPosted() {
		return nil, shared.NewDomainError("INVALID_STATE", "Only posted vouchers can be reversed")
	}
	reversal, err := NewVoucher(v.VoucherType, periodID, date,
		fmt.Sprintf("Reversal of voucher %s. Original narration: %s", v.VoucherNumber, v.Narration),
		v.Reference)
	if err != nil {
		return nil, err
	}
	reversal.ReversalOfID = &v.ID
	for _, line := range v.Lines {
		if err := reversal.AddLine(line.AccountID, line.DrCr.Opposite(), line.Amount, line.Narration); err != nil {
			return nil, err
		}
	}
	return reversal, nil
}

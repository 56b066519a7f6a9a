package ledger

import (
	"fmt"

	"github.com/crp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// VoucherSequence tracks the last assigned voucher number for one
// (voucher type, accounting period) pair. The repository increments
// LastNumber under a row lock so concurrent postings never share a
// number.
type VoucherSequence struct {
	shared.BaseAggregateRoot
	VoucherType   VoucherType `json:"voucher_type"`
	PeriodID      uuid.UUID   `json:"period_id"`
	Prefix        string      `json:"prefix"`
	PaddingDigits int         `json:"padding_digits"`
	LastNumber    uint64      `json:"last_number"`
}

// NewVoucherSequence creates a sequence starting at zero with the
// conventional prefix for the type and period
func NewVoucherSequence(voucherType VoucherType, period *AccountingPeriod) (*VoucherSequence, error) {
	if !voucherType.IsValid() {
		return nil, shared.NewDomainError("INVALID_VOUCHER_TYPE",
			fmt.Sprintf("Unknown voucher type %q", voucherType))
	}
	if period == nil {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Sequence requires an accounting period")
	}
	return &VoucherSequence{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		VoucherType:       voucherType,
		PeriodID:          period.ID,
		Prefix:            DefaultSequencePrefix(voucherType, period),
		PaddingDigits:     4,
		LastNumber:        0,
	}, nil
}

// DefaultSequencePrefix builds the "<TY>-<YYYY>Q<q>-" prefix from the
// first two letters of the voucher type and the period's start quarter
func DefaultSequencePrefix(voucherType VoucherType, period *AccountingPeriod) string {
	abbrev := string(voucherType)
	if len(abbrev) > 2 {
		abbrev = abbrev[:2]
	}
	return fmt.Sprintf("%s-%dQ%d-", abbrev, period.StartDate.Year(), period.Quarter())
}

// FormatNumber renders a sequence value as a full voucher number
func (s *VoucherSequence) FormatNumber(number uint64) string {
	return fmt.Sprintf("%s%0*d", s.Prefix, s.PaddingDigits, number)
}

// Next advances the sequence and returns the formatted number. Callers
// must hold the row lock for the sequence when invoking this.
func (s *VoucherSequence) Next() string {
	s.LastNumber++
	return s.FormatNumber(s.LastNumber)
}

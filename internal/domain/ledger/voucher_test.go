package ledger

import (
	"testing"
	"time"

	"github.com/crp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVoucher(t *testing.T) *Voucher {
	t.Helper()
	v, err := NewVoucher(VoucherTypeGeneral, uuid.New(), time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), "Office supplies", "INV-42")
	require.NoError(t, err)
	return v
}

func addBalancedLines(t *testing.T, v *Voucher, amount decimal.Decimal) (debitAcc, creditAcc uuid.UUID) {
	t.Helper()
	debitAcc, creditAcc = uuid.New(), uuid.New()
	require.NoError(t, v.AddLine(debitAcc, DrCrDebit, amount, ""))
	require.NoError(t, v.AddLine(creditAcc, DrCrCredit, amount, ""))
	return debitAcc, creditAcc
}

func TestNewVoucher(t *testing.T) {
	t.Run("starts as an empty draft", func(t *testing.T) {
		v := newTestVoucher(t)
		assert.Equal(t, StatusDraft, v.Status)
		assert.Empty(t, v.VoucherNumber)
		assert.Empty(t, v.Lines)
	})

	t.Run("requires a period", func(t *testing.T) {
		_, err := NewVoucher(VoucherTypeGeneral, uuid.Nil, time.Now(), "", "")
		require.Error(t, err)
	})

	t.Run("rejects unknown voucher type", func(t *testing.T) {
		_, err := NewVoucher(VoucherType("MEMO"), uuid.New(), time.Now(), "", "")
		require.Error(t, err)
	})
}

func TestVoucherLines(t *testing.T) {
	t.Run("tracks debit and credit totals separately", func(t *testing.T) {
		v := newTestVoucher(t)
		require.NoError(t, v.AddLine(uuid.New(), DrCrDebit, decimal.NewFromInt(300), ""))
		require.NoError(t, v.AddLine(uuid.New(), DrCrDebit, decimal.NewFromInt(200), ""))
		require.NoError(t, v.AddLine(uuid.New(), DrCrCredit, decimal.NewFromInt(500), ""))

		assert.True(t, v.TotalDebits().Equal(decimal.NewFromInt(500)))
		assert.True(t, v.TotalCredits().Equal(decimal.NewFromInt(500)))
		assert.True(t, v.IsBalanced())
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		v := newTestVoucher(t)
		err := v.AddLine(uuid.New(), DrCrDebit, decimal.Zero, "")
		require.Error(t, err)
		err = v.AddLine(uuid.New(), DrCrDebit, decimal.NewFromInt(-5), "")
		require.Error(t, err)
	})

	t.Run("rejects line changes once submitted", func(t *testing.T) {
		v := newTestVoucher(t)
		addBalancedLines(t, v, decimal.NewFromInt(100))
		require.NoError(t, v.Submit(nil, time.Now()))

		err := v.AddLine(uuid.New(), DrCrDebit, decimal.NewFromInt(10), "")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VOUCHER_NOT_EDITABLE", domainErr.Code)
	})
}

func TestVoucherWorkflow(t *testing.T) {
	actor := uuid.New()

	t.Run("submit requires at least two balanced lines", func(t *testing.T) {
		v := newTestVoucher(t)
		err := v.Submit(&actor, time.Now())
		require.Error(t, err)

		require.NoError(t, v.AddLine(uuid.New(), DrCrDebit, decimal.NewFromInt(100), ""))
		require.NoError(t, v.AddLine(uuid.New(), DrCrCredit, decimal.NewFromInt(90), ""))
		err = v.Submit(&actor, time.Now())
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNBALANCED_VOUCHER", domainErr.Code)
	})

	t.Run("submit then approve posts the voucher with its number", func(t *testing.T) {
		v := newTestVoucher(t)
		addBalancedLines(t, v, decimal.NewFromInt(250))

		require.NoError(t, v.Submit(&actor, time.Now()))
		assert.Equal(t, StatusPendingApproval, v.Status)

		postedAt := time.Now()
		require.NoError(t, v.Approve("GE-2026Q1-0001", &actor, "ok", postedAt))
		assert.Equal(t, StatusPosted, v.Status)
		assert.Equal(t, "GE-2026Q1-0001", v.VoucherNumber)
		require.NotNil(t, v.PostedAt)

		require.Len(t, v.Approvals, 2)
		assert.Equal(t, ApprovalActionSubmitted, v.Approvals[0].ActionType)
		assert.Equal(t, ApprovalActionApproved, v.Approvals[1].ActionType)
	})

	t.Run("approve refuses a draft", func(t *testing.T) {
		v := newTestVoucher(t)
		addBalancedLines(t, v, decimal.NewFromInt(100))
		err := v.Approve("GE-2026Q1-0002", &actor, "", time.Now())
		require.Error(t, err)
	})

	t.Run("reject requires a comment and reopens editing", func(t *testing.T) {
		v := newTestVoucher(t)
		addBalancedLines(t, v, decimal.NewFromInt(100))
		require.NoError(t, v.Submit(&actor, time.Now()))

		err := v.Reject(&actor, "", time.Now())
		require.Error(t, err)

		require.NoError(t, v.Reject(&actor, "wrong expense account", time.Now()))
		assert.Equal(t, StatusRejected, v.Status)
		assert.True(t, v.Status.CanEdit())

		// A corrected voucher can go around again
		require.NoError(t, v.Submit(&actor, time.Now()))
		assert.Equal(t, StatusPendingApproval, v.Status)
	})
}

func TestBuildReversal(t *testing.T) {
	actor := uuid.New()

	t.Run("flips every line and references the original", func(t *testing.T) {
		v := newTestVoucher(t)
		debitAcc, creditAcc := addBalancedLines(t, v, decimal.NewFromInt(400))
		require.NoError(t, v.Submit(&actor, time.Now()))
		require.NoError(t, v.Approve("GE-2026Q1-0007", &actor, "", time.Now()))

		rev, err := v.BuildReversal(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), uuid.New())
		require.NoError(t, err)

		assert.Equal(t, StatusDraft, rev.Status)
		require.NotNil(t, rev.ReversalOfID)
		assert.Equal(t, v.ID, *rev.ReversalOfID)
		assert.Contains(t, rev.Narration, "GE-2026Q1-0007")

		require.Len(t, rev.Lines, 2)
		assert.Equal(t, debitAcc, rev.Lines[0].AccountID)
		assert.Equal(t, DrCrCredit, rev.Lines[0].DrCr)
		assert.Equal(t, creditAcc, rev.Lines[1].AccountID)
		assert.Equal(t, DrCrDebit, rev.Lines[1].DrCr)
		assert.True(t, rev.IsBalanced())
	})

	t.Run("refuses to reverse an unposted voucher", func(t *testing.T) {
		v := newTestVoucher(t)
		addBalancedLines(t, v, decimal.NewFromInt(100))
		_, err := v.BuildReversal(time.Now(), uuid.New())
		require.Error(t, err)
	})
}

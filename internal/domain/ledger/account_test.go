package ledger

import (
	"testing"

	"github.com/crp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccount(t *testing.T) {
	t.Run("creates active account with nature derived from type", func(t *testing.T) {
		acc, err := NewAccount("1010", "Cash", AccountTypeAsset, PLSectionNone, nil, "USD")
		require.NoError(t, err)

		assert.Equal(t, NatureDebit, acc.AccountNature)
		assert.True(t, acc.IsActive)
		assert.True(t, acc.AllowDirectPosting)
		assert.Equal(t, "1010 - Cash", acc.DisplayName())
	})

	t.Run("income account gets credit nature", func(t *testing.T) {
		acc, err := NewAccount("4000", "Product Sales", AccountTypeIncome, PLSectionRevenue, nil, "USD")
		require.NoError(t, err)
		assert.Equal(t, NatureCredit, acc.AccountNature)
	})

	t.Run("rejects empty account number", func(t *testing.T) {
		_, err := NewAccount("", "Cash", AccountTypeAsset, PLSectionNone, nil, "USD")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_ACCOUNT_NUMBER", domainErr.Code)
	})

	t.Run("income statement accounts require a P&L section", func(t *testing.T) {
		_, err := NewAccount("5000", "Freight In", AccountTypeCOGS, PLSectionNone, nil, "USD")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PL_SECTION", domainErr.Code)
	})

	t.Run("balance sheet accounts must not carry a P&L section", func(t *testing.T) {
		_, err := NewAccount("2000", "Accounts Payable", AccountTypeLiability, PLSectionOperatingExpense, nil, "USD")
		require.Error(t, err)
	})

	t.Run("defaults currency when empty", func(t *testing.T) {
		acc, err := NewAccount("1010", "Cash", AccountTypeAsset, PLSectionNone, nil, "")
		require.NoError(t, err)
		assert.Equal(t, "USD", acc.CurrencyCode)
	})
}

func TestAccountUpdateDetails(t *testing.T) {
	t.Run("updates name, group and section", func(t *testing.T) {
		acc, err := NewAccount("6100", "Rent", AccountTypeExpense, PLSectionOperatingExpense, nil, "USD")
		require.NoError(t, err)

		groupID := uuid.New()
		err = acc.UpdateDetails("Office Rent", "Monthly office lease", &groupID, PLSectionOperatingExpense)
		require.NoError(t, err)
		assert.Equal(t, "Office Rent", acc.AccountName)
		assert.Equal(t, &groupID, acc.GroupID)
	})

	t.Run("keeps P&L section consistent with the fixed account type", func(t *testing.T) {
		acc, err := NewAccount("6100", "Rent", AccountTypeExpense, PLSectionOperatingExpense, nil, "USD")
		require.NoError(t, err)

		err = acc.UpdateDetails("Rent", "", nil, PLSectionNone)
		require.Error(t, err)
	})
}

func TestAccountActivation(t *testing.T) {
	acc, err := NewAccount("1010", "Cash", AccountTypeAsset, PLSectionNone, nil, "USD")
	require.NoError(t, err)

	acc.Deactivate()
	assert.False(t, acc.IsActive)
	acc.Activate()
	assert.True(t, acc.IsActive)
}

func TestNewAccountGroup(t *testing.T) {
	t.Run("creates root group", func(t *testing.T) {
		g, err := NewAccountGroup("Current Assets", "", nil)
		require.NoError(t, err)
		assert.Nil(t, g.ParentID)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewAccountGroup("", "", nil)
		require.Error(t, err)
	})

	t.Run("group cannot be its own parent", func(t *testing.T) {
		g, err := NewAccountGroup("Assets", "", nil)
		require.NoError(t, err)

		self := g.ID
		err = g.SetParent(&self)
		require.Error(t, err)
	})
}

package report

import (
	"context"
	"testing"
	"time"

	"github.com/crp/backend/internal/domain/ledger"
	"github.com/crp/backend/internal/domain/report"
	"github.com/crp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newProfitLossFixture(t *testing.T) (*ProfitLossService, *MockAccountRepository, *MockAccountGroupRepository, *MockLedgerQueryRepository) {
	t.Helper()
	accountRepo := new(MockAccountRepository)
	groupRepo := new(MockAccountGroupRepository)
	queryRepo := new(MockLedgerQueryRepository)
	service := NewProfitLossService(accountRepo, groupRepo, queryRepo, zap.NewNop())
	return service, accountRepo, groupRepo, queryRepo
}

func TestProfitLossService_Generate(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

	t.Run("computes the statement identities", func(t *testing.T) {
		service, accountRepo, groupRepo, queryRepo := newProfitLossFixture(t)
		sales := testAccount(t, "4000", ledger.AccountTypeIncome, ledger.PLSectionRevenue, nil)
		cogs := testAccount(t, "5000", ledger.AccountTypeCOGS, ledger.PLSectionCOGS, nil)
		rent := testAccount(t, "6000", ledger.AccountTypeExpense, ledger.PLSectionOperatingExpense, nil)
		tax := testAccount(t, "6900", ledger.AccountTypeExpense, ledger.PLSectionTaxExpense, nil)

		accountRepo.On("FindAll", ctx, mock.AnythingOfType("ledger.AccountFilter")).
			Return([]ledger.Account{sales, cogs, rent, tax}, nil)
		groupRepo.On("FindAll", ctx).Return([]ledger.AccountGroup{}, nil)
		queryRepo.On("AccountTotalsBetween", ctx, start, end).Return([]ledger.AccountTotals{
			{AccountID: sales.ID, CreditTotal: decimal.NewFromInt(1000)},
			{AccountID: cogs.ID, DebitTotal: decimal.NewFromInt(400)},
			{AccountID: rent.ID, DebitTotal: decimal.NewFromInt(250)},
			{AccountID: tax.ID, DebitTotal: decimal.NewFromInt(70)},
		}, nil)

		pl, err := service.Generate(ctx, start, end)

		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(1000).Equal(pl.TotalRevenue))
		assert.True(t, decimal.NewFromInt(400).Equal(pl.TotalCOGS))
		assert.True(t, decimal.NewFromInt(600).Equal(pl.GrossProfit))
		assert.True(t, decimal.NewFromInt(250).Equal(pl.TotalOpex))
		assert.True(t, decimal.NewFromInt(350).Equal(pl.OperatingProfit))
		assert.True(t, decimal.NewFromInt(350).Equal(pl.ProfitBeforeTax))
		assert.True(t, decimal.NewFromInt(70).Equal(pl.TotalTax))
		assert.True(t, decimal.NewFromInt(280).Equal(pl.NetIncome))
	})

	t.Run("orders the report sections", func(t *testing.T) {
		service, accountRepo, groupRepo, queryRepo := newProfitLossFixture(t)
		sales := testAccount(t, "4000", ledger.AccountTypeIncome, ledger.PLSectionRevenue, nil)
		cogs := testAccount(t, "5000", ledger.AccountTypeCOGS, ledger.PLSectionCOGS, nil)

		accountRepo.On("FindAll", ctx, mock.AnythingOfType("ledger.AccountFilter")).
			Return([]ledger.Account{sales, cogs}, nil)
		groupRepo.On("FindAll", ctx).Return([]ledger.AccountGroup{}, nil)
		queryRepo.On("AccountTotalsBetween", ctx, start, end).Return([]ledger.AccountTotals{
			{AccountID: sales.ID, CreditTotal: decimal.NewFromInt(1000)},
			{AccountID: cogs.ID, DebitTotal: decimal.NewFromInt(400)},
		}, nil)

		pl, err := service.Generate(ctx, start, end)

		require.NoError(t, err)
		keys := make([]string, 0, len(pl.ReportStructure))
		for _, block := range pl.ReportStructure {
			keys = append(keys, block.SectionKey)
		}
		assert.Equal(t, []string{
			ledger.PLSectionRevenue.String(),
			ledger.PLSectionCOGS.String(),
			report.SubtotalGrossProfit,
			report.SubtotalProfitBeforeTax,
			report.SubtotalNetIncome,
		}, keys)
	})

	t.Run("drops zero movements and unposted accounts", func(t *testing.T) {
		service, accountRepo, groupRepo, queryRepo := newProfitLossFixture(t)
		sales := testAccount(t, "4000", ledger.AccountTypeIncome, ledger.PLSectionRevenue, nil)
		idle := testAccount(t, "4100", ledger.AccountTypeIncome, ledger.PLSectionRevenue, nil)
		washed := testAccount(t, "4200", ledger.AccountTypeIncome, ledger.PLSectionRevenue, nil)

		accountRepo.On("FindAll", ctx, mock.AnythingOfType("ledger.AccountFilter")).
			Return([]ledger.Account{sales, idle, washed}, nil)
		groupRepo.On("FindAll", ctx).Return([]ledger.AccountGroup{}, nil)
		queryRepo.On("AccountTotalsBetween", ctx, start, end).Return([]ledger.AccountTotals{
			{AccountID: sales.ID, CreditTotal: decimal.NewFromInt(500)},
			{AccountID: washed.ID, DebitTotal: decimal.NewFromInt(200), CreditTotal: decimal.NewFromInt(200)},
		}, nil)

		pl, err := service.Generate(ctx, start, end)

		require.NoError(t, err)
		require.NotEmpty(t, pl.ReportStructure)
		revenue := pl.ReportStructure[0]
		require.Len(t, revenue.Nodes, 1)
		assert.Contains(t, revenue.Nodes[0].Name, "4000")
	})

	t.Run("skips income statement accounts without a section", func(t *testing.T) {
		service, accountRepo, groupRepo, queryRepo := newProfitLossFixture(t)
		sales := testAccount(t, "4000", ledger.AccountTypeIncome, ledger.PLSectionRevenue, nil)
		stray := testAccount(t, "4100", ledger.AccountTypeIncome, ledger.PLSectionRevenue, nil)
		stray.PLSection = ledger.PLSectionNone

		accountRepo.On("FindAll", ctx, mock.AnythingOfType("ledger.AccountFilter")).
			Return([]ledger.Account{sales, stray}, nil)
		groupRepo.On("FindAll", ctx).Return([]ledger.AccountGroup{}, nil)
		queryRepo.On("AccountTotalsBetween", ctx, start, end).Return([]ledger.AccountTotals{
			{AccountID: sales.ID, CreditTotal: decimal.NewFromInt(500)},
			{AccountID: stray.ID, CreditTotal: decimal.NewFromInt(300)},
		}, nil)

		pl, err := service.Generate(ctx, start, end)

		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(500).Equal(pl.TotalRevenue))
	})

	t.Run("negative revenue flows through as negative", func(t *testing.T) {
		service, accountRepo, groupRepo, queryRepo := newProfitLossFixture(t)
		refunds := testAccount(t, "4900", ledger.AccountTypeIncome, ledger.PLSectionRevenue, nil)

		accountRepo.On("FindAll", ctx, mock.AnythingOfType("ledger.AccountFilter")).
			Return([]ledger.Account{refunds}, nil)
		groupRepo.On("FindAll", ctx).Return([]ledger.AccountGroup{}, nil)
		queryRepo.On("AccountTotalsBetween", ctx, start, end).Return([]ledger.AccountTotals{
			{AccountID: refunds.ID, DebitTotal: decimal.NewFromInt(150)},
		}, nil)

		pl, err := service.Generate(ctx, start, end)

		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(-150).Equal(pl.TotalRevenue))
		assert.True(t, decimal.NewFromInt(-150).Equal(pl.NetIncome))
	})

	t.Run("rejects an inverted date range", func(t *testing.T) {
		service, _, _, _ := newProfitLossFixture(t)

		_, err := service.Generate(ctx, end, start)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_DATE_RANGE", domainErr.Code)
	})
}

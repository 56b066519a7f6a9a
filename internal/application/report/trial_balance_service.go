package report

import (
	"context"
	"fmt"
	"time"

	"github.com/crp/backend/internal/domain/ledger"
	"github.com/crp/backend/internal/domain/report"
	"github.com/crp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TrialBalanceService generates the structured trial balance
type TrialBalanceService struct {
	accountRepo ledger.AccountRepository
	groupRepo   ledger.AccountGroupRepository
	queryRepo   ledger.LedgerQueryRepository
	logger      *zap.Logger
}

// NewTrialBalanceService creates a new TrialBalanceService
func NewTrialBalanceService(
	accountRepo ledger.AccountRepository,
	groupRepo ledger.AccountGroupRepository,
	queryRepo ledger.LedgerQueryRepository,
	logger *zap.Logger,
) *TrialBalanceService {
	return &TrialBalanceService{
		accountRepo: accountRepo,
		groupRepo:   groupRepo,
		queryRepo:   queryRepo,
		logger:      logger,
	}
}

// Generate builds the trial balance as of the given date. Every active
// account is listed, zero balances included. An account with an
// unrecognized nature aborts the report with a configuration error
// naming the account.
func (s *TrialBalanceService) Generate(ctx context.Context, asOf time.Time) (*report.TrialBalance, error) {
	accounts, err := s.accountRepo.FindAll(ctx, ledger.AccountFilter{ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	groups, err := s.groupRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load account groups: %w", err)
	}
	totals, err := s.queryRepo.AccountTotalsAsOf(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate posted lines: %w", err)
	}
	totalsByAccount := make(map[uuid.UUID]ledger.AccountTotals, len(totals))
	for _, t := range totals {
		totalsByAccount[t.AccountID] = t
	}

	balances := make([]report.AccountBalance, 0, len(accounts))
	for _, account := range accounts {
		raw := totalsByAccount[account.ID]
		debit, credit, err := report.SettleBalance(account.AccountNature, raw.DebitTotal, raw.CreditTotal)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_ACCOUNT_NATURE",
				fmt.Sprintf("Account %s has unrecognized nature %q", account.AccountNumber, account.AccountNature))
		}
		balances = append(balances, report.AccountBalance{
			AccountID: account.ID,
			Number:    account.AccountNumber,
			Name:      account.AccountName,
			GroupID:   account.GroupID,
			Debit:     debit,
			Credit:    credit,
		})
	}

	builder := report.NewHierarchyBuilder(toReportGroups(groups))
	tb := report.BuildTrialBalance(asOf, builder, balances)
	if !tb.IsBalanced {
		s.logger.Error("trial balance is out of balance",
			zap.Time("as_of", asOf),
			zap.String("total_debit", tb.TotalDebit.String()),
			zap.String("total_credit", tb.TotalCredit.String()))
	}
	return tb, nil
}

func toReportGroups(groups []ledger.AccountGroup) []report.Group {
	out := make([]report.Group, 0, len(groups))
	for _, g := range groups {
		out = append(out, report.Group{ID: g.ID, Name: g.Name, ParentID: g.ParentID})
	}
	return out
}

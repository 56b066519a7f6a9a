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

// ProfitLossService generates the structured profit and loss statement
type ProfitLossService struct {
	accountRepo ledger.AccountRepository
	groupRepo   ledger.AccountGroupRepository
	queryRepo   ledger.LedgerQueryRepository
	logger      *zap.Logger
}

// NewProfitLossService creates a new ProfitLossService
func NewProfitLossService(
	accountRepo ledger.AccountRepository,
	groupRepo ledger.AccountGroupRepository,
	queryRepo ledger.LedgerQueryRepository,
	logger *zap.Logger,
) *ProfitLossService {
	return &ProfitLossService{
		accountRepo: accountRepo,
		groupRepo:   groupRepo,
		queryRepo:   queryRepo,
		logger:      logger,
	}
}

// Generate builds the P&L over [start, end] inclusive. Accounts with
// zero net movement are dropped; section totals precalculated from the
// flat movements stay authoritative over hierarchy subtotals, with any
// divergence logged.
func (s *ProfitLossService) Generate(ctx context.Context, start, end time.Time) (*report.ProfitLoss, error) {
	if end.Before(start) {
		return nil, shared.NewDomainError("INVALID_DATE_RANGE", "End date must not precede start date")
	}

	accounts, err := s.accountRepo.FindAll(ctx, ledger.AccountFilter{
		ActiveOnly: true,
		Types:      []ledger.AccountType{ledger.AccountTypeIncome, ledger.AccountTypeCOGS, ledger.AccountTypeExpense},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	groups, err := s.groupRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load account groups: %w", err)
	}
	totals, err := s.queryRepo.AccountTotalsBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate posted lines: %w", err)
	}
	totalsByAccount := make(map[uuid.UUID]ledger.AccountTotals, len(totals))
	for _, t := range totals {
		totalsByAccount[t.AccountID] = t
	}

	movements := make([]report.AccountMovement, 0, len(accounts))
	for _, account := range accounts {
		raw, ok := totalsByAccount[account.ID]
		if !ok {
			continue
		}
		amount, err := report.NetMovement(account.AccountType, raw.DebitTotal, raw.CreditTotal)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_ACCOUNT_TYPE",
				fmt.Sprintf("Account %s of type %s cannot appear on the profit and loss statement",
					account.AccountNumber, account.AccountType))
		}
		if amount.IsZero() {
			continue
		}
		if account.PLSection == ledger.PLSectionNone {
			s.logger.Warn("income statement account without a P&L section skipped",
				zap.String("account_number", account.AccountNumber))
			continue
		}
		movements = append(movements, report.AccountMovement{
			AccountID: account.ID,
			Number:    account.AccountNumber,
			Name:      account.AccountName,
			GroupID:   account.GroupID,
			Section:   account.PLSection,
			Amount:    amount,
		})
	}

	builder := report.NewHierarchyBuilder(toReportGroups(groups))
	pl, mismatches := report.BuildProfitLoss(start, end, builder, movements)
	for _, mismatch := range mismatches {
		s.logger.Warn("P&L hierarchy subtotal diverges from section total",
			zap.String("section", mismatch.Section.String()),
			zap.String("section_total", mismatch.SectionTotal.String()),
			zap.String("hierarchy_total", mismatch.HierarchyTotal.String()))
	}
	return pl, nil
}

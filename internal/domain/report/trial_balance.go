package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/crp/backend/internal/domain/ledger"
	"github.com/crp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SettleBalance nets raw posted totals by account nature and clamps
// the result into debit/credit columns: a positive net balance lands
// in the account's natural column, a negative one flips into the
// opposite column as an absolute value. An unrecognized nature is a
// chart-of-accounts configuration error and fails the report.
func SettleBalance(nature ledger.AccountNature, debitTotal, creditTotal decimal.Decimal) (debit, credit decimal.Decimal, err error) {
	switch nature {
	case ledger.NatureDebit:
		net := debitTotal.Sub(creditTotal)
		if net.Sign() >= 0 {
			return net, decimal.Zero, nil
		}
		return decimal.Zero, net.Abs(), nil
	case ledger.NatureCredit:
		net := creditTotal.Sub(debitTotal)
		if net.Sign() >= 0 {
			return decimal.Zero, net, nil
		}
		return net.Abs(), decimal.Zero, nil
	default:
		return decimal.Zero, decimal.Zero, shared.NewDomainError("INVALID_ACCOUNT_NATURE",
			fmt.Sprintf("Unrecognized account nature %q", nature))
	}
}

// TrialBalanceEntry is one row of the flat trial-balance listing
type TrialBalanceEntry struct {
	AccountID     uuid.UUID       `json:"account_id"`
	AccountNumber string          `json:"account_number"`
	AccountName   string          `json:"account_name"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
}

// TrialBalance is the full structured trial-balance report. The
// hierarchy carries group subtotals for display; the flat entries are
// authoritative for the grand totals and the balance check.
type TrialBalance struct {
	AsOfDate    time.Time           `json:"as_of_date"`
	Hierarchy   []BalanceNode       `json:"hierarchy"`
	FlatEntries []TrialBalanceEntry `json:"flat_entries"`
	TotalDebit  decimal.Decimal     `json:"total_debit"`
	TotalCredit decimal.Decimal     `json:"total_credit"`
	IsBalanced  bool                `json:"is_balanced"`
}

// BuildTrialBalance assembles the report from settled balances. Every
// account stays in the flat list even with zero balances; the flat
// list is ordered by account number.
func BuildTrialBalance(asOf time.Time, builder *HierarchyBuilder, balances []AccountBalance) *TrialBalance {
	hierarchy, _, _ := builder.BuildBalanceTree(balances)

	entries := make([]TrialBalanceEntry, 0, len(balances))
	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	for _, bal := range balances {
		entries = append(entries, TrialBalanceEntry{
			AccountID:     bal.AccountID,
			AccountNumber: bal.Number,
			AccountName:   bal.Name,
			Debit:         bal.Debit,
			Credit:        bal.Credit,
		})
		totalDebit = totalDebit.Add(bal.Debit)
		totalCredit = totalCredit.Add(bal.Credit)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].AccountNumber < entries[j].AccountNumber })

	return &TrialBalance{
		AsOfDate:    asOf,
		Hierarchy:   hierarchy,
		FlatEntries: entries,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		IsBalanced:  totalDebit.Equal(totalCredit),
	}
}

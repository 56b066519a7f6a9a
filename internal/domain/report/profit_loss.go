package report

import (
	"fmt"
	"time"

	"github.com/crp/backend/internal/domain/ledger"
	"github.com/crp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Subtotal row keys inserted between the P&L sections
const (
	SubtotalGrossProfit     = "GROSS_PROFIT"
	SubtotalProfitBeforeTax = "PROFIT_BEFORE_TAX"
	SubtotalNetIncome       = "NET_INCOME"
)

// plSectionOrder fixes the display order of the account sections.
// Subtotal rows are interleaved at assembly time.
var plSectionOrder = []ledger.PLSection{
	ledger.PLSectionRevenue,
	ledger.PLSectionCOGS,
	ledger.PLSectionOperatingExpense,
	ledger.PLSectionDepreciation,
	ledger.PLSectionOtherIncome,
	ledger.PLSectionOtherExpense,
	ledger.PLSectionTaxExpense,
}

// NetMovement computes an account's signed P&L movement from its raw
// posted totals: income accounts report credit minus debit, expense
// and COGS accounts report debit minus credit. Any other account type
// in a P&L computation is a configuration error.
func NetMovement(accountType ledger.AccountType, debitTotal, creditTotal decimal.Decimal) (decimal.Decimal, error) {
	switch accountType {
	case ledger.AccountTypeIncome:
		return creditTotal.Sub(debitTotal), nil
	case ledger.AccountTypeCOGS, ledger.AccountTypeExpense:
		return debitTotal.Sub(creditTotal), nil
	default:
		return decimal.Zero, shared.NewDomainError("INVALID_ACCOUNT_TYPE",
			fmt.Sprintf("Account type %q does not belong on the profit and loss statement", accountType))
	}
}

// PLSectionBlock is one row group of the P&L report: either an account
// section with its hierarchy, or an inserted subtotal row.
type PLSectionBlock struct {
	SectionKey string          `json:"section_key"`
	Title      string          `json:"title"`
	IsSubtotal bool            `json:"is_subtotal"`
	Total      decimal.Decimal `json:"total"`
	Nodes      []MovementNode  `json:"nodes,omitempty"`
}

// SectionMismatch reports a divergence between a section's
// precalculated total and the total recomputed from its hierarchy.
// The precalculated total wins; the mismatch is surfaced for logging.
type SectionMismatch struct {
	Section        ledger.PLSection
	SectionTotal   decimal.Decimal
	HierarchyTotal decimal.Decimal
}

// ProfitLoss is the full structured profit and loss report
type ProfitLoss struct {
	StartDate       time.Time        `json:"start_date"`
	EndDate         time.Time        `json:"end_date"`
	ReportStructure []PLSectionBlock `json:"report_structure"`

	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalCOGS         decimal.Decimal `json:"total_cogs"`
	GrossProfit       decimal.Decimal `json:"gross_profit"`
	TotalOpex         decimal.Decimal `json:"total_opex"`
	TotalOtherIncome  decimal.Decimal `json:"total_other_income"`
	TotalOtherExpense decimal.Decimal `json:"total_other_expense"`
	OperatingProfit   decimal.Decimal `json:"operating_profit"`
	ProfitBeforeTax   decimal.Decimal `json:"profit_before_tax"`
	TotalTax          decimal.Decimal `json:"total_tax"`
	NetIncome         decimal.Decimal `json:"net_income"`
}

// BuildProfitLoss assembles the report from nonzero account movements.
// Section totals are precalculated from the flat movements and stay
// authoritative even if a hierarchy subtotal disagrees; disagreements
// come back as mismatches for the caller to log.
func BuildProfitLoss(start, end time.Time, builder *HierarchyBuilder, movements []AccountMovement) (*ProfitLoss, []SectionMismatch) {
	bySection := make(map[ledger.PLSection][]AccountMovement)
	totals := make(map[ledger.PLSection]decimal.Decimal)
	for _, mv := range movements {
		if mv.Section == ledger.PLSectionNone || mv.Amount.IsZero() {
			continue
		}
		bySection[mv.Section] = append(bySection[mv.Section], mv)
		totals[mv.Section] = sectionTotal(totals, mv.Section).Add(mv.Amount)
	}

	pl := &ProfitLoss{
		StartDate:         start,
		EndDate:           end,
		ReportStructure:   make([]PLSectionBlock, 0, len(plSectionOrder)+3),
		TotalRevenue:      sectionTotal(totals, ledger.PLSectionRevenue),
		TotalCOGS:         sectionTotal(totals, ledger.PLSectionCOGS),
		TotalOpex:         sectionTotal(totals, ledger.PLSectionOperatingExpense).Add(sectionTotal(totals, ledger.PLSectionDepreciation)),
		TotalOtherIncome:  sectionTotal(totals, ledger.PLSectionOtherIncome),
		TotalOtherExpense: sectionTotal(totals, ledger.PLSectionOtherExpense),
		TotalTax:          sectionTotal(totals, ledger.PLSectionTaxExpense),
	}
	pl.GrossProfit = pl.TotalRevenue.Sub(pl.TotalCOGS)
	pl.OperatingProfit = pl.GrossProfit.Sub(pl.TotalOpex)
	pl.ProfitBeforeTax = pl.OperatingProfit.Add(pl.TotalOtherIncome).Sub(pl.TotalOtherExpense)
	pl.NetIncome = pl.ProfitBeforeTax.Sub(pl.TotalTax)

	var mismatches []SectionMismatch
	for _, section := range plSectionOrder {
		sectionMovements := bySection[section]
		total := sectionTotal(totals, section)
		if len(sectionMovements) > 0 || !total.IsZero() {
			nodes, hierarchyTotal := builder.BuildMovementTree(sectionMovements)
			if !hierarchyTotal.Equal(total) {
				mismatches = append(mismatches, SectionMismatch{
					Section:        section,
					SectionTotal:   total,
					HierarchyTotal: hierarchyTotal,
				})
			}
			pl.ReportStructure = append(pl.ReportStructure, PLSectionBlock{
				SectionKey: section.String(),
				Title:      section.Title(),
				IsSubtotal: false,
				Total:      total,
				Nodes:      nodes,
			})
		}

		switch section {
		case ledger.PLSectionCOGS:
			pl.ReportStructure = append(pl.ReportStructure, subtotalRow(SubtotalGrossProfit, "Gross Profit", pl.GrossProfit))
		case ledger.PLSectionOtherExpense:
			pl.ReportStructure = append(pl.ReportStructure, subtotalRow(SubtotalProfitBeforeTax, "Profit Before Tax", pl.ProfitBeforeTax))
		}
	}
	pl.ReportStructure = append(pl.ReportStructure, subtotalRow(SubtotalNetIncome, "Net Income", pl.NetIncome))

	return pl, mismatches
}

func sectionTotal(totals map[ledger.PLSection]decimal.Decimal, section ledger.PLSection) decimal.Decimal {
	if total, ok := totals[section]; ok {
		return total
	}
	return decimal.Zero
}

func subtotalRow(key, title string, total decimal.Decimal) PLSectionBlock {
	return PLSectionBlock{
		SectionKey: key,
		Title:      title,
		IsSubtotal: true,
		Total:      total,
	}
}

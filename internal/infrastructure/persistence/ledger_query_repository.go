package persistence

import (
	"context"
	"time"

	"github.com/crp/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormLedgerQueryRepository implements LedgerQueryRepository using GORM.
// Every query joins voucher lines to their voucher and restricts to
// POSTED status, so draft and pending vouchers never leak into reports.
type GormLedgerQueryRepository struct {
	db *gorm.DB
}

// NewGormLedgerQueryRepository creates a new GormLedgerQueryRepository
func NewGormLedgerQueryRepository(db *gorm.DB) *GormLedgerQueryRepository {
	return &GormLedgerQueryRepository{db: db}
}

// accountTotalsRow is the scan target for the aggregation queries
type accountTotalsRow struct {
	AccountID   uuid.UUID
	DebitTotal  decimal.Decimal
	CreditTotal decimal.Decimal
}

func (row accountTotalsRow) toDomain() ledger.AccountTotals {
	return ledger.AccountTotals{
		AccountID:   row.AccountID,
		DebitTotal:  row.DebitTotal,
		CreditTotal: row.CreditTotal,
	}
}

const totalsSelect = `vl.account_id AS account_id,
	COALESCE(SUM(CASE WHEN vl.dr_cr = 'DEBIT' THEN vl.amount ELSE 0 END), 0) AS debit_total,
	COALESCE(SUM(CASE WHEN vl.dr_cr = 'CREDIT' THEN vl.amount ELSE 0 END), 0) AS credit_total`

func (r *GormLedgerQueryRepository) postedLines(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("voucher_lines vl").
		Joins("JOIN vouchers v ON v.id = vl.voucher_id").
		Where("v.status = ?", ledger.StatusPosted)
}

// AccountTotalsAsOf sums posted lines per account with voucher date on
// or before asOf
func (r *GormLedgerQueryRepository) AccountTotalsAsOf(ctx context.Context, asOf time.Time) ([]ledger.AccountTotals, error) {
	var rows []accountTotalsRow
	if err := r.postedLines(ctx).
		Select(totalsSelect).
		Where("v.date <= ?", asOf).
		Group("vl.account_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	totals := make([]ledger.AccountTotals, len(rows))
	for i, row := range rows {
		totals[i] = row.toDomain()
	}
	return totals, nil
}

// AccountTotalsBetween sums posted lines per account with voucher date
// inside [start, end] inclusive
func (r *GormLedgerQueryRepository) AccountTotalsBetween(ctx context.Context, start, end time.Time) ([]ledger.AccountTotals, error) {
	var rows []accountTotalsRow
	if err := r.postedLines(ctx).
		Select(totalsSelect).
		Where("v.date BETWEEN ? AND ?", start, end).
		Group("vl.account_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	totals := make([]ledger.AccountTotals, len(rows))
	for i, row := range rows {
		totals[i] = row.toDomain()
	}
	return totals, nil
}

// AccountTotalsBefore sums posted lines for one account strictly
// before the date
func (r *GormLedgerQueryRepository) AccountTotalsBefore(ctx context.Context, accountID uuid.UUID, before time.Time) (ledger.AccountTotals, error) {
	var row accountTotalsRow
	if err := r.postedLines(ctx).
		Select(totalsSelect).
		Where("vl.account_id = ? AND v.date < ?", accountID, before).
		Group("vl.account_id").
		Scan(&row).Error; err != nil {
		return ledger.AccountTotals{}, err
	}
	// No posted lines means the row scan leaves zero values, which is
	// the correct empty total
	row.AccountID = accountID
	return row.toDomain(), nil
}

// PostedEntries lists posted lines for one account inside [start, end]
// inclusive, ordered by voucher date then line creation
func (r *GormLedgerQueryRepository) PostedEntries(ctx context.Context, accountID uuid.UUID, start, end time.Time) ([]ledger.LedgerEntry, error) {
	var entries []ledger.LedgerEntry
	if err := r.postedLines(ctx).
		Select(`vl.id AS line_id,
			v.id AS voucher_id,
			v.voucher_number AS voucher_number,
			v.date AS date,
			vl.narration AS narration,
			v.reference AS reference,
			vl.dr_cr AS dr_cr,
			vl.amount AS amount`).
		Where("vl.account_id = ?", accountID).
		Where("v.date BETWEEN ? AND ?", start, end).
		Order("v.date, vl.created_at").
		Scan(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Ensure GormLedgerQueryRepository implements LedgerQueryRepository
var _ ledger.LedgerQueryRepository = (*GormLedgerQueryRepository)(nil)

package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crp/backend/internal/domain/ledger"
	"github.com/crp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// VoucherService runs the voucher workflow: draft, submit, approve or
// reject, and reversal of posted vouchers
type VoucherService struct {
	voucherRepo  ledger.VoucherRepository
	accountRepo  ledger.AccountRepository
	periodRepo   ledger.AccountingPeriodRepository
	sequenceRepo ledger.VoucherSequenceRepository
	logger       *zap.Logger
}

// NewVoucherService creates a new VoucherService
func NewVoucherService(
	voucherRepo ledger.VoucherRepository,
	accountRepo ledger.AccountRepository,
	periodRepo ledger.AccountingPeriodRepository,
	sequenceRepo ledger.VoucherSequenceRepository,
	logger *zap.Logger,
) *VoucherService {
	return &VoucherService{
		voucherRepo:  voucherRepo,
		accountRepo:  accountRepo,
		periodRepo:   periodRepo,
		sequenceRepo: sequenceRepo,
		logger:       logger,
	}
}

// VoucherLineRequest is one requested journal line
type VoucherLineRequest struct {
	AccountID uuid.UUID
	DrCr      ledger.DrCrType
	Amount    decimal.Decimal
	Narration string
}

// CreateVoucherRequest carries the fields for a new draft voucher
type CreateVoucherRequest struct {
	VoucherType ledger.VoucherType
	PeriodID    uuid.UUID
	Date        time.Time
	Narration   string
	Reference   string
	Lines       []VoucherLineRequest
}

// CreateVoucher creates a draft voucher after validating the period
// window and every referenced account
func (s *VoucherService) CreateVoucher(ctx context.Context, req CreateVoucherRequest) (*ledger.Voucher, error) {
	period, err := s.checkPeriod(ctx, req.PeriodID, req.Date)
	if err != nil {
		return nil, err
	}

	voucher, err := ledger.NewVoucher(req.VoucherType, period.ID, req.Date, req.Narration, req.Reference)
	if err != nil {
		return nil, err
	}
	if err := s.applyLines(ctx, voucher, req.Lines); err != nil {
		return nil, err
	}

	if err := s.voucherRepo.Save(ctx, voucher); err != nil {
		return nil, fmt.Errorf("failed to save voucher: %w", err)
	}
	return voucher, nil
}

// UpdateVoucherRequest carries replacement fields for an editable voucher
type UpdateVoucherRequest struct {
	Date      time.Time
	Narration string
	Reference string
	Lines     []VoucherLineRequest
}

// UpdateVoucher replaces the contents of a draft or rejected voucher
func (s *VoucherService) UpdateVoucher(ctx context.Context, id uuid.UUID, req UpdateVoucherRequest) (*ledger.Voucher, error) {
	voucher, err := s.voucherRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.checkPeriod(ctx, voucher.PeriodID, req.Date); err != nil {
		return nil, err
	}
	if err := voucher.ClearLines(); err != nil {
		return nil, err
	}
	voucher.Date = req.Date
	voucher.Narration = req.Narration
	voucher.Reference = req.Reference
	if err := s.applyLines(ctx, voucher, req.Lines); err != nil {
		return nil, err
	}

	if err := s.voucherRepo.Save(ctx, voucher); err != nil {
		return nil, fmt.Errorf("failed to save voucher: %w", err)
	}
	return voucher, nil
}

func (s *VoucherService) checkPeriod(ctx context.Context, periodID uuid.UUID, date time.Time) (*ledger.AccountingPeriod, error) {
	period, err := s.periodRepo.FindByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if period.IsLocked {
		return nil, shared.NewDomainError("PERIOD_LOCKED",
			fmt.Sprintf("Period %s is locked", period.Name))
	}
	if !period.Contains(date) {
		return nil, shared.NewDomainError("DATE_OUTSIDE_PERIOD",
			fmt.Sprintf("Voucher date %s falls outside period %s", date.Format("2006-01-02"), period.Name))
	}
	return period, nil
}

func (s *VoucherService) applyLines(ctx context.Context, voucher *ledger.Voucher, lines []VoucherLineRequest) error {
	accountIDs := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		accountIDs = append(accountIDs, line.AccountID)
	}
	accounts, err := s.accountRepo.FindByIDs(ctx, accountIDs)
	if err != nil {
		return fmt.Errorf("failed to load line accounts: %w", err)
	}
	byID := make(map[uuid.UUID]*ledger.Account, len(accounts))
	for i := range accounts {
		byID[accounts[i].ID] = &accounts[i]
	}

	for _, line := range lines {
		account, ok := byID[line.AccountID]
		if !ok {
			return shared.NewDomainError("ACCOUNT_NOT_FOUND",
				fmt.Sprintf("Account %s does not exist", line.AccountID))
		}
		if !account.IsActive {
			return shared.NewDomainError("ACCOUNT_INACTIVE",
				fmt.Sprintf("Account %s is inactive", account.AccountNumber))
		}
		if !account.AllowDirectPosting {
			return shared.NewDomainError("DIRECT_POSTING_FORBIDDEN",
				fmt.Sprintf("Account %s does not allow direct posting", account.AccountNumber))
		}
		if err := voucher.AddLine(line.AccountID, line.DrCr, line.Amount, line.Narration); err != nil {
			return err
		}
	}
	return nil
}

// SubmitVoucher moves a draft or rejected voucher into the approval queue
func (s *VoucherService) SubmitVoucher(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) (*ledger.Voucher, error) {
	voucher, err := s.voucherRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.checkPeriod(ctx, voucher.PeriodID, voucher.Date); err != nil {
		return nil, err
	}
	if err := voucher.Submit(actorID, time.Now()); err != nil {
		return nil, err
	}
	if err := s.voucherRepo.Save(ctx, voucher); err != nil {
		return nil, fmt.Errorf("failed to save voucher: %w", err)
	}
	return voucher, nil
}

// ApproveVoucher posts a pending voucher, assigning its number from
// the per-type-and-period sequence
func (s *VoucherService) ApproveVoucher(ctx context.Context, id uuid.UUID, actorID *uuid.UUID, comment string) (*ledger.Voucher, error) {
	voucher, err := s.voucherRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	period, err := s.checkPeriod(ctx, voucher.PeriodID, voucher.Date)
	if err != nil {
		return nil, err
	}
	number, err := s.sequenceRepo.NextNumber(ctx, voucher.VoucherType, period)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate voucher number: %w", err)
	}
	if err := voucher.Approve(number, actorID, comment, time.Now()); err != nil {
		return nil, err
	}
	if err := s.voucherRepo.Save(ctx, voucher); err != nil {
		return nil, fmt.Errorf("failed to save voucher: %w", err)
	}
	s.logger.Info("voucher posted",
		zap.String("voucher_id", voucher.ID.String()),
		zap.String("voucher_number", voucher.VoucherNumber))
	return voucher, nil
}

// RejectVoucher sends a pending voucher back with a reason
func (s *VoucherService) RejectVoucher(ctx context.Context, id uuid.UUID, actorID *uuid.UUID, comment string) (*ledger.Voucher, error) {
	voucher, err := s.voucherRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := voucher.Reject(actorID, comment, time.Now()); err != nil {
		return nil, err
	}
	if err := s.voucherRepo.Save(ctx, voucher); err != nil {
		return nil, fmt.Errorf("failed to save voucher: %w", err)
	}
	return voucher, nil
}

// ReverseVoucher creates a draft voucher undoing a posted one. A
// voucher can be reversed at most once; the reversal lands in the
// open period containing the reversal date.
func (s *VoucherService) ReverseVoucher(ctx context.Context, id uuid.UUID, date time.Time) (*ledger.Voucher, error) {
	original, err := s.voucherRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	existing, err := s.voucherRepo.FindReversalOf(ctx, id)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing reversal: %w", err)
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_REVERSED",
			fmt.Sprintf("Voucher %s is already reversed by %s", original.VoucherNumber, existing.ID))
	}

	period, err := s.periodRepo.FindByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if period.IsLocked {
		return nil, shared.NewDomainError("PERIOD_LOCKED",
			fmt.Sprintf("Period %s is locked", period.Name))
	}

	reversal, err := original.BuildReversal(date, period.ID)
	if err != nil {
		return nil, err
	}
	if err := s.voucherRepo.Save(ctx, reversal); err != nil {
		return nil, fmt.Errorf("failed to save reversal: %w", err)
	}
	s.logger.Info("reversal drafted",
		zap.String("original_id", original.ID.String()),
		zap.String("reversal_id", reversal.ID.String()))
	return reversal, nil
}

// GetVoucher finds a voucher with its lines and approval log
func (s *VoucherService) GetVoucher(ctx context.Context, id uuid.UUID) (*ledger.Voucher, error) {
	return s.voucherRepo.FindByID(ctx, id)
}

// ListVouchers returns vouchers matching the filter with the total count
func (s *VoucherService) ListVouchers(ctx context.Context, filter ledger.VoucherFilter) ([]ledger.Voucher, int64, error) {
	return s.voucherRepo.FindAll(ctx, filter)
}

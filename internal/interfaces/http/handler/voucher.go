package handler

import (
	"time"

	ledgerapp "github.com/crp/backend/internal/application/ledger"
	"github.com/crp/backend/internal/domain/ledger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VoucherHandler handles journal voucher API endpoints
type VoucherHandler struct {
	BaseHandler
	voucherService *ledgerapp.VoucherService
}

// NewVoucherHandler creates a new VoucherHandler
func NewVoucherHandler(voucherService *ledgerapp.VoucherService) *VoucherHandler {
	return &VoucherHandler{
		voucherService: voucherService,
	}
}

// ===================== Request DTOs =====================

// VoucherLineRequest represents a single debit or credit line
// @Description One voucher line; amount is always positive, side carried by dr_cr
type VoucherLineRequest struct {
	AccountID string          `json:"account_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	DrCr      string          `json:"dr_cr" binding:"required" example:"DEBIT"`
	Amount    decimal.Decimal `json:"amount" binding:"required" example:"1500.00"`
	Narration string          `json:"narration" example:"Office rent"`
}

// CreateVoucherRequest represents a request to create a draft voucher
// @Description Request body for creating a voucher
type CreateVoucherRequest struct {
	VoucherType string               `json:"voucher_type" binding:"required" example:"GENERAL"`
	PeriodID    string               `json:"period_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	Date        string               `json:"date" binding:"required" example:"2026-08-15"`
	Narration   string               `json:"narration" example:"August rent"`
	Reference   string               `json:"reference" example:"INV-1042"`
	Lines       []VoucherLineRequest `json:"lines" binding:"required"`
}

// UpdateVoucherRequest represents a request to replace a draft voucher's contents
// @Description Request body for updating a voucher
type UpdateVoucherRequest struct {
	Date      string               `json:"date" binding:"required" example:"2026-08-15"`
	Narration string               `json:"narration" example:"August rent"`
	Reference string               `json:"reference" example:"INV-1042"`
	Lines     []VoucherLineRequest `json:"lines" binding:"required"`
}

// WorkflowActionRequest carries an optional comment for approve/reject actions
// @Description Request body for voucher workflow actions
type WorkflowActionRequest struct {
	Comment string `json:"comment" example:"Checked against invoice"`
}

// ReverseVoucherRequest represents a request to reverse a posted voucher
// @Description Request body for reversing a voucher
type ReverseVoucherRequest struct {
	Date string `json:"date" binding:"required" example:"2026-09-01"`
}

// ListVouchersRequest defines the filter for voucher queries
// @Description Filter for voucher list queries
type ListVouchersRequest struct {
	Status   string `form:"status" example:"POSTED"`
	Type     string `form:"type" example:"GENERAL"`
	PeriodID string `form:"period_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	FromDate string `form:"from_date" example:"2026-08-01"`
	ToDate   string `form:"to_date" example:"2026-08-31"`
	Page     int    `form:"page" example:"1"`
	PageSize int    `form:"page_size" example:"20"`
}

func (h *VoucherHandler) toLineRequests(c *gin.Context, lines []VoucherLineRequest) ([]ledgerapp.VoucherLineRequest, bool) {
	out := make([]ledgerapp.VoucherLineRequest, 0, len(lines))
	for _, line := range lines {
		accountID, err := uuid.Parse(line.AccountID)
		if err != nil {
			h.BadRequest(c, "Invalid account_id on voucher line")
			return nil, false
		}
		out = append(out, ledgerapp.VoucherLineRequest{
			AccountID: accountID,
			DrCr:      ledger.DrCrType(line.DrCr),
			Amount:    line.Amount,
			Narration: line.Narration,
		})
	}
	return out, true
}

// ===================== Handler Methods =====================

// CreateVoucher godoc
//
//	@ID				createVoucher
//	@Summary		Create voucher
//	@Description	Creates a draft voucher with its debit and credit lines
//	@Tags			ledger-vouchers
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateVoucherRequest	true	"Voucher data"
//	@Success		201		{object}	dto.Response
//	@Failure		400		{object}	dto.Response
//	@Failure		422		{object}	dto.Response
//	@Router			/ledger/vouchers [post]
func (h *VoucherHandler) CreateVoucher(c *gin.Context) {
	var req CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	periodID, err := uuid.Parse(req.PeriodID)
	if err != nil {
		h.BadRequest(c, "Invalid period_id")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		h.BadRequest(c, "Invalid date format. Expected YYYY-MM-DD")
		return
	}

	lines, ok := h.toLineRequests(c, req.Lines)
	if !ok {
		return
	}

	voucher, err := h.voucherService.CreateVoucher(c.Request.Context(), ledgerapp.CreateVoucherRequest{
		VoucherType: ledger.VoucherType(req.VoucherType),
		PeriodID:    periodID,
		Date:        date,
		Narration:   req.Narration,
		Reference:   req.Reference,
		Lines:       lines,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, voucher)
}

// UpdateVoucher godoc
//
//	@ID				updateVoucher
//	@Summary		Update voucher
//	@Description	Replaces the date, narration, reference and lines of a draft or rejected voucher
//	@Tags			ledger-vouchers
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Voucher ID"
//	@Param			request	body		UpdateVoucherRequest	true	"Voucher data"
//	@Success		200		{object}	dto.Response
//	@Failure		404		{object}	dto.Response
//	@Failure		422		{object}	dto.Response
//	@Router			/ledger/vouchers/{id} [put]
func (h *VoucherHandler) UpdateVoucher(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid voucher ID")
		return
	}

	var req UpdateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		h.BadRequest(c, "Invalid date format. Expected YYYY-MM-DD")
		return
	}

	lines, ok := h.toLineRequests(c, req.Lines)
	if !ok {
		return
	}

	voucher, err := h.voucherService.UpdateVoucher(c.Request.Context(), id, ledgerapp.UpdateVoucherRequest{
		Date:      date,
		Narration: req.Narration,
		Reference: req.Reference,
		Lines:     lines,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, voucher)
}

// GetVoucher godoc
//
//	@ID				getVoucher
//	@Summary		Get voucher
//	@Description	Returns a voucher with its lines and approval log
//	@Tags			ledger-vouchers
//	@Produce		json
//	@Param			id	path		string	true	"Voucher ID"
//	@Success		200	{object}	dto.Response
//	@Failure		404	{object}	dto.Response
//	@Router			/ledger/vouchers/{id} [get]
func (h *VoucherHandler) GetVoucher(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid voucher ID")
		return
	}

	voucher, err := h.voucherService.GetVoucher(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, voucher)
}

// ListVouchers godoc
//
//	@ID				listVouchers
//	@Summary		List vouchers
//	@Description	Lists vouchers newest first, with optional filters and pagination
//	@Tags			ledger-vouchers
//	@Produce		json
//	@Param			status		query		string	false	"Status filter"
//	@Param			type		query		string	false	"Voucher type filter"
//	@Param			period_id	query		string	false	"Period filter"
//	@Param			from_date	query		string	false	"Start date YYYY-MM-DD"
//	@Param			to_date		query		string	false	"End date YYYY-MM-DD"
//	@Param			page		query		int		false	"Page number"
//	@Param			page_size	query		int		false	"Page size"
//	@Success		200			{object}	dto.Response
//	@Router			/ledger/vouchers [get]
func (h *VoucherHandler) ListVouchers(c *gin.Context) {
	var req ListVouchersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	filter := ledger.VoucherFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.Status != "" {
		status := ledger.TransactionStatus(req.Status)
		if !status.IsValid() {
			h.BadRequest(c, "Invalid status")
			return
		}
		filter.Status = &status
	}
	if req.Type != "" {
		voucherType := ledger.VoucherType(req.Type)
		if !voucherType.IsValid() {
			h.BadRequest(c, "Invalid voucher type")
			return
		}
		filter.Type = &voucherType
	}
	if req.PeriodID != "" {
		periodID, err := uuid.Parse(req.PeriodID)
		if err != nil {
			h.BadRequest(c, "Invalid period_id")
			return
		}
		filter.PeriodID = &periodID
	}
	if req.FromDate != "" {
		from, err := time.Parse("2006-01-02", req.FromDate)
		if err != nil {
			h.BadRequest(c, "Invalid from_date format. Expected YYYY-MM-DD")
			return
		}
		filter.FromDate = &from
	}
	if req.ToDate != "" {
		to, err := time.Parse("2006-01-02", req.ToDate)
		if err != nil {
			h.BadRequest(c, "Invalid to_date format. Expected YYYY-MM-DD")
			return
		}
		filter.ToDate = &to
	}

	vouchers, total, err := h.voucherService.ListVouchers(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, vouchers, total, page, pageSize)
}

// SubmitVoucher godoc
//
//	@ID				submitVoucher
//	@Summary		Submit voucher
//	@Description	Submits a balanced draft voucher for approval
//	@Tags			ledger-vouchers
//	@Produce		json
//	@Param			id			path		string	true	"Voucher ID"
//	@Param			X-User-ID	header		string	false	"Acting user"
//	@Success		200			{object}	dto.Response
//	@Failure		422			{object}	dto.Response
//	@Router			/ledger/vouchers/{id}/submit [post]
func (h *VoucherHandler) SubmitVoucher(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid voucher ID")
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, "Invalid X-User-ID header")
		return
	}

	voucher, err := h.voucherService.SubmitVoucher(c.Request.Context(), id, actorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, voucher)
}

// ApproveVoucher godoc
//
//	@ID				approveVoucher
//	@Summary		Approve voucher
//	@Description	Approves a pending voucher, assigns its number and posts it
//	@Tags			ledger-vouchers
//	@Accept			json
//	@Produce		json
//	@Param			id			path		string					true	"Voucher ID"
//	@Param			X-User-ID	header		string					false	"Acting user"
//	@Param			request		body		WorkflowActionRequest	false	"Optional comment"
//	@Success		200			{object}	dto.Response
//	@Failure		422			{object}	dto.Response
//	@Router			/ledger/vouchers/{id}/approve [post]
func (h *VoucherHandler) ApproveVoucher(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid voucher ID")
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, "Invalid X-User-ID header")
		return
	}

	var req WorkflowActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Comment is optional; an empty body is fine
		req = WorkflowActionRequest{}
	}

	voucher, err := h.voucherService.ApproveVoucher(c.Request.Context(), id, actorID, req.Comment)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, voucher)
}

// RejectVoucher godoc
//
//	@ID				rejectVoucher
//	@Summary		Reject voucher
//	@Description	Rejects a pending voucher with a mandatory reason, returning it to an editable state
//	@Tags			ledger-vouchers
//	@Accept			json
//	@Produce		json
//	@Param			id			path		string					true	"Voucher ID"
//	@Param			X-User-ID	header		string					false	"Acting user"
//	@Param			request		body		WorkflowActionRequest	true	"Rejection reason"
//	@Success		200			{object}	dto.Response
//	@Failure		422			{object}	dto.Response
//	@Router			/ledger/vouchers/{id}/reject [post]
func (h *VoucherHandler) RejectVoucher(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid voucher ID")
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, "Invalid X-User-ID header")
		return
	}

	var req WorkflowActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = WorkflowActionRequest{}
	}

	voucher, err := h.voucherService.RejectVoucher(c.Request.Context(), id, actorID, req.Comment)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, voucher)
}

// ReverseVoucher godoc
//
//	@ID				reverseVoucher
//	@Summary		Reverse voucher
//	@Description	Creates a draft reversing voucher with mirrored lines
//	@Tags			ledger-vouchers
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Voucher ID"
//	@Param			request	body		ReverseVoucherRequest	true	"Reversal date"
//	@Success		201		{object}	dto.Response
//	@Failure		422		{object}	dto.Response
//	@Router			/ledger/vouchers/{id}/reverse [post]
func (h *VoucherHandler) ReverseVoucher(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid voucher ID")
		return
	}

	var req ReverseVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		h.BadRequest(c, "Invalid date format. Expected YYYY-MM-DD")
		return
	}

	reversal, err := h.voucherService.ReverseVoucher(c.Request.Context(), id, date)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, reversal)
}

// RegisterRoutes registers voucher routes
func (h *VoucherHandler) RegisterRoutes(rg *gin.RouterGroup) {
	vouchers := rg.Group("/ledger/vouchers")
	{
		vouchers.GET("", h.ListVouchers)
		vouchers.POST("", h.CreateVoucher)
		vouchers.GET("/:id", h.GetVoucher)
		vouchers.PUT("/:id", h.UpdateVoucher)
		vouchers.POST("/:id/submit", h.SubmitVoucher)
		vouchers.POST("/:id/approve", h.ApproveVoucher)
		vouchers.POST("/:id/reject", h.RejectVoucher)
		vouchers.POST("/:id/reverse", h.ReverseVoucher)
	}
}

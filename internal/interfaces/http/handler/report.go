package handler

import (
	"time"

	reportapp "github.com/crp/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles financial report API endpoints
type ReportHandler struct {
	BaseHandler
	trialBalanceService *reportapp.TrialBalanceService
	profitLossService   *reportapp.ProfitLossService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(
	trialBalanceService *reportapp.TrialBalanceService,
	profitLossService *reportapp.ProfitLossService,
) *ReportHandler {
	return &ReportHandler{
		trialBalanceService: trialBalanceService,
		profitLossService:   profitLossService,
	}
}

// ===================== Request DTOs =====================

// TrialBalanceRequest defines the cutoff for a trial balance report
// @Description Cutoff date for a trial balance query
type TrialBalanceRequest struct {
	AsOf string `form:"as_of" binding:"required" example:"2026-08-31"`
}

// ProfitLossRequest defines the date window for a profit and loss report
// @Description Date window for a profit and loss query
type ProfitLossRequest struct {
	StartDate string `form:"start_date" binding:"required" example:"2026-01-01"`
	EndDate   string `form:"end_date" binding:"required" example:"2026-08-31"`
}

// ===================== Handler Methods =====================

// GetTrialBalance godoc
//
//	@ID				getTrialBalance
//	@Summary		Trial balance report
//	@Description	Returns per-account debit and credit balances as of a cutoff date, aggregated up the group hierarchy
//	@Tags			reports
//	@Produce		json
//	@Param			as_of	query		string	true	"Cutoff date YYYY-MM-DD"
//	@Success		200		{object}	dto.Response
//	@Failure		400		{object}	dto.Response
//	@Router			/reports/trial-balance [get]
func (h *ReportHandler) GetTrialBalance(c *gin.Context) {
	var req TrialBalanceRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "as_of is required")
		return
	}

	asOf, err := time.Parse("2006-01-02", req.AsOf)
	if err != nil {
		h.BadRequest(c, "Invalid as_of format. Expected YYYY-MM-DD")
		return
	}

	trialBalance, err := h.trialBalanceService.Generate(c.Request.Context(), asOf)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, trialBalance)
}

// GetProfitLoss godoc
//
//	@ID				getProfitLoss
//	@Summary		Profit and loss report
//	@Description	Returns revenue, cost and expense movements for a date window, grouped by P&L section
//	@Tags			reports
//	@Produce		json
//	@Param			start_date	query		string	true	"Window start YYYY-MM-DD"
//	@Param			end_date	query		string	true	"Window end YYYY-MM-DD"
//	@Success		200			{object}	dto.Response
//	@Failure		400			{object}	dto.Response
//	@Router			/reports/profit-loss [get]
func (h *ReportHandler) GetProfitLoss(c *gin.Context) {
	var req ProfitLossRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "start_date and end_date are required")
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		h.BadRequest(c, "Invalid start_date format. Expected YYYY-MM-DD")
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		h.BadRequest(c, "Invalid end_date format. Expected YYYY-MM-DD")
		return
	}

	profitLoss, err := h.profitLossService.Generate(c.Request.Context(), start, end)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, profitLoss)
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.GetTrialBalance)
		reports.GET("/profit-loss", h.GetProfitLoss)
	}
}

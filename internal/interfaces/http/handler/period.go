package handler

import (
	"time"

	ledgerapp "github.com/crp/backend/internal/application/ledger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PeriodHandler handles fiscal year and accounting period API endpoints
type PeriodHandler struct {
	BaseHandler
	periodService *ledgerapp.PeriodService
}

// NewPeriodHandler creates a new PeriodHandler
func NewPeriodHandler(periodService *ledgerapp.PeriodService) *PeriodHandler {
	return &PeriodHandler{
		periodService: periodService,
	}
}

// ===================== Request DTOs =====================

// CreateFiscalYearRequest represents a request to create a fiscal year
// @Description Request body for creating a fiscal year
type CreateFiscalYearRequest struct {
	Name      string `json:"name" binding:"required" example:"FY 2026"`
	StartDate string `json:"start_date" binding:"required" example:"2026-01-01"`
	EndDate   string `json:"end_date" binding:"required" example:"2026-12-31"`
}

// CreatePeriodRequest represents a request to create an accounting period
// @Description Request body for creating an accounting period
type CreatePeriodRequest struct {
	FiscalYearID string `json:"fiscal_year_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name         string `json:"name" binding:"required" example:"2026-08"`
	StartDate    string `json:"start_date" binding:"required" example:"2026-08-01"`
	EndDate      string `json:"end_date" binding:"required" example:"2026-08-31"`
}

// parseDateRange parses a YYYY-MM-DD start/end pair
func parseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// ===================== Handler Methods =====================

// CreateFiscalYear godoc
//
//	@ID				createFiscalYear
//	@Summary		Create fiscal year
//	@Description	Creates an open, inactive fiscal year. Overlapping years are rejected.
//	@Tags			ledger-periods
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateFiscalYearRequest	true	"Fiscal year data"
//	@Success		201		{object}	dto.Response
//	@Failure		409		{object}	dto.Response
//	@Router			/ledger/fiscal-years [post]
func (h *PeriodHandler) CreateFiscalYear(c *gin.Context) {
	var req CreateFiscalYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		h.BadRequest(c, "Invalid date format. Expected YYYY-MM-DD")
		return
	}

	fiscalYear, err := h.periodService.CreateFiscalYear(c.Request.Context(), req.Name, start, end)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, fiscalYear)
}

// ActivateFiscalYear godoc
//
//	@ID				activateFiscalYear
//	@Summary		Activate fiscal year
//	@Description	Marks the fiscal year as current, deactivating any other active year
//	@Tags			ledger-periods
//	@Produce		json
//	@Param			id	path		string	true	"Fiscal year ID"
//	@Success		200	{object}	dto.Response
//	@Failure		422	{object}	dto.Response
//	@Router			/ledger/fiscal-years/{id}/activate [post]
func (h *PeriodHandler) ActivateFiscalYear(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid fiscal year ID")
		return
	}

	fiscalYear, err := h.periodService.ActivateFiscalYear(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, fiscalYear)
}

// CloseFiscalYear godoc
//
//	@ID				closeFiscalYear
//	@Summary		Close fiscal year
//	@Description	Permanently closes a fiscal year. All of its periods must be locked first.
//	@Tags			ledger-periods
//	@Produce		json
//	@Param			id	path		string	true	"Fiscal year ID"
//	@Success		200	{object}	dto.Response
//	@Failure		422	{object}	dto.Response
//	@Router			/ledger/fiscal-years/{id}/close [post]
func (h *PeriodHandler) CloseFiscalYear(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid fiscal year ID")
		return
	}

	fiscalYear, err := h.periodService.CloseFiscalYear(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, fiscalYear)
}

// GetFiscalYear godoc
//
//	@ID				getFiscalYear
//	@Summary		Get fiscal year
//	@Description	Returns a single fiscal year by ID
//	@Tags			ledger-periods
//	@Produce		json
//	@Param			id	path		string	true	"Fiscal year ID"
//	@Success		200	{object}	dto.Response
//	@Failure		404	{object}	dto.Response
//	@Router			/ledger/fiscal-years/{id} [get]
func (h *PeriodHandler) GetFiscalYear(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid fiscal year ID")
		return
	}

	fiscalYear, err := h.periodService.GetFiscalYear(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, fiscalYear)
}

// ListFiscalYears godoc
//
//	@ID				listFiscalYears
//	@Summary		List fiscal years
//	@Description	Lists fiscal years newest first
//	@Tags			ledger-periods
//	@Produce		json
//	@Success		200	{object}	dto.Response
//	@Router			/ledger/fiscal-years [get]
func (h *PeriodHandler) ListFiscalYears(c *gin.Context) {
	fiscalYears, err := h.periodService.ListFiscalYears(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, fiscalYears)
}

// CreatePeriod godoc
//
//	@ID				createAccountingPeriod
//	@Summary		Create accounting period
//	@Description	Creates a posting window inside a fiscal year. Overlapping periods are rejected.
//	@Tags			ledger-periods
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreatePeriodRequest	true	"Period data"
//	@Success		201		{object}	dto.Response
//	@Failure		409		{object}	dto.Response
//	@Failure		422		{object}	dto.Response
//	@Router			/ledger/periods [post]
func (h *PeriodHandler) CreatePeriod(c *gin.Context) {
	var req CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	fiscalYearID, err := uuid.Parse(req.FiscalYearID)
	if err != nil {
		h.BadRequest(c, "Invalid fiscal_year_id")
		return
	}

	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		h.BadRequest(c, "Invalid date format. Expected YYYY-MM-DD")
		return
	}

	period, err := h.periodService.CreatePeriod(c.Request.Context(), fiscalYearID, req.Name, start, end)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, period)
}

// LockPeriod godoc
//
//	@ID				lockAccountingPeriod
//	@Summary		Lock period
//	@Description	Locks the period against new postings and workflow transitions
//	@Tags			ledger-periods
//	@Produce		json
//	@Param			id	path		string	true	"Period ID"
//	@Success		200	{object}	dto.Response
//	@Failure		404	{object}	dto.Response
//	@Router			/ledger/periods/{id}/lock [post]
func (h *PeriodHandler) LockPeriod(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid period ID")
		return
	}

	period, err := h.periodService.LockPeriod(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, period)
}

// UnlockPeriod godoc
//
//	@ID				unlockAccountingPeriod
//	@Summary		Unlock period
//	@Description	Unlocks a locked period. Periods of a closed fiscal year stay locked.
//	@Tags			ledger-periods
//	@Produce		json
//	@Param			id	path		string	true	"Period ID"
//	@Success		200	{object}	dto.Response
//	@Failure		422	{object}	dto.Response
//	@Router			/ledger/periods/{id}/unlock [post]
func (h *PeriodHandler) UnlockPeriod(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid period ID")
		return
	}

	period, err := h.periodService.UnlockPeriod(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, period)
}

// GetPeriod godoc
//
//	@ID				getAccountingPeriod
//	@Summary		Get period
//	@Description	Returns a single accounting period by ID
//	@Tags			ledger-periods
//	@Produce		json
//	@Param			id	path		string	true	"Period ID"
//	@Success		200	{object}	dto.Response
//	@Failure		404	{object}	dto.Response
//	@Router			/ledger/periods/{id} [get]
func (h *PeriodHandler) GetPeriod(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid period ID")
		return
	}

	period, err := h.periodService.GetPeriod(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, period)
}

// ListPeriods godoc
//
//	@ID				listAccountingPeriods
//	@Summary		List periods
//	@Description	Lists accounting periods ordered by start date, optionally for one fiscal year
//	@Tags			ledger-periods
//	@Produce		json
//	@Param			fiscal_year_id	query		string	false	"Fiscal year filter"
//	@Success		200				{object}	dto.Response
//	@Router			/ledger/periods [get]
func (h *PeriodHandler) ListPeriods(c *gin.Context) {
	var fiscalYearID *uuid.UUID
	if raw := c.Query("fiscal_year_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid fiscal_year_id")
			return
		}
		fiscalYearID = &id
	}

	periods, err := h.periodService.ListPeriods(c.Request.Context(), fiscalYearID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, periods)
}

// RegisterRoutes registers fiscal year and period routes
func (h *PeriodHandler) RegisterRoutes(rg *gin.RouterGroup) {
	fiscalYears := rg.Group("/ledger/fiscal-years")
	{
		fiscalYears.GET("", h.ListFiscalYears)
		fiscalYears.POST("", h.CreateFiscalYear)
		fiscalYears.GET("/:id", h.GetFiscalYear)
		fiscalYears.POST("/:id/activate", h.ActivateFiscalYear)
		fiscalYears.POST("/:id/close", h.CloseFiscalYear)
	}

	periods := rg.Group("/ledger/periods")
	{
		periods.GET("", h.ListPeriods)
		periods.POST("", h.CreatePeriod)
		periods.GET("/:id", h.GetPeriod)
		periods.POST("/:id/lock", h.LockPeriod)
		periods.POST("/:id/unlock", h.UnlockPeriod)
	}
}

package handler

import (
	"time"

	ledgerapp "github.com/crp/backend/internal/application/ledger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LedgerHandler handles account ledger (statement) API endpoints
type LedgerHandler struct {
	BaseHandler
	ledgerService *ledgerapp.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService *ledgerapp.LedgerService) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
	}
}

// AccountLedgerRequest defines the date window for a ledger statement
// @Description Date window for an account ledger query
type AccountLedgerRequest struct {
	StartDate string `form:"start_date" binding:"required" example:"2026-08-01"`
	EndDate   string `form:"end_date" binding:"required" example:"2026-08-31"`
}

// GetAccountLedger godoc
//
//	@ID				getAccountLedger
//	@Summary		Get account ledger
//	@Description	Returns the posted entries for an account within a date window, with opening balance, running balances and closing balance
//	@Tags			ledger-accounts
//	@Produce		json
//	@Param			id			path		string	true	"Account ID"
//	@Param			start_date	query		string	true	"Window start YYYY-MM-DD"
//	@Param			end_date	query		string	true	"Window end YYYY-MM-DD"
//	@Success		200			{object}	dto.Response
//	@Failure		400			{object}	dto.Response
//	@Failure		404			{object}	dto.Response
//	@Router			/ledger/accounts/{id}/ledger [get]
func (h *LedgerHandler) GetAccountLedger(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	var req AccountLedgerRequest
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

	statement, err := h.ledgerService.AccountLedger(c.Request.Context(), accountID, start, end)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, statement)
}

// RegisterRoutes registers account ledger routes
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	accounts := rg.Group("/ledger/accounts")
	{
		accounts.GET("/:id/ledger", h.GetAccountLedger)
	}
}

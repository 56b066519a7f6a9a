package handler

import (
	ledgerapp "github.com/crp/backend/internal/application/ledger"
	"github.com/crp/backend/internal/domain/ledger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AccountHandler handles chart-of-accounts API endpoints
type AccountHandler struct {
	BaseHandler
	accountService *ledgerapp.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService *ledgerapp.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// ===================== Request DTOs =====================

// CreateAccountRequest represents a request to create a ledger account
// @Description Request body for creating an account
type CreateAccountRequest struct {
	AccountNumber string  `json:"account_number" binding:"required" example:"1000"`
	AccountName   string  `json:"account_name" binding:"required" example:"Cash"`
	AccountType   string  `json:"account_type" binding:"required" example:"ASSET"`
	PLSection     string  `json:"pl_section" example:"NONE"`
	GroupID       *string `json:"group_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	CurrencyCode  string  `json:"currency_code" example:"USD"`
	Description   string  `json:"description" example:"Main cash account"`
}

// UpdateAccountRequest represents a request to update a ledger account
// @Description Request body for updating an account
type UpdateAccountRequest struct {
	AccountName string  `json:"account_name" binding:"required" example:"Cash"`
	Description string  `json:"description" example:"Main cash account"`
	GroupID     *string `json:"group_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	PLSection   string  `json:"pl_section" example:"NONE"`
	IsActive    *bool   `json:"is_active" example:"true"`
}

// ListAccountsRequest defines the filter for account queries
// @Description Filter for account list queries
type ListAccountsRequest struct {
	Type       string `form:"type" example:"ASSET"`
	ActiveOnly bool   `form:"active_only" example:"true"`
	GroupID    string `form:"group_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Search     string `form:"search" example:"cash"`
}

// CreateGroupRequest represents a request to create an account group
// @Description Request body for creating an account group
type CreateGroupRequest struct {
	Name        string  `json:"name" binding:"required" example:"Current Assets"`
	Description string  `json:"description" example:"Assets convertible within a year"`
	ParentID    *string `json:"parent_id" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// ReparentGroupRequest represents a request to move a group in the hierarchy
// @Description Request body for reparenting an account group
type ReparentGroupRequest struct {
	ParentID *string `json:"parent_id" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// parseOptionalUUID parses an optional UUID string from a request body
func parseOptionalUUID(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// ===================== Handler Methods =====================

// CreateAccount godoc
//
//	@ID				createAccount
//	@Summary		Create account
//	@Description	Creates a new ledger account in the chart of accounts
//	@Tags			ledger-accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateAccountRequest	true	"Account data"
//	@Success		201		{object}	dto.Response
//	@Failure		400		{object}	dto.Response
//	@Failure		409		{object}	dto.Response
//	@Router			/ledger/accounts [post]
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	groupID, err := parseOptionalUUID(req.GroupID)
	if err != nil {
		h.BadRequest(c, "Invalid group_id")
		return
	}

	plSection := ledger.PLSectionNone
	if req.PLSection != "" {
		plSection = ledger.PLSection(req.PLSection)
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), ledgerapp.CreateAccountRequest{
		AccountNumber: req.AccountNumber,
		AccountName:   req.AccountName,
		AccountType:   ledger.AccountType(req.AccountType),
		PLSection:     plSection,
		GroupID:       groupID,
		CurrencyCode:  req.CurrencyCode,
		Description:   req.Description,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, account)
}

// UpdateAccount godoc
//
//	@ID				updateAccount
//	@Summary		Update account
//	@Description	Updates an account's name, description, group, P&L section and active flag
//	@Tags			ledger-accounts
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Account ID"
//	@Param			request	body		UpdateAccountRequest	true	"Account data"
//	@Success		200		{object}	dto.Response
//	@Failure		400		{object}	dto.Response
//	@Failure		404		{object}	dto.Response
//	@Router			/ledger/accounts/{id} [put]
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	groupID, err := parseOptionalUUID(req.GroupID)
	if err != nil {
		h.BadRequest(c, "Invalid group_id")
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), id, ledgerapp.UpdateAccountRequest{
		AccountName: req.AccountName,
		Description: req.Description,
		GroupID:     groupID,
		PLSection:   ledger.PLSection(req.PLSection),
		IsActive:    req.IsActive,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, account)
}

// GetAccount godoc
//
//	@ID				getAccount
//	@Summary		Get account
//	@Description	Returns a single account by ID
//	@Tags			ledger-accounts
//	@Produce		json
//	@Param			id	path		string	true	"Account ID"
//	@Success		200	{object}	dto.Response
//	@Failure		404	{object}	dto.Response
//	@Router			/ledger/accounts/{id} [get]
func (h *AccountHandler) GetAccount(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	account, err := h.accountService.GetAccount(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, account)
}

// ListAccounts godoc
//
//	@ID				listAccounts
//	@Summary		List accounts
//	@Description	Lists accounts ordered by account number, with optional filters
//	@Tags			ledger-accounts
//	@Produce		json
//	@Param			type		query		string	false	"Account type filter"
//	@Param			active_only	query		bool	false	"Only active accounts"
//	@Param			group_id	query		string	false	"Group filter"
//	@Param			search		query		string	false	"Match against number or name"
//	@Success		200			{object}	dto.Response
//	@Router			/ledger/accounts [get]
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	var req ListAccountsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	filter := ledger.AccountFilter{
		ActiveOnly: req.ActiveOnly,
		Search:     req.Search,
	}
	if req.Type != "" {
		accountType := ledger.AccountType(req.Type)
		if !accountType.IsValid() {
			h.BadRequest(c, "Invalid account type")
			return
		}
		filter.Types = []ledger.AccountType{accountType}
	}
	if req.GroupID != "" {
		groupID, err := uuid.Parse(req.GroupID)
		if err != nil {
			h.BadRequest(c, "Invalid group_id")
			return
		}
		filter.GroupID = &groupID
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, accounts)
}

// CreateGroup godoc
//
//	@ID				createAccountGroup
//	@Summary		Create account group
//	@Description	Creates a node in the chart-of-accounts hierarchy
//	@Tags			ledger-groups
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateGroupRequest	true	"Group data"
//	@Success		201		{object}	dto.Response
//	@Failure		400		{object}	dto.Response
//	@Router			/ledger/groups [post]
func (h *AccountHandler) CreateGroup(c *gin.Context) {
	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	parentID, err := parseOptionalUUID(req.ParentID)
	if err != nil {
		h.BadRequest(c, "Invalid parent_id")
		return
	}

	group, err := h.accountService.CreateGroup(c.Request.Context(), ledgerapp.CreateGroupRequest{
		Name:        req.Name,
		Description: req.Description,
		ParentID:    parentID,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, group)
}

// ReparentGroup godoc
//
//	@ID				reparentAccountGroup
//	@Summary		Reparent account group
//	@Description	Moves a group under a new parent. Cycles are rejected.
//	@Tags			ledger-groups
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Group ID"
//	@Param			request	body		ReparentGroupRequest	true	"New parent"
//	@Success		200		{object}	dto.Response
//	@Failure		400		{object}	dto.Response
//	@Failure		404		{object}	dto.Response
//	@Router			/ledger/groups/{id}/parent [put]
func (h *AccountHandler) ReparentGroup(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid group ID")
		return
	}

	var req ReparentGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	parentID, err := parseOptionalUUID(req.ParentID)
	if err != nil {
		h.BadRequest(c, "Invalid parent_id")
		return
	}

	group, err := h.accountService.ReparentGroup(c.Request.Context(), id, parentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, group)
}

// GetGroup godoc
//
//	@ID				getAccountGroup
//	@Summary		Get account group
//	@Description	Returns a single account group by ID
//	@Tags			ledger-groups
//	@Produce		json
//	@Param			id	path		string	true	"Group ID"
//	@Success		200	{object}	dto.Response
//	@Failure		404	{object}	dto.Response
//	@Router			/ledger/groups/{id} [get]
func (h *AccountHandler) GetGroup(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid group ID")
		return
	}

	group, err := h.accountService.GetGroup(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, group)
}

// ListGroups godoc
//
//	@ID				listAccountGroups
//	@Summary		List account groups
//	@Description	Lists all account groups ordered by name
//	@Tags			ledger-groups
//	@Produce		json
//	@Success		200	{object}	dto.Response
//	@Router			/ledger/groups [get]
func (h *AccountHandler) ListGroups(c *gin.Context) {
	groups, err := h.accountService.ListGroups(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, groups)
}

// RegisterRoutes registers account and group routes
func (h *AccountHandler) RegisterRoutes(rg *gin.RouterGroup) {
	accounts := rg.Group("/ledger/accounts")
	{
		accounts.GET("", h.ListAccounts)
		accounts.POST("", h.CreateAccount)
		accounts.GET("/:id", h.GetAccount)
		accounts.PUT("/:id", h.UpdateAccount)
	}

	groups := rg.Group("/ledger/groups")
	{
		groups.GET("", h.ListGroups)
		groups.POST("", h.CreateGroup)
		groups.GET("/:id", h.GetGroup)
		groups.PUT("/:id/parent", h.ReparentGroup)
	}
}

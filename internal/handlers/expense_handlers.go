package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"clearspendly/internal/common"
	"clearspendly/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ExpenseHandlers handles HTTP requests for expenses
type ExpenseHandlers struct {
	expenseService services.ExpenseService
}

// NewExpenseHandlers creates a new expense handlers instance
func NewExpenseHandlers(expenseService services.ExpenseService) *ExpenseHandlers {
	return &ExpenseHandlers{expenseService: expenseService}
}

// CreateExpense handles POST /expenses
func (h *ExpenseHandlers) CreateExpense(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	var req struct {
		ReceiptID   *string  `json:"receipt_id"`
		VendorName  string   `json:"vendor_name"`
		Description string   `json:"description"`
		Amount      float64  `json:"amount"`
		Currency    string   `json:"currency"`
		ExpenseDate string   `json:"expense_date"`
		TagIDs      []string `json:"tag_ids"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if strings.TrimSpace(req.VendorName) == "" {
		return common.SendValidationError(c, "vendor_name", "vendor name is required")
	}
	if err := common.ValidatePositiveFloat(req.Amount, "amount", 10000000); err != nil {
		return common.SendValidationError(c, "amount", err.Error())
	}

	svcReq := &services.CreateExpenseRequest{
		TenantID:    tenantID,
		UserID:      userID,
		VendorName:  strings.TrimSpace(req.VendorName),
		Description: req.Description,
		Amount:      req.Amount,
		Currency:    req.Currency,
	}

	if req.ReceiptID != nil && *req.ReceiptID != "" {
		receiptID, err := common.ValidateUUID(*req.ReceiptID, "receipt_id")
		if err != nil {
			return common.SendValidationError(c, "receipt_id", err.Error())
		}
		svcReq.ReceiptID = &receiptID
	}

	if req.ExpenseDate != "" {
		if err := common.ValidateDateFormat(req.ExpenseDate, "expense_date"); err != nil {
			return common.SendValidationError(c, "expense_date", err.Error())
		}
		date, _ := time.Parse("2006-01-02", req.ExpenseDate)
		svcReq.ExpenseDate = date
	}

	for _, raw := range req.TagIDs {
		tagID, err := common.ValidateUUID(raw, "tag_ids")
		if err != nil {
			return common.SendValidationError(c, "tag_ids", err.Error())
		}
		svcReq.TagIDs = append(svcReq.TagIDs, tagID)
	}

	expense, err := h.expenseService.Create(ctx, svcReq)
	if err != nil {
		if errors.Is(err, services.ErrLimitExceeded) {
			return common.SendLimitExceededError(c, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Expense created successfully",
		"expense": expense,
	})
}

// ListExpenses handles GET /expenses
func (h *ExpenseHandlers) ListExpenses(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	limit := 20
	offset := 0
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		if l, err := strconv.Atoi(limitParam); err == nil && l > 0 {
			limit = l
		}
	}
	if offsetParam := c.QueryParam("offset"); offsetParam != "" {
		if o, err := strconv.Atoi(offsetParam); err == nil && o >= 0 {
			offset = o
		}
	}

	expenses, err := h.expenseService.List(ctx, tenantID, limit, offset)
	if err != nil {
		return common.SendServerError(c, "failed to list expenses")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"expenses": expenses,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetExpenseByID handles GET /expenses/:id
func (h *ExpenseHandlers) GetExpenseByID(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	id, err := common.ValidateUUID(c.Param("id"), "expense id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	expense, err := h.expenseService.GetByID(ctx, tenantID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Expense")
	}

	return c.JSON(http.StatusOK, expense)
}

// UpdateExpenseTags handles PUT /expenses/:id/tags
func (h *ExpenseHandlers) UpdateExpenseTags(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	id, err := common.ValidateUUID(c.Param("id"), "expense id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req struct {
		TagIDs []string `json:"tag_ids"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	tagIDs := make([]uuid.UUID, 0, len(req.TagIDs))
	for _, raw := range req.TagIDs {
		tagID, err := common.ValidateUUID(raw, "tag_ids")
		if err != nil {
			return common.SendValidationError(c, "tag_ids", err.Error())
		}
		tagIDs = append(tagIDs, tagID)
	}

	if err := h.expenseService.UpdateTags(ctx, tenantID, id, tagIDs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Expense tags updated successfully",
	})
}

// DeleteExpense handles DELETE /expenses/:id
func (h *ExpenseHandlers) DeleteExpense(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	id, err := common.ValidateUUID(c.Param("id"), "expense id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.expenseService.Delete(ctx, tenantID, id); err != nil {
		return common.SendServerError(c, "failed to delete expense")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Expense deleted successfully",
	})
}

package handlers

import (
	"net/http"
	"time"

	"clearspendly/internal/common"
	"clearspendly/internal/services"

	"github.com/labstack/echo/v4"
)

// PaymentHandlers handles HTTP requests for payments
type PaymentHandlers struct {
	paymentService services.PaymentService
}

// NewPaymentHandlers creates a new payment handlers instance
func NewPaymentHandlers(paymentService services.PaymentService) *PaymentHandlers {
	return &PaymentHandlers{paymentService: paymentService}
}

// RecordPayment handles POST /payments
func (h *PaymentHandlers) RecordPayment(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	var req struct {
		Amount       float64 `json:"amount"`
		Method       string  `json:"method"`
		Reference    string  `json:"reference"`
		ReceivedDate string  `json:"received_date"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := common.ValidatePositiveFloat(req.Amount, "amount", 100000000); err != nil {
		return common.SendValidationError(c, "amount", err.Error())
	}

	svcReq := &services.RecordPaymentRequest{
		TenantID:  tenantID,
		Amount:    req.Amount,
		Method:    req.Method,
		Reference: req.Reference,
	}

	if req.ReceivedDate != "" {
		if err := common.ValidateDateFormat(req.ReceivedDate, "received_date"); err != nil {
			return common.SendValidationError(c, "received_date", err.Error())
		}
		received, _ := time.Parse("2006-01-02", req.ReceivedDate)
		svcReq.ReceivedDate = received
	}

	payment, allocations, err := h.paymentService.RecordPayment(ctx, svcReq)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":     "Payment recorded successfully",
		"payment":     payment,
		"allocations": allocations,
	})
}

// GetPaymentByID handles GET /payments/:id
func (h *PaymentHandlers) GetPaymentByID(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	id, err := common.ValidateUUID(c.Param("id"), "payment id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	payment, err := h.paymentService.GetByID(ctx, tenantID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Payment")
	}

	allocations, err := h.paymentService.ListAllocations(ctx, tenantID, id)
	if err != nil {
		return common.SendServerError(c, "failed to load payment allocations")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"payment":     payment,
		"allocations": allocations,
	})
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"clearspendly/internal/common"
	"clearspendly/internal/services"

	"github.com/labstack/echo/v4"
)

// InvoiceHandlers handles HTTP requests for invoices
type InvoiceHandlers struct {
	invoiceService services.InvoiceService
}

// NewInvoiceHandlers creates a new invoice handlers instance
func NewInvoiceHandlers(invoiceService services.InvoiceService) *InvoiceHandlers {
	return &InvoiceHandlers{invoiceService: invoiceService}
}

// CreateInvoice handles POST /invoices
func (h *InvoiceHandlers) CreateInvoice(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	var req struct {
		ClientName  string  `json:"client_name"`
		ClientEmail string  `json:"client_email"`
		Subtotal    float64 `json:"subtotal"`
		TaxAmount   float64 `json:"tax_amount"`
		DueDate     string  `json:"due_date"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if strings.TrimSpace(req.ClientName) == "" {
		return common.SendValidationError(c, "client_name", "client name is required")
	}
	if err := common.ValidatePositiveFloat(req.Subtotal, "subtotal", 100000000); err != nil {
		return common.SendValidationError(c, "subtotal", err.Error())
	}
	if req.TaxAmount < 0 {
		return common.SendValidationError(c, "tax_amount", "tax amount cannot be negative")
	}

	svcReq := &services.CreateInvoiceRequest{
		TenantID:    tenantID,
		ClientName:  strings.TrimSpace(req.ClientName),
		ClientEmail: strings.TrimSpace(req.ClientEmail),
		Subtotal:    req.Subtotal,
		TaxAmount:   req.TaxAmount,
	}

	if req.DueDate != "" {
		if err := common.ValidateDateFormat(req.DueDate, "due_date"); err != nil {
			return common.SendValidationError(c, "due_date", err.Error())
		}
		dueDate, _ := time.Parse("2006-01-02", req.DueDate)
		svcReq.DueDate = dueDate
	}

	invoice, err := h.invoiceService.Create(ctx, svcReq)
	if err != nil {
		if errors.Is(err, services.ErrLimitExceeded) {
			return common.SendLimitExceededError(c, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Invoice created successfully",
		"invoice": invoice,
	})
}

// ListInvoices handles GET /invoices
func (h *InvoiceHandlers) ListInvoices(c echo.Context) error {
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

	invoices, err := h.invoiceService.List(ctx, tenantID, limit, offset)
	if err != nil {
		return common.SendServerError(c, "failed to list invoices")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"invoices": invoices,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetInvoiceByID handles GET /invoices/:id
func (h *InvoiceHandlers) GetInvoiceByID(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	id, err := common.ValidateUUID(c.Param("id"), "invoice id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	invoice, err := h.invoiceService.GetByID(ctx, tenantID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Invoice")
	}

	return c.JSON(http.StatusOK, invoice)
}

// SendInvoice handles POST /invoices/:id/send
func (h *InvoiceHandlers) SendInvoice(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	id, err := common.ValidateUUID(c.Param("id"), "invoice id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.invoiceService.Send(ctx, tenantID, id); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Invoice sent successfully",
	})
}

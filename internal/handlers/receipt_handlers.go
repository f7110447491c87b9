package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"clearspendly/internal/common"
	"clearspendly/internal/services"

	"github.com/labstack/echo/v4"
)

const maxReceiptSize = 10 << 20 // 10 MB

// ReceiptHandlers handles HTTP requests for receipt files
type ReceiptHandlers struct {
	receiptService services.ReceiptService
}

// NewReceiptHandlers creates a new receipt handlers instance
func NewReceiptHandlers(receiptService services.ReceiptService) *ReceiptHandlers {
	return &ReceiptHandlers{receiptService: receiptService}
}

// UploadReceipt handles POST /receipts
func (h *ReceiptHandlers) UploadReceipt(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Receipt file is required")
	}
	if file.Size > maxReceiptSize {
		return echo.NewHTTPError(http.StatusBadRequest, "Receipt file exceeds 10MB limit")
	}

	contentType := file.Header.Get("Content-Type")
	switch contentType {
	case "image/jpeg", "image/png", "image/webp", "application/pdf":
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "Unsupported file type")
	}

	src, err := file.Open()
	if err != nil {
		return common.SendServerError(c, "failed to read uploaded file")
	}
	defer src.Close()

	receipt, err := h.receiptService.Upload(ctx, tenantID, userID, file.Filename, contentType, file.Size, src)
	if err != nil {
		if errors.Is(err, services.ErrLimitExceeded) {
			return common.SendLimitExceededError(c, err.Error())
		}
		return common.SendServerError(c, "failed to store receipt")
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Receipt uploaded successfully",
		"receipt": receipt,
	})
}

// ListReceipts handles GET /receipts
func (h *ReceiptHandlers) ListReceipts(c echo.Context) error {
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

	receipts, err := h.receiptService.List(ctx, tenantID, limit, offset)
	if err != nil {
		return common.SendServerError(c, "failed to list receipts")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"receipts": receipts,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetReceiptURL handles GET /receipts/:id/url
func (h *ReceiptHandlers) GetReceiptURL(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	id, err := common.ValidateUUID(c.Param("id"), "receipt id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	url, err := h.receiptService.GetDownloadURL(ctx, tenantID, id, 15*time.Minute)
	if err != nil {
		return common.SendNotFoundError(c, "Receipt")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"url":        url,
		"expires_in": "15m",
	})
}

// DeleteReceipt handles DELETE /receipts/:id
func (h *ReceiptHandlers) DeleteReceipt(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	id, err := common.ValidateUUID(c.Param("id"), "receipt id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.receiptService.Delete(ctx, tenantID, id); err != nil {
		return common.SendServerError(c, "failed to delete receipt")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Receipt deleted successfully",
	})
}

package handlers

import (
	"net/http"

	"clearspendly/internal/common"
	"clearspendly/internal/services"

	"github.com/labstack/echo/v4"
)

// UsageHandlers exposes the tenant's usage counters and plan limits
type UsageHandlers struct {
	usageService services.UsageService
}

// NewUsageHandlers creates a new usage handlers instance
func NewUsageHandlers(usageService services.UsageService) *UsageHandlers {
	return &UsageHandlers{usageService: usageService}
}

// GetUsage handles GET /usage
func (h *UsageHandlers) GetUsage(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	usage, err := h.usageService.GetUsage(ctx, tenantID)
	if err != nil {
		return common.SendServerError(c, "failed to load usage")
	}

	return c.JSON(http.StatusOK, usage)
}

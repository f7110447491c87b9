package handlers

import (
	"net/http"
	"strings"

	"clearspendly/internal/common"
	"clearspendly/internal/services"

	"github.com/labstack/echo/v4"
)

// SetupHandlers handles tenant provisioning endpoints
type SetupHandlers struct {
	setupService services.TenantSetupService
}

// NewSetupHandlers creates a new setup handlers instance
func NewSetupHandlers(setupService services.TenantSetupService) *SetupHandlers {
	return &SetupHandlers{setupService: setupService}
}

// SetupTenant handles POST /tenants/:id/setup
func (h *SetupHandlers) SetupTenant(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, err := common.ValidateUUID(c.Param("id"), "tenant id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	var req struct {
		UserEmail        string `json:"user_email"`
		CompanyName      string `json:"company_name"`
		SubscriptionPlan string `json:"subscription_plan"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if strings.TrimSpace(req.CompanyName) == "" {
		return common.SendValidationError(c, "company_name", "company name is required")
	}

	result := h.setupService.SetupTenant(ctx, services.SetupContext{
		TenantID:         tenantID,
		UserID:           userID,
		UserEmail:        strings.TrimSpace(req.UserEmail),
		CompanyName:      strings.TrimSpace(req.CompanyName),
		SubscriptionPlan: strings.TrimSpace(req.SubscriptionPlan),
	})

	if !result.Success {
		return c.JSON(http.StatusUnprocessableEntity, result)
	}
	return c.JSON(http.StatusOK, result)
}

// RepairTenant handles POST /tenants/:id/repair
func (h *SetupHandlers) RepairTenant(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, err := common.ValidateUUID(c.Param("id"), "tenant id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	result := h.setupService.AddMissingComponents(ctx, tenantID, userID)
	if !result.Success {
		return c.JSON(http.StatusUnprocessableEntity, result)
	}
	return c.JSON(http.StatusOK, result)
}

// GetSetupStatus handles GET /tenants/:id/setup-status
func (h *SetupHandlers) GetSetupStatus(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, err := common.ValidateUUID(c.Param("id"), "tenant id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	done, err := h.setupService.CheckSetupStatus(ctx, tenantID)
	if err != nil {
		return common.SendServerError(c, "failed to check setup status")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"tenant_id":       tenantID,
		"setup_completed": done,
	})
}

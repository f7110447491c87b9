package handlers

import (
	"net/http"
	"time"

	"clearspendly/internal/caching"
	"clearspendly/internal/common"
	"clearspendly/internal/models"
	"clearspendly/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const tagCacheTTL = 10 * time.Minute

// TagHandlers handles HTTP requests for the tag taxonomy
type TagHandlers struct {
	tagRepo  repositories.TagRepository
	cacheSvc caching.CacheService
}

// NewTagHandlers creates a new tag handlers instance
func NewTagHandlers(tagRepo repositories.TagRepository, cacheSvc caching.CacheService) *TagHandlers {
	return &TagHandlers{tagRepo: tagRepo, cacheSvc: cacheSvc}
}

// ListTagCategories handles GET /tags/categories
func (h *TagHandlers) ListTagCategories(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	if cached, err := h.cacheSvc.GetTagCategories(ctx, tenantID); err == nil && cached != nil {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"categories": cached,
		})
	}

	categories, err := h.tagRepo.ListCategories(ctx, tenantID)
	if err != nil {
		return common.SendServerError(c, "failed to list tag categories")
	}

	_ = h.cacheSvc.SetTagCategories(ctx, tenantID, categories, tagCacheTTL)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"categories": categories,
	})
}

// ListTags handles GET /tags
func (h *TagHandlers) ListTags(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	tags, err := h.tagRepo.ListTags(ctx, tenantID)
	if err != nil {
		return common.SendServerError(c, "failed to list tags")
	}

	// Group tags under their category for client convenience.
	byCategory := make(map[uuid.UUID][]*models.Tag)
	for _, tag := range tags {
		byCategory[tag.CategoryID] = append(byCategory[tag.CategoryID], tag)
	}

	grouped := make([]map[string]interface{}, 0, len(byCategory))
	for categoryID, categoryTags := range byCategory {
		grouped = append(grouped, map[string]interface{}{
			"category_id": categoryID,
			"tags":        categoryTags,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"tags":    tags,
		"grouped": grouped,
	})
}

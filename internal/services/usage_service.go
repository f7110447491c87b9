package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clearspendly/internal/caching"
	"clearspendly/internal/models"
	"clearspendly/internal/repositories"

	"github.com/google/uuid"
)

// ErrLimitExceeded is returned when an increment would push a counter past
// the tenant's plan limit.
var ErrLimitExceeded = errors.New("usage limit exceeded")

const usageCacheTTL = 5 * time.Minute

// UsageService is the runtime counterpart of the usage row seeded by setup:
// quota checks against the plan limits and the periodic billing-window roll.
type UsageService interface {
	GetUsage(ctx context.Context, tenantID uuid.UUID) (*models.TenantUsage, error)
	CheckAndIncrement(ctx context.Context, tenantID uuid.UUID, counter string, delta int) error
	RollExpiredPeriods(ctx context.Context, asOf time.Time) (int, error)
}

type usageService struct {
	usageRepo repositories.TenantUsageRepository
	cacheSvc  caching.CacheService
}

func NewUsageService(usageRepo repositories.TenantUsageRepository, cacheSvc caching.CacheService) UsageService {
	return &usageService{usageRepo: usageRepo, cacheSvc: cacheSvc}
}

func (s *usageService) GetUsage(ctx context.Context, tenantID uuid.UUID) (*models.TenantUsage, error) {
	if s.cacheSvc != nil {
		if cached, err := s.cacheSvc.GetTenantUsage(ctx, tenantID); err == nil && cached != nil {
			return cached, nil
		}
	}
	usage, err := s.usageRepo.GetByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if s.cacheSvc != nil {
		_ = s.cacheSvc.SetTenantUsage(ctx, tenantID, usage, usageCacheTTL)
	}
	return usage, nil
}

// CheckAndIncrement reads the live row rather than the cache so the quota
// decision is never made on stale counters.
func (s *usageService) CheckAndIncrement(ctx context.Context, tenantID uuid.UUID, counter string, delta int) error {
	if delta <= 0 {
		return fmt.Errorf("delta must be positive")
	}
	usage, err := s.usageRepo.GetByTenant(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("failed to load usage for tenant %s: %w", tenantID, err)
	}

	limit, hasLimit := jsonNumber(usage.Limits[limitKeyFor(counter)])
	current, _ := jsonNumber(usage.Usage[counter])
	if hasLimit && limit >= 0 && current+int64(delta) > limit {
		return fmt.Errorf("%w: %s is at %d of %d", ErrLimitExceeded, counter, current, limit)
	}

	updated := models.JSONB{}
	for k, v := range usage.Usage {
		updated[k] = v
	}
	updated[counter] = current + int64(delta)

	if err := s.usageRepo.UpdateUsage(ctx, tenantID, updated); err != nil {
		return err
	}
	if s.cacheSvc != nil {
		_ = s.cacheSvc.DeleteTenantUsage(ctx, tenantID)
	}
	return nil
}

// RollExpiredPeriods advances every tenant whose billing window has closed:
// new 30-day window, counters back to zero. Returns how many tenants rolled.
func (s *usageService) RollExpiredPeriods(ctx context.Context, asOf time.Time) (int, error) {
	expired, err := s.usageRepo.ListExpired(ctx, asOf)
	if err != nil {
		return 0, err
	}
	rolled := 0
	for _, usage := range expired {
		if err := s.usageRepo.ResetPeriod(ctx, usage.TenantID, asOf, asOf.AddDate(0, 0, 30), zeroUsageCounters()); err != nil {
			return rolled, fmt.Errorf("failed to roll period for tenant %s: %w", usage.TenantID, err)
		}
		if s.cacheSvc != nil {
			_ = s.cacheSvc.DeleteTenantUsage(ctx, usage.TenantID)
		}
		rolled++
	}
	return rolled, nil
}

// counterLimits maps a usage counter to the plan-limit key that caps it.
var counterLimits = map[string]string{
	"receipts_this_month": "receipts_per_month",
	"invoices_this_month": "invoices_per_month",
	"storage_mb_used":     "storage_mb",
	"active_users":        "users",
}

func limitKeyFor(counter string) string {
	if key, ok := counterLimits[counter]; ok {
		return key
	}
	return counter
}

// jsonNumber copes with counters round-tripping through JSONB: ints come
// back as float64 after unmarshalling.
func jsonNumber(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}

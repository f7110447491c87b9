package repositories

import (
	"context"
	"time"

	"clearspendly/internal/models"

	"github.com/google/uuid"
)

type TenantUsageRepository interface {
	Create(ctx context.Context, usage *models.TenantUsage) error
	GetByTenant(ctx context.Context, tenantID uuid.UUID) (*models.TenantUsage, error)
	UpdateUsage(ctx context.Context, tenantID uuid.UUID, usage models.JSONB) error
	ResetPeriod(ctx context.Context, tenantID uuid.UUID, periodStart, periodEnd time.Time, usage models.JSONB) error
	ListExpired(ctx context.Context, asOf time.Time) ([]*models.TenantUsage, error)
	DeleteByTenant(ctx context.Context, tenantID uuid.UUID) error
	ExistsForTenant(ctx context.Context, tenantID uuid.UUID) (bool, error)
}

type tenantUsageRepo struct {
	db DB
}

func NewTenantUsageRepo(db DB) TenantUsageRepository {
	return &tenantUsageRepo{db: db}
}

func (r *tenantUsageRepo) Create(ctx context.Context, usage *models.TenantUsage) error {
	query := `
		INSERT INTO tenant_usage (id, tenant_id, subscription_plan, period_start, period_end, limits, usage, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, usage.ID, usage.TenantID, usage.SubscriptionPlan, usage.PeriodStart, usage.PeriodEnd, usage.Limits, usage.Usage)
	return err
}

func (r *tenantUsageRepo) GetByTenant(ctx context.Context, tenantID uuid.UUID) (*models.TenantUsage, error) {
	usage := &models.TenantUsage{}
	query := `
		SELECT id, tenant_id, subscription_plan, period_start, period_end, limits, usage, created_at, updated_at
		FROM tenant_usage
		WHERE tenant_id = $1
	`
	err := r.db.QueryRow(ctx, query, tenantID).Scan(&usage.ID, &usage.TenantID, &usage.SubscriptionPlan, &usage.PeriodStart, &usage.PeriodEnd, &usage.Limits, &usage.Usage, &usage.CreatedAt, &usage.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return usage, nil
}

func (r *tenantUsageRepo) UpdateUsage(ctx context.Context, tenantID uuid.UUID, usage models.JSONB) error {
	query := `
		UPDATE tenant_usage
		SET usage = $1, updated_at = NOW()
		WHERE tenant_id = $2
	`
	_, err := r.db.Exec(ctx, query, usage, tenantID)
	return err
}

func (r *tenantUsageRepo) ResetPeriod(ctx context.Context, tenantID uuid.UUID, periodStart, periodEnd time.Time, usage models.JSONB) error {
	query := `
		UPDATE tenant_usage
		SET period_start = $1, period_end = $2, usage = $3, updated_at = NOW()
		WHERE tenant_id = $4
	`
	_, err := r.db.Exec(ctx, query, periodStart, periodEnd, usage, tenantID)
	return err
}

func (r *tenantUsageRepo) ListExpired(ctx context.Context, asOf time.Time) ([]*models.TenantUsage, error) {
	query := `
		SELECT id, tenant_id, subscription_plan, period_start, period_end, limits, usage, created_at, updated_at
		FROM tenant_usage
		WHERE period_end < $1
	`
	rows, err := r.db.Query(ctx, query, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usages []*models.TenantUsage
	for rows.Next() {
		usage := &models.TenantUsage{}
		if err := rows.Scan(&usage.ID, &usage.TenantID, &usage.SubscriptionPlan, &usage.PeriodStart, &usage.PeriodEnd, &usage.Limits, &usage.Usage, &usage.CreatedAt, &usage.UpdatedAt); err != nil {
			return nil, err
		}
		usages = append(usages, usage)
	}
	return usages, rows.Err()
}

func (r *tenantUsageRepo) DeleteByTenant(ctx context.Context, tenantID uuid.UUID) error {
	query := `DELETE FROM tenant_usage WHERE tenant_id = $1`
	_, err := r.db.Exec(ctx, query, tenantID)
	return err
}

func (r *tenantUsageRepo) ExistsForTenant(ctx context.Context, tenantID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM tenant_usage WHERE tenant_id = $1 LIMIT 1)`
	err := r.db.QueryRow(ctx, query, tenantID).Scan(&exists)
	return exists, err
}

package repositories

import (
	"context"

	"clearspendly/internal/models"

	"github.com/google/uuid"
)

type MileageRateRepository interface {
	Create(ctx context.Context, rate *models.IRSMileageRate) error
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.IRSMileageRate, error)
	DeleteByTenant(ctx context.Context, tenantID uuid.UUID) error
	ExistsForTenant(ctx context.Context, tenantID uuid.UUID) (bool, error)
}

type mileageRateRepo struct {
	db DB
}

func NewMileageRateRepo(db DB) MileageRateRepository {
	return &mileageRateRepo{db: db}
}

func (r *mileageRateRepo) Create(ctx context.Context, rate *models.IRSMileageRate) error {
	query := `
		INSERT INTO irs_mileage_rates (id, tenant_id, user_id, year, rate, effective_date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	_, err := r.db.Exec(ctx, query, rate.ID, rate.TenantID, rate.UserID, rate.Year, rate.Rate, rate.EffectiveDate, rate.Notes)
	return err
}

func (r *mileageRateRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.IRSMileageRate, error) {
	query := `
		SELECT id, tenant_id, user_id, year, rate, effective_date, notes, created_at
		FROM irs_mileage_rates
		WHERE tenant_id = $1
		ORDER BY year DESC
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rates []*models.IRSMileageRate
	for rows.Next() {
		rate := &models.IRSMileageRate{}
		if err := rows.Scan(&rate.ID, &rate.TenantID, &rate.UserID, &rate.Year, &rate.Rate, &rate.EffectiveDate, &rate.Notes, &rate.CreatedAt); err != nil {
			return nil, err
		}
		rates = append(rates, rate)
	}
	return rates, rows.Err()
}

func (r *mileageRateRepo) DeleteByTenant(ctx context.Context, tenantID uuid.UUID) error {
	query := `DELETE FROM irs_mileage_rates WHERE tenant_id = $1`
	_, err := r.db.Exec(ctx, query, tenantID)
	return err
}

func (r *mileageRateRepo) ExistsForTenant(ctx context.Context, tenantID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM irs_mileage_rates WHERE tenant_id = $1 LIMIT 1)`
	err := r.db.QueryRow(ctx, query, tenantID).Scan(&exists)
	return exists, err
}

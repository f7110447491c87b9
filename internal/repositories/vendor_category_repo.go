package repositories

import (
	"context"

	"clearspendly/internal/models"

	"github.com/google/uuid"
)

type VendorCategoryRepository interface {
	Create(ctx context.Context, category *models.VendorCategory) error
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.VendorCategory, error)
	DeleteByTenant(ctx context.Context, tenantID uuid.UUID) error
	ExistsForTenant(ctx context.Context, tenantID uuid.UUID) (bool, error)
}

type vendorCategoryRepo struct {
	db DB
}

func NewVendorCategoryRepo(db DB) VendorCategoryRepository {
	return &vendorCategoryRepo{db: db}
}

func (r *vendorCategoryRepo) Create(ctx context.Context, category *models.VendorCategory) error {
	query := `
		INSERT INTO vendor_categories (id, tenant_id, created_by, name, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	_, err := r.db.Exec(ctx, query, category.ID, category.TenantID, category.CreatedBy, category.Name)
	return err
}

func (r *vendorCategoryRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.VendorCategory, error) {
	query := `
		SELECT id, tenant_id, created_by, name, created_at
		FROM vendor_categories
		WHERE tenant_id = $1
		ORDER BY name ASC
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.VendorCategory
	for rows.Next() {
		c := &models.VendorCategory{}
		if err := rows.Scan(&c.ID, &c.TenantID, &c.CreatedBy, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *vendorCategoryRepo) DeleteByTenant(ctx context.Context, tenantID uuid.UUID) error {
	query := `DELETE FROM vendor_categories WHERE tenant_id = $1`
	_, err := r.db.Exec(ctx, query, tenantID)
	return err
}

func (r *vendorCategoryRepo) ExistsForTenant(ctx context.Context, tenantID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM vendor_categories WHERE tenant_id = $1 LIMIT 1)`
	err := r.db.QueryRow(ctx, query, tenantID).Scan(&exists)
	return exists, err
}

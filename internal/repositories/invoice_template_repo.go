package repositories

import (
	"context"

	"clearspendly/internal/models"

	"github.com/google/uuid"
)

type InvoiceTemplateRepository interface {
	Create(ctx context.Context, template *models.InvoiceTemplate) error
	GetDefault(ctx context.Context, tenantID uuid.UUID) (*models.InvoiceTemplate, error)
	DeleteByTenant(ctx context.Context, tenantID uuid.UUID) error
	ExistsForTenant(ctx context.Context, tenantID uuid.UUID) (bool, error)
}

type invoiceTemplateRepo struct {
	db DB
}

func NewInvoiceTemplateRepo(db DB) InvoiceTemplateRepository {
	return &invoiceTemplateRepo{db: db}
}

func (r *invoiceTemplateRepo) Create(ctx context.Context, template *models.InvoiceTemplate) error {
	query := `
		INSERT INTO invoice_templates (id, tenant_id, name, template_data, is_default, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, template.ID, template.TenantID, template.Name, template.TemplateData, template.IsDefault)
	return err
}

func (r *invoiceTemplateRepo) GetDefault(ctx context.Context, tenantID uuid.UUID) (*models.InvoiceTemplate, error) {
	template := &models.InvoiceTemplate{}
	query := `
		SELECT id, tenant_id, name, template_data, is_default, created_at, updated_at
		FROM invoice_templates
		WHERE tenant_id = $1 AND is_default = TRUE
		LIMIT 1
	`
	err := r.db.QueryRow(ctx, query, tenantID).Scan(&template.ID, &template.TenantID, &template.Name, &template.TemplateData, &template.IsDefault, &template.CreatedAt, &template.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return template, nil
}

func (r *invoiceTemplateRepo) DeleteByTenant(ctx context.Context, tenantID uuid.UUID) error {
	query := `DELETE FROM invoice_templates WHERE tenant_id = $1`
	_, err := r.db.Exec(ctx, query, tenantID)
	return err
}

func (r *invoiceTemplateRepo) ExistsForTenant(ctx context.Context, tenantID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM invoice_templates WHERE tenant_id = $1 LIMIT 1)`
	err := r.db.QueryRow(ctx, query, tenantID).Scan(&exists)
	return exists, err
}

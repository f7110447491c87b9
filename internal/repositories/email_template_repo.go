package repositories

import (
	"context"

	"clearspendly/internal/models"

	"github.com/google/uuid"
)

type EmailTemplateRepository interface {
	Create(ctx context.Context, template *models.EmailTemplate) error
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.EmailTemplate, error)
	DeleteByTenant(ctx context.Context, tenantID uuid.UUID) error
	ExistsForTenant(ctx context.Context, tenantID uuid.UUID) (bool, error)
}

type emailTemplateRepo struct {
	db DB
}

func NewEmailTemplateRepo(db DB) EmailTemplateRepository {
	return &emailTemplateRepo{db: db}
}

func (r *emailTemplateRepo) Create(ctx context.Context, template *models.EmailTemplate) error {
	query := `
		INSERT INTO email_templates (id, tenant_id, template_type, subject, greeting, footer, primary_color, secondary_color, text_color, company_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, template.ID, template.TenantID, template.TemplateType, template.Subject, template.Greeting, template.Footer, template.PrimaryColor, template.SecondaryColor, template.TextColor, template.CompanyName)
	return err
}

func (r *emailTemplateRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.EmailTemplate, error) {
	query := `
		SELECT id, tenant_id, template_type, subject, greeting, footer, primary_color, secondary_color, text_color, company_name, created_at, updated_at
		FROM email_templates
		WHERE tenant_id = $1
		ORDER BY template_type ASC
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []*models.EmailTemplate
	for rows.Next() {
		t := &models.EmailTemplate{}
		if err := rows.Scan(&t.ID, &t.TenantID, &t.TemplateType, &t.Subject, &t.Greeting, &t.Footer, &t.PrimaryColor, &t.SecondaryColor, &t.TextColor, &t.CompanyName, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

func (r *emailTemplateRepo) DeleteByTenant(ctx context.Context, tenantID uuid.UUID) error {
	query := `DELETE FROM email_templates WHERE tenant_id = $1`
	_, err := r.db.Exec(ctx, query, tenantID)
	return err
}

func (r *emailTemplateRepo) ExistsForTenant(ctx context.Context, tenantID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM email_templates WHERE tenant_id = $1 LIMIT 1)`
	err := r.db.QueryRow(ctx, query, tenantID).Scan(&exists)
	return exists, err
}

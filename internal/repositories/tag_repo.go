package repositories

import (
	"context"

	"clearspendly/internal/models"

	"github.com/google/uuid"
)

type TagRepository interface {
	CreateCategory(ctx context.Context, category *models.TagCategory) error
	CreateTag(ctx context.Context, tag *models.Tag) error
	ListCategories(ctx context.Context, tenantID uuid.UUID) ([]*models.TagCategory, error)
	ListTags(ctx context.Context, tenantID uuid.UUID) ([]*models.Tag, error)
	DeleteTagsByTenant(ctx context.Context, tenantID uuid.UUID) error
	DeleteCategoriesByTenant(ctx context.Context, tenantID uuid.UUID) error
	CategoriesExist(ctx context.Context, tenantID uuid.UUID) (bool, error)
}

type tagRepo struct {
	db DB
}

func NewTagRepo(db DB) TagRepository {
	return &tagRepo{db: db}
}

func (r *tagRepo) CreateCategory(ctx context.Context, category *models.TagCategory) error {
	query := `
		INSERT INTO tag_categories (id, tenant_id, name, description, color, required, multiple, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, category.ID, category.TenantID, category.Name, category.Description, category.Color, category.Required, category.Multiple, category.SortOrder)
	return err
}

func (r *tagRepo) CreateTag(ctx context.Context, tag *models.Tag) error {
	query := `
		INSERT INTO tags (id, tenant_id, category_id, name, sort_order, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err := r.db.Exec(ctx, query, tag.ID, tag.TenantID, tag.CategoryID, tag.Name, tag.SortOrder)
	return err
}

func (r *tagRepo) ListCategories(ctx context.Context, tenantID uuid.UUID) ([]*models.TagCategory, error) {
	query := `
		SELECT id, tenant_id, name, description, color, required, multiple, sort_order, created_at, updated_at
		FROM tag_categories
		WHERE tenant_id = $1
		ORDER BY sort_order ASC
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.TagCategory
	for rows.Next() {
		c := &models.TagCategory{}
		if err := rows.Scan(&c.ID, &c.TenantID, &c.Name, &c.Description, &c.Color, &c.Required, &c.Multiple, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *tagRepo) ListTags(ctx context.Context, tenantID uuid.UUID) ([]*models.Tag, error) {
	query := `
		SELECT id, tenant_id, category_id, name, sort_order, created_at
		FROM tags
		WHERE tenant_id = $1
		ORDER BY sort_order ASC
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*models.Tag
	for rows.Next() {
		t := &models.Tag{}
		if err := rows.Scan(&t.ID, &t.TenantID, &t.CategoryID, &t.Name, &t.SortOrder, &t.CreatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// Tags are removed before categories so the category_id references are never
// left dangling mid-rollback.
func (r *tagRepo) DeleteTagsByTenant(ctx context.Context, tenantID uuid.UUID) error {
	query := `DELETE FROM tags WHERE tenant_id = $1`
	_, err := r.db.Exec(ctx, query, tenantID)
	return err
}

func (r *tagRepo) DeleteCategoriesByTenant(ctx context.Context, tenantID uuid.UUID) error {
	query := `DELETE FROM tag_categories WHERE tenant_id = $1`
	_, err := r.db.Exec(ctx, query, tenantID)
	return err
}

func (r *tagRepo) CategoriesExist(ctx context.Context, tenantID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM tag_categories WHERE tenant_id = $1 LIMIT 1)`
	err := r.db.QueryRow(ctx, query, tenantID).Scan(&exists)
	return exists, err
}

package repositories

import (
	"context"

	"clearspendly/internal/models"

	"github.com/google/uuid"
)

type UserPreferencesRepository interface {
	Create(ctx context.Context, prefs *models.UserPreferences) error
	GetByTenantAndUser(ctx context.Context, tenantID, userID uuid.UUID) (*models.UserPreferences, error)
	DeleteByTenantAndUser(ctx context.Context, tenantID, userID uuid.UUID) error
	ExistsForTenant(ctx context.Context, tenantID uuid.UUID) (bool, error)
}

type userPreferencesRepo struct {
	db DB
}

func NewUserPreferencesRepo(db DB) UserPreferencesRepository {
	return &userPreferencesRepo{db: db}
}

func (r *userPreferencesRepo) Create(ctx context.Context, prefs *models.UserPreferences) error {
	query := `
		INSERT INTO user_preferences (id, tenant_id, user_id, preferences, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, prefs.ID, prefs.TenantID, prefs.UserID, prefs.Preferences)
	return err
}

func (r *userPreferencesRepo) GetByTenantAndUser(ctx context.Context, tenantID, userID uuid.UUID) (*models.UserPreferences, error) {
	prefs := &models.UserPreferences{}
	query := `
		SELECT id, tenant_id, user_id, preferences, created_at, updated_at
		FROM user_preferences
		WHERE tenant_id = $1 AND user_id = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, userID).Scan(&prefs.ID, &prefs.TenantID, &prefs.UserID, &prefs.Preferences, &prefs.CreatedAt, &prefs.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return prefs, nil
}

func (r *userPreferencesRepo) DeleteByTenantAndUser(ctx context.Context, tenantID, userID uuid.UUID) error {
	query := `DELETE FROM user_preferences WHERE tenant_id = $1 AND user_id = $2`
	_, err := r.db.Exec(ctx, query, tenantID, userID)
	return err
}

func (r *userPreferencesRepo) ExistsForTenant(ctx context.Context, tenantID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM user_preferences WHERE tenant_id = $1 LIMIT 1)`
	err := r.db.QueryRow(ctx, query, tenantID).Scan(&exists)
	return exists, err
}

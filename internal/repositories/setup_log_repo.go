package repositories

import (
	"context"

	"clearspendly/internal/models"

	"github.com/google/uuid"
)

type SetupLogRepository interface {
	Create(ctx context.Context, log *models.SetupLog) error
	UpdateBySession(ctx context.Context, sessionID uuid.UUID, stepsCompleted int, setupData models.JSONB) error
	GetBySession(ctx context.Context, sessionID uuid.UUID) (*models.SetupLog, error)
	ExistsForTenant(ctx context.Context, tenantID uuid.UUID) (bool, error)
}

type setupLogRepo struct {
	db DB
}

func NewSetupLogRepo(db DB) SetupLogRepository {
	return &setupLogRepo{db: db}
}

func (r *setupLogRepo) Create(ctx context.Context, log *models.SetupLog) error {
	query := `
		INSERT INTO setup_logs (id, session_id, tenant_id, user_id, steps_completed, setup_data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, log.ID, log.SessionID, log.TenantID, log.UserID, log.StepsCompleted, log.SetupData)
	return err
}

// UpdateBySession overwrites setup_data with the caller's merged view; the
// service accumulates prior fields so transitions append rather than replace.
func (r *setupLogRepo) UpdateBySession(ctx context.Context, sessionID uuid.UUID, stepsCompleted int, setupData models.JSONB) error {
	query := `
		UPDATE setup_logs
		SET steps_completed = $1, setup_data = $2, updated_at = NOW()
		WHERE session_id = $3
	`
	_, err := r.db.Exec(ctx, query, stepsCompleted, setupData, sessionID)
	return err
}

func (r *setupLogRepo) GetBySession(ctx context.Context, sessionID uuid.UUID) (*models.SetupLog, error) {
	log := &models.SetupLog{}
	query := `
		SELECT id, session_id, tenant_id, user_id, steps_completed, setup_data, created_at, updated_at
		FROM setup_logs
		WHERE session_id = $1
	`
	err := r.db.QueryRow(ctx, query, sessionID).Scan(&log.ID, &log.SessionID, &log.TenantID, &log.UserID, &log.StepsCompleted, &log.SetupData, &log.CreatedAt, &log.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return log, nil
}

func (r *setupLogRepo) ExistsForTenant(ctx context.Context, tenantID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM setup_logs WHERE tenant_id = $1 LIMIT 1)`
	err := r.db.QueryRow(ctx, query, tenantID).Scan(&exists)
	return exists, err
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Setup session statuses recorded in the setup_data blob. Transitions append
// to prior fields rather than replacing them.
const (
	SetupStatusStarted        = "started"
	SetupStatusCompleted      = "completed"
	SetupStatusRolledBack     = "rolled_back"
	SetupStatusRollbackFailed = "rollback_failed"
)

// SetupLog is the durable audit record of a tenant setup session, keyed by a
// generated session id. Append/update only; never deleted.
type SetupLog struct {
	ID             uuid.UUID `json:"id" db:"id"`
	SessionID      uuid.UUID `json:"session_id" db:"session_id"`
	TenantID       uuid.UUID `json:"tenant_id" db:"tenant_id"`
	UserID         uuid.UUID `json:"user_id" db:"user_id"`
	StepsCompleted int       `json:"steps_completed" db:"steps_completed"`
	SetupData      JSONB     `json:"setup_data" db:"setup_data"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// IRSMileageRate is immutable historical seed data, one row per
// (tenant, user, year).
type IRSMileageRate struct {
	ID            uuid.UUID `json:"id" db:"id"`
	TenantID      uuid.UUID `json:"tenant_id" db:"tenant_id"`
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	Year          int       `json:"year" db:"year"`
	Rate          float64   `json:"rate" db:"rate"`
	EffectiveDate time.Time `json:"effective_date" db:"effective_date"`
	Notes         string    `json:"notes" db:"notes"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

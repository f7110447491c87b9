package models

import (
	"time"

	"github.com/google/uuid"
)

type VendorCategory struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TenantID  uuid.UUID `json:"tenant_id" db:"tenant_id"`
	CreatedBy uuid.UUID `json:"created_by" db:"created_by"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

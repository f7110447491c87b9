package models

import (
	"time"

	"github.com/google/uuid"
)

// InvoiceTemplate holds the structured layout document used when rendering
// invoices. Setup seeds exactly one per tenant, marked default.
type InvoiceTemplate struct {
	ID           uuid.UUID `json:"id" db:"id"`
	TenantID     uuid.UUID `json:"tenant_id" db:"tenant_id"`
	Name         string    `json:"name" db:"name"`
	TemplateData JSONB     `json:"template_data" db:"template_data"`
	IsDefault    bool      `json:"is_default" db:"is_default"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// TenantUsage tracks per-tenant quota consumption for the current billing
// period. Limits values of -1 mean unlimited.
type TenantUsage struct {
	ID               uuid.UUID `json:"id" db:"id"`
	TenantID         uuid.UUID `json:"tenant_id" db:"tenant_id"`
	SubscriptionPlan string    `json:"subscription_plan" db:"subscription_plan"`
	PeriodStart      time.Time `json:"period_start" db:"period_start"`
	PeriodEnd        time.Time `json:"period_end" db:"period_end"`
	Limits           JSONB     `json:"limits" db:"limits"`
	Usage            JSONB     `json:"usage" db:"usage"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

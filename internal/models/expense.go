package models

import (
	"time"

	"github.com/google/uuid"
)

type Expense struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	TenantID    uuid.UUID   `json:"tenant_id" db:"tenant_id"`
	UserID      uuid.UUID   `json:"user_id" db:"user_id"`
	ReceiptID   *uuid.UUID  `json:"receipt_id" db:"receipt_id"`
	VendorName  string      `json:"vendor_name" db:"vendor_name"`
	Description string      `json:"description" db:"description"`
	Amount      float64     `json:"amount" db:"amount"`
	Currency    string      `json:"currency" db:"currency"`
	ExpenseDate time.Time   `json:"expense_date" db:"expense_date"`
	TagIDs      []uuid.UUID `json:"tag_ids" db:"-"` // stored via expense_tags join table
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

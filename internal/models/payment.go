package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment records money received from a client. A payment is spread across
// one or more invoices through PaymentAllocation rows; whatever could not be
// applied stays on the payment as unapplied credit.
type Payment struct {
	ID              uuid.UUID `json:"id" db:"id"`
	TenantID        uuid.UUID `json:"tenant_id" db:"tenant_id"`
	Amount          float64   `json:"amount" db:"amount"`
	UnappliedAmount float64   `json:"unapplied_amount" db:"unapplied_amount"`
	Method          string    `json:"method" db:"method"`
	Reference       string    `json:"reference" db:"reference"`
	ReceivedDate    time.Time `json:"received_date" db:"received_date"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

type PaymentAllocation struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TenantID  uuid.UUID `json:"tenant_id" db:"tenant_id"`
	PaymentID uuid.UUID `json:"payment_id" db:"payment_id"`
	InvoiceID uuid.UUID `json:"invoice_id" db:"invoice_id"`
	Amount    float64   `json:"amount" db:"amount"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

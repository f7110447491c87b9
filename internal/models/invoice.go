package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	InvoiceStatusDraft   = "draft"
	InvoiceStatusSent    = "sent"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusOverdue = "overdue"
)

type Invoice struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	TenantID      uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	TemplateID    *uuid.UUID `json:"template_id" db:"template_id"`
	InvoiceNumber string     `json:"invoice_number" db:"invoice_number"`
	ClientName    string     `json:"client_name" db:"client_name"`
	ClientEmail   string     `json:"client_email" db:"client_email"`
	Subtotal      float64    `json:"subtotal" db:"subtotal"`
	TaxAmount     float64    `json:"tax_amount" db:"tax_amount"`
	TotalAmount   float64    `json:"total_amount" db:"total_amount"`
	AmountPaid    float64    `json:"amount_paid" db:"amount_paid"`
	Status        string     `json:"status" db:"status"`
	IssuedDate    time.Time  `json:"issued_date" db:"issued_date"`
	DueDate       time.Time  `json:"due_date" db:"due_date"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

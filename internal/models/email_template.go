package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	EmailTemplateInvoice         = "invoice"
	EmailTemplatePaymentReminder = "payment_reminder"
	EmailTemplatePaymentReceived = "payment_received"
)

type EmailTemplate struct {
	ID             uuid.UUID `json:"id" db:"id"`
	TenantID       uuid.UUID `json:"tenant_id" db:"tenant_id"`
	TemplateType   string    `json:"template_type" db:"template_type"`
	Subject        string    `json:"subject" db:"subject"`
	Greeting       string    `json:"greeting" db:"greeting"`
	Footer         string    `json:"footer" db:"footer"`
	PrimaryColor   string    `json:"primary_color" db:"primary_color"`
	SecondaryColor string    `json:"secondary_color" db:"secondary_color"`
	TextColor      string    `json:"text_color" db:"text_color"`
	CompanyName    string    `json:"company_name" db:"company_name"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clearspendly/internal/models"
	"clearspendly/internal/repositories"

	"github.com/google/uuid"
)

type InvoiceService interface {
	Create(ctx context.Context, req *CreateInvoiceRequest) (*models.Invoice, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Invoice, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Invoice, error)
	Send(ctx context.Context, tenantID, id uuid.UUID) error
	MarkOverdueInvoices(ctx context.Context, asOf time.Time) (int64, error)
}

type CreateInvoiceRequest struct {
	TenantID    uuid.UUID `json:"-"`
	ClientName  string    `json:"client_name" validate:"required"`
	ClientEmail string    `json:"client_email"`
	Subtotal    float64   `json:"subtotal" validate:"required"`
	TaxAmount   float64   `json:"tax_amount"`
	DueDate     time.Time `json:"due_date"`
}

type invoiceService struct {
	invoiceRepo  repositories.InvoiceRepository
	templateRepo repositories.InvoiceTemplateRepository
	usageSvc     UsageService
}

func NewInvoiceService(invoiceRepo repositories.InvoiceRepository, templateRepo repositories.InvoiceTemplateRepository, usageSvc UsageService) InvoiceService {
	return &invoiceService{invoiceRepo: invoiceRepo, templateRepo: templateRepo, usageSvc: usageSvc}
}

func (s *invoiceService) Create(ctx context.Context, req *CreateInvoiceRequest) (*models.Invoice, error) {
	if req.ClientName == "" {
		return nil, errors.New("client name is required")
	}
	if req.Subtotal <= 0 {
		return nil, errors.New("subtotal must be positive")
	}
	if req.TaxAmount < 0 {
		return nil, errors.New("tax amount cannot be negative")
	}

	if s.usageSvc != nil {
		if err := s.usageSvc.CheckAndIncrement(ctx, req.TenantID, "invoices_this_month", 1); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	number, err := s.nextInvoiceNumber(ctx, req.TenantID, now.Year())
	if err != nil {
		return nil, err
	}

	invoice := &models.Invoice{
		ID:            uuid.New(),
		TenantID:      req.TenantID,
		InvoiceNumber: number,
		ClientName:    req.ClientName,
		ClientEmail:   req.ClientEmail,
		Subtotal:      req.Subtotal,
		TaxAmount:     req.TaxAmount,
		TotalAmount:   req.Subtotal + req.TaxAmount,
		Status:        models.InvoiceStatusDraft,
		IssuedDate:    now,
		DueDate:       req.DueDate,
	}
	if invoice.DueDate.IsZero() {
		invoice.DueDate = now.AddDate(0, 0, 30)
	}

	// The seeded default template drives rendering downstream; its absence is
	// not a reason to refuse creating the invoice.
	if template, err := s.templateRepo.GetDefault(ctx, req.TenantID); err == nil {
		invoice.TemplateID = &template.ID
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *invoiceService) nextInvoiceNumber(ctx context.Context, tenantID uuid.UUID, year int) (string, error) {
	count, err := s.invoiceRepo.CountForYear(ctx, tenantID, year)
	if err != nil {
		return "", fmt.Errorf("failed to derive invoice number: %w", err)
	}
	return fmt.Sprintf("INV-%d-%04d", year, count+1), nil
}

func (s *invoiceService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Invoice, error) {
	return s.invoiceRepo.GetByID(ctx, tenantID, id)
}

func (s *invoiceService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Invoice, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.invoiceRepo.List(ctx, tenantID, limit, offset)
}

func (s *invoiceService) Send(ctx context.Context, tenantID, id uuid.UUID) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if invoice.Status != models.InvoiceStatusDraft {
		return fmt.Errorf("invoice %s is %s, only drafts can be sent", invoice.InvoiceNumber, invoice.Status)
	}
	return s.invoiceRepo.UpdateStatus(ctx, tenantID, id, models.InvoiceStatusSent)
}

func (s *invoiceService) MarkOverdueInvoices(ctx context.Context, asOf time.Time) (int64, error) {
	return s.invoiceRepo.MarkOverdue(ctx, asOf)
}

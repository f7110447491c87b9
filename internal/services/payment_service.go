package services

import (
	"context"
	"errors"
	"time"

	"clearspendly/internal/models"
	"clearspendly/internal/repositories"

	"github.com/google/uuid"
)

type PaymentService interface {
	RecordPayment(ctx context.Context, req *RecordPaymentRequest) (*models.Payment, []*models.PaymentAllocation, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Payment, error)
	ListAllocations(ctx context.Context, tenantID, paymentID uuid.UUID) ([]*models.PaymentAllocation, error)
}

type RecordPaymentRequest struct {
	TenantID     uuid.UUID `json:"-"`
	Amount       float64   `json:"amount" validate:"required"`
	Method       string    `json:"method"`
	Reference    string    `json:"reference"`
	ReceivedDate time.Time `json:"received_date"`
}

type paymentService struct {
	paymentRepo repositories.PaymentRepository
	invoiceRepo repositories.InvoiceRepository
}

func NewPaymentService(paymentRepo repositories.PaymentRepository, invoiceRepo repositories.InvoiceRepository) PaymentService {
	return &paymentService{paymentRepo: paymentRepo, invoiceRepo: invoiceRepo}
}

// RecordPayment spreads the received amount across the tenant's open
// invoices, oldest due date first. Partial allocation is allowed; whatever
// cannot be applied stays on the payment as unapplied credit.
func (s *paymentService) RecordPayment(ctx context.Context, req *RecordPaymentRequest) (*models.Payment, []*models.PaymentAllocation, error) {
	if req.Amount <= 0 {
		return nil, nil, errors.New("payment amount must be positive")
	}
	if req.ReceivedDate.IsZero() {
		req.ReceivedDate = time.Now().UTC()
	}

	open, err := s.invoiceRepo.ListUnpaid(ctx, req.TenantID)
	if err != nil {
		return nil, nil, err
	}

	payment := &models.Payment{
		ID:           uuid.New(),
		TenantID:     req.TenantID,
		Amount:       req.Amount,
		Method:       req.Method,
		Reference:    req.Reference,
		ReceivedDate: req.ReceivedDate,
	}

	type pendingAllocation struct {
		allocation *models.PaymentAllocation
		invoice    *models.Invoice
	}

	remaining := req.Amount
	var pending []pendingAllocation
	for _, invoice := range open {
		if remaining <= 0 {
			break
		}
		due := invoice.TotalAmount - invoice.AmountPaid
		if due <= 0 {
			continue
		}
		applied := due
		if remaining < due {
			applied = remaining
		}
		pending = append(pending, pendingAllocation{
			allocation: &models.PaymentAllocation{
				ID:        uuid.New(),
				TenantID:  req.TenantID,
				PaymentID: payment.ID,
				InvoiceID: invoice.ID,
				Amount:    applied,
			},
			invoice: invoice,
		})
		remaining -= applied
	}
	payment.UnappliedAmount = remaining

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, nil, err
	}
	var allocations []*models.PaymentAllocation
	for _, p := range pending {
		if err := s.paymentRepo.CreateAllocation(ctx, p.allocation); err != nil {
			return nil, nil, err
		}
		newPaid := p.invoice.AmountPaid + p.allocation.Amount
		status := p.invoice.Status
		if newPaid >= p.invoice.TotalAmount {
			status = models.InvoiceStatusPaid
		}
		if err := s.invoiceRepo.ApplyPayment(ctx, req.TenantID, p.invoice.ID, newPaid, status); err != nil {
			return nil, nil, err
		}
		allocations = append(allocations, p.allocation)
	}

	return payment, allocations, nil
}

func (s *paymentService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Payment, error) {
	return s.paymentRepo.GetByID(ctx, tenantID, id)
}

func (s *paymentService) ListAllocations(ctx context.Context, tenantID, paymentID uuid.UUID) ([]*models.PaymentAllocation, error) {
	return s.paymentRepo.ListAllocations(ctx, tenantID, paymentID)
}

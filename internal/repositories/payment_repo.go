package repositories

import (
	"context"

	"clearspendly/internal/models"

	"github.com/google/uuid"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	CreateAllocation(ctx context.Context, allocation *models.PaymentAllocation) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Payment, error)
	ListAllocations(ctx context.Context, tenantID, paymentID uuid.UUID) ([]*models.PaymentAllocation, error)
}

type paymentRepo struct {
	db DB
}

func NewPaymentRepo(db DB) PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO payments (id, tenant_id, amount, unapplied_amount, method, reference, received_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	_, err := r.db.Exec(ctx, query, payment.ID, payment.TenantID, payment.Amount, payment.UnappliedAmount, payment.Method, payment.Reference, payment.ReceivedDate)
	return err
}

func (r *paymentRepo) CreateAllocation(ctx context.Context, allocation *models.PaymentAllocation) error {
	query := `
		INSERT INTO payment_allocations (id, tenant_id, payment_id, invoice_id, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err := r.db.Exec(ctx, query, allocation.ID, allocation.TenantID, allocation.PaymentID, allocation.InvoiceID, allocation.Amount)
	return err
}

func (r *paymentRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Payment, error) {
	payment := &models.Payment{}
	query := `
		SELECT id, tenant_id, amount, unapplied_amount, method, reference, received_date, created_at
		FROM payments
		WHERE tenant_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(&payment.ID, &payment.TenantID, &payment.Amount, &payment.UnappliedAmount, &payment.Method, &payment.Reference, &payment.ReceivedDate, &payment.CreatedAt)
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (r *paymentRepo) ListAllocations(ctx context.Context, tenantID, paymentID uuid.UUID) ([]*models.PaymentAllocation, error) {
	query := `
		SELECT id, tenant_id, payment_id, invoice_id, amount, created_at
		FROM payment_allocations
		WHERE tenant_id = $1 AND payment_id = $2
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query, tenantID, paymentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var allocations []*models.PaymentAllocation
	for rows.Next() {
		a := &models.PaymentAllocation{}
		if err := rows.Scan(&a.ID, &a.TenantID, &a.PaymentID, &a.InvoiceID, &a.Amount, &a.CreatedAt); err != nil {
			return nil, err
		}
		allocations = append(allocations, a)
	}
	return allocations, rows.Err()
}

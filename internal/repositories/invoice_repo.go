package repositories

import (
	"context"
	"time"

	"clearspendly/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *models.Invoice) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Invoice, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Invoice, error)
	ListUnpaid(ctx context.Context, tenantID uuid.UUID) ([]*models.Invoice, error)
	UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status string) error
	ApplyPayment(ctx context.Context, tenantID, id uuid.UUID, amountPaid float64, status string) error
	CountForYear(ctx context.Context, tenantID uuid.UUID, year int) (int, error)
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
}

type invoiceRepo struct {
	db DB
}

func NewInvoiceRepo(db DB) InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) Create(ctx context.Context, invoice *models.Invoice) error {
	query := `
		INSERT INTO invoices (id, tenant_id, template_id, invoice_number, client_name, client_email, subtotal, tax_amount, total_amount, amount_paid, status, issued_date, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, invoice.ID, invoice.TenantID, invoice.TemplateID, invoice.InvoiceNumber, invoice.ClientName, invoice.ClientEmail, invoice.Subtotal, invoice.TaxAmount, invoice.TotalAmount, invoice.AmountPaid, invoice.Status, invoice.IssuedDate, invoice.DueDate)
	return err
}

func (r *invoiceRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Invoice, error) {
	invoice := &models.Invoice{}
	query := `
		SELECT id, tenant_id, template_id, invoice_number, client_name, client_email, subtotal, tax_amount, total_amount, amount_paid, status, issued_date, due_date, created_at, updated_at
		FROM invoices
		WHERE tenant_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(&invoice.ID, &invoice.TenantID, &invoice.TemplateID, &invoice.InvoiceNumber, &invoice.ClientName, &invoice.ClientEmail, &invoice.Subtotal, &invoice.TaxAmount, &invoice.TotalAmount, &invoice.AmountPaid, &invoice.Status, &invoice.IssuedDate, &invoice.DueDate, &invoice.CreatedAt, &invoice.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

func (r *invoiceRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Invoice, error) {
	query := `
		SELECT id, tenant_id, template_id, invoice_number, client_name, client_email, subtotal, tax_amount, total_amount, amount_paid, status, issued_date, due_date, created_at, updated_at
		FROM invoices
		WHERE tenant_id = $1
		ORDER BY issued_date DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanInvoices(rows)
}

// ListUnpaid orders by due date ascending so payment allocation settles the
// oldest obligations first.
func (r *invoiceRepo) ListUnpaid(ctx context.Context, tenantID uuid.UUID) ([]*models.Invoice, error) {
	query := `
		SELECT id, tenant_id, template_id, invoice_number, client_name, client_email, subtotal, tax_amount, total_amount, amount_paid, status, issued_date, due_date, created_at, updated_at
		FROM invoices
		WHERE tenant_id = $1 AND status IN ('sent', 'overdue') AND amount_paid < total_amount
		ORDER BY due_date ASC
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanInvoices(rows)
}

func (r *invoiceRepo) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status string) error {
	query := `
		UPDATE invoices
		SET status = $1, updated_at = NOW()
		WHERE tenant_id = $2 AND id = $3
	`
	_, err := r.db.Exec(ctx, query, status, tenantID, id)
	return err
}

func (r *invoiceRepo) ApplyPayment(ctx context.Context, tenantID, id uuid.UUID, amountPaid float64, status string) error {
	query := `
		UPDATE invoices
		SET amount_paid = $1, status = $2, updated_at = NOW()
		WHERE tenant_id = $3 AND id = $4
	`
	_, err := r.db.Exec(ctx, query, amountPaid, status, tenantID, id)
	return err
}

func (r *invoiceRepo) CountForYear(ctx context.Context, tenantID uuid.UUID, year int) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM invoices WHERE tenant_id = $1 AND EXTRACT(YEAR FROM issued_date) = $2`
	err := r.db.QueryRow(ctx, query, tenantID, year).Scan(&count)
	return count, err
}

func (r *invoiceRepo) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	query := `
		UPDATE invoices
		SET status = 'overdue', updated_at = NOW()
		WHERE status = 'sent' AND due_date < $1 AND amount_paid < total_amount
	`
	tag, err := r.db.Exec(ctx, query, asOf)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanInvoices(rows pgx.Rows) ([]*models.Invoice, error) {
	var invoices []*models.Invoice
	for rows.Next() {
		invoice := &models.Invoice{}
		if err := rows.Scan(&invoice.ID, &invoice.TenantID, &invoice.TemplateID, &invoice.InvoiceNumber, &invoice.ClientName, &invoice.ClientEmail, &invoice.Subtotal, &invoice.TaxAmount, &invoice.TotalAmount, &invoice.AmountPaid, &invoice.Status, &invoice.IssuedDate, &invoice.DueDate, &invoice.CreatedAt, &invoice.UpdatedAt); err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
	}
	return invoices, rows.Err()
}

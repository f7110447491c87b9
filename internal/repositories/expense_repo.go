package repositories

import (
	"context"

	"clearspendly/internal/models"

	"github.com/google/uuid"
)

type ExpenseRepository interface {
	Create(ctx context.Context, expense *models.Expense) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Expense, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Expense, error)
	ReplaceTags(ctx context.Context, tenantID, expenseID uuid.UUID, tagIDs []uuid.UUID) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type expenseRepo struct {
	db DB
}

func NewExpenseRepo(db DB) ExpenseRepository {
	return &expenseRepo{db: db}
}

func (r *expenseRepo) Create(ctx context.Context, expense *models.Expense) error {
	query := `
		INSERT INTO expenses (id, tenant_id, user_id, receipt_id, vendor_name, description, amount, currency, expense_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, expense.ID, expense.TenantID, expense.UserID, expense.ReceiptID, expense.VendorName, expense.Description, expense.Amount, expense.Currency, expense.ExpenseDate)
	if err != nil {
		return err
	}
	return r.ReplaceTags(ctx, expense.TenantID, expense.ID, expense.TagIDs)
}

func (r *expenseRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Expense, error) {
	expense := &models.Expense{}
	query := `
		SELECT id, tenant_id, user_id, receipt_id, vendor_name, description, amount, currency, expense_date, created_at, updated_at
		FROM expenses
		WHERE tenant_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(&expense.ID, &expense.TenantID, &expense.UserID, &expense.ReceiptID, &expense.VendorName, &expense.Description, &expense.Amount, &expense.Currency, &expense.ExpenseDate, &expense.CreatedAt, &expense.UpdatedAt)
	if err != nil {
		return nil, err
	}

	tagQuery := `SELECT tag_id FROM expense_tags WHERE tenant_id = $1 AND expense_id = $2`
	rows, err := r.db.Query(ctx, tagQuery, tenantID, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var tagID uuid.UUID
		if err := rows.Scan(&tagID); err != nil {
			return nil, err
		}
		expense.TagIDs = append(expense.TagIDs, tagID)
	}
	return expense, rows.Err()
}

func (r *expenseRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Expense, error) {
	query := `
		SELECT id, tenant_id, user_id, receipt_id, vendor_name, description, amount, currency, expense_date, created_at, updated_at
		FROM expenses
		WHERE tenant_id = $1
		ORDER BY expense_date DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense := &models.Expense{}
		if err := rows.Scan(&expense.ID, &expense.TenantID, &expense.UserID, &expense.ReceiptID, &expense.VendorName, &expense.Description, &expense.Amount, &expense.Currency, &expense.ExpenseDate, &expense.CreatedAt, &expense.UpdatedAt); err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	return expenses, rows.Err()
}

func (r *expenseRepo) ReplaceTags(ctx context.Context, tenantID, expenseID uuid.UUID, tagIDs []uuid.UUID) error {
	deleteQuery := `DELETE FROM expense_tags WHERE tenant_id = $1 AND expense_id = $2`
	if _, err := r.db.Exec(ctx, deleteQuery, tenantID, expenseID); err != nil {
		return err
	}
	insertQuery := `
		INSERT INTO expense_tags (tenant_id, expense_id, tag_id)
		VALUES ($1, $2, $3)
	`
	for _, tagID := range tagIDs {
		if _, err := r.db.Exec(ctx, insertQuery, tenantID, expenseID, tagID); err != nil {
			return err
		}
	}
	return nil
}

func (r *expenseRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM expense_tags WHERE tenant_id = $1 AND expense_id = $2`, tenantID, id); err != nil {
		return err
	}
	_, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	return err
}

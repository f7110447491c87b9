package repositories

import (
	"context"

	"clearspendly/internal/models"

	"github.com/google/uuid"
)

type ReceiptRepository interface {
	Create(ctx context.Context, receipt *models.Receipt) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Receipt, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Receipt, error)
	UpdateOCR(ctx context.Context, tenantID, id uuid.UUID, status string, extracted models.JSONB) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type receiptRepo struct {
	db DB
}

func NewReceiptRepo(db DB) ReceiptRepository {
	return &receiptRepo{db: db}
}

func (r *receiptRepo) Create(ctx context.Context, receipt *models.Receipt) error {
	query := `
		INSERT INTO receipts (id, tenant_id, user_id, object_key, file_name, content_type, size_bytes, ocr_status, extracted_data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, receipt.ID, receipt.TenantID, receipt.UserID, receipt.ObjectKey, receipt.FileName, receipt.ContentType, receipt.SizeBytes, receipt.OCRStatus, receipt.ExtractedData)
	return err
}

func (r *receiptRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Receipt, error) {
	receipt := &models.Receipt{}
	query := `
		SELECT id, tenant_id, user_id, object_key, file_name, content_type, size_bytes, ocr_status, extracted_data, created_at, updated_at
		FROM receipts
		WHERE tenant_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(&receipt.ID, &receipt.TenantID, &receipt.UserID, &receipt.ObjectKey, &receipt.FileName, &receipt.ContentType, &receipt.SizeBytes, &receipt.OCRStatus, &receipt.ExtractedData, &receipt.CreatedAt, &receipt.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

func (r *receiptRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Receipt, error) {
	query := `
		SELECT id, tenant_id, user_id, object_key, file_name, content_type, size_bytes, ocr_status, extracted_data, created_at, updated_at
		FROM receipts
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var receipts []*models.Receipt
	for rows.Next() {
		receipt := &models.Receipt{}
		if err := rows.Scan(&receipt.ID, &receipt.TenantID, &receipt.UserID, &receipt.ObjectKey, &receipt.FileName, &receipt.ContentType, &receipt.SizeBytes, &receipt.OCRStatus, &receipt.ExtractedData, &receipt.CreatedAt, &receipt.UpdatedAt); err != nil {
			return nil, err
		}
		receipts = append(receipts, receipt)
	}
	return receipts, rows.Err()
}

func (r *receiptRepo) UpdateOCR(ctx context.Context, tenantID, id uuid.UUID, status string, extracted models.JSONB) error {
	query := `
		UPDATE receipts
		SET ocr_status = $1, extracted_data = $2, updated_at = NOW()
		WHERE tenant_id = $3 AND id = $4
	`
	_, err := r.db.Exec(ctx, query, status, extracted, tenantID, id)
	return err
}

func (r *receiptRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `DELETE FROM receipts WHERE tenant_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return err
}

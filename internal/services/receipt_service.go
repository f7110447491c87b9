package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"clearspendly/internal/models"
	"clearspendly/internal/repositories"

	"github.com/google/uuid"
)

type ReceiptService interface {
	Upload(ctx context.Context, tenantID, userID uuid.UUID, fileName, contentType string, size int64, reader io.Reader) (*models.Receipt, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Receipt, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Receipt, error)
	GetDownloadURL(ctx context.Context, tenantID, id uuid.UUID, expiry time.Duration) (string, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type receiptService struct {
	receiptRepo repositories.ReceiptRepository
	storage     ObjectStorage
	usageSvc    UsageService
	bucket      string
}

func NewReceiptService(receiptRepo repositories.ReceiptRepository, storage ObjectStorage, usageSvc UsageService, bucket string) ReceiptService {
	return &receiptService{
		receiptRepo: receiptRepo,
		storage:     storage,
		usageSvc:    usageSvc,
		bucket:      bucket,
	}
}

// Upload stores the document first and only then creates the row; a failed
// insert leaves an orphaned object rather than a row pointing at nothing.
func (s *receiptService) Upload(ctx context.Context, tenantID, userID uuid.UUID, fileName, contentType string, size int64, reader io.Reader) (*models.Receipt, error) {
	if s.usageSvc != nil {
		if err := s.usageSvc.CheckAndIncrement(ctx, tenantID, "receipts_this_month", 1); err != nil {
			return nil, err
		}
	}

	receiptID := uuid.New()
	objectKey := fmt.Sprintf("%s/receipts/%s/%s", tenantID, receiptID, fileName)
	if err := s.storage.UploadObject(ctx, s.bucket, objectKey, contentType, reader, size); err != nil {
		return nil, fmt.Errorf("failed to upload receipt: %w", err)
	}

	receipt := &models.Receipt{
		ID:          receiptID,
		TenantID:    tenantID,
		UserID:      userID,
		ObjectKey:   objectKey,
		FileName:    fileName,
		ContentType: contentType,
		SizeBytes:   size,
		OCRStatus:   models.OCRStatusPending,
	}
	if err := s.receiptRepo.Create(ctx, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

func (s *receiptService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Receipt, error) {
	return s.receiptRepo.GetByID(ctx, tenantID, id)
}

func (s *receiptService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Receipt, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.receiptRepo.List(ctx, tenantID, limit, offset)
}

func (s *receiptService) GetDownloadURL(ctx context.Context, tenantID, id uuid.UUID, expiry time.Duration) (string, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, s.bucket, receipt.ObjectKey, expiry)
}

func (s *receiptService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	receipt, err := s.receiptRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if err := s.storage.DeleteObject(ctx, s.bucket, receipt.ObjectKey); err != nil {
		return err
	}
	return s.receiptRepo.Delete(ctx, tenantID, id)
}

package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	OCRStatusPending   = "pending"
	OCRStatusProcessed = "processed"
	OCRStatusFailed    = "failed"
)

// Receipt references an uploaded document in object storage. OCR extraction
// happens in an external worker; only the dispatch state lives here.
type Receipt struct {
	ID            uuid.UUID `json:"id" db:"id"`
	TenantID      uuid.UUID `json:"tenant_id" db:"tenant_id"`
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	ObjectKey     string    `json:"object_key" db:"object_key"`
	FileName      string    `json:"file_name" db:"file_name"`
	ContentType   string    `json:"content_type" db:"content_type"`
	SizeBytes     int64     `json:"size_bytes" db:"size_bytes"`
	OCRStatus     string    `json:"ocr_status" db:"ocr_status"`
	ExtractedData JSONB     `json:"extracted_data" db:"extracted_data"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

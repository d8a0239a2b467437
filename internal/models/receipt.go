package models

import (
	"time"
)

// ReceiptStatus represents the processing status of a receipt
type ReceiptStatus string

const (
	ReceiptStatusPending    ReceiptStatus = "pending"
	ReceiptStatusProcessing ReceiptStatus = "processing"
	ReceiptStatusCompleted  ReceiptStatus = "completed"
	ReceiptStatusFailed     ReceiptStatus = "failed"
)

// ReceiptItem is one extracted line item. Names are cleaned and
// capitalized; quantity and prices are always positive after validation.
type ReceiptItem struct {
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
	Category   string  `json:"category"`
}

// ParsedReceipt is the structured result of one processing request. It is
// immutable once returned; the raw OCR text is retained for audit.
type ParsedReceipt struct {
	Vendor     string        `json:"vendor"`
	Date       string        `json:"date"` // YYYY-MM-DD
	Total      float64       `json:"total"`
	Items      []ReceiptItem `json:"items"`
	RawText    string        `json:"raw_text"`
	Confidence float64       `json:"confidence"`
}

// Receipt is the persisted record of an uploaded receipt image and its
// extraction result.
type Receipt struct {
	ID               int           `json:"id"`
	UserID           int           `json:"user_id"`
	S3Bucket         *string       `json:"s3_bucket,omitempty"`
	S3Key            *string       `json:"s3_key,omitempty"`
	OriginalFilename *string       `json:"original_filename,omitempty"`
	ContentType      *string       `json:"content_type,omitempty"`
	FileSizeBytes    *int64        `json:"file_size_bytes,omitempty"`
	Status           ReceiptStatus `json:"status"`
	Vendor           *string       `json:"vendor,omitempty"`
	ReceiptDate      *string       `json:"receipt_date,omitempty"`
	Total            *float64      `json:"total,omitempty"`
	Confidence       *float64      `json:"confidence,omitempty"`
	OCRText          *string       `json:"ocr_text,omitempty"`
	ErrorMessage     *string       `json:"error_message,omitempty"`
	UploadedAt       time.Time     `json:"uploaded_at"`
	ProcessedAt      *time.Time    `json:"processed_at,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// ReceiptWithItems includes the stored line items
type ReceiptWithItems struct {
	Receipt
	Items []StoredReceiptItem `json:"items"`
}

// StoredReceiptItem is a persisted line item of a completed receipt.
type StoredReceiptItem struct {
	ID        int `json:"id"`
	ReceiptID int `json:"receipt_id"`
	Position  int `json:"position"`
	ReceiptItem
	CreatedAt time.Time `json:"created_at"`
}

// CreateReceiptRequest is used when registering an uploaded receipt
type CreateReceiptRequest struct {
	UserID           int
	S3Bucket         *string
	S3Key            *string
	OriginalFilename string
	ContentType      string
	FileSizeBytes    int64
}

// ReceiptListParams contains parameters for listing receipts
type ReceiptListParams struct {
	UserID int
	Limit  int
	Offset int
	Status *string
}

// ProcessReceiptRequest is the JSON body alternative to multipart upload
type ProcessReceiptRequest struct {
	ImageBase64 string `json:"image_base64"`
}

// OCRTestResult is returned by the OCR-only endpoint
type OCRTestResult struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	TextLength int     `json:"text_length"`
}

// SupportedStores advertises the registered vendor rulesets
type SupportedStores struct {
	Stores []string `json:"stores"`
	Count  int      `json:"count"`
}

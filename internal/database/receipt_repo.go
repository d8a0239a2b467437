package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ninjashari/grocery-manager/internal/models"
)

var ErrReceiptNotFound = errors.New("receipt not found")

const receiptColumns = `id, user_id, s3_bucket, s3_key, original_filename, content_type,
	file_size_bytes, status, vendor, receipt_date, total, confidence, ocr_text,
	error_message, uploaded_at, processed_at, created_at, updated_at`

func scanReceipt(row pgx.Row) (*models.Receipt, error) {
	r := &models.Receipt{}
	err := row.Scan(
		&r.ID, &r.UserID, &r.S3Bucket, &r.S3Key, &r.OriginalFilename, &r.ContentType,
		&r.FileSizeBytes, &r.Status, &r.Vendor, &r.ReceiptDate, &r.Total, &r.Confidence,
		&r.OCRText, &r.ErrorMessage, &r.UploadedAt, &r.ProcessedAt, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// CreateReceipt registers an uploaded receipt image in pending state
func (db *DB) CreateReceipt(ctx context.Context, req *models.CreateReceiptRequest) (*models.Receipt, error) {
	row := db.Pool.QueryRow(ctx, `
		INSERT INTO receipts (user_id, s3_bucket, s3_key, original_filename, content_type, file_size_bytes, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending')
		RETURNING `+receiptColumns,
		req.UserID, req.S3Bucket, req.S3Key, req.OriginalFilename, req.ContentType, req.FileSizeBytes,
	)
	receipt, err := scanReceipt(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create receipt: %w", err)
	}
	return receipt, nil
}

// SetReceiptStatus updates the processing status of a receipt
func (db *DB) SetReceiptStatus(ctx context.Context, receiptID int, status models.ReceiptStatus) error {
	_, err := db.Pool.Exec(ctx,
		"UPDATE receipts SET status = $1, updated_at = NOW() WHERE id = $2",
		status, receiptID,
	)
	if err != nil {
		return fmt.Errorf("failed to update receipt status: %w", err)
	}
	return nil
}

// MarkReceiptFailed records a processing failure with its reason
func (db *DB) MarkReceiptFailed(ctx context.Context, receiptID int, errorMessage string) error {
	_, err := db.Pool.Exec(ctx, `
		UPDATE receipts
		SET status = 'failed', error_message = $1, processed_at = NOW(), updated_at = NOW()
		WHERE id = $2
	`, errorMessage, receiptID)
	if err != nil {
		return fmt.Errorf("failed to mark receipt failed: %w", err)
	}
	return nil
}

// SaveParseResult stores a successful extraction: receipt fields and line
// items are written in one transaction so a receipt is never half-saved.
func (db *DB) SaveParseResult(ctx context.Context, receiptID int, parsed *models.ParsedReceipt) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE receipts
		SET status = 'completed', vendor = $1, receipt_date = $2, total = $3,
		    confidence = $4, ocr_text = $5, error_message = NULL,
		    processed_at = NOW(), updated_at = NOW()
		WHERE id = $6
	`, parsed.Vendor, parsed.Date, parsed.Total, parsed.Confidence, parsed.RawText, receiptID)
	if err != nil {
		return fmt.Errorf("failed to update receipt: %w", err)
	}

	// Reprocessing replaces the previous item set
	_, err = tx.Exec(ctx, "DELETE FROM receipt_items WHERE receipt_id = $1", receiptID)
	if err != nil {
		return fmt.Errorf("failed to clear receipt items: %w", err)
	}

	for i, item := range parsed.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO receipt_items (receipt_id, position, name, quantity, unit_price, total_price, category)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, receiptID, i, item.Name, item.Quantity, item.UnitPrice, item.TotalPrice, item.Category)
		if err != nil {
			return fmt.Errorf("failed to insert receipt item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetReceiptByID retrieves a receipt with its items, scoped to the owner
func (db *DB) GetReceiptByID(ctx context.Context, receiptID, userID int) (*models.ReceiptWithItems, error) {
	row := db.Pool.QueryRow(ctx,
		"SELECT "+receiptColumns+" FROM receipts WHERE id = $1 AND user_id = $2",
		receiptID, userID,
	)
	receipt, err := scanReceipt(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReceiptNotFound
		}
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}

	items, err := db.getReceiptItems(ctx, receiptID)
	if err != nil {
		return nil, err
	}

	return &models.ReceiptWithItems{Receipt: *receipt, Items: items}, nil
}

func (db *DB) getReceiptItems(ctx context.Context, receiptID int) ([]models.StoredReceiptItem, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, receipt_id, position, name, quantity, unit_price, total_price, category, created_at
		FROM receipt_items WHERE receipt_id = $1 ORDER BY position
	`, receiptID)
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt items: %w", err)
	}
	defer rows.Close()

	items := []models.StoredReceiptItem{}
	for rows.Next() {
		var item models.StoredReceiptItem
		err := rows.Scan(&item.ID, &item.ReceiptID, &item.Position, &item.Name,
			&item.Quantity, &item.UnitPrice, &item.TotalPrice, &item.Category, &item.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan receipt item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ListReceipts returns a page of the user's receipts plus the total count
func (db *DB) ListReceipts(ctx context.Context, params *models.ReceiptListParams) ([]*models.Receipt, int, error) {
	where := "WHERE user_id = $1"
	args := []interface{}{params.UserID}
	if params.Status != nil {
		args = append(args, *params.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var total int
	err := db.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM receipts "+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count receipts: %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(
		"SELECT %s FROM receipts %s ORDER BY uploaded_at DESC LIMIT $%d OFFSET $%d",
		receiptColumns, where, len(args)-1, len(args),
	)
	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list receipts: %w", err)
	}
	defer rows.Close()

	receipts := []*models.Receipt{}
	for rows.Next() {
		receipt, err := scanReceipt(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan receipt: %w", err)
		}
		receipts = append(receipts, receipt)
	}
	return receipts, total, rows.Err()
}

// ListCompletedReceiptsWithItems returns every completed receipt of a user
// with its items, oldest first. Used by the export service.
func (db *DB) ListCompletedReceiptsWithItems(ctx context.Context, userID int) ([]*models.ReceiptWithItems, error) {
	rows, err := db.Pool.Query(ctx,
		"SELECT "+receiptColumns+" FROM receipts WHERE user_id = $1 AND status = 'completed' ORDER BY uploaded_at",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	defer rows.Close()

	receipts := []*models.ReceiptWithItems{}
	for rows.Next() {
		receipt, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan receipt: %w", err)
		}
		receipts = append(receipts, &models.ReceiptWithItems{Receipt: *receipt})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, r := range receipts {
		items, err := db.getReceiptItems(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		r.Items = items
	}
	return receipts, nil
}

// DeleteReceipt removes a receipt and returns its S3 key (if any) so the
// caller can clean up the stored image. Items cascade.
func (db *DB) DeleteReceipt(ctx context.Context, receiptID, userID int) (*string, error) {
	var s3Key *string
	err := db.Pool.QueryRow(ctx,
		"DELETE FROM receipts WHERE id = $1 AND user_id = $2 RETURNING s3_key",
		receiptID, userID,
	).Scan(&s3Key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReceiptNotFound
		}
		return nil, fmt.Errorf("failed to delete receipt: %w", err)
	}
	return s3Key, nil
}

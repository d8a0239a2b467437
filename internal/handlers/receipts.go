package handlers

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ninjashari/grocery-manager/internal/database"
	"github.com/ninjashari/grocery-manager/internal/middleware"
	"github.com/ninjashari/grocery-manager/internal/models"
	"github.com/ninjashari/grocery-manager/internal/parser"
	"github.com/ninjashari/grocery-manager/internal/services"
)

const maxImageSize = 10 * 1024 * 1024 // 10MB

// ReceiptHandler handles receipt upload, processing and retrieval
type ReceiptHandler struct {
	*Handler
	receipts *services.ReceiptService
	storage  *services.StorageService // nil when S3 is disabled
	export   *services.ExportService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(base *Handler, db *database.DB,
	receipts *services.ReceiptService, storage *services.StorageService) *ReceiptHandler {
	return &ReceiptHandler{
		Handler:  base,
		receipts: receipts,
		storage:  storage,
		export:   services.NewExportService(db),
	}
}

// Health reports liveness and advertises the stores with dedicated rulesets
func (h *ReceiptHandler) Health(c *fiber.Ctx) error {
	return Success(c, fiber.Map{
		"status":           "ok",
		"supported_stores": h.receipts.SupportedStores(),
	})
}

// ProcessReceipt accepts a receipt image (multipart or base64 JSON), runs the
// OCR and extraction pipeline, persists the result, and returns it.
func (h *ReceiptHandler) ProcessReceipt(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	imageBytes, filename, contentType, err := readImageUpload(c)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, err.Error())
	}

	req := &models.CreateReceiptRequest{
		UserID:           userID,
		OriginalFilename: filename,
		ContentType:      contentType,
		FileSizeBytes:    int64(len(imageBytes)),
	}

	if h.storage != nil {
		key := generateS3Key(userID, filename)
		bucket, err := h.storage.UploadImage(c.Context(), key, imageBytes, contentType)
		if err != nil {
			log.Printf("Warning: failed to upload receipt image to S3: %v", err)
		} else {
			req.S3Bucket = &bucket
			req.S3Key = &key
		}
	}

	receipt, err := h.db.CreateReceipt(c.Context(), req)
	if err != nil {
		log.Printf("Failed to create receipt record: %v", err)
		return Error(c, fiber.StatusInternalServerError, "Failed to create receipt record")
	}

	if err := h.db.SetReceiptStatus(c.Context(), receipt.ID, models.ReceiptStatusProcessing); err != nil {
		log.Printf("Warning: failed to mark receipt %d processing: %v", receipt.ID, err)
	}

	parsed, err := h.receipts.Process(imageBytes)
	if err != nil {
		if dbErr := h.db.MarkReceiptFailed(c.Context(), receipt.ID, err.Error()); dbErr != nil {
			log.Printf("Warning: failed to mark receipt %d failed: %v", receipt.ID, dbErr)
		}
		if errors.Is(err, parser.ErrNoText) {
			return Error(c, fiber.StatusUnprocessableEntity, parser.ErrNoText.Error())
		}
		log.Printf("Receipt %d processing failed: %v", receipt.ID, err)
		return Error(c, fiber.StatusInternalServerError, "Receipt processing failed")
	}

	if err := h.db.SaveParseResult(c.Context(), receipt.ID, parsed); err != nil {
		log.Printf("Failed to save parse result for receipt %d: %v", receipt.ID, err)
		return Error(c, fiber.StatusInternalServerError, "Failed to save receipt")
	}

	return Success(c, fiber.Map{
		"receipt_id": receipt.ID,
		"result":     parsed,
	})
}

// TestOCR runs OCR only, without vendor parsing. Useful for debugging
// image quality issues.
func (h *ReceiptHandler) TestOCR(c *fiber.Ctx) error {
	imageBytes, _, _, err := readImageUpload(c)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.receipts.TestOCR(imageBytes)
	if err != nil {
		if errors.Is(err, parser.ErrNoText) {
			return Error(c, fiber.StatusUnprocessableEntity, parser.ErrNoText.Error())
		}
		log.Printf("OCR test failed: %v", err)
		return Error(c, fiber.StatusInternalServerError, "OCR processing failed")
	}

	return Success(c, result)
}

// SupportedStores lists the vendors with dedicated extraction rules
func (h *ReceiptHandler) SupportedStores(c *fiber.Ctx) error {
	stores := h.receipts.SupportedStores()
	return Success(c, models.SupportedStores{Stores: stores, Count: len(stores)})
}

// ListReceipts returns a paginated list of the user's receipts
func (h *ReceiptHandler) ListReceipts(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	params := &models.ReceiptListParams{
		UserID: userID,
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	if params.Limit < 1 || params.Limit > 100 {
		params.Limit = 20
	}
	if params.Offset < 0 {
		params.Offset = 0
	}
	if status := c.Query("status"); status != "" {
		params.Status = &status
	}

	receipts, total, err := h.db.ListReceipts(c.Context(), params)
	if err != nil {
		log.Printf("Failed to list receipts: %v", err)
		return Error(c, fiber.StatusInternalServerError, "Failed to list receipts")
	}

	return SuccessWithMeta(c, receipts, &Meta{
		Total:  total,
		Limit:  params.Limit,
		Offset: params.Offset,
	})
}

// GetReceipt returns one receipt with its extracted items
func (h *ReceiptHandler) GetReceipt(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	receiptID, err := c.ParamsInt("id")
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "Invalid receipt ID")
	}

	receipt, err := h.db.GetReceiptByID(c.Context(), receiptID, userID)
	if err != nil {
		if errors.Is(err, database.ErrReceiptNotFound) {
			return Error(c, fiber.StatusNotFound, "Receipt not found")
		}
		log.Printf("Failed to get receipt %d: %v", receiptID, err)
		return Error(c, fiber.StatusInternalServerError, "Failed to get receipt")
	}

	return Success(c, receipt)
}

// DeleteReceipt removes a receipt, its items, and its stored image
func (h *ReceiptHandler) DeleteReceipt(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	receiptID, err := c.ParamsInt("id")
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "Invalid receipt ID")
	}

	s3Key, err := h.db.DeleteReceipt(c.Context(), receiptID, userID)
	if err != nil {
		if errors.Is(err, database.ErrReceiptNotFound) {
			return Error(c, fiber.StatusNotFound, "Receipt not found")
		}
		log.Printf("Failed to delete receipt %d: %v", receiptID, err)
		return Error(c, fiber.StatusInternalServerError, "Failed to delete receipt")
	}

	if h.storage != nil && s3Key != nil {
		if err := h.storage.DeleteImage(c.Context(), *s3Key); err != nil {
			log.Printf("Warning: failed to delete image %s: %v", *s3Key, err)
		}
	}

	return Success(c, fiber.Map{"deleted": true})
}

// GetReceiptImage returns a presigned URL for the original receipt image
func (h *ReceiptHandler) GetReceiptImage(c *fiber.Ctx) error {
	if h.storage == nil {
		return Error(c, fiber.StatusNotFound, "Image storage is not enabled")
	}

	userID := middleware.GetUserID(c)
	receiptID, err := c.ParamsInt("id")
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "Invalid receipt ID")
	}

	receipt, err := h.db.GetReceiptByID(c.Context(), receiptID, userID)
	if err != nil {
		if errors.Is(err, database.ErrReceiptNotFound) {
			return Error(c, fiber.StatusNotFound, "Receipt not found")
		}
		return Error(c, fiber.StatusInternalServerError, "Failed to get receipt")
	}
	if receipt.S3Key == nil {
		return Error(c, fiber.StatusNotFound, "No image stored for this receipt")
	}

	url, err := h.storage.PresignedImageURL(c.Context(), *receipt.S3Key, 15*time.Minute)
	if err != nil {
		log.Printf("Failed to presign image URL for receipt %d: %v", receiptID, err)
		return Error(c, fiber.StatusInternalServerError, "Failed to generate image URL")
	}

	return Success(c, fiber.Map{"url": url})
}

// ExportReceipts streams the user's completed receipts as an XLSX workbook
func (h *ReceiptHandler) ExportReceipts(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	data, err := h.export.ExportReceiptsXLSX(c.Context(), userID)
	if err != nil {
		log.Printf("Failed to export receipts for user %d: %v", userID, err)
		return Error(c, fiber.StatusInternalServerError, "Failed to export receipts")
	}

	filename := fmt.Sprintf("receipts-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}

// readImageUpload pulls the image bytes out of either a multipart form
// ("image" field) or a JSON body with a base64 payload.
func readImageUpload(c *fiber.Ctx) ([]byte, string, string, error) {
	if file, err := c.FormFile("image"); err == nil {
		if file.Size > maxImageSize {
			return nil, "", "", fmt.Errorf("image exceeds the %dMB size limit", maxImageSize/(1024*1024))
		}
		contentType := file.Header.Get("Content-Type")
		if !isValidImageType(contentType) {
			return nil, "", "", fmt.Errorf("unsupported image type: %s", contentType)
		}

		f, err := file.Open()
		if err != nil {
			return nil, "", "", fmt.Errorf("failed to open uploaded file")
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			return nil, "", "", fmt.Errorf("failed to read uploaded file")
		}
		return data, file.Filename, contentType, nil
	}

	var req models.ProcessReceiptRequest
	if err := c.BodyParser(&req); err != nil || req.ImageBase64 == "" {
		return nil, "", "", fmt.Errorf("provide an 'image' file or an 'image_base64' field")
	}

	payload := req.ImageBase64
	// Accept data URLs like "data:image/jpeg;base64,..."
	if idx := strings.Index(payload, ","); idx != -1 && strings.HasPrefix(payload, "data:") {
		payload = payload[idx+1:]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", "", fmt.Errorf("invalid base64 image data")
	}
	if len(data) > maxImageSize {
		return nil, "", "", fmt.Errorf("image exceeds the %dMB size limit", maxImageSize/(1024*1024))
	}
	return data, "upload.jpg", "image/jpeg", nil
}

func isValidImageType(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/jpg", "image/png", "image/webp":
		return true
	}
	return false
}

func generateS3Key(userID int, filename string) string {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}
	return fmt.Sprintf("receipts/%d/%d%s", userID, time.Now().UnixNano(), ext)
}

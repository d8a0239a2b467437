package services

import (
	"fmt"
	"strings"

	"github.com/ninjashari/grocery-manager/internal/models"
	"github.com/ninjashari/grocery-manager/internal/parser"
)

// ReceiptService turns a receipt image into a structured record: OCR,
// vendor dispatch, then heuristic extraction.
type ReceiptService struct {
	ocr      *OCRService
	registry *parser.Registry
}

// NewReceiptService creates a new receipt processing service
func NewReceiptService(ocr *OCRService, registry *parser.Registry) *ReceiptService {
	return &ReceiptService{ocr: ocr, registry: registry}
}

// Process runs OCR over the image and parses the text with the matching
// vendor ruleset. Empty OCR output is the one unrecoverable failure;
// everything else degrades to a partial (possibly empty) item list.
func (s *ReceiptService) Process(imageBytes []byte) (*models.ParsedReceipt, error) {
	ocrResult, err := s.ocr.ProcessImage(imageBytes)
	if err != nil {
		return nil, fmt.Errorf("OCR processing failed: %w", err)
	}

	return s.registry.Parse(ocrResult.Text, ocrResult.Confidence)
}

// TestOCR extracts text without running the parsing pipeline
func (s *ReceiptService) TestOCR(imageBytes []byte) (*models.OCRTestResult, error) {
	ocrResult, err := s.ocr.ProcessImage(imageBytes)
	if err != nil {
		return nil, fmt.Errorf("OCR processing failed: %w", err)
	}
	if strings.TrimSpace(ocrResult.Text) == "" {
		return nil, parser.ErrNoText
	}

	return &models.OCRTestResult{
		Text:       ocrResult.Text,
		Confidence: ocrResult.Confidence,
		TextLength: len(ocrResult.Text),
	}, nil
}

// SupportedStores returns the display names of the registered rulesets
func (s *ReceiptService) SupportedStores() []string {
	return s.registry.Names()
}

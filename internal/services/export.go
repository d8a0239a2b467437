package services

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ninjashari/grocery-manager/internal/database"
)

// ExportService builds XLSX workbooks from a user's processed receipts
type ExportService struct {
	db *database.DB
}

// NewExportService creates a new export service
func NewExportService(db *database.DB) *ExportService {
	return &ExportService{db: db}
}

var exportHeaders = []string{
	"Date", "Vendor", "Item", "Category", "Quantity", "Unit Price", "Total Price", "Receipt Total",
}

// ExportReceiptsXLSX renders every completed receipt of the user as one
// spreadsheet, one row per line item.
func (s *ExportService) ExportReceiptsXLSX(ctx context.Context, userID int) ([]byte, error) {
	receipts, err := s.db.ListCompletedReceiptsWithItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load receipts for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Receipts"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	row := 2
	for _, receipt := range receipts {
		date := ""
		if receipt.ReceiptDate != nil {
			date = *receipt.ReceiptDate
		}
		vendor := ""
		if receipt.Vendor != nil {
			vendor = *receipt.Vendor
		}
		receiptTotal := 0.0
		if receipt.Total != nil {
			receiptTotal = *receipt.Total
		}

		for _, item := range receipt.Items {
			values := []interface{}{
				date, vendor, item.Name, item.Category,
				item.Quantity, item.UnitPrice, item.TotalPrice, receiptTotal,
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row)
				f.SetCellValue(sheet, cell, v)
			}
			row++
		}
	}

	if err := f.SetColWidth(sheet, "A", "B", 14); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(sheet, "C", "C", 32); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

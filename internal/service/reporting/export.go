package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/rfdevuser/InventoryManagement/internal/domain/models"
)

const exportSheet = "Fabrics"

var exportHeaders = []string{
	"Submitted At", "Fabric Type", "Colour", "Length (m)", "Width", "Price", "Date of Purchase", "QR Code URL",
}

// ExportWorkbook builds an xlsx workbook of the submissions made in [from, to).
func (s *Service) ExportWorkbook(ctx context.Context, from, to time.Time) (*excelize.File, error) {
	if s.store == nil {
		return nil, ErrJournalDisabled
	}

	entries, err := s.store.ListSubmissions(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("load submissions: %w", err)
	}

	return buildWorkbook(entries, s.location)
}

func buildWorkbook(entries []models.SubmissionEntry, location *time.Location) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#4472C4"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, fmt.Errorf("write header %s: %w", cell, err)
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	if err := f.SetCellStyle(exportSheet, "A1", lastHeader, headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}
	if err := f.SetColWidth(exportSheet, "A", "H", 20); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	for i, entry := range entries {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			entry.SubmittedAt.In(location).Format("2006-01-02 15:04:05"),
			entry.Input.FabricType,
			entry.Input.Colour,
			entry.Input.Length,
			entry.Input.Width,
			entry.Input.Price,
			entry.Input.DateOfPurchase,
			entry.QRCodeURL,
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	return f, nil
}

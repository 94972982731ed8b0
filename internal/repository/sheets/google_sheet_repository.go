package sheets

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/rfdevuser/InventoryManagement/internal/config"
	"github.com/rfdevuser/InventoryManagement/internal/domain/models"
)

// Repository mirrors fabric submissions into a spreadsheet.
type Repository interface {
	AppendSubmission(ctx context.Context, entry models.SubmissionEntry) error
}

// GoogleSheetRepository implements the Repository interface using the official Google Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	sheetRange    string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed repository instance.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Range == "" {
		return nil, fmt.Errorf("sheet range must not be empty")
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		sheetRange:    cfg.Range,
		logger:        logger,
	}, nil
}

// AppendSubmission appends one row per submission to the configured range.
func (r *GoogleSheetRepository) AppendSubmission(ctx context.Context, entry models.SubmissionEntry) error {
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{SubmissionRow(entry)}}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, r.sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append submission into range %s: %w", r.sheetRange, err)
	}

	r.logger.Debug("submission appended to sheet", zap.String("range", r.sheetRange))
	return nil
}

// SubmissionRow lays a submission out in sheet column order.
func SubmissionRow(entry models.SubmissionEntry) []interface{} {
	return []interface{}{
		entry.SubmittedAt.UTC().Format(time.RFC3339),
		entry.Input.FabricType,
		entry.Input.Colour,
		entry.Input.Length,
		entry.Input.Width,
		entry.Input.Price,
		entry.Input.DateOfPurchase,
		entry.QRCodeURL,
	}
}

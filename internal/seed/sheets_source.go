package seed

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"salesdash/internal/core"
)

// SheetsConfig locates the spreadsheet holding the dataset. Columns A..H follow the
// JSON field order: id, title, price, description, category, image, sold, dateOfSale.
type SheetsConfig struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsJSON string
	CredentialsFile string
}

// SheetsSource reads the dataset from a Google Sheet.
type SheetsSource struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

func NewSheetsSource(ctx context.Context, cfg SheetsConfig) (*SheetsSource, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	sheetName := strings.TrimSpace(cfg.SheetName)
	if sheetName == "" {
		sheetName = "Products"
	}

	credentialsJSON, err := loadCredentials(cfg)
	if err != nil {
		return nil, err
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &SheetsSource{svc: svc, spreadsheetID: cfg.SpreadsheetID, sheetName: sheetName}, nil
}

func loadCredentials(cfg SheetsConfig) ([]byte, error) {
	switch {
	case strings.TrimSpace(cfg.CredentialsJSON) != "":
		return []byte(cfg.CredentialsJSON), nil
	case strings.TrimSpace(cfg.CredentialsFile) != "":
		b, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return b, nil
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}
}

func (s *SheetsSource) Name() string { return "sheets" }

func (s *SheetsSource) Fetch(ctx context.Context) ([]core.ProductSale, error) {
	rng := fmt.Sprintf("%s!A:H", s.sheetName)
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("FORMATTED_STRING").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}

	products, skipped := parseSheetRows(resp.Values)
	seedLog().InfoContext(ctx, "Seed dataset read from sheet",
		"range", rng,
		"rows", len(resp.Values),
		"products", len(products),
		"skipped", skipped)
	return products, nil
}

// parseSheetRows converts sheet rows into products. A leading header row whose
// first cell is "id" is ignored; rows without a numeric id are skipped.
func parseSheetRows(values [][]interface{}) ([]core.ProductSale, int) {
	products := make([]core.ProductSale, 0, len(values))
	skipped := 0
	for i, row := range values {
		if i == 0 && strings.EqualFold(strings.TrimSpace(cellString(row, 0)), "id") {
			continue
		}
		if len(row) == 0 {
			continue
		}
		id, ok := cellInt(row, 0)
		if !ok || id == 0 {
			skipped++
			continue
		}
		products = append(products, core.ProductSale{
			ID:          id,
			Title:       cellString(row, 1),
			Price:       cellFloat(row, 2),
			Description: cellString(row, 3),
			Category:    cellString(row, 4),
			Image:       cellString(row, 5),
			Sold:        cellBool(row, 6),
			DateOfSale:  cellString(row, 7),
		})
	}
	return products, skipped
}

func cell(row []interface{}, i int) interface{} {
	if i < len(row) {
		return row[i]
	}
	return nil
}

func cellString(row []interface{}, i int) string {
	switch v := cell(row, i).(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func cellFloat(row []interface{}, i int) *float64 {
	switch v := cell(row, i).(type) {
	case float64:
		return &v
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return &f
		}
	}
	return nil
}

func cellInt(row []interface{}, i int) (int64, bool) {
	f := cellFloat(row, i)
	if f == nil || *f != math.Trunc(*f) {
		return 0, false
	}
	return int64(*f), true
}

func cellBool(row []interface{}, i int) bool {
	return truthy(cell(row, i))
}

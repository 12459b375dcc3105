package table

import (
	"context"
	"fmt"

	"github.com/ukaji3/linksheet-go/pkg/linksheet/models"
	"google.golang.org/api/sheets/v4"
)

const (
	valueInputUserEntered = "USER_ENTERED"
	majorDimensionRows    = "ROWS"
)

// Sheets is a Store backed by a Google Sheets spreadsheet. Region writes are
// queued and sent as a single values batch update on Flush; reads and
// clears go straight to the API.
type Sheets struct {
	svc           *sheets.Service
	spreadsheetID string
	pending       []*sheets.ValueRange
}

// NewSheets creates a Store for the spreadsheet with the given ID.
func NewSheets(svc *sheets.Service, spreadsheetID string) *Sheets {
	return &Sheets{svc: svc, spreadsheetID: spreadsheetID}
}

// SpreadsheetID returns the ID of the backing spreadsheet.
func (s *Sheets) SpreadsheetID() string {
	return s.spreadsheetID
}

// ReadRegion implements Store.
func (s *Sheets) ReadRegion(ctx context.Context, sheet string, region models.Region) ([]models.Row, error) {
	rng, err := FormatRange(sheet, region)
	if err != nil {
		return nil, err
	}
	vr, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).
		MajorDimension(majorDimensionRows).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get values %s: %w", rng, err)
	}

	result := make([]models.Row, region.Rows())
	for i := range result {
		row := make(models.Row, region.Cols())
		for j := range row {
			row[j] = ""
			if i < len(vr.Values) && j < len(vr.Values[i]) {
				row[j] = models.CellText(vr.Values[i][j])
			}
		}
		result[i] = row
	}
	return result, nil
}

// WriteRegion implements Store.
func (s *Sheets) WriteRegion(ctx context.Context, sheet string, origin models.Region, rows []models.Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	region := models.RegionAt(origin.R1, origin.C1, len(rows), models.Width(rows))
	if region.Empty() {
		return nil
	}
	rng, err := FormatRange(sheet, region)
	if err != nil {
		return err
	}
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		// Nil cells are sent as JSON null, which the API skips.
		values[i] = make([]interface{}, len(row))
		copy(values[i], row)
	}
	s.pending = append(s.pending, &sheets.ValueRange{
		Range:          rng,
		MajorDimension: majorDimensionRows,
		Values:         values,
	})
	return nil
}

// ClearRegion implements Store.
func (s *Sheets) ClearRegion(ctx context.Context, sheet string, region models.Region) error {
	if region.Empty() {
		return nil
	}
	rng, err := FormatRange(sheet, region)
	if err != nil {
		return err
	}
	if _, err := s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, rng, &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear values %s: %w", rng, err)
	}
	return nil
}

// Extent implements Store.
func (s *Sheets) Extent(ctx context.Context, sheet string) (models.Region, error) {
	vr, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, QuoteSheet(sheet)).
		MajorDimension(majorDimensionRows).
		Context(ctx).Do()
	if err != nil {
		return models.Region{}, fmt.Errorf("get values %s: %w", sheet, err)
	}
	rows := make([][]string, len(vr.Values))
	for i, row := range vr.Values {
		rows[i] = make([]string, len(row))
		for j, v := range row {
			rows[i][j] = models.CellText(v)
		}
	}
	_, maxRow, _, maxCol := findDataBounds(rows)
	if maxRow < 0 {
		return models.Region{}, nil
	}
	return models.Region{R1: 1, C1: 1, R2: maxRow + 1, C2: maxCol + 1}, nil
}

// Cell implements Store.
func (s *Sheets) Cell(ctx context.Context, sheet string, row, col int) (string, error) {
	rows, err := s.ReadRegion(ctx, sheet, models.RegionAt(row, col, 1, 1))
	if err != nil {
		return "", err
	}
	return rows[0].Text(0), nil
}

// SetCell implements Store.
func (s *Sheets) SetCell(ctx context.Context, sheet string, row, col int, value any) error {
	return s.WriteRegion(ctx, sheet, models.RegionAt(row, col, 1, 1), []models.Row{{value}})
}

// Flush implements Store.
func (s *Sheets) Flush(ctx context.Context) error {
	if len(s.pending) == 0 {
		return nil
	}
	req := &sheets.BatchUpdateValuesRequest{
		ValueInputOption: valueInputUserEntered,
		Data:             s.pending,
	}
	if _, err := s.svc.Spreadsheets.Values.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("batch update values: %w", err)
	}
	s.pending = nil
	return nil
}

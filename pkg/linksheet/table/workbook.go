package table

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/ukaji3/linksheet-go/pkg/linksheet/models"
	"github.com/xuri/excelize/v2"
)

// defaultSheet is the sheet excelize.NewFile creates.
const defaultSheet = "Sheet1"

// Workbook is a Store backed by a local xlsx file. Writes stay in memory
// until Flush saves the file, so a failed run leaves the file untouched.
type Workbook struct {
	f     *excelize.File
	path  string
	dirty bool
}

// OpenWorkbook opens the xlsx file at path, creating it if it does not
// exist, and makes sure every named sheet is present.
func OpenWorkbook(path string, sheets ...string) (*Workbook, error) {
	var f *excelize.File
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		f = excelize.NewFile()
	} else {
		f, err = excelize.OpenFile(path)
		if err != nil {
			return nil, err
		}
	}

	wb := &Workbook{f: f, path: path}
	for i, name := range sheets {
		if i == 0 && f.Path == "" {
			// Fresh file: reuse the default sheet for the first one.
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				f.Close()
				return nil, err
			}
			wb.dirty = true
			continue
		}
		if err := wb.ensureSheet(name); err != nil {
			f.Close()
			return nil, err
		}
	}
	return wb, nil
}

// Path returns the file the workbook is saved to.
func (w *Workbook) Path() string {
	return w.path
}

// Close releases the workbook without saving.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// ReadRegion implements Store.
func (w *Workbook) ReadRegion(_ context.Context, sheet string, region models.Region) ([]models.Row, error) {
	result := make([]models.Row, region.Rows())
	for i := range result {
		row := make(models.Row, region.Cols())
		for j := range row {
			row[j] = ""
		}
		result[i] = row
	}
	if !w.hasSheet(sheet) {
		return result, nil
	}

	rows, err := w.f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	for i := range result {
		rowIdx := region.R1 - 1 + i
		if rowIdx >= len(rows) {
			break
		}
		for j := range result[i] {
			colIdx := region.C1 - 1 + j
			if colIdx < len(rows[rowIdx]) {
				result[i][j] = rows[rowIdx][colIdx]
			}
		}
	}
	return result, nil
}

// WriteRegion implements Store. Strings are entered the way a user typing
// them would: numeric text is stored as a number.
func (w *Workbook) WriteRegion(ctx context.Context, sheet string, origin models.Region, rows []models.Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := w.ensureSheet(sheet); err != nil {
		return err
	}
	for i, row := range rows {
		for j, v := range row {
			if v == nil {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(origin.C1+j, origin.R1+i)
			if err != nil {
				return err
			}
			if err := w.f.SetCellValue(sheet, cellName, userEntered(v)); err != nil {
				return err
			}
			w.dirty = true
		}
	}
	return nil
}

// ClearRegion implements Store.
func (w *Workbook) ClearRegion(ctx context.Context, sheet string, region models.Region) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !w.hasSheet(sheet) || region.Empty() {
		return nil
	}
	for r := region.R1; r <= region.R2; r++ {
		for c := region.C1; c <= region.C2; c++ {
			cellName, err := excelize.CoordinatesToCellName(c, r)
			if err != nil {
				return err
			}
			if err := w.f.SetCellValue(sheet, cellName, nil); err != nil {
				return err
			}
		}
	}
	w.dirty = true
	return nil
}

// Extent implements Store.
func (w *Workbook) Extent(_ context.Context, sheet string) (models.Region, error) {
	if !w.hasSheet(sheet) {
		return models.Region{}, nil
	}
	rows, err := w.f.GetRows(sheet)
	if err != nil {
		return models.Region{}, err
	}
	_, maxRow, _, maxCol := findDataBounds(rows)
	if maxRow < 0 {
		return models.Region{}, nil
	}
	return models.Region{R1: 1, C1: 1, R2: maxRow + 1, C2: maxCol + 1}, nil
}

// Cell implements Store.
func (w *Workbook) Cell(_ context.Context, sheet string, row, col int) (string, error) {
	if !w.hasSheet(sheet) {
		return "", nil
	}
	cellName, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", err
	}
	return w.f.GetCellValue(sheet, cellName)
}

// SetCell implements Store.
func (w *Workbook) SetCell(ctx context.Context, sheet string, row, col int, value any) error {
	return w.WriteRegion(ctx, sheet, models.RegionAt(row, col, 1, 1), []models.Row{{value}})
}

// Flush implements Store.
func (w *Workbook) Flush(ctx context.Context) error {
	if !w.dirty {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := w.f.SaveAs(w.path); err != nil {
		return fmt.Errorf("save %s: %w", w.path, err)
	}
	w.dirty = false
	return nil
}

func (w *Workbook) hasSheet(name string) bool {
	idx, err := w.f.GetSheetIndex(name)
	return err == nil && idx >= 0
}

func (w *Workbook) ensureSheet(name string) error {
	if w.hasSheet(name) {
		return nil
	}
	if _, err := w.f.NewSheet(name); err != nil {
		return err
	}
	w.dirty = true
	return nil
}

// findDataBounds finds the bounding box of non-empty cells (0-based).
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell != "" {
				if minRow < 0 || rowIdx < minRow {
					minRow = rowIdx
				}
				if maxRow < 0 || rowIdx > maxRow {
					maxRow = rowIdx
				}
				if minCol < 0 || colIdx < minCol {
					minCol = colIdx
				}
				if maxCol < 0 || colIdx > maxCol {
					maxCol = colIdx
				}
			}
		}
	}

	return
}

// userEntered converts string values that parse as numbers, mirroring how a
// spreadsheet interprets typed input. Other values pass through.
func userEntered(v any) any {
	if s, ok := v.(string); ok {
		return parseValue(s)
	}
	return v
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or s unchanged.
func parseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float; NaN and Inf spellings stay text
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	// Return as string
	return s
}

// Package table provides the tabular storage surface of the link sheet and
// the reconciling writer that preserves user edits between syncs.
package table

import (
	"context"

	"github.com/ukaji3/linksheet-go/pkg/linksheet/models"
)

// Store is a workbook exposing named, two-dimensional sheets.
//
// Regions are 1-based and inclusive. Writes are buffered or sent as the
// backend allows; Flush makes them durable.
type Store interface {
	// ReadRegion returns the displayed values of the region, padded with ""
	// so the result is exactly region.Rows() x region.Cols().
	ReadRegion(ctx context.Context, sheet string, region models.Region) ([]models.Row, error)
	// WriteRegion bulk-writes rows (row-major) with their top-left cell at
	// origin. Nil cells are skipped.
	WriteRegion(ctx context.Context, sheet string, origin models.Region, rows []models.Row) error
	// ClearRegion empties every cell of the region.
	ClearRegion(ctx context.Context, sheet string, region models.Region) error
	// Extent returns the data range of the sheet anchored at A1. The region
	// is empty when the sheet holds no values.
	Extent(ctx context.Context, sheet string) (models.Region, error)
	// Cell returns the displayed value of a single cell.
	Cell(ctx context.Context, sheet string, row, col int) (string, error)
	// SetCell writes a single cell.
	SetCell(ctx context.Context, sheet string, row, col int, value any) error
	// Flush persists pending writes.
	Flush(ctx context.Context) error
}

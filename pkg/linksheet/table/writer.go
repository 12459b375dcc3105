package table

import (
	"context"
	"fmt"

	"github.com/ukaji3/linksheet-go/pkg/linksheet/models"
	"go.uber.org/zap"
)

// Writer writes a full table into one sheet of a Store, keeping user edits
// of the editable column and clearing rows left over from a larger table.
type Writer struct {
	store  Store
	sheet  string
	logger *zap.Logger
}

// NewWriter creates a Writer for the named sheet. A nil logger is replaced
// by a no-op logger.
func NewWriter(store Store, sheet string, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{store: store, sheet: sheet, logger: logger}
}

// Write reconciles fresh against the sheet and replaces the table with it.
// It returns the rows as written, nil cells marking preserved edits.
func (w *Writer) Write(ctx context.Context, fresh []models.Row) ([]models.Row, error) {
	width := models.Width(fresh)
	region := models.RegionAt(1, 1, len(fresh), width)

	var existing []models.Row
	if !region.Empty() {
		rows, err := w.store.ReadRegion(ctx, w.sheet, region)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", w.sheet, err)
		}
		existing = rows
	}

	out := Reconcile(existing, fresh)
	w.logPreserved(out, fresh)

	extent, err := w.store.Extent(ctx, w.sheet)
	if err != nil {
		return nil, fmt.Errorf("extent of %s: %w", w.sheet, err)
	}
	if surplus, ok := Surplus(extent, len(out)); ok {
		w.logger.Debug("Clearing surplus rows",
			zap.String("sheet", w.sheet),
			zap.Int("from_row", surplus.R1),
			zap.Int("to_row", surplus.R2),
			zap.Int("cols", surplus.Cols()))
		if err := w.store.ClearRegion(ctx, w.sheet, surplus); err != nil {
			return nil, fmt.Errorf("clear %s: %w", w.sheet, err)
		}
	}

	if len(out) > 0 {
		if err := w.store.WriteRegion(ctx, w.sheet, region, out); err != nil {
			return nil, fmt.Errorf("write %s: %w", w.sheet, err)
		}
	}
	if err := w.store.Flush(ctx); err != nil {
		return nil, fmt.Errorf("flush %s: %w", w.sheet, err)
	}
	return out, nil
}

// Surplus returns the trailing rows of extent beyond the first rows rows,
// spanning the full extent width.
func Surplus(extent models.Region, rows int) (models.Region, bool) {
	if extent.Empty() || extent.R2 <= rows {
		return models.Region{}, false
	}
	return models.Region{R1: rows + 1, C1: 1, R2: extent.R2, C2: extent.C2}, true
}

func (w *Writer) logPreserved(out, fresh []models.Row) {
	for r := range out {
		if len(out[r]) > EditableColumn && out[r][EditableColumn] == nil && fresh[r][EditableColumn] != nil {
			w.logger.Debug("Keeping user edit",
				zap.String("sheet", w.sheet),
				zap.Int("row", r+1),
				zap.String("computed", models.CellText(fresh[r][EditableColumn])))
		}
	}
}

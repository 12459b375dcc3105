package table

import "github.com/ukaji3/linksheet-go/pkg/linksheet/models"

// EditableColumn is the only column whose user edits survive a sync.
const EditableColumn = 0

// Reconcile merges freshly computed rows with the rows persisted in the sheet.
//
// For each row only column 0 is compared: when the persisted cell is
// non-empty, the fresh value is non-nil and the two differ, the user edited
// the cell and the output cell is nil so the write leaves it alone. Every
// other cell of fresh wins, nil included. Neither input is modified.
func Reconcile(existing, fresh []models.Row) []models.Row {
	out := make([]models.Row, len(fresh))
	for r, row := range fresh {
		out[r] = row.Clone()
		if r >= len(existing) || len(row) <= EditableColumn {
			continue
		}
		persisted := existing[r].Text(EditableColumn)
		computed := row[EditableColumn]
		if persisted != "" && computed != nil && persisted != models.CellText(computed) {
			out[r][EditableColumn] = nil
		}
	}
	return out
}

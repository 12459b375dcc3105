package models

import (
	"fmt"
	"strconv"
)

// Header is the first row written to the link directory sheet.
var Header = Row{"title", "comment", "counts", "long", "short"}

// Row is a positional tuple of cell values in sheet order.
// A nil cell means "leave the persisted value untouched".
type Row []any

// Text returns the display text of column c, or "" if the column is
// missing or nil.
func (r Row) Text(c int) string {
	if c < 0 || c >= len(r) {
		return ""
	}
	return CellText(r[c])
}

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// CellText formats a cell value the way a sheet displays it.
func CellText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case *string:
		if val == nil {
			return ""
		}
		return *val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	default:
		return fmt.Sprint(val)
	}
}

// Width returns the length of the widest row.
func Width(rows []Row) int {
	w := 0
	for _, r := range rows {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}

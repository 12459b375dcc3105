package models

// Region represents 1-based, inclusive cell coordinate bounds on a sheet.
type Region struct {
	// R1 is the start row (1-based).
	R1 int `json:"r1"`
	// C1 is the start column (1-based).
	C1 int `json:"c1"`
	// R2 is the end row (1-based, inclusive).
	R2 int `json:"r2"`
	// C2 is the end column (1-based, inclusive).
	C2 int `json:"c2"`
}

// RegionAt returns the region of rows x cols cells anchored at (row, col).
func RegionAt(row, col, rows, cols int) Region {
	return Region{R1: row, C1: col, R2: row + rows - 1, C2: col + cols - 1}
}

// Empty reports whether the region covers no cells.
func (r Region) Empty() bool {
	return r.R2 < r.R1 || r.C2 < r.C1 || r.R1 < 1 || r.C1 < 1
}

// Rows returns the number of rows covered.
func (r Region) Rows() int {
	if r.Empty() {
		return 0
	}
	return r.R2 - r.R1 + 1
}

// Cols returns the number of columns covered.
func (r Region) Cols() int {
	if r.Empty() {
		return 0
	}
	return r.C2 - r.C1 + 1
}

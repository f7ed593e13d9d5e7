package energy

import "fmt"

// Table is a dense row-major energy table.
type Table struct {
	rows   int
	cols   int
	values []float64
}

// NewTable creates a zeroed rows x cols table.
func NewTable(rows, cols int) *Table {
	return &Table{rows: rows, cols: cols, values: make([]float64, rows*cols)}
}

// Rows returns the number of rows.
func (t *Table) Rows() int { return t.rows }

// Cols returns the number of columns.
func (t *Table) Cols() int { return t.cols }

// At returns the value at row, col. It panics on out of range access.
func (t *Table) At(row, col int) float64 {
	return t.values[t.index(row, col)]
}

// Set stores v at row, col. It panics on out of range access.
func (t *Table) Set(row, col int, v float64) {
	t.values[t.index(row, col)] = v
}

// Values returns the row-major value slice. Callers must not modify it.
func (t *Table) Values() []float64 {
	return t.values
}

func (t *Table) index(row, col int) int {
	if row < 0 || row >= t.rows || col < 0 || col >= t.cols {
		panic(fmt.Sprintf("energy table index (%d,%d) out of range %dx%d", row, col, t.rows, t.cols))
	}
	return row*t.cols + col
}

package table

import (
	"slices"
	"sort"
)

// Table is an immutable, in-memory table of nullable scalar cells.
//
// A table may carry a row index: a list of named index levels whose values
// identify each row. Index levels are not part of Columns. Long-form tables
// have no index, wide-form tables produced by Pivot are indexed by the pivot
// keys.
type Table struct {
	index   []string
	columns []string
	keys    [][]any
	rows    [][]any
}

// New creates an unindexed table. Each row must have one cell per column,
// short rows are padded with nil.
func New(columns []string, rows [][]any) *Table {
	t := &Table{
		columns: slices.Clone(columns),
		rows:    make([][]any, 0, len(rows)),
	}

	for _, r := range rows {
		t.rows = append(t.rows, pad(r, len(columns)))
	}

	return t
}

// FromRecords builds an unindexed table from a list of column→value records.
// Columns that are not named in trailing are sorted alphabetically and placed
// first, followed by the trailing columns in the given order. Cells for
// columns a record lacks are nil.
func FromRecords(records []map[string]any, trailing ...string) *Table {
	isTrailing := map[string]bool{}
	for _, c := range trailing {
		isTrailing[c] = true
	}

	seen := map[string]bool{}
	leading := []string{}

	for _, rec := range records {
		for k := range rec {
			if isTrailing[k] || seen[k] {
				continue
			}
			seen[k] = true
			leading = append(leading, k)
		}
	}

	sort.Strings(leading)
	columns := append(leading, trailing...)

	rows := make([][]any, 0, len(records))
	for _, rec := range records {
		row := make([]any, len(columns))
		for i, c := range columns {
			row[i] = rec[c]
		}
		rows = append(rows, row)
	}

	return &Table{columns: columns, rows: rows}
}

func pad(row []any, n int) []any {
	r := make([]any, n)
	copy(r, row)
	return r
}

// Columns returns the column names, not including index levels.
func (t *Table) Columns() []string {
	return slices.Clone(t.columns)
}

// IndexNames returns the names of the index levels, or nil for an unindexed table.
func (t *Table) IndexNames() []string {
	return slices.Clone(t.index)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Key returns the index values of row i.
func (t *Table) Key(i int) []any {
	if t.keys == nil {
		return nil
	}
	return slices.Clone(t.keys[i])
}

// Row returns a copy of the cells of row i, in column order.
func (t *Table) Row(i int) []any {
	return slices.Clone(t.rows[i])
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	return slices.Index(t.columns, name)
}

// Value returns the cell at row i in the named column. The second return
// value is false when the column does not exist.
func (t *Table) Value(i int, column string) (any, bool) {
	c := t.ColumnIndex(column)
	if c < 0 {
		return nil, false
	}
	return t.rows[i][c], true
}

// Lookup finds the row whose index values match key and returns the cell in
// the named column.
func (t *Table) Lookup(key []any, column string) (any, bool) {
	c := t.ColumnIndex(column)
	if c < 0 {
		return nil, false
	}

	want := keyOf(key)
	for i, k := range t.keys {
		if keyOf(k) == want {
			return t.rows[i][c], true
		}
	}

	return nil, false
}

// Reindex returns a table with exactly the given columns in the given order.
// Columns missing from t are filled with nil, columns not named are dropped.
// The index is kept.
func (t *Table) Reindex(columns ...string) *Table {
	positions := make([]int, len(columns))
	for i, c := range columns {
		positions[i] = t.ColumnIndex(c)
	}

	rows := make([][]any, 0, len(t.rows))
	for _, r := range t.rows {
		row := make([]any, len(columns))
		for i, p := range positions {
			if p >= 0 {
				row[i] = r[p]
			}
		}
		rows = append(rows, row)
	}

	return &Table{
		index:   t.index,
		columns: slices.Clone(columns),
		keys:    t.keys,
		rows:    rows,
	}
}

// RenameColumns returns a table whose column names are rename(name). Cells
// and index are shared with t.
func (t *Table) RenameColumns(rename func(string) string) *Table {
	columns := make([]string, len(t.columns))
	for i, c := range t.columns {
		columns[i] = rename(c)
	}

	return &Table{
		index:   t.index,
		columns: columns,
		keys:    t.keys,
		rows:    t.rows,
	}
}

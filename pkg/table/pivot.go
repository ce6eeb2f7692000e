package table

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// ColumnNameFunc flattens a (value field, column key) pair into a column name.
type ColumnNameFunc func(field, key string) string

// JoinColumnName joins field and key with an underscore, or returns field
// alone when key is empty or zero.
func JoinColumnName(field, key string) string {
	if key == "" || key == "0" {
		return field
	}
	return field + "_" + key
}

// Pivot reshapes a long-form table into wide form. Rows are grouped by the
// index columns, the distinct values of the columns column are spread over
// the column axis and every value field becomes a group of wide columns.
//
// Rows of the result are sorted by index, wide columns are grouped by value
// field in the given order and sorted by column key within each group.
// Pivot fails with a *ShapeError if two source rows share both index and
// column key.
func Pivot(t *Table, index []string, columns string, values []string, name ColumnNameFunc) (*Table, error) {
	if name == nil {
		name = JoinColumnName
	}

	indexPos := make([]int, len(index))
	for i, c := range index {
		indexPos[i] = t.ColumnIndex(c)
	}

	valuePos := make([]int, len(values))
	for i, c := range values {
		valuePos[i] = t.ColumnIndex(c)
	}

	columnPos := t.ColumnIndex(columns)

	type cellKey struct{ row, col string }

	rowKeys := map[string][]any{}
	colKeys := map[string]any{}
	cells := map[cellKey][]any{}

	for _, r := range t.rows {
		key := make([]any, len(index))
		for i, p := range indexPos {
			if p >= 0 {
				key[i] = r[p]
			}
		}

		var colValue any
		if columnPos >= 0 {
			colValue = r[columnPos]
		}

		rk, ck := keyOf(key), keyOf([]any{colValue})
		if _, dup := cells[cellKey{rk, ck}]; dup {
			return nil, &ShapeError{Index: key, Column: colValue}
		}

		vals := make([]any, len(values))
		for i, p := range valuePos {
			if p >= 0 {
				vals[i] = r[p]
			}
		}

		cells[cellKey{rk, ck}] = vals
		rowKeys[rk] = key
		colKeys[ck] = colValue
	}

	sortedRows := make([][]any, 0, len(rowKeys))
	for _, k := range rowKeys {
		sortedRows = append(sortedRows, k)
	}
	slices.SortFunc(sortedRows, compareKeys)

	sortedCols := make([]any, 0, len(colKeys))
	for _, c := range colKeys {
		sortedCols = append(sortedCols, c)
	}
	slices.SortFunc(sortedCols, compareValues)

	wideColumns := make([]string, 0, len(values)*len(sortedCols))
	for _, field := range values {
		for _, c := range sortedCols {
			wideColumns = append(wideColumns, name(field, cast.ToString(c)))
		}
	}

	wide := &Table{
		index:   slices.Clone(index),
		columns: wideColumns,
		keys:    sortedRows,
		rows:    make([][]any, 0, len(sortedRows)),
	}

	for _, key := range sortedRows {
		rk := keyOf(key)
		row := make([]any, 0, len(wideColumns))
		for v := range values {
			for _, c := range sortedCols {
				if vals, ok := cells[cellKey{rk, keyOf([]any{c})}]; ok {
					row = append(row, vals[v])
				} else {
					row = append(row, nil)
				}
			}
		}
		wide.rows = append(wide.rows, row)
	}

	return wide, nil
}

// keyOf renders a list of cell values as a string usable as a map key.
// nil and the empty string are kept apart, as are values of different types
// with the same text.
func keyOf(values []any) string {
	var sb strings.Builder
	for _, v := range values {
		if v == nil {
			sb.WriteString("\x00")
		} else {
			fmt.Fprintf(&sb, "\x01%T:", v)
			sb.WriteString(cast.ToString(v))
		}
		sb.WriteString("\x1f")
	}
	return sb.String()
}

func compareKeys(a, b []any) int {
	for i := range min(len(a), len(b)) {
		if c := compareValues(a[i], b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

// compareValues orders numbers numerically, everything else by its text.
// nil sorts last.
func compareValues(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return 1
		default:
			return -1
		}
	}

	as, bs := cast.ToString(a), cast.ToString(b)

	af, aerr := strconv.ParseFloat(as, 64)
	bf, berr := strconv.ParseFloat(bs, 64)

	if aerr == nil && berr == nil {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		}
	}

	if c := strings.Compare(as, bs); c != 0 {
		return c
	}

	return strings.Compare(fmt.Sprintf("%T", a), fmt.Sprintf("%T", b))
}

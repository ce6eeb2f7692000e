package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/diwise/attribute-table/pkg/table"
	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/spf13/cast"
)

type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Missing is printed in text output for nil cells.
const Missing string = "NaN"

type WriterFunc func(w io.Writer, t *table.Table) error

func ForFormat(format string) (WriterFunc, error) {
	switch Format(strings.ToLower(format)) {
	case FormatText:
		return Text, nil
	case FormatCSV:
		return CSV, nil
	case FormatJSON:
		return JSON, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

func ContentType(format Format) string {
	switch format {
	case FormatCSV:
		return "text/csv"
	case FormatText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// header returns the index names followed by the column names.
func header(t *table.Table) []string {
	return append(t.IndexNames(), t.Columns()...)
}

// record returns the index values followed by the cells of row i.
func record(t *table.Table, i int) []any {
	return append(t.Key(i), t.Row(i)...)
}

// Text writes the table as aligned columns without truncating anything.
func Text(w io.Writer, t *table.Table) error {
	if t == nil {
		_, err := fmt.Fprintln(w, "Empty table")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, strings.Join(header(t), "\t"))

	for i := range t.Len() {
		cells := record(t, i)
		text := make([]string, len(cells))
		for c, v := range cells {
			if v == nil {
				text[c] = Missing
			} else {
				text[c] = cast.ToString(v)
			}
		}
		fmt.Fprintln(tw, strings.Join(text, "\t"))
	}

	return tw.Flush()
}

// CSV writes a header row followed by one row per record. nil cells are empty.
func CSV(w io.Writer, t *table.Table) error {
	cw := csv.NewWriter(w)

	if t != nil {
		if err := cw.Write(header(t)); err != nil {
			return err
		}

		for i := range t.Len() {
			cells := record(t, i)
			text := make([]string, len(cells))
			for c, v := range cells {
				text[c] = cast.ToString(v)
			}
			if err := cw.Write(text); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// JSON writes an array with one object per row, keys in column order. Cells
// of columns sharing a name are collected into an array under that name.
func JSON(w io.Writer, t *table.Table) error {
	rows := []*orderedmap.OrderedMap{}

	if t != nil {
		names := header(t)

		count := map[string]int{}
		for _, n := range names {
			count[n]++
		}

		for i := range t.Len() {
			row := orderedmap.New()
			shared := map[string][]any{}

			for c, v := range record(t, i) {
				name := names[c]
				if count[name] == 1 {
					row.Set(name, v)
					continue
				}

				shared[name] = append(shared[name], v)
				row.Set(name, shared[name])
			}

			rows = append(rows, row)
		}
	}

	return json.NewEncoder(w).Encode(rows)
}

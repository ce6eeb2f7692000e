package table

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/matryer/is"
)

func TestFromRecordsOrdersLeadingColumnsAndKeepsTrailingOrder(t *testing.T) {
	is := is.New(t)

	tbl := FromRecords([]map[string]any{
		{"b": 1, "label": "x", "id": 1},
		{"a": 2, "label": "y", "id": 2},
	}, "label", "id")

	is.Equal(tbl.Columns(), []string{"a", "b", "label", "id"})
	is.Equal(tbl.Len(), 2)

	v, ok := tbl.Value(0, "a")
	is.True(ok)
	is.Equal(v, nil) // first record has no "a"
}

func TestReindexFillsMissingColumnsWithNil(t *testing.T) {
	is := is.New(t)

	tbl := New([]string{"id", "name", "extra"}, [][]any{
		{1, "one", true},
		{2, "two", false},
	})

	projected := tbl.Reindex("id", "objectType.id")

	is.Equal(projected.Columns(), []string{"id", "objectType.id"})
	is.Equal(projected.Len(), 2)

	for i := range projected.Len() {
		v, ok := projected.Value(i, "objectType.id")
		is.True(ok)
		is.Equal(v, nil) // synthesized column must be all nil
	}

	is.Equal(tbl.Columns(), []string{"id", "name", "extra"}) // source is untouched
}

func TestReindexOfEmptyTable(t *testing.T) {
	is := is.New(t)

	projected := New(nil, nil).Reindex("a", "b")

	is.Equal(projected.Columns(), []string{"a", "b"})
	is.Equal(projected.Len(), 0)
}

func TestPivotSpreadsValuesAcrossColumns(t *testing.T) {
	is := is.New(t)

	long := New([]string{"label", "id", "attr", "val"}, [][]any{
		{"B", 2, 20, "b20"},
		{"A", 1, 10, "a10"},
		{"A", 1, 20, "a20"},
	})

	wide, err := Pivot(long, []string{"label", "id"}, "attr", []string{"val"}, nil)
	is.NoErr(err)

	is.Equal(wide.IndexNames(), []string{"label", "id"})
	is.Equal(wide.Columns(), []string{"val_10", "val_20"})
	is.Equal(wide.Len(), 2)

	want := [][]any{
		{"a10", "a20"},
		{nil, "b20"},
	}
	got := [][]any{wide.Row(0), wide.Row(1)}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected wide rows (-want +got):\n%s", diff)
	}

	is.Equal(wide.Key(0), []any{"A", 1})

	v, ok := wide.Lookup([]any{"B", 2}, "val_10")
	is.True(ok)
	is.Equal(v, nil)
}

func TestPivotSortsNumericColumnKeysNumerically(t *testing.T) {
	is := is.New(t)

	long := New([]string{"k", "attr", "val"}, [][]any{
		{"x", "100", 1},
		{"x", "9", 2},
		{"x", "25", 3},
	})

	wide, err := Pivot(long, []string{"k"}, "attr", []string{"val"}, nil)
	is.NoErr(err)

	is.Equal(wide.Columns(), []string{"val_9", "val_25", "val_100"})
}

func TestPivotWithMissingColumnKeyUsesFieldName(t *testing.T) {
	is := is.New(t)

	long := New([]string{"k", "attr", "val"}, [][]any{
		{"x", nil, 1},
	})

	wide, err := Pivot(long, []string{"k"}, "attr", []string{"val"}, nil)
	is.NoErr(err)

	is.Equal(wide.Columns(), []string{"val"})
}

func TestPivotFailsOnDuplicateKeys(t *testing.T) {
	is := is.New(t)

	long := New([]string{"label", "id", "attr", "val"}, [][]any{
		{"A", 1, 10, "first"},
		{"A", 1, 10, "second"},
	})

	_, err := Pivot(long, []string{"label", "id"}, "attr", []string{"val"}, nil)
	is.True(err != nil) // duplicate (index, column) pair must fail

	var shapeErr *ShapeError
	is.True(errors.As(err, &shapeErr))
	is.True(errors.Is(err, ErrAmbiguousPivotKey))
	is.Equal(shapeErr.Column, 10)
}

func TestPivotWithZeroColumnKeyUsesFieldName(t *testing.T) {
	is := is.New(t)

	long := New([]string{"k", "attr", "val"}, [][]any{
		{"x", 0, "zero"},
		{"x", 7, "seven"},
	})

	wide, err := Pivot(long, []string{"k"}, "attr", []string{"val"}, nil)
	is.NoErr(err)

	is.Equal(wide.Columns(), []string{"val", "val_7"})
	is.Equal(JoinColumnName("val", "0"), "val")
	is.Equal(JoinColumnName("val", "10"), "val_10")
}

func TestPivotKeepsIndexValuesOfDifferentTypesApart(t *testing.T) {
	is := is.New(t)

	long := New([]string{"label", "id", "attr", "val"}, [][]any{
		{"A", 1, 10, "number"},
		{"A", "1", 10, "string"},
	})

	wide, err := Pivot(long, []string{"label", "id"}, "attr", []string{"val"}, nil)
	is.NoErr(err)

	is.Equal(wide.Len(), 2)

	v, ok := wide.Lookup([]any{"A", 1}, "val_10")
	is.True(ok)
	is.Equal(v, "number")

	v, ok = wide.Lookup([]any{"A", "1"}, "val_10")
	is.True(ok)
	is.Equal(v, "string")
}

func TestRenameColumnsLeavesIndexAlone(t *testing.T) {
	is := is.New(t)

	long := New([]string{"label", "attr", "displayValue"}, [][]any{{"A", 1, "v"}})
	wide, err := Pivot(long, []string{"label"}, "attr", []string{"displayValue"}, nil)
	is.NoErr(err)

	renamed := wide.RenameColumns(func(s string) string {
		return ReplaceSubstrings(s, []Replacement{{Old: "displayValue", New: "attrib_val"}})
	})

	is.Equal(renamed.Columns(), []string{"attrib_val_1"})
	is.Equal(renamed.IndexNames(), []string{"label"})
	is.Equal(wide.Columns(), []string{"displayValue_1"})
}

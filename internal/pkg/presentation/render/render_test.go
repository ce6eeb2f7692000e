package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/diwise/attribute-table/pkg/table"
	"github.com/matryer/is"
)

func TestTextPrintsIndexAndAllColumns(t *testing.T) {
	is := is.New(t)

	buf := &bytes.Buffer{}
	is.NoErr(Text(buf, testTable(t)))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	is.Equal(len(lines), 3) // header and two rows

	is.Equal(strings.Fields(lines[0]), []string{"label", "id", "attrib_val_500", "RefObjType.id_600"})
	is.Equal(strings.Fields(lines[1]), []string{"A", "1", "Linux", "99"})
	is.Equal(strings.Fields(lines[2]), []string{"B", "2", "NaN", "NaN"})
}

func TestTextWithoutTable(t *testing.T) {
	is := is.New(t)

	buf := &bytes.Buffer{}
	is.NoErr(Text(buf, nil))
	is.Equal(buf.String(), "Empty table\n")
}

func TestCSV(t *testing.T) {
	is := is.New(t)

	buf := &bytes.Buffer{}
	is.NoErr(CSV(buf, testTable(t)))

	is.Equal(buf.String(), "label,id,attrib_val_500,RefObjType.id_600\nA,1,Linux,99\nB,2,,\n")
}

func TestJSONKeepsColumnOrder(t *testing.T) {
	is := is.New(t)

	buf := &bytes.Buffer{}
	is.NoErr(JSON(buf, testTable(t)))

	is.Equal(
		strings.TrimSpace(buf.String()),
		`[{"label":"A","id":1,"attrib_val_500":"Linux","RefObjType.id_600":99},{"label":"B","id":2,"attrib_val_500":null,"RefObjType.id_600":null}]`,
	)
}

func TestJSONCollectsSharedColumnNames(t *testing.T) {
	is := is.New(t)

	long := table.New([]string{"id", "attr", "v"}, [][]any{{1, "a", "x"}, {1, "b", "y"}})
	wide, err := table.Pivot(long, []string{"id"}, "attr", []string{"v"}, func(field, key string) string { return field })
	is.NoErr(err)

	buf := &bytes.Buffer{}
	is.NoErr(JSON(buf, wide))

	var rows []map[string]any
	is.NoErr(json.Unmarshal(buf.Bytes(), &rows))
	is.Equal(rows[0]["v"], []any{"x", "y"})
}

func TestForFormat(t *testing.T) {
	is := is.New(t)

	for _, f := range []string{"text", "CSV", "json"} {
		_, err := ForFormat(f)
		is.NoErr(err)
	}

	_, err := ForFormat("xml")
	is.True(err != nil) // unknown format should fail

	is.Equal(ContentType(FormatCSV), "text/csv")
	is.Equal(ContentType(FormatJSON), "application/json")
}

func testTable(t *testing.T) *table.Table {
	long := table.New([]string{"label", "id", "attr", "attrib_val", "RefObjType.id"}, [][]any{
		{"A", 1, 500, "Linux", nil},
		{"A", 1, 600, nil, 99},
		{"B", 2, 700, nil, nil},
	})

	wide, err := table.Pivot(long, []string{"label", "id"}, "attr", []string{"attrib_val", "RefObjType.id"}, table.JoinColumnName)
	if err != nil {
		t.Fatal(err)
	}

	return wide.Reindex("attrib_val_500", "RefObjType.id_600")
}

package attributetable

import (
	"github.com/diwise/attribute-table/pkg/assets"
	"github.com/diwise/attribute-table/pkg/table"
)

// AttributeTypeColumns are the columns kept from the attribute type table.
var AttributeTypeColumns = []string{
	assets.ID,
	assets.DeclaringObjectTypeID,
}

// AttributeColumns are the columns kept from the object attribute table.
var AttributeColumns = []string{
	assets.Label,
	assets.ID,
	assets.DisplayValue,
	assets.ReferencedType,
	assets.AttributeTypeIDPath,
	assets.ReferencedObjectTypeName,
	assets.ReferencedObjectTypeID,
}

// IndexColumns identify an object in the wide table.
var IndexColumns = []string{assets.Label, assets.ID}

// ValueColumns are spread over the attribute ids when pivoting.
var ValueColumns = []string{
	assets.DisplayValue,
	assets.ReferencedObjectTypeName,
	assets.ReferencedObjectTypeID,
}

// FlattenObjectAttributes emits one row per attribute value. Each row holds
// the leaves of the value record, the attribute type id and the label and id
// of the owning object. Fields that are missing anywhere along the way become
// nil cells.
//
// An object's attributes may either be a single object or a list of
// attribute entries, each with an objectTypeAttributeId and its own list of
// objectAttributeValues. The id of the enclosing entry takes precedence over
// an attributes.objectTypeAttributeId found inside the value itself.
func FlattenObjectAttributes(objects []assets.Record) *table.Table {
	rows := []map[string]any{}

	for _, obj := range objects {
		label := assets.Field(obj, assets.Label)
		id := assets.Field(obj, assets.ID)

		for _, attr := range assets.Records(assets.Field(obj, assets.Attributes)) {
			attrTypeID, hasAttrTypeID := attr[assets.ObjectTypeAttributeID]

			for _, value := range assets.Records(attr[assets.ObjectAttributeValues]) {
				row := assets.Leaves(value)

				if hasAttrTypeID {
					row[assets.AttributeTypeIDPath] = attrTypeID
				}

				row[assets.Label] = label
				row[assets.ID] = id

				rows = append(rows, row)
			}
		}
	}

	return table.FromRecords(rows, assets.Label, assets.ID, assets.AttributeTypeIDPath)
}

// FlattenAttributeTypes emits one row per attribute type definition with the
// leaves of the definition as columns.
func FlattenAttributeTypes(definitions []assets.Record) *table.Table {
	rows := make([]map[string]any, 0, len(definitions))

	for _, def := range definitions {
		rows = append(rows, assets.Leaves(def))
	}

	return table.FromRecords(rows, assets.ID, assets.DeclaringObjectTypeID, assets.DeclaringObjectTypeName)
}

// SelectAttributeTypeColumns projects the attribute type table onto
// AttributeTypeColumns.
func SelectAttributeTypeColumns(attributeTypes *table.Table) *table.Table {
	if attributeTypes == nil {
		return nil
	}
	return attributeTypes.Reindex(AttributeTypeColumns...)
}

// SelectAttributeColumns projects the object attribute table onto
// AttributeColumns.
func SelectAttributeColumns(attributes *table.Table) *table.Table {
	if attributes == nil {
		return nil
	}
	return attributes.Reindex(AttributeColumns...)
}

// PivotAttributes reshapes the long object attribute table into one row per
// object and one column per value field and attribute id.
func PivotAttributes(attributes *table.Table) (*table.Table, error) {
	if attributes == nil {
		return nil, nil
	}

	return table.Pivot(attributes, IndexColumns, assets.AttributeTypeIDPath, ValueColumns, table.JoinColumnName)
}

// RenameHeaders applies the replacements to every column name of the wide table.
func RenameHeaders(wide *table.Table, replacements []table.Replacement) *table.Table {
	if wide == nil {
		return nil
	}

	return wide.RenameColumns(func(name string) string {
		return table.ReplaceSubstrings(name, replacements)
	})
}

// AttributeTypeMapping builds the attribute id → declaring object type id
// replacements from the projected attribute type table. Replacements are in
// order of first appearance and on duplicate ids the last mapping wins.
// Definitions without an id or object type id are skipped.
func AttributeTypeMapping(attributeTypes *table.Table) []table.Replacement {
	mapping := []table.Replacement{}
	positions := map[string]int{}

	for i := range attributeTypes.Len() {
		id, _ := attributeTypes.Value(i, assets.ID)
		typeID, _ := attributeTypes.Value(i, assets.DeclaringObjectTypeID)

		if id == nil || typeID == nil {
			continue
		}

		old, repl := assets.Text(id), assets.Text(typeID)

		if pos, ok := positions[old]; ok {
			mapping[pos].New = repl
			continue
		}

		positions[old] = len(mapping)
		mapping = append(mapping, table.Replacement{Old: old, New: repl})
	}

	return mapping
}

// MapAttributeTypesToHeaders replaces attribute ids in the column names of
// the wide table with the id of the object type declaring the attribute.
//
// With SubstringMatching every id is replaced wherever it occurs in a name,
// so an id that is a substring of another id, or of the value field part of
// the name, corrupts the name. TokenMatching only replaces the part after
// the last underscore when it equals an id.
func MapAttributeTypesToHeaders(wide, attributeTypes *table.Table, matching Matching) *table.Table {
	if wide == nil || attributeTypes == nil {
		return wide
	}

	mapping := AttributeTypeMapping(attributeTypes)

	if matching == TokenMatching {
		tokens := make(map[string]string, len(mapping))
		for _, r := range mapping {
			tokens[r.Old] = r.New
		}

		return wide.RenameColumns(func(name string) string {
			return table.ReplaceSuffixToken(name, "_", tokens)
		})
	}

	return wide.RenameColumns(func(name string) string {
		return table.ReplaceSubstrings(name, mapping)
	})
}

package assets

import (
	"strings"

	"github.com/spf13/cast"
)

// Record is a nested JSON object as produced by encoding/json.
type Record = map[string]any

const (
	Attributes               string = "attributes"
	ObjectAttributeValues    string = "objectAttributeValues"
	ObjectTypeAttributeID    string = "objectTypeAttributeId"
	DisplayValue             string = "displayValue"
	ReferencedType           string = "referencedType"
	ReferencedObject         string = "referencedObject"
	ObjectType               string = "objectType"
	ID                       string = "id"
	Label                    string = "label"
	Name                     string = "name"
	PathSeparator            string = "."
	AttributeTypeIDPath      string = Attributes + PathSeparator + ObjectTypeAttributeID
	ReferencedObjectTypeID   string = ReferencedObject + PathSeparator + ObjectType + PathSeparator + ID
	ReferencedObjectTypeName string = ReferencedObject + PathSeparator + ObjectType + PathSeparator + Name
	DeclaringObjectTypeID    string = ObjectType + PathSeparator + ID
	DeclaringObjectTypeName  string = ObjectType + PathSeparator + Name
)

// Field walks the nested record along path and returns the value found there.
// Any missing key, or an intermediate value that is not an object, yields nil.
// Field never fails.
func Field(record Record, path ...string) any {
	var current any = record

	for _, key := range path {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil
		}

		current, ok = obj[key]
		if !ok {
			return nil
		}
	}

	return current
}

// Records returns the objects contained in v. A single object is returned as
// a one element slice, elements of an array that are not objects are skipped
// and anything else gives an empty result.
func Records(v any) []Record {
	switch typed := v.(type) {
	case map[string]any:
		return []Record{typed}
	case []any:
		records := make([]Record, 0, len(typed))
		for _, item := range typed {
			if obj, ok := item.(map[string]any); ok {
				records = append(records, obj)
			}
		}
		return records
	case []Record:
		return typed
	default:
		return []Record{}
	}
}

// Leaves flattens nested objects into a single level record keyed by the
// dot separated path to each leaf. Arrays and scalars are leaves.
func Leaves(record Record) Record {
	flat := Record{}
	collectLeaves(flat, nil, record)
	return flat
}

func collectLeaves(flat Record, prefix []string, obj map[string]any) {
	for k, v := range obj {
		path := append(prefix[:len(prefix):len(prefix)], k)

		if nested, ok := v.(map[string]any); ok && len(nested) > 0 {
			collectLeaves(flat, path, nested)
			continue
		}

		flat[strings.Join(path, PathSeparator)] = v
	}
}

// Text renders a scalar cell value as text. nil is rendered as the empty string.
func Text(v any) string {
	if v == nil {
		return ""
	}
	return cast.ToString(v)
}

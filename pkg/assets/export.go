package assets

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Export is an asset export: the objects and the attribute type definitions
// that declare their attributes.
type Export struct {
	Objects        []Record
	AttributeTypes []Record
}

const (
	ValuesKey         string = "values"
	AttributeTypesKey string = "objectTypeAttributes"
)

// Decode parses an export document. Numbers are kept as json.Number so that
// ids keep their literal text. Missing top level collections decode as empty.
func Decode(r io.Reader) (*Export, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode asset export: %w", err)
	}

	return NewExport(doc), nil
}

// DecodeBytes is a convenience wrapper around Decode.
func DecodeBytes(body []byte) (*Export, error) {
	return Decode(bytes.NewReader(body))
}

// NewExport picks the object and attribute type collections out of an
// already parsed export document.
func NewExport(doc Record) *Export {
	return &Export{
		Objects:        Records(doc[ValuesKey]),
		AttributeTypes: Records(doc[AttributeTypesKey]),
	}
}

// AttributeValueCount returns the number of attribute values over all objects.
func (e *Export) AttributeValueCount() int {
	count := 0
	for _, obj := range e.Objects {
		for _, container := range Records(obj[Attributes]) {
			count += len(Records(container[ObjectAttributeValues]))
		}
	}
	return count
}

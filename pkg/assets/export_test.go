package assets

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestDecodeExport(t *testing.T) {
	is := is.New(t)

	export, err := Decode(strings.NewReader(exportJSON))
	is.NoErr(err)

	is.Equal(len(export.Objects), 2)
	is.Equal(len(export.AttributeTypes), 3)
	is.Equal(export.AttributeValueCount(), 3)

	is.Equal(Field(export.Objects[0], "id"), json.Number("1")) // numbers keep their literal text
	is.Equal(Field(export.AttributeTypes[0], "objectType", "id"), json.Number("500"))
}

func TestDecodeExportWithoutCollections(t *testing.T) {
	is := is.New(t)

	export, err := DecodeBytes([]byte(`{"somethingElse": true}`))
	is.NoErr(err)

	is.Equal(len(export.Objects), 0)
	is.Equal(len(export.AttributeTypes), 0)
	is.Equal(export.AttributeValueCount(), 0)
}

func TestDecodeInvalidJSONFails(t *testing.T) {
	is := is.New(t)

	_, err := DecodeBytes([]byte("this is not my json"))
	is.True(err != nil) // should fail to decode
}

const exportJSON string = `{
  "values": [
    {
      "id": 1,
      "label": "Server1",
      "attributes": [
        {
          "objectTypeAttributeId": 10,
          "objectAttributeValues": [{"displayValue": "Linux", "referencedType": false}]
        },
        {
          "objectTypeAttributeId": 20,
          "objectAttributeValues": [
            {"referencedType": true, "referencedObject": {"objectType": {"id": 99, "name": "Datacenter"}}}
          ]
        }
      ]
    },
    {
      "id": 2,
      "label": "Server2",
      "attributes": [
        {
          "objectTypeAttributeId": 10,
          "objectAttributeValues": [{"displayValue": "Windows", "referencedType": false}]
        }
      ]
    }
  ],
  "objectTypeAttributes": [
    {"id": 10, "objectType": {"id": 500, "name": "Server"}},
    {"id": 20, "objectType": {"id": 600, "name": "Hosting"}},
    {"id": 30}
  ]
}`

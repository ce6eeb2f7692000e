package attributetable

import (
	"fmt"
	"io"
	"slices"

	"github.com/diwise/attribute-table/pkg/table"
	yaml "gopkg.in/yaml.v2"
)

type Matching string

const (
	SubstringMatching Matching = "substring"
	TokenMatching     Matching = "token"
)

type HeaderConfig struct {
	Replacements        []table.Replacement `yaml:"replacements"`
	AttributeIDMatching Matching            `yaml:"attributeIdMatching"`
}

type Config struct {
	Headers HeaderConfig `yaml:"headers"`
}

// DefaultHeaderReplacements shorten the generated column names.
var DefaultHeaderReplacements = []table.Replacement{
	{Old: "referencedObject.objectType", New: "RefObjType"},
	{Old: "displayValue", New: "attrib_val"},
}

func DefaultConfig() Config {
	return Config{
		Headers: HeaderConfig{
			Replacements:        slices.Clone(DefaultHeaderReplacements),
			AttributeIDMatching: SubstringMatching,
		},
	}
}

// LoadConfiguration reads a yaml layout on top of the default configuration.
// A replacements list in the layout replaces the default list.
func LoadConfiguration(data io.Reader) (*Config, error) {

	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	err = yaml.Unmarshal(buf, &cfg)
	if err != nil {
		return nil, err
	}

	switch cfg.Headers.AttributeIDMatching {
	case "":
		cfg.Headers.AttributeIDMatching = SubstringMatching
	case SubstringMatching, TokenMatching:
	default:
		return nil, fmt.Errorf("unsupported attribute id matching %q", cfg.Headers.AttributeIDMatching)
	}

	return &cfg, nil
}

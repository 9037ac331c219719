package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema.json
var configSchema []byte

// Validate checks a config file against the configuration schema. It
// catches misspelled keys and out-of-range values that koanf would
// silently ignore.
func Validate(path string) error {
	k := koanf.New(".")

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = kjson.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return err
	}

	schemaDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(configSchema))
	if err != nil {
		return fmt.Errorf("internal schema is invalid: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("prism-config.json", schemaDoc); err != nil {
		return err
	}
	schema, err := compiler.Compile("prism-config.json")
	if err != nil {
		return err
	}

	// Round-trip through JSON so the validator sees json-decoded values
	// regardless of which parser loaded the file.
	raw, err := json.Marshal(k.Raw())
	if err != nil {
		return err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return err
	}

	return schema.Validate(doc)
}

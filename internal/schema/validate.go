// Package schema validates westcheck input files against the embedded JSON
// schemas.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	schemafs "github.com/AndreyAkinshin/westcheck/schema"
)

const (
	parametersSchemaName = "parameters.schema.json"
	suiteSchemaName      = "suite.schema.json"
)

var (
	parametersSchema *jsonschema.Schema
	suiteSchema      *jsonschema.Schema
	compileOnce      sync.Once
	compileErr       error
)

// compileSchemas compiles all embedded schemas once.
func compileSchemas() error {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		for _, name := range []string{parametersSchemaName, suiteSchemaName} {
			data, err := schemafs.FS.ReadFile(name)
			if err != nil {
				compileErr = fmt.Errorf("read %s: %w", name, err)
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
			if err != nil {
				compileErr = fmt.Errorf("unmarshal %s: %w", name, err)
				return
			}
			if err := compiler.AddResource(name, doc); err != nil {
				compileErr = fmt.Errorf("add %s resource: %w", name, err)
				return
			}
		}

		var err error
		if parametersSchema, err = compiler.Compile(parametersSchemaName); err != nil {
			compileErr = fmt.Errorf("compile parameters schema: %w", err)
			return
		}
		if suiteSchema, err = compiler.Compile(suiteSchemaName); err != nil {
			compileErr = fmt.Errorf("compile suite schema: %w", err)
			return
		}
	})

	return compileErr
}

// ValidateParameters validates the JSON content of parameters.json.
func ValidateParameters(data []byte) error {
	if err := compileSchemas(); err != nil {
		return err
	}

	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := parametersSchema.Validate(v); err != nil {
		return fmt.Errorf("parameters validation failed: %w", err)
	}
	return nil
}

// ValidateSuite validates the YAML content of a suite manifest. The
// document is converted to JSON so the same schema dialect applies.
func ValidateSuite(data []byte) error {
	if err := compileSchemas(); err != nil {
		return err
	}

	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}

	// yaml.v3 decodes mappings with string keys to map[string]interface{},
	// which encoding/json accepts; non-string keys fail here.
	asJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("manifest is not representable as JSON: %w", err)
	}
	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(asJSON))
	if err != nil {
		return fmt.Errorf("invalid manifest: %w", err)
	}

	if err := suiteSchema.Validate(v); err != nil {
		return fmt.Errorf("suite validation failed: %w", err)
	}
	return nil
}

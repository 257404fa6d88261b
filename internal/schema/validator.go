// Package schema validates job documents against the embedded job schema.
package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed job.schema.yaml
var jobSchemaYAML []byte

// Validator handles JSON schema validation
type Validator struct {
	jobSchema *jsonschema.Schema
}

// NewValidator creates a validator for job documents
func NewValidator() (*Validator, error) {
	jobSchema, err := compile(jobSchemaYAML)
	if err != nil {
		return nil, fmt.Errorf("failed to load job schema: %w", err)
	}
	return &Validator{jobSchema: jobSchema}, nil
}

// ValidateJob validates a job document given as raw YAML or JSON
func (v *Validator) ValidateJob(data []byte) error {
	if v.jobSchema == nil {
		return fmt.Errorf("job schema not loaded")
	}

	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse job document: %w", err)
	}

	// Round-trip through JSON so the validator sees JSON-native types
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal job document: %w", err)
	}
	var jsonDoc interface{}
	if err := json.Unmarshal(jsonData, &jsonDoc); err != nil {
		return fmt.Errorf("failed to convert job document: %w", err)
	}

	return v.jobSchema.Validate(jsonDoc)
}

// compile compiles a schema given as YAML (or JSON)
func compile(data []byte) (*jsonschema.Schema, error) {
	var schemaData interface{}
	if err := yaml.Unmarshal(data, &schemaData); err != nil {
		return nil, fmt.Errorf("failed to parse schema file: %w", err)
	}

	jsonData, err := json.Marshal(schemaData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	schema, err := jsonschema.CompileString("job.schema.json", string(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return schema, nil
}

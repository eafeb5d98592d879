// Package schemas compiles JSON Schema documents and checks decoded values against them.
package schemas

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Schema is a compiled JSON Schema. It is safe for concurrent use.
type Schema struct {
	name   string
	schema *gojsonschema.Schema
}

// ValidationError lists every schema violation of a value
type ValidationError struct {
	Schema string
	Errors []FieldError
}

// FieldError is one violation. Field is "(root)" for the top level.
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError is returned when the schema itself cannot be compiled
type SchemaLoadError struct {
	Name  string
	Cause error
}

func (e *SchemaLoadError) Error() string {
	return fmt.Sprintf("failed to load schema %s: %v", e.Name, e.Cause)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s validation failed:\n", ve.Schema)
	for i, err := range ve.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, err.Field, err.Message)
	}
	return sb.String()
}

// Messages returns every field error formatted as "field: message"
func (ve *ValidationError) Messages() []string {
	out := make([]string, 0, len(ve.Errors))
	for _, err := range ve.Errors {
		out = append(out, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return out
}

// Compile parses schema content. name is used in error messages.
func Compile(name, content string) (*Schema, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(content))
	if err != nil {
		return nil, &SchemaLoadError{Name: name, Cause: err}
	}
	return &Schema{name: name, schema: compiled}, nil
}

// MustCompile is like Compile but panics on error. It is meant for embedded schemas.
func MustCompile(name, content string) *Schema {
	s, err := Compile(name, content)
	if err != nil {
		panic(err)
	}
	return s
}

// ValidateValue checks a decoded value (maps, slices, scalars). The value must be
// JSON-marshalable.
func (s *Schema) ValidateValue(value any) error {
	return s.validate(gojsonschema.NewGoLoader(value))
}

// ValidateJSON checks raw JSON content
func (s *Schema) ValidateJSON(content []byte) error {
	return s.validate(gojsonschema.NewBytesLoader(content))
}

func (s *Schema) validate(document gojsonschema.JSONLoader) error {
	result, err := s.schema.Validate(document)
	if err != nil {
		return fmt.Errorf("failed to decode %s document: %w", s.name, err)
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{Schema: s.name, Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return validationErr
}

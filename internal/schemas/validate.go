// Package schemas provides JSON Schema validation for the structured
// responses expected from the language model. Validation is structural only:
// it guards the pipeline against malformed or shape-violating output, not
// against semantically wrong extractions.
package schemas

import (
	"embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// Schema names accepted by Validate.
const (
	Sections   = "sections"
	Extraction = "extraction"
	Score      = "score"
	Aggregate  = "aggregate"
)

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// ValidationError represents a schema validation failure with field paths
type ValidationError struct {
	Schema string
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("response does not match %s schema", e.Schema)
	}
	first := e.Errors[0]
	if len(e.Errors) == 1 {
		return fmt.Sprintf("response does not match %s schema: %s: %s", e.Schema, first.Field, first.Message)
	}
	return fmt.Sprintf("response does not match %s schema: %s: %s (and %d more)",
		e.Schema, first.Field, first.Message, len(e.Errors)-1)
}

// Validate checks document (raw JSON bytes) against the named embedded
// schema. Returns *ValidationError when the document is valid JSON but
// violates the schema, or a load/parse error otherwise.
func Validate(name string, document []byte) error {
	data, err := schemaFiles.ReadFile(name + ".schema.json")
	if err != nil {
		return fmt.Errorf("unknown schema %q: %w", name, err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(data)
	documentLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed for %s: %w", name, err)
	}

	if !result.Valid() {
		verr := &ValidationError{Schema: name}
		for _, desc := range result.Errors() {
			verr.Errors = append(verr.Errors, FieldError{
				Field:   desc.Field(),
				Message: desc.Description(),
			})
		}
		return verr
	}

	return nil
}

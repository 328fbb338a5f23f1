// Package schema holds the strict JSON schema the completion service must answer with.
package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// Name is the schema name sent with strict structured-output requests.
const Name = "resume_schema"

//go:embed resume_schema.json
var resumeSchema []byte

var (
	document    map[string]any
	documentErr error
	documentOne sync.Once

	compiled    *gojsonschema.Schema
	compiledErr error
	compileOnce sync.Once
)

// ValidationError lists every field of a document that breaks the schema.
type ValidationError struct {
	Errors []FieldError
}

type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// Raw returns the embedded schema bytes.
func Raw() []byte {
	return resumeSchema
}

// Document returns the schema decoded once into a generic map, ready to embed in a request.
func Document() (map[string]any, error) {
	documentOne.Do(func() {
		documentErr = json.Unmarshal(resumeSchema, &document)
	})
	return document, documentErr
}

// Compile loads the schema into the validator. Call it at startup to fail fast.
func Compile() (*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled, compiledErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(resumeSchema))
		if compiledErr != nil {
			compiledErr = fmt.Errorf("failed to load %s: %w", Name, compiledErr)
		}
	})
	return compiled, compiledErr
}

// Validate checks a JSON document against the schema.
func Validate(jsonContent string) error {
	s, err := Compile()
	if err != nil {
		return err
	}

	result, err := s.Validate(gojsonschema.NewStringLoader(jsonContent))
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}

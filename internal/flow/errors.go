package flow

import (
	"fmt"
	"strings"
)

// GenerationError reports a failed generation call or an output that did not
// match the flow's schema.
type GenerationError struct {
	Flow string
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Flow, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// SchemaError lists the fields of a generated document that failed validation.
type SchemaError struct {
	Errors []FieldError
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "output failed schema validation: " + strings.Join(parts, "; ")
}

// Package flow implements the structured generation calls behind the advisor:
// each flow renders a fixed prompt from a typed request, submits it to a
// service.Generator, validates the JSON reply against a schema and decodes it
// into a typed result.
package flow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/fadilmartias/career-compass/internal/service"
	"github.com/xeipuuv/gojsonschema"
)

// Definition describes one flow: its prompt, the shape of the reply and any
// post-processing applied to the decoded value.
type Definition[In, Out any] struct {
	Name        string
	System      string
	Prompt      *template.Template
	Schema      *gojsonschema.Schema
	PostProcess func(*Out)
}

// Render executes the prompt template against in.
func (d *Definition[In, Out]) Render(in In) (string, error) {
	var buf bytes.Buffer
	if err := d.Prompt.Execute(&buf, in); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", d.Name, err)
	}
	return buf.String(), nil
}

// Call runs a flow end to end. Every failure after the prompt is rendered is
// reported as a *GenerationError.
func Call[In, Out any](ctx context.Context, gen service.Generator, def *Definition[In, Out], in In) (Out, error) {
	var out Out

	prompt, err := def.Render(in)
	if err != nil {
		return out, err
	}

	text, err := gen.Generate(ctx, service.GenerateRequest{
		Name:   def.Name,
		System: def.System,
		Prompt: prompt,
		JSON:   true,
	})
	if err != nil {
		return out, &GenerationError{Flow: def.Name, Err: err}
	}

	if err := validateOutput(def.Schema, text); err != nil {
		return out, &GenerationError{Flow: def.Name, Err: err}
	}

	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return out, &GenerationError{Flow: def.Name, Err: fmt.Errorf("decode output: %w", err)}
	}

	if def.PostProcess != nil {
		def.PostProcess(&out)
	}
	return out, nil
}

func validateOutput(schema *gojsonschema.Schema, text string) error {
	if strings.TrimSpace(text) == "" {
		return &SchemaError{Errors: []FieldError{{Field: "(root)", Message: "empty output"}}}
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(text))
	if err != nil {
		return &SchemaError{Errors: []FieldError{{Field: "(root)", Message: err.Error()}}}
	}
	if result.Valid() {
		return nil
	}

	schemaErr := &SchemaError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		schemaErr.Errors = append(schemaErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return schemaErr
}

func mustSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("flow: invalid output schema: %v", err))
	}
	return schema
}

func mustPrompt(name, src string) *template.Template {
	return template.Must(template.New(name).
		Option("missingkey=error").
		Funcs(template.FuncMap{"join": JoinSkills}).
		Parse(src))
}

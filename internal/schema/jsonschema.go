package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var ErrSchemaInvalid = errors.New("schema invalid")

const draft2020 = "https://json-schema.org/draft/2020-12/schema"

// JSONSchema converts the document type into a JSON Schema. Unknown document
// properties are allowed since stored documents carry system fields.
func (d DocumentType) JSONSchema() map[string]any {
	properties := make(map[string]any, len(d.Fields))
	required := make([]any, 0, len(d.Fields))
	for _, field := range d.Fields {
		properties[field.Name] = fieldSchema(field)
		if field.Required {
			required = append(required, field.Name)
		}
	}

	out := map[string]any{
		"$schema":    draft2020,
		"title":      d.Title,
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		out["required"] = required
	}
	return out
}

func fieldSchema(field Field) map[string]any {
	var out map[string]any
	switch field.Type {
	case TypeString, TypeText:
		out = map[string]any{"type": "string"}
		if field.Required {
			out["minLength"] = 1
		}
		if len(field.Options) > 0 {
			values := make([]any, 0, len(field.Options))
			for _, option := range field.Options {
				values = append(values, option.Value)
			}
			out["enum"] = values
		}
	case TypeSlug:
		current := map[string]any{"type": "string", "minLength": 1}
		if field.MaxLength > 0 {
			current["maxLength"] = field.MaxLength
		}
		out = map[string]any{
			"type":       "object",
			"properties": map[string]any{"current": current},
			"required":   []any{"current"},
		}
	case TypeArray:
		out = map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
	case TypeDatetime:
		out = map[string]any{"type": "string", "minLength": 1}
	case TypeImage:
		out = map[string]any{
			"type": "object",
			"properties": map[string]any{
				"asset": map[string]any{
					"type":       "object",
					"properties": map[string]any{"_ref": map[string]any{"type": "string", "minLength": 1}},
					"required":   []any{"_ref"},
				},
			},
			"required": []any{"asset"},
		}
	case TypeURL:
		out = map[string]any{"type": "string", "pattern": "^https?://"}
	case TypeBoolean:
		out = map[string]any{"type": "boolean"}
	default:
		out = map[string]any{}
	}
	if field.Title != "" {
		out["title"] = field.Title
	}
	if field.Description != "" {
		out["description"] = field.Description
	}
	if field.InitialValue != nil {
		out["default"] = field.InitialValue
	}
	return out
}

func compileSchema(schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	return compiled, nil
}

func schemaIssues(err error) []ValidationIssue {
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}

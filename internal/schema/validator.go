package schema

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/goliatone/go-slug"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidationIssue captures a single validation failure.
type ValidationIssue struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

func (i ValidationIssue) String() string {
	location := i.Location
	if location == "" {
		location = "#"
	} else if !strings.HasPrefix(location, "#") {
		location = "#" + location
	}
	return location + ": " + i.Message
}

// Validator checks documents against a compiled document type.
type Validator struct {
	doc      DocumentType
	compiled *jsonschema.Schema
}

// NewValidator compiles doc.
func NewValidator(doc DocumentType) (*Validator, error) {
	compiled, err := compileSchema(doc.JSONSchema())
	if err != nil {
		return nil, err
	}
	return &Validator{doc: doc, compiled: compiled}, nil
}

// NewPostValidator compiles the post document type.
func NewPostValidator() (*Validator, error) {
	return NewValidator(Post())
}

// ValidateDocument returns every issue found in document. An empty result
// means the document is valid.
func (v *Validator) ValidateDocument(document map[string]any) []ValidationIssue {
	instance, err := toJSONValue(document)
	if err != nil {
		return []ValidationIssue{{Message: err.Error()}}
	}

	issues := []ValidationIssue{}
	if err := v.compiled.Validate(instance); err != nil {
		issues = append(issues, schemaIssues(err)...)
	}
	issues = append(issues, v.semanticIssues(document)...)

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Location < issues[j].Location
	})
	return issues
}

// semanticIssues covers rules JSON Schema cannot express: slug shape and a
// parseable publication date.
func (v *Validator) semanticIssues(document map[string]any) []ValidationIssue {
	var issues []ValidationIssue
	for _, field := range v.doc.Fields {
		value, ok := document[field.Name]
		if !ok || value == nil {
			continue
		}
		switch field.Type {
		case TypeSlug:
			current := slugCurrent(value)
			if current == "" || slug.IsValid(current) {
				continue
			}
			message := fmt.Sprintf("slug %q is not normalized", current)
			if normalized, err := slug.Normalize(current); err == nil && normalized != "" {
				message += fmt.Sprintf(", expected %q", normalized)
			}
			issues = append(issues, ValidationIssue{Location: "/" + field.Name + "/current", Message: message})
		case TypeDatetime:
			text, ok := value.(string)
			if !ok || strings.TrimSpace(text) == "" {
				continue
			}
			if _, err := dateparse.ParseIn(text, time.UTC); err != nil {
				issues = append(issues, ValidationIssue{
					Location: "/" + field.Name,
					Message:  fmt.Sprintf("date %q cannot be parsed", text),
				})
			}
		}
	}
	return issues
}

func slugCurrent(value any) string {
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case map[string]any:
		current, _ := typed["current"].(string)
		return strings.TrimSpace(current)
	}
	return ""
}

// toJSONValue round-trips document through encoding/json so typed values
// such as []string reach the validator as the generic shapes it expects.
func toJSONValue(document map[string]any) (any, error) {
	if document == nil {
		document = map[string]any{}
	}
	encoded, err := json.Marshal(document)
	if err != nil {
		return nil, fmt.Errorf("schema: encode document: %w", err)
	}
	var out any
	if err := json.Unmarshal(encoded, &out); err != nil {
		return nil, fmt.Errorf("schema: decode document: %w", err)
	}
	return out, nil
}

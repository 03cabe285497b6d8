package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-contactform/pkg/contact"
)

// MarshalJSON encodes doc as indented JSON.
func MarshalJSON(doc *openapi3.T) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("openapi: encode json: %w", err)
	}
	return data, nil
}

// MarshalYAML encodes doc as YAML. The JSON form is decoded into generic
// values first so kin-openapi's custom marshalers decide the shape.
func MarshalYAML(doc *openapi3.T) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("openapi: encode json: %w", err)
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("openapi: decode json: %w", err)
	}
	out, err := yaml.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("openapi: encode yaml: %w", err)
	}
	return out, nil
}

// Load parses a JSON or YAML document and validates it.
func Load(ctx context.Context, data []byte) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi: validate: %w", err)
	}
	return doc, nil
}

// Constraint is the exported description of one contact property.
type Constraint struct {
	Required  bool
	MinLength uint64
	Pattern   string
	Message   string
	// Trimmed reports that the constraints apply after trimming whitespace.
	Trimmed bool
}

// Constraints reads the contact properties back from the submit operation of
// doc, keyed by field.
func Constraints(doc *openapi3.T) (map[contact.FieldID]Constraint, error) {
	if doc == nil || doc.Paths == nil {
		return nil, errors.New("openapi: document has no paths")
	}
	var operation *openapi3.Operation
	for _, item := range doc.Paths.Map() {
		if item != nil && item.Post != nil && item.Post.OperationID == OperationID {
			operation = item.Post
			break
		}
	}
	if operation == nil {
		return nil, fmt.Errorf("openapi: operation %q not found", OperationID)
	}
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil, errors.New("openapi: submit operation has no request body")
	}
	media := operation.RequestBody.Value.Content.Get(contentTypeForm)
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, fmt.Errorf("openapi: request body has no %s schema", contentTypeForm)
	}

	schema := media.Schema.Value
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	out := make(map[contact.FieldID]Constraint, len(schema.Properties))
	for name, ref := range schema.Properties {
		id, err := contact.ParseFieldID(name)
		if err != nil {
			return nil, fmt.Errorf("openapi: property %q: %w", name, err)
		}
		if ref == nil || ref.Value == nil {
			continue
		}
		message, _ := ref.Value.Extensions[ExtensionMessage].(string)
		trimmed, _ := ref.Value.Extensions[ExtensionTrim].(bool)
		out[id] = Constraint{
			Required:  required[name],
			MinLength: ref.Value.MinLength,
			Pattern:   ref.Value.Pattern,
			Message:   message,
			Trimmed:   trimmed,
		}
	}
	return out, nil
}

package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/render"
)

// Transformer mutates a Document before it is rendered. Implementations can
// relabel fields, inject hidden inputs or rewrite destinations.
type Transformer interface {
	Transform(ctx context.Context, doc *render.Document) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, doc *render.Document) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, doc *render.Document) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, doc)
}

// JSONPresetTransformer applies declarative overrides loaded from a JSON file:
//
//	{
//	  "action": "/contact",
//	  "hidden": {"_csrf": "token"},
//	  "fields": {
//	    "name": {"label": "Your name", "placeholder": "Ada Lovelace"}
//	  }
//	}
type JSONPresetTransformer struct {
	document jsonPresetDocument
}

type jsonPresetDocument struct {
	Action      string                       `json:"action"`
	Destination string                       `json:"destination"`
	Hidden      map[string]string            `json:"hidden"`
	Fields      map[string]render.FieldLabel `json:"fields"`
}

// NewJSONPresetTransformer constructs a transformer from raw JSON bytes.
func NewJSONPresetTransformer(data []byte) (*JSONPresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("json preset transformer: document is empty")
	}
	var document jsonPresetDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("json preset transformer: parse document: %w", err)
	}
	for name := range document.Fields {
		if _, err := contact.ParseFieldID(name); err != nil {
			return nil, fmt.Errorf("json preset transformer: %w", err)
		}
	}
	return &JSONPresetTransformer{document: document}, nil
}

// NewJSONPresetTransformerFromFS loads a JSON transformer document from the
// provided filesystem path.
func NewJSONPresetTransformerFromFS(fsys fs.FS, path string) (*JSONPresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("json preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("json preset transformer: read %s: %w", path, err)
	}
	return NewJSONPresetTransformer(data)
}

// Transform applies the declarative patches onto the supplied document.
// Non-empty label parts replace the current ones.
func (t *JSONPresetTransformer) Transform(ctx context.Context, doc *render.Document) error {
	if doc == nil {
		return errors.New("json preset transformer: document is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if t.document.Action != "" {
		doc.Action = t.document.Action
	}
	if t.document.Destination != "" {
		doc.Destination = t.document.Destination
	}
	if len(t.document.Hidden) > 0 {
		doc.Hidden = mergeStringMap(doc.Hidden, t.document.Hidden)
	}
	if len(t.document.Fields) == 0 {
		return nil
	}

	labels := make(map[contact.FieldID]render.FieldLabel, len(doc.Labels)+len(t.document.Fields))
	for id, label := range doc.Labels {
		labels[id] = label
	}
	for name, patch := range t.document.Fields {
		id, err := contact.ParseFieldID(name)
		if err != nil {
			return fmt.Errorf("json preset transformer: %w", err)
		}
		labels[id] = applyLabelPatch(doc.LabelFor(id), patch)
	}
	doc.Labels = labels
	return nil
}

func applyLabelPatch(label render.FieldLabel, patch render.FieldLabel) render.FieldLabel {
	if patch.Label != "" {
		label.Label = patch.Label
	}
	if patch.Placeholder != "" {
		label.Placeholder = patch.Placeholder
	}
	if patch.Help != "" {
		label.Help = patch.Help
	}
	return label
}

func mergeStringMap(dst, src map[string]string) map[string]string {
	out := make(map[string]string, len(dst)+len(src))
	for key, value := range dst {
		out[key] = value
	}
	for key, value := range src {
		out[key] = value
	}
	return out
}

package html

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/render"
	rendertemplate "github.com/goliatone/go-contactform/pkg/render/template"
	"github.com/goliatone/go-contactform/pkg/render/template/gotemplate"
)

const templateName = "contact"

// Renderer renders the contact document: the form, its five inputs with their
// error slots, the status banner and the attention marker, all derived from a
// validation state.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	theme     themeView
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engineOptions := []gotemplate.Option{
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tpl"),
		}
		if cfg.templateDir != "" {
			engineOptions = append(engineOptions, gotemplate.WithBaseDir(cfg.templateDir))
		}
		engine, err := gotemplate.New(engineOptions...)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates: renderer,
		theme:     buildThemeView(cfg.theme),
	}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the document markup for doc.
func (r *Renderer) Render(ctx context.Context, doc render.Document) ([]byte, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	result, err := r.templates.RenderTemplate(templateName, r.view(doc))
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) view(doc render.Document) map[string]any {
	state := doc.State

	fields := make([]map[string]any, 0, len(contact.FieldIDs()))
	for _, field := range contact.Fields() {
		label := doc.LabelFor(field.ID)
		display := state.Field(field.ID)
		fields = append(fields, map[string]any{
			"id":            string(field.ID),
			"type":          inputType(field.ID),
			"textarea":      field.ID == contact.FieldMessage,
			"label":         label.Label,
			"placeholder":   label.Placeholder,
			"help":          sanitizeHelp(label.Help),
			"value":         doc.ValueOf(field.ID),
			"required":      field.Required,
			"invalid":       display.Invalid,
			"error":         display.Slot.Message,
			"error_visible": display.Slot.Visible,
			"focus":         state.Focus == field.ID,
		})
	}

	hidden := make([]map[string]any, 0, len(doc.Hidden))
	for _, field := range render.SortedHiddenFields(doc.Hidden) {
		hidden = append(hidden, map[string]any{"name": field.Name, "value": field.Value})
	}

	kind := ""
	if state.Status.Kind != contact.StatusNone {
		kind = state.Status.Kind.String()
	}

	return map[string]any{
		"form": map[string]any{
			"action":      firstNonEmpty(doc.Action, contact.DefaultDestination),
			"destination": firstNonEmpty(doc.Destination, contact.DefaultDestination),
			"method":      strings.ToLower(firstNonEmpty(doc.Method, "post")),
			"attention":   state.Attention,
		},
		"status": map[string]any{
			"visible": state.Status.Visible,
			"kind":    kind,
			"message": state.Status.Message,
		},
		"fields":        fields,
		"hidden_fields": hidden,
		"theme": map[string]any{
			"name":    r.theme.name,
			"variant": r.theme.variant,
			"style":   r.theme.style,
		},
	}
}

func inputType(id contact.FieldID) string {
	switch id {
	case contact.FieldEmail:
		return "email"
	case contact.FieldPhone:
		return "tel"
	default:
		return "text"
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

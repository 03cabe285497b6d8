package openapi

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-contactform/pkg/contact"
)

const (
	// Version is the OpenAPI version emitted by Build.
	Version = "3.0.3"
	// OperationID identifies the submit operation.
	OperationID = "submitContact"

	// ExtensionMessage carries the inline error message of a property.
	ExtensionMessage = "x-contact-message"
	// ExtensionTrim marks properties whose constraints apply to the value with
	// surrounding whitespace removed.
	ExtensionTrim = "x-contact-trim"
	// ExtensionDestination carries the continue destination on the operation.
	ExtensionDestination = "x-contact-destination"

	contentTypeForm = "application/x-www-form-urlencoded"
	contentTypeJSON = "application/json"
)

// ContentTypes lists the request body media types, form encoding first.
func ContentTypes() []string {
	return []string{contentTypeForm, contentTypeJSON}
}

// Options configures Build.
type Options struct {
	Title       string
	APIVersion  string
	Action      string
	Destination string
}

// Option mutates Options.
type Option func(*Options)

// WithTitle sets info.title.
func WithTitle(title string) Option {
	return func(o *Options) {
		if title != "" {
			o.Title = title
		}
	}
}

// WithAPIVersion sets info.version.
func WithAPIVersion(version string) Option {
	return func(o *Options) {
		if version != "" {
			o.APIVersion = version
		}
	}
}

// WithAction sets the form action the operation is published under.
func WithAction(action string) Option {
	return func(o *Options) {
		if strings.TrimSpace(action) != "" {
			o.Action = strings.TrimSpace(action)
		}
	}
}

// WithDestination sets the continue destination recorded on the operation.
func WithDestination(destination string) Option {
	return func(o *Options) {
		if strings.TrimSpace(destination) != "" {
			o.Destination = strings.TrimSpace(destination)
		}
	}
}

func defaultOptions() Options {
	return Options{
		Title:       "Contact form",
		APIVersion:  "1.0.0",
		Action:      contact.DefaultDestination,
		Destination: contact.DefaultDestination,
	}
}

// Build assembles the contract document.
func Build(options ...Option) (*openapi3.T, error) {
	opts := defaultOptions()
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}

	server, route, err := SplitAction(opts.Action)
	if err != nil {
		return nil, err
	}

	schema := Schema()
	body := openapi3.NewRequestBody().
		WithDescription("Contact details entered in the form.").
		WithRequired(true).
		WithContent(openapi3.NewContentWithSchema(schema, ContentTypes()))

	location := &openapi3.HeaderRef{Value: &openapi3.Header{
		Parameter: openapi3.Parameter{
			Description: "Where the browser continues after the submission.",
			Schema:      openapi3.NewStringSchema().NewRef(),
		},
	}}
	redirect := openapi3.NewResponse().WithDescription("Submission accepted.")
	redirect.Headers = openapi3.Headers{"Location": location}

	operation := openapi3.NewOperation()
	operation.OperationID = OperationID
	operation.Summary = "Submit the contact form"
	operation.RequestBody = &openapi3.RequestBodyRef{Value: body}
	operation.Responses = openapi3.NewResponses(
		openapi3.WithStatus(303, &openapi3.ResponseRef{Value: redirect}),
		openapi3.WithStatus(200, &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("Destination page.")}),
	)
	operation.Extensions = map[string]any{ExtensionDestination: opts.Destination}

	doc := &openapi3.T{
		OpenAPI: Version,
		Info: &openapi3.Info{
			Title:   opts.Title,
			Version: opts.APIVersion,
		},
		Paths: openapi3.NewPaths(openapi3.WithPath(route, &openapi3.PathItem{Post: operation})),
	}
	if server != "" {
		doc.Servers = openapi3.Servers{&openapi3.Server{URL: server}}
	}
	return doc, nil
}

// Schema returns the object schema of the submission payload. Phone is the
// only optional property.
func Schema() *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	var required []string
	for _, field := range contact.Fields() {
		schema.WithProperty(string(field.ID), propertySchema(field))
		if field.Required {
			required = append(required, string(field.ID))
		}
	}
	schema.Required = required
	return schema
}

// propertySchema describes one field. An optional field also accepts the empty
// string, and minLength counts UTF-16 code units of the trimmed value.
func propertySchema(field contact.Field) *openapi3.Schema {
	prop := openapi3.NewStringSchema()
	if field.MinLength > 0 {
		prop.WithMinLength(int64(field.MinLength))
	}
	if field.Pattern != "" {
		pattern := field.Pattern
		if !field.Required {
			pattern = "^$|" + pattern
		}
		prop.WithPattern(pattern)
	}
	prop.Extensions = map[string]any{
		ExtensionMessage: field.Message,
		ExtensionTrim:    true,
	}
	return prop
}

// SplitAction turns a form action into an OpenAPI server URL and path.
// Relative actions such as "./404.html" become "/404.html".
func SplitAction(action string) (server, route string, err error) {
	action = strings.TrimSpace(action)
	if action == "" {
		return "", "", errors.New("openapi: action is required")
	}
	u, err := url.Parse(action)
	if err != nil {
		return "", "", fmt.Errorf("openapi: parse action %q: %w", action, err)
	}
	if u.IsAbs() {
		server = u.Scheme + "://" + u.Host
	}
	route = path.Clean("/" + strings.TrimPrefix(u.Path, "./"))
	return server, route, nil
}

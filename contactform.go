package contactform

import (
	"context"

	"github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/orchestrator"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/renderers/html"
	"github.com/goliatone/go-contactform/pkg/renderers/tui"
)

// Document aliases render.Document for callers that only import the root
// package.
type Document = render.Document

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// Event aliases orchestrator.Event.
type Event = orchestrator.Event

// Events re-exported from the orchestrator.
const (
	EventNone     = orchestrator.EventNone
	EventSubmit   = orchestrator.EventSubmit
	EventContinue = orchestrator.EventContinue
)

// NewValidator binds a contact validator to the host inputs.
func NewValidator(binding contact.Binding, options ...contact.Option) (*contact.Validator, error) {
	return contact.New(binding, options...)
}

// Check evaluates the contact rules against plain values.
func Check(values map[contact.FieldID]string) contact.Report {
	return contact.Check(values)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewRegistry returns a registry holding the html and tui renderers.
func NewRegistry(htmlOptions []html.Option, tuiOptions []tui.Option) (*render.Registry, error) {
	registry := render.NewRegistry()

	htmlRenderer, err := html.New(htmlOptions...)
	if err != nil {
		return nil, err
	}
	if err := registry.Register(htmlRenderer); err != nil {
		return nil, err
	}

	tuiRenderer, err := tui.New(tuiOptions...)
	if err != nil {
		return nil, err
	}
	if err := registry.Register(tuiRenderer); err != nil {
		return nil, err
	}
	return registry, nil
}

// RenderHTML dispatches event against doc and renders the resulting contact
// document with the default html renderer. It is the simplest entry point for
// callers that just want markup.
func RenderHTML(ctx context.Context, doc Document, event Event, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Renderer: "html",
		Document: doc,
		Event:    event,
	})
}

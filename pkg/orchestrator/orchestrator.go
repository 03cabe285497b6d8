package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/renderers/html"
)

const defaultRendererName = "html"

// Event selects which trigger is dispatched before rendering.
type Event string

const (
	// EventNone renders the document state as supplied.
	EventNone Event = ""
	// EventSubmit dispatches a form submission.
	EventSubmit Event = "submit"
	// EventContinue dispatches the secondary continue action.
	EventContinue Event = "continue"
)

// ParseEvent validates a raw event name. Empty and "none" map to EventNone.
func ParseEvent(raw string) (Event, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "none":
		return EventNone, nil
	case string(EventSubmit):
		return EventSubmit, nil
	case string(EventContinue):
		return EventContinue, nil
	}
	return EventNone, fmt.Errorf("orchestrator: unknown event %q", raw)
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformer registers transformers that patch the document after the
// event is dispatched and before rendering. They run in registration order.
func WithTransformer(transformers ...Transformer) Option {
	return func(o *Orchestrator) {
		for _, t := range transformers {
			if t != nil {
				o.transformers = append(o.transformers, t)
			}
		}
	}
}

// WithLogger attaches a zap logger, also handed to the validator.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithValidatorOptions forwards options to the validator bound per request.
func WithValidatorOptions(options ...contact.Option) Option {
	return func(o *Orchestrator) {
		o.validatorOptions = append(o.validatorOptions, options...)
	}
}

// Orchestrator coordinates validation and rendering for one document at a
// time. It applies sensible defaults (html renderer, embedded templates) while
// remaining open to dependency injection.
type Orchestrator struct {
	registry         *render.Registry
	defaultRenderer  string
	transformers     []Transformer
	logger           *zap.Logger
	validatorOptions []contact.Option
	initialiseErr    error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one render.
type Request struct {
	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// Document carries the values, labels and destinations. Its State is
	// replaced when Event is not EventNone.
	Document render.Document

	Event Event
}

// Result is the outcome of Run.
type Result struct {
	Output      []byte
	ContentType string
	Decision    contact.Decision
	State       contact.ValidationState
}

// Generate runs the pipeline and returns the rendered bytes.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	result, err := o.Run(ctx, req)
	if err != nil {
		return nil, err
	}
	return result.Output, nil
}

// Run applies transformers, dispatches the requested event and renders.
func (o *Orchestrator) Run(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Result{}, err
	}

	doc := req.Document
	for _, t := range o.transformers {
		if err := t.Transform(ctx, &doc); err != nil {
			return Result{}, fmt.Errorf("orchestrator: transform document: %w", err)
		}
	}

	// The event sees the transformed action and destination, so the decision
	// matches the rendered form.
	result := Result{State: doc.State.Clone()}
	if req.Event != EventNone {
		decision, state, err := o.dispatch(doc, req.Event)
		if err != nil {
			return Result{}, err
		}
		result.Decision = decision
		result.State = state
		doc.State = state
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return Result{}, err
	}

	output, err := renderer.Render(ctx, doc)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: render output: %w", err)
	}
	result.Output = output
	result.ContentType = renderer.ContentType()
	return result, nil
}

// dispatch binds the document values to a fresh validator and fires event.
func (o *Orchestrator) dispatch(doc render.Document, event Event) (contact.Decision, contact.ValidationState, error) {
	values := make(map[contact.FieldID]string, len(doc.Values))
	for id, value := range doc.Values {
		values[id] = value
	}
	binding := make(contact.Binding, len(contact.FieldIDs()))
	for _, id := range contact.FieldIDs() {
		id := id
		binding[id] = contact.InputFunc(func() string { return values[id] })
	}

	options := []contact.Option{
		contact.WithAction(doc.Action),
		contact.WithDestination(doc.Destination),
		contact.WithLogger(o.logger),
	}
	options = append(options, o.validatorOptions...)
	v, err := contact.New(binding, options...)
	if err != nil {
		return contact.Decision{}, contact.ValidationState{}, fmt.Errorf("orchestrator: bind validator: %w", err)
	}
	defer v.Close()

	var decision contact.Decision
	switch event {
	case EventSubmit:
		decision = v.Submit()
	case EventContinue:
		decision = v.Continue()
	default:
		return contact.Decision{}, contact.ValidationState{}, fmt.Errorf("orchestrator: unknown event %q", event)
	}

	o.logger.Debug("orchestrator: event dispatched",
		zap.String("event", string(event)),
		zap.Stringer("decision", decision.Action),
	)
	return decision, v.State(), nil
}

// rendererFor resolves name, then the default, then the first host registered.
func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := html.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else if err := o.registry.Register(renderer); err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: register default renderer: %w", err)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}

package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/render"
)

const (
	menuSend     = "Send message"
	menuContinue = "Continue"
	menuEdit     = "Edit a field"
	menuQuit     = "Quit"
)

var menuOptions = []string{menuSend, menuContinue, menuEdit, menuQuit}

// Renderer implements render.Renderer for terminal-driven sessions. Each
// Render call prompts for the contact fields, then loops over a menu that
// dispatches submit, continue and edit events to a contact.Validator until the
// validator lets navigation proceed.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	navigator         Navigator
	theme             Theme
	validatorOptions  []contact.Option
}

// Result is the outcome of a completed session.
type Result struct {
	Decision contact.Decision
	Values   map[string]string
	Payload  []byte
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
		theme:        defaultTheme(),
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if _, ok := ParseOutputFormat(string(r.outputFormat)); !ok {
		return nil, fmt.Errorf("tui: unsupported output format %q", r.outputFormat)
	}
	if r.navigator == nil {
		r.navigator = r.announce
	}

	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render runs an interactive session and returns the serialized values once
// the validator lets the submission through.
func (r *Renderer) Render(ctx context.Context, doc render.Document) ([]byte, error) {
	result, err := r.Run(ctx, doc)
	if err != nil {
		return nil, err
	}
	return result.Payload, nil
}

// Run is Render with access to the final decision and values.
func (r *Renderer) Run(ctx context.Context, doc render.Document) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if r.driver == nil {
		return Result{}, errors.New("tui: prompt driver is nil")
	}

	s := newSession(doc)
	options := []contact.Option{
		contact.WithAction(doc.Action),
		contact.WithDestination(doc.Destination),
	}
	options = append(options, r.validatorOptions...)
	options = append(options, contact.WithPresenter(s))
	v, err := contact.New(s.binding(), options...)
	if err != nil {
		return Result{}, fmt.Errorf("tui: bind validator: %w", err)
	}
	defer v.Close()

	for _, field := range contact.Fields() {
		if err := r.promptField(ctx, doc, s, v, field.ID); err != nil {
			return Result{}, err
		}
	}

	decision, err := r.loop(ctx, doc, s, v)
	if err != nil {
		return Result{}, err
	}
	if err := r.navigator(ctx, decision); err != nil {
		return Result{}, fmt.Errorf("tui: navigate: %w", err)
	}

	values := s.snapshot()
	if r.submitTransformer != nil {
		values, err = r.submitTransformer(values)
		if err != nil {
			return Result{}, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	payload, err := r.serialize(values)
	if err != nil {
		return Result{}, err
	}
	return Result{Decision: decision, Values: values, Payload: payload}, nil
}

func (r *Renderer) loop(ctx context.Context, doc render.Document, s *session, v *contact.Validator) (contact.Decision, error) {
	defaultIndex := 0
	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      "What next?",
			Options:      menuOptions,
			DefaultIndex: defaultIndex,
		})
		if err != nil {
			return contact.Decision{}, err
		}
		if idx < 0 || idx >= len(menuOptions) {
			return contact.Decision{}, ErrNoSelection
		}

		var decision contact.Decision
		switch menuOptions[idx] {
		case menuSend:
			decision = v.Submit()
		case menuContinue:
			decision = v.Continue()
		case menuEdit:
			id, err := r.pickField(ctx, doc, s.state().Focus)
			if err != nil {
				return contact.Decision{}, err
			}
			if err := r.promptField(ctx, doc, s, v, id); err != nil {
				return contact.Decision{}, err
			}
			continue
		case menuQuit:
			discard, err := r.confirmQuit(ctx, s)
			if err != nil {
				return contact.Decision{}, err
			}
			if discard {
				return contact.Decision{}, ErrAborted
			}
			continue
		}

		if decision.Proceeds() {
			return decision, nil
		}
		if err := r.report(ctx, doc, s.state()); err != nil {
			return contact.Decision{}, err
		}
		defaultIndex = indexOf(menuOptions, menuEdit)
	}
}

// confirmQuit asks before discarding typed content. An untouched form quits
// straight away.
func (r *Renderer) confirmQuit(ctx context.Context, s *session) (bool, error) {
	typed := false
	for _, id := range contact.FieldIDs() {
		if !contact.Blank(s.value(id)) {
			typed = true
			break
		}
	}
	if !typed {
		return true, nil
	}
	return r.driver.Confirm(ctx, ConfirmConfig{Message: "Discard your message and quit?"})
}

// promptField asks for one value and signals the edit to the validator.
func (r *Renderer) promptField(ctx context.Context, doc render.Document, s *session, v *contact.Validator, id contact.FieldID) error {
	label := doc.LabelFor(id)
	message := label.Label
	if field, ok := contact.Lookup(id); ok && field.Required {
		message += " *"
	}

	var (
		value string
		err   error
	)
	if id == contact.FieldMessage {
		value, err = r.driver.TextArea(ctx, TextAreaConfig{
			Message: message,
			Default: s.value(id),
			Help:    label.Help,
		})
	} else {
		value, err = r.driver.Input(ctx, InputConfig{
			Message: message,
			Default: s.value(id),
			Help:    label.Help,
		})
	}
	if err != nil {
		return err
	}

	s.set(id, value)
	v.Input(id)
	return nil
}

// pickField asks which field to edit, preselecting the focused one.
func (r *Renderer) pickField(ctx context.Context, doc render.Document, focus contact.FieldID) (contact.FieldID, error) {
	ids := contact.FieldIDs()
	options := make([]string, len(ids))
	defaultIndex := 0
	for i, id := range ids {
		options[i] = doc.LabelFor(id).Label
		if id == focus {
			defaultIndex = i
		}
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      "Which field?",
		Options:      options,
		DefaultIndex: defaultIndex,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(ids) {
		return "", ErrNoSelection
	}
	return ids[idx], nil
}

// report prints the status banner and every visible field error.
func (r *Renderer) report(ctx context.Context, doc render.Document, state contact.ValidationState) error {
	mapping := render.MapState(state)
	if mapping.Empty() {
		return nil
	}
	for _, message := range mapping.Form {
		prefix := r.theme.ErrorPrefix
		if state.Attention {
			prefix = r.theme.AttentionPrefix + prefix
		}
		if err := r.driver.Info(ctx, prefix+message); err != nil {
			return err
		}
	}
	for _, id := range contact.FieldIDs() {
		message, ok := mapping.Fields[id]
		if !ok {
			continue
		}
		line := fmt.Sprintf("  %s: %s", doc.LabelFor(id).Label, message)
		if err := r.driver.Info(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) announce(ctx context.Context, decision contact.Decision) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+"Sending to "+decision.Destination)
}

func (r *Renderer) serialize(values map[string]string) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		form := url.Values{}
		for key, value := range values {
			form.Set(key, value)
		}
		return []byte(form.Encode()), nil
	case OutputFormatPrettyText:
		var b strings.Builder
		for _, key := range orderedKeys(values) {
			fmt.Fprintf(&b, "%s: %s\n", key, values[key])
		}
		return []byte(b.String()), nil
	default:
		data, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: encode json: %w", err)
		}
		return data, nil
	}
}

// orderedKeys lists contact fields in declaration order followed by any extra
// keys a transformer added, sorted.
func orderedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, id := range contact.FieldIDs() {
		if _, ok := values[string(id)]; ok {
			keys = append(keys, string(id))
			seen[string(id)] = struct{}{}
		}
	}
	var extra []string
	for key := range values {
		if _, ok := seen[key]; !ok {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

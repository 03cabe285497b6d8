package tui

import (
	"context"

	"github.com/goliatone/go-contactform/pkg/contact"
)

// OutputFormat controls how the submitted values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// ParseOutputFormat validates a raw format name.
func ParseOutputFormat(raw string) (OutputFormat, bool) {
	switch OutputFormat(raw) {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
		return OutputFormat(raw), true
	}
	return "", false
}

// Theme holds the message prefixes used when printing feedback.
type Theme struct {
	InfoPrefix      string
	ErrorPrefix     string
	AttentionPrefix string
}

func defaultTheme() Theme {
	return Theme{
		InfoPrefix:      "→ ",
		ErrorPrefix:     "✗ ",
		AttentionPrefix: "(!) ",
	}
}

// SubmitTransformer mutates collected values before serialization.
type SubmitTransformer func(map[string]string) (map[string]string, error)

// Navigator acts on a proceeding decision. The default prints the destination.
type Navigator func(ctx context.Context, decision contact.Decision) error

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithSubmitTransformer allows callers to mutate collected values prior to
// serialization.
func WithSubmitTransformer(fn SubmitTransformer) Option {
	return func(r *Renderer) {
		r.submitTransformer = fn
	}
}

// WithTheme overrides the message prefixes. Empty prefixes are kept empty.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithNavigator replaces the default navigation handler.
func WithNavigator(navigator Navigator) Option {
	return func(r *Renderer) {
		if navigator != nil {
			r.navigator = navigator
		}
	}
}

// WithValidatorOptions forwards options to the validator bound for each
// session (logger, attention delay, ...).
func WithValidatorOptions(options ...contact.Option) Option {
	return func(r *Renderer) {
		r.validatorOptions = append(r.validatorOptions, options...)
	}
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/orchestrator"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/renderers/html"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		values       []string
		event        string
		out          string
		templatesDir string
		presetPath   string
		csrfField    string
		csrfToken    string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the contact page HTML",
		Long: `Renders the contact form document. With --event the given values are
validated first, so the output shows the error slots, banner, focus and
attention marker produced by a submit or continue.

Example:
  contactform render --values name=A --values email=jane@example.com --event submit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsedEvent, err := orchestrator.ParseEvent(event)
			if err != nil {
				return err
			}
			fieldValues, err := parseValues(values)
			if err != nil {
				return err
			}

			htmlOptions := []html.Option{html.WithTheme(a.cfg.ThemeSelection())}
			if templatesDir != "" {
				htmlOptions = append(htmlOptions, html.WithTemplatesDir(templatesDir))
			}
			renderer, err := html.New(htmlOptions...)
			if err != nil {
				return err
			}
			registry := render.NewRegistry()
			if err := registry.Register(renderer); err != nil {
				return err
			}

			options := []orchestrator.Option{
				orchestrator.WithRegistry(registry),
				orchestrator.WithLogger(a.logger),
				orchestrator.WithValidatorOptions(contact.WithAttentionDelay(a.cfg.GetAttentionDelay())),
			}
			if presetPath != "" {
				data, err := os.ReadFile(presetPath)
				if err != nil {
					return fmt.Errorf("contactform: read preset: %w", err)
				}
				preset, err := orchestrator.NewJSONPresetTransformer(data)
				if err != nil {
					return err
				}
				options = append(options, orchestrator.WithTransformer(preset))
			}

			doc := a.cfg.Document()
			doc.Values = fieldValues
			if csrfToken != "" {
				doc.Hidden = render.MergeHiddenFields(doc.Hidden, render.CSRFToken(csrfField, csrfToken))
			}
			result, err := orchestrator.New(options...).Run(cmd.Context(), orchestrator.Request{
				Document: doc,
				Event:    parsedEvent,
			})
			if err != nil {
				return err
			}
			if parsedEvent != orchestrator.EventNone {
				a.logger.Info("contactform: event dispatched",
					zap.String("event", string(parsedEvent)),
					zap.Stringer("decision", result.Decision.Action),
					zap.Strings("failing", failingNames(result.State)),
				)
			}

			if out == "" {
				_, err = cmd.OutOrStdout().Write(result.Output)
				return err
			}
			if err := os.WriteFile(out, result.Output, 0o644); err != nil {
				return fmt.Errorf("contactform: write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Form written to %s\n", out)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVar(&values, "values", nil, "field value as name=value (repeatable)")
	flags.StringVar(&event, "event", "", "event to dispatch first: submit or continue")
	flags.StringVar(&out, "out", "", "output file (stdout if empty)")
	flags.StringVar(&templatesDir, "templates", "", "directory overriding the embedded templates")
	flags.StringVar(&presetPath, "preset", "", "JSON preset patching labels, hidden inputs or destinations")
	flags.StringVar(&csrfField, "csrf-field", "_csrf", "hidden input name for --csrf-token")
	flags.StringVar(&csrfToken, "csrf-token", "", "CSRF token emitted as a hidden input")
	return cmd
}

// parseValues turns name=value pairs into field values. Only the first "="
// separates, so values may contain "=".
func parseValues(pairs []string) (map[contact.FieldID]string, error) {
	out := make(map[contact.FieldID]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("contactform: value %q must be name=value", pair)
		}
		id, err := contact.ParseFieldID(name)
		if err != nil {
			return nil, fmt.Errorf("contactform: %w", err)
		}
		out[id] = value
	}
	return out, nil
}

func failingNames(state contact.ValidationState) []string {
	failing := state.Failing()
	names := make([]string, len(failing))
	for i, id := range failing {
		names[i] = string(id)
	}
	return names
}

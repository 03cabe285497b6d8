package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/renderers/tui"
)

func newRunCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fill in the contact form interactively",
		Long: `Prompts for each contact field, then offers to send the message, continue,
edit a field or quit. Invalid input is reported inline and the session keeps
going until the form passes; the collected values are then printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format := a.cfg.Output
			parsed, ok := tui.ParseOutputFormat(format)
			if !ok {
				return fmt.Errorf("contactform: unsupported output format %q", format)
			}

			options := []tui.Option{
				tui.WithOutputFormat(parsed),
				tui.WithValidatorOptions(
					contact.WithLogger(a.logger),
					contact.WithAttentionDelay(a.cfg.GetAttentionDelay()),
				),
			}
			if a.driver != nil {
				options = append(options, tui.WithPromptDriver(a.driver))
			}
			renderer, err := tui.New(options...)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			result, err := renderer.Run(ctx, a.cfg.Document())
			if errors.Is(err, tui.ErrAborted) {
				a.logger.Info("contactform: session aborted")
				return nil
			}
			if err != nil {
				return err
			}

			a.logger.Info("contactform: session complete",
				zap.Stringer("decision", result.Decision.Action),
				zap.String("destination", result.Decision.Destination),
			)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(result.Payload))
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json, form or pretty (overrides the config file)")
	return cmd
}

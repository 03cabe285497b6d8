package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-contactform/pkg/contact"
)

func newCheckCmd(a *app) *cobra.Command {
	var format string
	values := make(map[contact.FieldID]*string, len(contact.FieldIDs()))

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate contact values without a terminal session",
		Long: `Evaluates every contact rule against the values given as flags and prints
the failures. Exits with status 1 when any field fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input := make(map[contact.FieldID]string, len(values))
			for id, value := range values {
				input[id] = *value
			}
			report := contact.Check(input)

			switch format {
			case "json":
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return fmt.Errorf("contactform: encode report: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			case "text":
				if report.Valid {
					fmt.Fprintln(cmd.OutOrStdout(), "ok")
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), contact.MessageInvalid)
					for _, failure := range report.Failures {
						fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s\n", failure.Field, failure.Message)
					}
				}
			default:
				return fmt.Errorf("contactform: unsupported format %q", format)
			}

			if !report.Valid {
				a.logger.Debug("contactform: check failed")
				return errInvalidInput
			}
			return nil
		},
	}

	flags := cmd.Flags()
	for _, id := range contact.FieldIDs() {
		values[id] = flags.String(string(id), "", fmt.Sprintf("%s value", id))
	}
	flags.StringVar(&format, "format", "text", "report format: text or json")
	return cmd
}

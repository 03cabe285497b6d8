package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-contactform/pkg/openapi"
)

func newSchemaCmd(a *app) *cobra.Command {
	var (
		format  string
		title   string
		version string
	)

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the OpenAPI contract of the contact submission",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := openapi.Build(
				openapi.WithTitle(title),
				openapi.WithAPIVersion(version),
				openapi.WithAction(a.cfg.Action),
				openapi.WithDestination(a.cfg.Destination),
			)
			if err != nil {
				return err
			}
			if err := doc.Validate(cmd.Context()); err != nil {
				return fmt.Errorf("contactform: contract is invalid: %w", err)
			}

			var data []byte
			switch format {
			case "yaml", "yml":
				data, err = openapi.MarshalYAML(doc)
			case "json":
				data, err = openapi.MarshalJSON(doc)
			default:
				return fmt.Errorf("contactform: unsupported format %q", format)
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&format, "format", "yaml", "output format: yaml or json")
	flags.StringVar(&title, "title", "", "info.title of the document")
	flags.StringVar(&version, "api-version", "", "info.version of the document")
	return cmd
}

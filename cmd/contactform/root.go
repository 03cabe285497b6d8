package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/internal/logging"
	"github.com/goliatone/go-contactform/pkg/config"
	"github.com/goliatone/go-contactform/pkg/renderers/tui"
)

// errInvalidInput makes the process exit non-zero after the report was
// already printed.
var errInvalidInput = errors.New("contactform: input is invalid")

// app carries the state shared by subcommands.
type app struct {
	configPath string
	logLevel   string
	env        string

	cfg    *config.Config
	logger *zap.Logger

	// driver overrides the terminal prompts, mostly for tests.
	driver tui.PromptDriver
}

func newRootCmd(driver tui.PromptDriver) *cobra.Command {
	a := &app{driver: driver}

	root := &cobra.Command{
		Use:   "contactform",
		Short: "Validate, render and run the contact form",
		Long: `contactform validates contact details (name, email, phone, subject and
message) the way the contact page does before it lets a submission through.

Use "run" for an interactive terminal session, "render" to produce the HTML
document for a given state, "check" to validate values non-interactively and
"schema" to export the submission contract as OpenAPI.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a YAML config file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&a.env, "env", "", `environment; "prod" switches to JSON logs`)

	root.AddCommand(
		newRunCmd(a),
		newRenderCmd(a),
		newCheckCmd(a),
		newSchemaCmd(a),
	)
	return root
}

// setup loads the config, layering explicitly set flags over the file and
// environment, and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath, config.WithFlags(cmd.Flags()))
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.BuildLogger(cfg.LogLevel, cfg.Env)
	if err != nil {
		return fmt.Errorf("contactform: build logger: %w", err)
	}
	a.logger = logger
	a.logger.Debug("contactform: config loaded",
		zap.String("path", a.configPath),
		zap.String("action", cfg.Action),
		zap.String("destination", cfg.Destination),
	)
	return nil
}

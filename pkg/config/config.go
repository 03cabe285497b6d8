// Package config loads the contact form settings from YAML, the environment
// and command line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-contactform/internal/logging"
	"github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/render"
)

// EnvPrefix namespaces the environment overrides: CONTACTFORM_ACTION,
// CONTACTFORM_DESTINATION, CONTACTFORM_ATTENTION_DELAY, CONTACTFORM_OUTPUT,
// CONTACTFORM_LOG_LEVEL and CONTACTFORM_ENV.
const EnvPrefix = "CONTACTFORM"

// Output formats accepted by the terminal host.
var validOutputs = []string{"json", "form", "pretty"}

// Config holds the contact form settings.
type Config struct {
	// Action is where a valid submission proceeds.
	Action string `yaml:"action" mapstructure:"action"`
	// Destination is where the continue control navigates.
	Destination string `yaml:"destination" mapstructure:"destination"`
	// AttentionDelay is a Go duration string ("500ms").
	AttentionDelay string `yaml:"attention_delay" mapstructure:"attention_delay"`
	Output         string `yaml:"output" mapstructure:"output"`
	LogLevel       string `yaml:"log_level" mapstructure:"log_level"`
	Env            string `yaml:"env" mapstructure:"env"` // "dev" | "prod"

	Labels map[string]render.FieldLabel `yaml:"labels,omitempty" mapstructure:"labels"`
	Theme  ThemeConfig                  `yaml:"theme,omitempty" mapstructure:"theme"`
	// Hidden input names are case-folded when read from a file.
	Hidden map[string]string `yaml:"hidden,omitempty" mapstructure:"hidden"`
}

// ThemeConfig selects a theme and its design tokens.
type ThemeConfig struct {
	Name    string            `yaml:"name,omitempty" mapstructure:"name"`
	Variant string            `yaml:"variant,omitempty" mapstructure:"variant"`
	Tokens  map[string]string `yaml:"tokens,omitempty" mapstructure:"tokens"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Action:         contact.DefaultDestination,
		Destination:    contact.DefaultDestination,
		AttentionDelay: contact.DefaultAttentionDelay.String(),
		Output:         "json",
		LogLevel:       "info",
		Env:            "dev",
	}
}

// LoadOption adjusts how Load layers its sources.
type LoadOption func(*loader)

type loader struct {
	flags *pflag.FlagSet
}

// WithFlags applies explicitly set flags on top of the file and environment.
// Flag names map to keys with dashes replaced by underscores ("log-level" ->
// log_level); flags that name no key are ignored.
func WithFlags(flags *pflag.FlagSet) LoadOption {
	return func(l *loader) {
		l.flags = flags
	}
}

// Load layers, lowest first: defaults, the YAML file at path (optional),
// CONTACTFORM_* environment variables and explicitly set flags. The result is
// validated.
func Load(path string, options ...LoadOption) (*Config, error) {
	var data []byte
	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		data = raw
	}
	cfg, err := load(data, options...)
	if err != nil && path != "" {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, err
}

// Parse decodes YAML the same way Load does for a file.
func Parse(data []byte, options ...LoadOption) (*Config, error) {
	return load(data, options...)
}

func load(data []byte, options ...LoadOption) (*Config, error) {
	l := &loader{}
	for _, opt := range options {
		if opt != nil {
			opt(l)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for _, key := range scalarKeys {
		_ = v.BindEnv(key)
	}
	setDefaults(v, Default())

	if len(data) > 0 {
		v.SetConfigType("yaml")
		if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	}

	if l.flags != nil {
		var bindErr error
		l.flags.VisitAll(func(f *pflag.Flag) {
			if !f.Changed {
				return
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if !contains(scalarKeys, key) {
				return
			}
			if err := v.BindPFlag(key, f); err != nil && bindErr == nil {
				bindErr = fmt.Errorf("config: bind flag %s: %w", f.Name, err)
			}
		})
		if bindErr != nil {
			return nil, bindErr
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// scalarKeys may be overridden from the environment and flags.
var scalarKeys = []string{"action", "destination", "attention_delay", "output", "log_level", "env"}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("action", d.Action)
	v.SetDefault("destination", d.Destination)
	v.SetDefault("attention_delay", d.AttentionDelay)
	v.SetDefault("output", d.Output)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("env", d.Env)
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Validate rejects values no host could use.
func (c *Config) Validate() error {
	var errs []error

	if _, err := c.parseDelay(); err != nil {
		errs = append(errs, err)
	}
	if !contains(validOutputs, strings.ToLower(c.Output)) {
		errs = append(errs, fmt.Errorf("config: output %q must be one of %s", c.Output, strings.Join(validOutputs, ", ")))
	}
	if c.LogLevel != "" && !logging.IsValidLogLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("config: invalid log_level %q", c.LogLevel))
	}
	for key := range c.Labels {
		if _, err := contact.ParseFieldID(key); err != nil {
			errs = append(errs, fmt.Errorf("config: labels: %w", err))
		}
	}
	for name := range c.Hidden {
		if _, err := contact.ParseFieldID(name); err == nil {
			errs = append(errs, fmt.Errorf("config: hidden input %q collides with a contact field", name))
		}
		if strings.TrimSpace(name) == "" {
			errs = append(errs, errors.New("config: hidden input name is empty"))
		}
	}

	return errors.Join(errs...)
}

// GetAttentionDelay returns the parsed attention delay, or the default when
// unset or invalid.
func (c *Config) GetAttentionDelay() time.Duration {
	d, err := c.parseDelay()
	if err != nil || d == 0 {
		return contact.DefaultAttentionDelay
	}
	return d
}

func (c *Config) parseDelay() (time.Duration, error) {
	raw := strings.TrimSpace(c.AttentionDelay)
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: attention_delay: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config: attention_delay must be >0, got %s", raw)
	}
	return d, nil
}

// FieldLabels converts the configured labels to field identifiers. Unknown
// keys are skipped; Validate reports them.
func (c *Config) FieldLabels() map[contact.FieldID]render.FieldLabel {
	if len(c.Labels) == 0 {
		return nil
	}
	out := make(map[contact.FieldID]render.FieldLabel, len(c.Labels))
	for key, label := range c.Labels {
		id, err := contact.ParseFieldID(key)
		if err != nil {
			continue
		}
		out[id] = label
	}
	return out
}

// ThemeSelection returns the configured theme, or nil when none is set.
func (c *Config) ThemeSelection() *theme.Selection {
	if c.Theme.Name == "" && len(c.Theme.Tokens) == 0 {
		return nil
	}
	name := c.Theme.Name
	if name == "" {
		name = "default"
	}
	variant := c.Theme.Variant
	if variant == "" {
		variant = "light"
	}
	tokens := make(map[string]string, len(c.Theme.Tokens))
	for key, value := range c.Theme.Tokens {
		tokens[key] = value
	}
	return &theme.Selection{
		Theme:   name,
		Variant: variant,
		Manifest: &theme.Manifest{
			Name:   name,
			Tokens: tokens,
		},
	}
}

// Document seeds a render document with the configured action, destination,
// labels and hidden inputs.
func (c *Config) Document() render.Document {
	return render.Document{
		Action:      c.Action,
		Destination: c.Destination,
		Labels:      c.FieldLabels(),
		Hidden:      render.MergeHiddenFields(c.Hidden),
	}
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

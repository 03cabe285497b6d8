package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"

	"github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/render"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Action != "./404.html" || cfg.Destination != "./404.html" {
		t.Fatalf("unexpected default destinations %q %q", cfg.Action, cfg.Destination)
	}
	if got := cfg.GetAttentionDelay(); got != 500*time.Millisecond {
		t.Fatalf("attention delay = %s", got)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestParse_OverridesDefaults(t *testing.T) {
	data := []byte(`
destination: /thanks.html
attention_delay: 750ms
output: pretty
labels:
  name:
    label: Your name
    help: "<b>First</b> and last"
  Email:
    placeholder: you@example.com
theme:
  name: acme
  tokens:
    brand: "#123456"
hidden:
  _csrf: abc
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if cfg.Action != contact.DefaultDestination {
		t.Fatalf("action should keep its default, got %q", cfg.Action)
	}
	if cfg.Destination != "/thanks.html" {
		t.Fatalf("destination = %q", cfg.Destination)
	}
	if got := cfg.GetAttentionDelay(); got != 750*time.Millisecond {
		t.Fatalf("attention delay = %s", got)
	}

	wantLabels := map[contact.FieldID]render.FieldLabel{
		contact.FieldName:  {Label: "Your name", Help: "<b>First</b> and last"},
		contact.FieldEmail: {Placeholder: "you@example.com"},
	}
	if diff := cmp.Diff(wantLabels, cfg.FieldLabels()); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}

	selection := cfg.ThemeSelection()
	if selection == nil || selection.Theme != "acme" || selection.Variant != "light" {
		t.Fatalf("unexpected theme selection %+v", selection)
	}
	if selection.Manifest.Tokens["brand"] != "#123456" {
		t.Fatalf("expected brand token, got %v", selection.Manifest.Tokens)
	}

	doc := cfg.Document()
	if doc.Hidden["_csrf"] != "abc" || doc.Destination != "/thanks.html" {
		t.Fatalf("unexpected document %+v", doc)
	}
}

func TestParse_RejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"output":        "output: xml\n",
		"delay":         "attention_delay: soon\n",
		"negativeDelay": "attention_delay: -1s\n",
		"logLevel":      "log_level: loud\n",
		"label":         "labels:\n  company:\n    label: Company\n",
		"hidden":        "hidden:\n  email: x\n",
		"yaml":          "output: [json\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(data)); err == nil {
				t.Fatalf("expected error for %q", data)
			}
		})
	}
}

func TestParse_UnknownLabelWrapsSentinel(t *testing.T) {
	_, err := Parse([]byte("labels:\n  company:\n    label: Company\n"))
	if !errors.Is(err, contact.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"_DESTINATION", "/from-env")
	t.Setenv(EnvPrefix+"_LOG_LEVEL", "debug")
	t.Setenv(EnvPrefix+"_ATTENTION_DELAY", "1s")

	cfg, err := Parse([]byte("destination: /from-file\noutput: form\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Destination != "/from-env" || cfg.LogLevel != "debug" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if cfg.GetAttentionDelay() != time.Second {
		t.Fatalf("attention delay = %s", cfg.GetAttentionDelay())
	}
	if cfg.Output != "form" {
		t.Fatalf("file value lost: output = %q", cfg.Output)
	}
}

func TestEnvOverrides_InvalidValueFailsValidation(t *testing.T) {
	t.Setenv(EnvPrefix+"_OUTPUT", "xml")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected invalid env output to be rejected")
	}
}

func TestWithFlags_OnlyChangedFlagsOverride(t *testing.T) {
	t.Setenv(EnvPrefix+"_LOG_LEVEL", "warn")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "error", "")
	flags.String("env", "dev", "")
	flags.String("output", "json", "")
	flags.String("config", "", "")
	if err := flags.Parse([]string{"--log-level", "debug", "--config", "x.yaml"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Parse([]byte("output: pretty\nenv: prod\n"), WithFlags(flags))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := Default()
	want.LogLevel = "debug"
	want.Output = "pretty"
	want.Env = "prod"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("layering mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "contactform.yaml")
	cfg := Default()
	cfg.Destination = "/next"
	cfg.Theme = ThemeConfig{Name: "acme", Variant: "dark"}
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestThemeSelection_NilWhenUnset(t *testing.T) {
	if Default().ThemeSelection() != nil {
		t.Fatalf("expected nil selection without theme settings")
	}
}

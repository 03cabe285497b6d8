package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/renderers/tui"
	"github.com/goliatone/go-contactform/pkg/testsupport"
)

type scriptedDriver struct {
	answers []string
	selects []int
	infos   []string
}

func (d *scriptedDriver) next() (string, error) {
	if len(d.answers) == 0 {
		return "", errors.New("no scripted answer")
	}
	answer := d.answers[0]
	d.answers = d.answers[1:]
	return answer, nil
}

func (d *scriptedDriver) Input(context.Context, tui.InputConfig) (string, error) { return d.next() }
func (d *scriptedDriver) TextArea(context.Context, tui.TextAreaConfig) (string, error) {
	return d.next()
}
func (d *scriptedDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	return false, nil
}
func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}
func (d *scriptedDriver) Select(context.Context, tui.SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		return 0, errors.New("no scripted selection")
	}
	idx := d.selects[0]
	d.selects = d.selects[1:]
	return idx, nil
}

func execute(t *testing.T, driver tui.PromptDriver, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(driver)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func validFlags() []string {
	return []string{
		"--name", "Jane Doe",
		"--email", "jane@example.com",
		"--subject", "Quote request",
		"--message", "I would like a quote please.",
	}
}

func TestCheck_Valid(t *testing.T) {
	out, err := execute(t, nil, append([]string{"check"}, validFlags()...)...)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if out != "ok\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestCheck_InvalidReportsEveryFailure(t *testing.T) {
	out, err := execute(t, nil, "check", "--name", "A", "--email", "jane@", "--phone", "12")
	if !errors.Is(err, errInvalidInput) {
		t.Fatalf("expected errInvalidInput, got %v", err)
	}
	goldenPath := filepath.Join("testdata", "check_invalid.golden")
	if testsupport.WriteMaybeGolden(t, goldenPath, []byte(out)) {
		return
	}
	want := testsupport.MustReadGoldenString(t, goldenPath)
	if diff := testsupport.CompareGolden(want, out); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestCheck_JSON(t *testing.T) {
	out, err := execute(t, nil, append([]string{"check", "--format", "json", "--email", "nope"}, "--name", "Jane")...)
	if !errors.Is(err, errInvalidInput) {
		t.Fatalf("expected errInvalidInput, got %v", err)
	}
	var report contact.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	if report.Valid || !report.Failed(contact.FieldEmail) || report.Failed(contact.FieldName) {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestRender_SubmitEvent(t *testing.T) {
	out, err := execute(t, nil, "render", "--values", "name=A", "--values", "email=jane@example.com", "--event", "submit")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, fragment := range []string{
		`<div class="form-alert error" role="alert">` + contact.MessageInvalid + `</div>`,
		`<div class="form-error" id="name-error">` + contact.MessageName + `</div>`,
		`<div class="form-error" id="email-error" hidden></div>`,
	} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in output\n%s", fragment, out)
		}
	}
}

func TestRender_WritesFileWithConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "contactform.yaml")
	config := "destination: /thanks.html\nhidden:\n  _csrf: token-1\n"
	if err := os.WriteFile(configPath, []byte(config), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	outPath := filepath.Join(dir, "contact.html")

	out, err := execute(t, nil, "render", "--config", configPath, "--out", outPath)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "Form written to "+outPath) {
		t.Fatalf("unexpected output %q", out)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	html := string(data)
	if !strings.Contains(html, `data-destination="/thanks.html"`) || !strings.Contains(html, `name="_csrf" value="token-1"`) {
		t.Fatalf("config not applied\n%s", html)
	}
}

func TestRender_CSRFToken(t *testing.T) {
	out, err := execute(t, nil, "render", "--csrf-token", "t<1>")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `<input type="hidden" name="_csrf" value="t&lt;1&gt;">`) {
		t.Fatalf("expected escaped csrf input\n%s", out)
	}
}

func TestRender_Errors(t *testing.T) {
	cases := [][]string{
		{"render", "--values", "name"},
		{"render", "--values", "company=Acme"},
		{"render", "--event", "reset"},
		{"render", "--config", filepath.Join(t.TempDir(), "missing.yaml")},
	}
	for _, args := range cases {
		if _, err := execute(t, nil, args...); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestSchema(t *testing.T) {
	out, err := execute(t, nil, "schema")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	for _, fragment := range []string{"openapi: 3.0.3", "/404.html:", "operationId: submitContact"} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in yaml\n%s", fragment, out)
		}
	}

	out, err = execute(t, nil, "schema", "--format", "json", "--title", "Acme contact")
	if err != nil {
		t.Fatalf("schema json: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	info, _ := doc["info"].(map[string]any)
	if info["title"] != "Acme contact" {
		t.Fatalf("unexpected info %v", info)
	}

	if _, err := execute(t, nil, "schema", "--format", "toml"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestRun_Session(t *testing.T) {
	driver := &scriptedDriver{
		answers: []string{"Jane Doe", "jane@example.com", "", "Quote request", "I would like a quote please."},
		selects: []int{1}, // continue
	}
	out, err := execute(t, driver, "run", "--output", "pretty")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(out, "name: Jane Doe\nemail: jane@example.com\n") {
		t.Fatalf("unexpected payload %q", out)
	}
	if len(driver.infos) != 1 || !strings.HasSuffix(driver.infos[0], "./404.html") {
		t.Fatalf("expected navigation notice, got %v", driver.infos)
	}
}

func TestRun_QuitIsNotAnError(t *testing.T) {
	driver := &scriptedDriver{
		answers: []string{"", "", "", "", ""},
		selects: []int{3}, // quit
	}
	out, err := execute(t, driver, "run")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "" {
		t.Fatalf("expected no payload, got %q", out)
	}
}

func TestRun_RejectsUnknownOutput(t *testing.T) {
	if _, err := execute(t, &scriptedDriver{}, "run", "--output", "xml"); err == nil {
		t.Fatalf("expected error for unknown output format")
	}
}

func TestRun_OutputLayering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contactform.yaml")
	if err := os.WriteFile(path, []byte("output: json\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONTACTFORM_OUTPUT", "form")

	session := func() *scriptedDriver {
		return &scriptedDriver{
			answers: []string{"Jane Doe", "jane@example.com", "", "Quote request", "I would like a quote please."},
			selects: []int{0},
		}
	}

	out, err := execute(t, session(), "run", "--config", path)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(out, "email=jane%40example.com&") {
		t.Fatalf("environment should override the file, got %q", out)
	}

	out, err = execute(t, session(), "run", "--config", path, "--output", "pretty")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(out, "name: Jane Doe\n") {
		t.Fatalf("flag should override the environment, got %q", out)
	}
}

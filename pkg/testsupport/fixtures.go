package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/contact"
)

// ValidValues returns a set of contact values that passes every rule.
func ValidValues() map[contact.FieldID]string {
	return map[contact.FieldID]string{
		contact.FieldName:    "Jane Doe",
		contact.FieldEmail:   "jane@example.com",
		contact.FieldPhone:   "",
		contact.FieldSubject: "Quote request",
		contact.FieldMessage: "I would like a quote please.",
	}
}

// Page is an in-memory host document whose values tests can edit between
// events.
type Page struct {
	Values map[contact.FieldID]string
}

// NewPage copies values into a new Page.
func NewPage(values map[contact.FieldID]string) *Page {
	page := &Page{Values: make(map[contact.FieldID]string, len(values))}
	for id, value := range values {
		page.Values[id] = value
	}
	return page
}

// Binding binds every contact field to the page.
func (p *Page) Binding() contact.Binding {
	binding := make(contact.Binding, len(contact.FieldIDs()))
	for _, id := range contact.FieldIDs() {
		id := id
		binding[id] = contact.InputFunc(func() string { return p.Values[id] })
	}
	return binding
}

// MustValidator binds a validator to the page and closes it when the test ends.
func (p *Page) MustValidator(t *testing.T, options ...contact.Option) *contact.Validator {
	t.Helper()
	v, err := contact.New(p.Binding(), options...)
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}
	t.Cleanup(v.Close)
	return v
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}

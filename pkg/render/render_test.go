package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/render"
)

func TestMapState_OnlyVisibleRegions(t *testing.T) {
	state := contact.ValidationState{
		Fields: map[contact.FieldID]contact.FieldState{
			contact.FieldEmail:   {Slot: contact.FieldErrorSlot{Message: contact.MessageEmail, Visible: true}, Invalid: true},
			contact.FieldMessage: {Slot: contact.FieldErrorSlot{Message: contact.MessageBody, Visible: false}},
		},
		Status: contact.FormStatus{Message: " " + contact.MessageInvalid + " ", Kind: contact.StatusError, Visible: true},
	}

	mapped := render.MapState(state)
	want := render.ErrorMapping{
		Fields: map[contact.FieldID]string{contact.FieldEmail: contact.MessageEmail},
		Form:   []string{contact.MessageInvalid},
		Kind:   contact.StatusError,
	}
	if diff := cmp.Diff(want, mapped); diff != "" {
		t.Fatalf("mapping mismatch (-want +got):\n%s", diff)
	}

	state.Status.Visible = false
	state.Fields[contact.FieldEmail] = contact.FieldState{}
	if mapped := render.MapState(state); !mapped.Empty() {
		t.Fatalf("expected empty mapping, got %+v", mapped)
	}
}

func TestMergeAndSortHiddenFields(t *testing.T) {
	merged := render.MergeHiddenFields(map[string]string{" existing ": "keep", "": "ignored"},
		render.CSRFToken(" _csrf ", "token123"),
		render.HiddenField{Name: "", Value: "skip"},
	)

	wantMerged := map[string]string{"existing": "keep", "_csrf": "token123"}
	if diff := cmp.Diff(wantMerged, merged); diff != "" {
		t.Fatalf("merged hidden fields mismatch (-want +got):\n%s", diff)
	}

	wantSorted := []render.HiddenField{
		{Name: "_csrf", Value: "token123"},
		{Name: "existing", Value: "keep"},
	}
	if diff := cmp.Diff(wantSorted, render.SortedHiddenFields(merged)); diff != "" {
		t.Fatalf("sorted hidden fields mismatch (-want +got):\n%s", diff)
	}
}

func TestDocumentLabelFallback(t *testing.T) {
	doc := render.Document{
		Labels: map[contact.FieldID]render.FieldLabel{
			contact.FieldSubject: {Placeholder: "What is it about?"},
		},
	}
	got := doc.LabelFor(contact.FieldSubject)
	if got.Label != "Subject" || got.Placeholder != "What is it about?" {
		t.Fatalf("label fallback mismatch: %+v", got)
	}
	if doc.LabelFor(contact.FieldName).Label != "Full name" {
		t.Fatalf("expected default name label")
	}
}

type namedRenderer struct{ name string }

func (r namedRenderer) Name() string        { return r.name }
func (r namedRenderer) ContentType() string { return "text/plain" }
func (r namedRenderer) Render(context.Context, render.Document) ([]byte, error) {
	return []byte(r.name), nil
}

func TestRegistry(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(namedRenderer{name: "TUI"})
	registry.MustRegister(namedRenderer{name: "html"})

	if err := registry.Register(namedRenderer{name: " Html "}); !errors.Is(err, render.ErrDuplicateRenderer) {
		t.Fatalf("expected ErrDuplicateRenderer, got %v", err)
	}
	if err := registry.Register(namedRenderer{}); err == nil {
		t.Fatalf("expected empty name error")
	}
	if diff := cmp.Diff([]string{"tui", "html"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if _, err := registry.Get("Html"); err != nil {
		t.Fatalf("expected case-insensitive lookup: %v", err)
	}
	if _, err := registry.Get("preact"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}

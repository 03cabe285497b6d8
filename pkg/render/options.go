package render

import (
	"github.com/goliatone/go-contactform/pkg/contact"
)

// FieldLabel carries the presentational text of one input. Help may contain
// limited inline markup; renderers sanitize it before output.
type FieldLabel struct {
	Label       string `json:"label,omitempty" yaml:"label"`
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder"`
	Help        string `json:"help,omitempty" yaml:"help"`
}

// Document describes the host document for one render: where the form posts,
// the current input values and the validator display state.
type Document struct {
	// Action is the form's configured destination used by the default
	// submission.
	Action string
	// Destination is where the continue control navigates explicitly.
	Destination string
	// Method defaults to POST when empty.
	Method string
	Values map[contact.FieldID]string
	State  contact.ValidationState
	Labels map[contact.FieldID]FieldLabel
	// Hidden inputs emitted alongside the contact fields (for example a CSRF
	// token).
	Hidden map[string]string
}

// LabelFor returns the configured label for id, falling back to DefaultLabels.
func (d Document) LabelFor(id contact.FieldID) FieldLabel {
	label, ok := d.Labels[id]
	fallback := DefaultLabels()[id]
	if !ok {
		return fallback
	}
	if label.Label == "" {
		label.Label = fallback.Label
	}
	return label
}

// ValueOf returns the current value of id.
func (d Document) ValueOf(id contact.FieldID) string {
	return d.Values[id]
}

// DefaultLabels returns the stock labels for the contact fields.
func DefaultLabels() map[contact.FieldID]FieldLabel {
	return map[contact.FieldID]FieldLabel{
		contact.FieldName:    {Label: "Full name", Placeholder: "Jane Doe"},
		contact.FieldEmail:   {Label: "Email", Placeholder: "jane@example.com"},
		contact.FieldPhone:   {Label: "Phone (optional)", Placeholder: "+1 555 010 9999"},
		contact.FieldSubject: {Label: "Subject"},
		contact.FieldMessage: {Label: "Message"},
	}
}

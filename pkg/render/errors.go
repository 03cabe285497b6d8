package render

import (
	"strings"

	"github.com/goliatone/go-contactform/pkg/contact"
)

// ErrorMapping splits a validation state into the messages each host region
// displays: the inline slot per field and the banner at the top of the form.
// Only visible regions are included.
type ErrorMapping struct {
	Fields map[contact.FieldID]string
	Form   []string
	Kind   contact.StatusKind
}

// Empty reports whether nothing needs to be displayed.
func (m ErrorMapping) Empty() bool {
	return len(m.Fields) == 0 && len(m.Form) == 0
}

// MapState extracts the visible feedback from state.
func MapState(state contact.ValidationState) ErrorMapping {
	mapping := ErrorMapping{}
	for _, id := range contact.FieldIDs() {
		slot := state.Field(id).Slot
		if !slot.Visible {
			continue
		}
		message := strings.TrimSpace(slot.Message)
		if message == "" {
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[contact.FieldID]string)
		}
		mapping.Fields[id] = message
	}
	if state.Status.Visible {
		mapping.Form = normalizeMessages([]string{state.Status.Message})
		mapping.Kind = state.Status.Kind
	}
	return mapping
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

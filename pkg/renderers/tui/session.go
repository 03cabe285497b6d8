package tui

import (
	"sync"

	"github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/render"
)

// session is the terminal host document for one Render call: it holds the
// values typed so far and the latest state presented by the validator.
type session struct {
	mu     sync.Mutex
	values map[contact.FieldID]string
	latest contact.ValidationState
}

func newSession(doc render.Document) *session {
	s := &session{
		values: make(map[contact.FieldID]string, len(contact.FieldIDs())),
		latest: doc.State.Clone(),
	}
	for _, id := range contact.FieldIDs() {
		s.values[id] = doc.ValueOf(id)
	}
	return s
}

func (s *session) binding() contact.Binding {
	binding := make(contact.Binding, len(s.values))
	for _, id := range contact.FieldIDs() {
		id := id
		binding[id] = contact.InputFunc(func() string { return s.value(id) })
	}
	return binding
}

func (s *session) value(id contact.FieldID) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[id]
}

func (s *session) set(id contact.FieldID, value string) {
	s.mu.Lock()
	s.values[id] = value
	s.mu.Unlock()
}

// Present records the state; the attention timer may call it from another
// goroutine.
func (s *session) Present(state contact.ValidationState) {
	s.mu.Lock()
	s.latest = state
	s.mu.Unlock()
}

func (s *session) state() contact.ValidationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest.Clone()
}

// snapshot returns the values keyed by field name.
func (s *session) snapshot() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.values))
	for id, value := range s.values {
		out[string(id)] = value
	}
	return out
}

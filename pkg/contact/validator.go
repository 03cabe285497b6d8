package contact

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Input is a live handle on a host input; Value is read at validation time.
type Input interface {
	Value() string
}

// InputFunc adapts a function into an Input.
type InputFunc func() string

// Value returns f().
func (f InputFunc) Value() string {
	return f()
}

// Binding maps every contact field to its host input.
type Binding map[FieldID]Input

// Validator decides whether the contact fields may be submitted and maintains
// the feedback shown to the user. Events are expected one at a time; the mutex
// only guards against the attention timer firing on its own goroutine.
type Validator struct {
	mu        sync.Mutex
	presentMu sync.Mutex

	inputs map[FieldID]Input
	state  ValidationState

	action         string
	destination    string
	attentionDelay time.Duration
	schedule       Scheduler
	presenter      Presenter
	logger         *zap.Logger

	attentionTimer Timer
	attentionGen   uint64
}

// New binds the validator to the host inputs. Every contact field must be
// bound; a missing or nil input is a setup error.
func New(binding Binding, options ...Option) (*Validator, error) {
	inputs := make(map[FieldID]Input, len(declared))
	for id := range binding {
		if _, ok := Lookup(id); !ok {
			return nil, fieldError(ErrUnknownField, id)
		}
	}
	for _, field := range declared {
		input := binding[field.ID]
		if input == nil {
			return nil, fieldError(ErrMissingField, field.ID)
		}
		inputs[field.ID] = input
	}

	v := &Validator{
		inputs:         inputs,
		state:          newState(),
		action:         DefaultDestination,
		destination:    DefaultDestination,
		attentionDelay: DefaultAttentionDelay,
		schedule:       afterFunc,
		logger:         zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}
	return v, nil
}

// MustNew panics on binding failure. Useful for init-time wiring.
func MustNew(binding Binding, options ...Option) *Validator {
	v, err := New(binding, options...)
	if err != nil {
		panic(err)
	}
	return v
}

// Action returns the configured form action.
func (v *Validator) Action() string {
	return v.action
}

// Destination returns the configured continue destination.
func (v *Validator) Destination() string {
	return v.destination
}

// State returns a snapshot of the display state.
func (v *Validator) State() ValidationState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state.Clone()
}

// Validate clears the previous feedback, evaluates every rule, marks failing
// fields, requests focus on the first failure and shows the error banner when
// anything failed. It reports whether every field passed.
func (v *Validator) Validate() bool {
	v.mu.Lock()
	ok := v.validateLocked()
	v.mu.Unlock()

	v.present()
	return ok
}

func (v *Validator) validateLocked() bool {
	v.state.clear()

	report := evaluate(func(id FieldID) string {
		return v.inputs[id].Value()
	})
	for _, failure := range report.Failures {
		v.state.fail(failure.Field, failure.Message)
		if v.state.Focus == "" {
			v.state.Focus = failure.Field
		}
	}
	if !report.Valid {
		v.state.showError(MessageInvalid)
	}

	v.logger.Debug("contact: validation pass",
		zap.Bool("valid", report.Valid),
		zap.Int("failures", len(report.Failures)),
		zap.String("focus", string(v.state.Focus)),
	)
	return report.Valid
}

// Submit handles a form submission. Invalid input suppresses the navigation;
// valid input lets the default navigation to the form action proceed.
func (v *Validator) Submit() Decision {
	if !v.Validate() {
		return Decision{Action: Suppress}
	}
	return Decision{Action: AllowDefault, Destination: v.action}
}

// Continue handles the secondary action. An entirely blank form is rejected
// early with the error banner and the attention marker; otherwise the fields
// are validated and, when valid, navigation to the destination is requested.
// Continue never relies on a default navigation.
func (v *Validator) Continue() Decision {
	if v.blank() {
		v.mu.Lock()
		v.state.clear()
		v.state.showError(MessageInvalid)
		v.restartAttentionLocked()
		v.mu.Unlock()

		v.logger.Debug("contact: continue rejected blank form")
		v.present()
		return Decision{Action: Suppress}
	}

	if !v.Validate() {
		return Decision{Action: Suppress}
	}
	return Decision{Action: Navigate, Destination: v.destination}
}

// Input handles a change to one field: its error slot and invalid marker are
// cleared and the banner is hidden. Validity is not recomputed. Unknown fields
// are ignored.
func (v *Validator) Input(id FieldID) {
	if _, ok := Lookup(id); !ok {
		return
	}

	v.mu.Lock()
	v.state.Fields[id] = FieldState{}
	v.state.Status.Visible = false
	v.mu.Unlock()

	v.present()
}

// Close stops a pending attention timer. The validator remains usable.
func (v *Validator) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.attentionTimer != nil {
		v.attentionTimer.Stop()
		v.attentionTimer = nil
	}
	v.attentionGen++
}

func (v *Validator) blank() bool {
	for _, field := range declared {
		if !Blank(v.inputs[field.ID].Value()) {
			return false
		}
	}
	return true
}

// restartAttentionLocked removes and re-applies the attention marker and arms
// its removal. A timer from an earlier restart cannot clear the new marker.
func (v *Validator) restartAttentionLocked() {
	if v.attentionTimer != nil {
		v.attentionTimer.Stop()
	}
	v.attentionGen++
	gen := v.attentionGen
	v.state.Attention = true
	v.attentionTimer = v.schedule(v.attentionDelay, func() {
		v.clearAttention(gen)
	})
}

func (v *Validator) clearAttention(gen uint64) {
	v.mu.Lock()
	if gen != v.attentionGen {
		v.mu.Unlock()
		return
	}
	v.state.Attention = false
	v.attentionTimer = nil
	v.mu.Unlock()

	v.present()
}

func (v *Validator) present() {
	if v.presenter == nil {
		return
	}
	v.presentMu.Lock()
	defer v.presentMu.Unlock()
	v.presenter.Present(v.State())
}

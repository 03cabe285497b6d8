package contact

import (
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultDestination is used for both the form action and the continue
	// destination when none is configured.
	DefaultDestination = "./404.html"
	// DefaultAttentionDelay is how long the attention marker stays applied.
	DefaultAttentionDelay = 500 * time.Millisecond
)

// Timer is the subset of *time.Timer the validator relies on.
type Timer interface {
	Stop() bool
}

// Scheduler arms fn to run once after d has elapsed. fn must not be invoked
// before Scheduler returns.
type Scheduler func(d time.Duration, fn func()) Timer

func afterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Presenter receives the display state after every event that changes it.
type Presenter interface {
	Present(state ValidationState)
}

// PresenterFunc adapts a function into a Presenter.
type PresenterFunc func(state ValidationState)

// Present calls f(state).
func (f PresenterFunc) Present(state ValidationState) {
	f(state)
}

// Option configures a Validator.
type Option func(*Validator)

// WithAction sets the form action that a successful submit proceeds to.
func WithAction(action string) Option {
	return func(v *Validator) {
		if trimmed := strings.TrimSpace(action); trimmed != "" {
			v.action = trimmed
		}
	}
}

// WithDestination sets the path the continue trigger navigates to.
func WithDestination(destination string) Option {
	return func(v *Validator) {
		if trimmed := strings.TrimSpace(destination); trimmed != "" {
			v.destination = trimmed
		}
	}
}

// WithAttentionDelay overrides how long the attention marker stays applied.
func WithAttentionDelay(delay time.Duration) Option {
	return func(v *Validator) {
		if delay > 0 {
			v.attentionDelay = delay
		}
	}
}

// WithScheduler replaces time.AfterFunc, mostly for tests.
func WithScheduler(scheduler Scheduler) Option {
	return func(v *Validator) {
		if scheduler != nil {
			v.schedule = scheduler
		}
	}
}

// WithPresenter registers the host callback that renders state changes.
func WithPresenter(presenter Presenter) Option {
	return func(v *Validator) {
		v.presenter = presenter
	}
}

// WithLogger attaches a zap logger. Validation passes are logged at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// Package contact implements the contact form validator: the rule set for the
// five contact fields, the per-field and aggregate feedback state, and the two
// triggers (submit and continue) that decide whether navigation may proceed.
//
// The package owns no document. Hosts bind an Input per field once at
// construction, forward user events (Submit, Continue, Input) and act on the
// returned Decision. Display state is exposed as a ValidationState snapshot,
// either on demand through State or pushed through a Presenter.
package contact

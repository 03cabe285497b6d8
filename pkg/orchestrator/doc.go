// Package orchestrator wires the contact pipeline: typed values are bound to a
// contact.Validator, an optional submit or continue event is dispatched, the
// resulting display state is folded into the render document, transformers
// patch the document and a registered renderer produces the output.
package orchestrator

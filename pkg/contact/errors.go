package contact

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is returned when a binding lacks one of the contact inputs.
	ErrMissingField = errors.New("contact: field binding is required")
	// ErrUnknownField is returned for identifiers outside the contact fields.
	ErrUnknownField = errors.New("contact: unknown field")
)

func fieldError(err error, field any) error {
	return fmt.Errorf("%w: %q", err, fmt.Sprint(field))
}

package contact

// Action is the navigation outcome of a trigger.
type Action int

const (
	// Suppress blocks navigation; error state stays visible.
	Suppress Action = iota
	// AllowDefault lets an already initiated navigation (the form submission)
	// proceed to the form's configured action unmodified.
	AllowDefault
	// Navigate asks the host to navigate explicitly to Decision.Destination.
	Navigate
)

func (a Action) String() string {
	switch a {
	case AllowDefault:
		return "allow-default"
	case Navigate:
		return "navigate"
	default:
		return "suppress"
	}
}

// Decision is returned by the triggers. Destination is the form action for
// AllowDefault, the configured destination for Navigate and empty for Suppress.
type Decision struct {
	Action      Action
	Destination string
}

// Proceeds reports whether the host should leave the page.
func (d Decision) Proceeds() bool {
	return d.Action != Suppress
}

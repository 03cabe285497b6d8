package contact

// StatusKind classifies the aggregate status banner.
type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusError
	StatusSuccess
)

func (k StatusKind) String() string {
	switch k {
	case StatusError:
		return "error"
	case StatusSuccess:
		return "success"
	default:
		return "none"
	}
}

// FormStatus is the single status banner shown above the fields.
type FormStatus struct {
	Message string
	Kind    StatusKind
	Visible bool
}

// FieldErrorSlot is the inline error region rendered next to a field.
type FieldErrorSlot struct {
	Message string
	Visible bool
}

// FieldState is the display state of one field: its error slot and whether the
// input carries the invalid marker.
type FieldState struct {
	Slot    FieldErrorSlot
	Invalid bool
}

// ValidationState is the complete display state owned by a Validator. It is
// rebuilt wholesale on every validation pass.
type ValidationState struct {
	Fields map[FieldID]FieldState
	Status FormStatus
	// Focus names the field that received focus during the last pass, or is
	// empty when no field was focused.
	Focus FieldID
	// Attention is set while the transient attention marker is applied to the
	// container.
	Attention bool
}

func newState() ValidationState {
	state := ValidationState{Fields: make(map[FieldID]FieldState, len(declared))}
	for _, field := range declared {
		state.Fields[field.ID] = FieldState{}
	}
	return state
}

// Clone returns a deep copy of s.
func (s ValidationState) Clone() ValidationState {
	out := s
	out.Fields = make(map[FieldID]FieldState, len(s.Fields))
	for id, field := range s.Fields {
		out.Fields[id] = field
	}
	return out
}

// Field returns the display state for id.
func (s ValidationState) Field(id FieldID) FieldState {
	return s.Fields[id]
}

// Failing lists the fields with a visible error slot, in declaration order.
func (s ValidationState) Failing() []FieldID {
	var out []FieldID
	for _, field := range declared {
		if s.Fields[field.ID].Slot.Visible {
			out = append(out, field.ID)
		}
	}
	return out
}

// HasErrors reports whether the status banner currently shows an error.
func (s ValidationState) HasErrors() bool {
	return s.Status.Visible && s.Status.Kind == StatusError
}

// clear resets every field slot, invalid marker, the banner and the focus
// request. The attention marker has its own lifecycle and is left untouched.
func (s *ValidationState) clear() {
	for _, field := range declared {
		s.Fields[field.ID] = FieldState{}
	}
	s.Status = FormStatus{}
	s.Focus = ""
}

func (s *ValidationState) fail(id FieldID, message string) {
	s.Fields[id] = FieldState{
		Slot:    FieldErrorSlot{Message: message, Visible: true},
		Invalid: true,
	}
}

func (s *ValidationState) showError(message string) {
	s.Status = FormStatus{Message: message, Kind: StatusError, Visible: true}
}

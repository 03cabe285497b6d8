package contact

// FieldID identifies one of the contact inputs.
type FieldID string

const (
	FieldName    FieldID = "name"
	FieldEmail   FieldID = "email"
	FieldPhone   FieldID = "phone"
	FieldSubject FieldID = "subject"
	FieldMessage FieldID = "message"
)

// Failure messages rendered in the per-field error slots and the status banner.
const (
	MessageName    = "Please enter your full name."
	MessageEmail   = "Please enter a valid email address."
	MessagePhone   = "Please enter a valid phone number."
	MessageSubject = "Please add a short subject."
	MessageBody    = "Please write at least 10 characters."
	MessageInvalid = "Please fill the valid details."
)

// Field describes a contact input: its identifier, whether it must be filled
// and the rule/message pair evaluated on every validation pass. MinLength and
// Pattern describe the rule for exporters; Rule is what actually runs.
type Field struct {
	ID        FieldID
	Required  bool
	Rule      Rule
	Message   string
	MinLength int
	Pattern   string
}

// Check reports whether value satisfies the field rule.
func (f Field) Check(value string) bool {
	if f.Rule == nil {
		return true
	}
	return f.Rule(value)
}

var declared = []Field{
	{ID: FieldName, Required: true, Rule: MinLength(2), Message: MessageName, MinLength: 2},
	{ID: FieldEmail, Required: true, Rule: Matches(emailPattern), Message: MessageEmail, Pattern: EmailPattern},
	{ID: FieldPhone, Required: false, Rule: Optional(Matches(phonePattern)), Message: MessagePhone, Pattern: PhonePattern},
	{ID: FieldSubject, Required: true, Rule: MinLength(2), Message: MessageSubject, MinLength: 2},
	{ID: FieldMessage, Required: true, Rule: MinLength(10), Message: MessageBody, MinLength: 10},
}

// Fields returns the contact fields in declaration order. Focus moves to the
// first failing field in this order.
func Fields() []Field {
	out := make([]Field, len(declared))
	copy(out, declared)
	return out
}

// FieldIDs returns the field identifiers in declaration order.
func FieldIDs() []FieldID {
	ids := make([]FieldID, 0, len(declared))
	for _, field := range declared {
		ids = append(ids, field.ID)
	}
	return ids
}

// Lookup returns the field definition for id.
func Lookup(id FieldID) (Field, bool) {
	for _, field := range declared {
		if field.ID == id {
			return field, true
		}
	}
	return Field{}, false
}

// ParseFieldID resolves a raw identifier (case and surrounding whitespace are
// ignored) into a FieldID.
func ParseFieldID(raw string) (FieldID, error) {
	id := FieldID(normalizeID(raw))
	if _, ok := Lookup(id); !ok {
		return "", fieldError(ErrUnknownField, raw)
	}
	return id, nil
}

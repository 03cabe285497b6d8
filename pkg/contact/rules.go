package contact

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf16"
)

// Portable (ECMAScript flavoured) patterns for the email and phone rules. They
// are published in the payload contract so other clients can apply the same
// checks.
const (
	EmailPattern = `^[^\s@]+@[^\s@]+\.[^\s@]+$`
	PhonePattern = `^[\d+\s()-]{7,18}$`
)

// Go's \s only covers ASCII whitespace; browsers also treat vertical tab, the
// Unicode space separators, BOM and line/paragraph separators as whitespace.
const whitespaceClass = `\t\n\v\f\r \x{00A0}\x{FEFF}\x{2028}\x{2029}\p{Zs}`

var (
	emailPattern = regexp.MustCompile(`(?i)^[^` + whitespaceClass + `@]+@[^` + whitespaceClass + `@]+\.[^` + whitespaceClass + `@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9+` + whitespaceClass + `()-]{7,18}$`)
)

// Rule reports whether a raw input value is acceptable. Rules receive the value
// exactly as read from the input and apply their own trimming.
type Rule func(value string) bool

// MinLength accepts values whose trimmed form is at least n long, as measured
// by Length.
func MinLength(n int) Rule {
	return func(value string) bool {
		return Length(Trim(value)) >= n
	}
}

// Length counts UTF-16 code units, the length a browser reports for an input
// value. Characters outside the Basic Multilingual Plane count twice.
func Length(value string) int {
	n := 0
	for _, r := range value {
		n += utf16.RuneLen(r)
	}
	return n
}

// Matches accepts values whose trimmed form matches rx.
func Matches(rx *regexp.Regexp) Rule {
	return func(value string) bool {
		return rx.MatchString(Trim(value))
	}
}

// Optional lets blank values through and applies rule otherwise.
func Optional(rule Rule) Rule {
	return func(value string) bool {
		if Blank(value) {
			return true
		}
		return rule(value)
	}
}

// Trim strips leading and trailing whitespace using the browser notion of
// whitespace.
func Trim(value string) string {
	return strings.TrimFunc(value, isSpace)
}

// Blank reports whether value has no non-whitespace content.
func Blank(value string) bool {
	return Trim(value) == ""
}

func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', '\u00a0', '\ufeff', '\u2028', '\u2029':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

func normalizeID(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Failure pairs a failing field with its message.
type Failure struct {
	Field   FieldID `json:"field"`
	Message string  `json:"message"`
}

// Report is the outcome of evaluating every rule against a set of values.
type Report struct {
	Valid    bool      `json:"valid"`
	Failures []Failure `json:"failures,omitempty"`
}

// Failed reports whether id is among the failures.
func (r Report) Failed(id FieldID) bool {
	for _, failure := range r.Failures {
		if failure.Field == id {
			return true
		}
	}
	return false
}

// Check evaluates every rule against values without a bound host. Missing keys
// are treated as empty input. Failures are listed in declaration order.
func Check(values map[FieldID]string) Report {
	return evaluate(func(id FieldID) string {
		return values[id]
	})
}

func evaluate(read func(FieldID) string) Report {
	report := Report{Valid: true}
	for _, field := range declared {
		if field.Check(read(field.ID)) {
			continue
		}
		report.Valid = false
		report.Failures = append(report.Failures, Failure{Field: field.ID, Message: field.Message})
	}
	return report
}

package contact

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFieldRules(t *testing.T) {
	cases := []struct {
		field FieldID
		value string
		want  bool
	}{
		{FieldName, "A", false},
		{FieldName, "  A  ", false},
		{FieldName, "Al", true},
		{FieldName, "Zoë", true},
		{FieldName, "😀", true},
		{FieldName, "é", false},
		{FieldEmail, "jane@example.com", true},
		{FieldEmail, "  JANE@EXAMPLE.COM ", true},
		{FieldEmail, "bad-email", false},
		{FieldEmail, "jane@example", false},
		{FieldEmail, "ja ne@example.com", false},
		{FieldEmail, "jane@@example.com", false},
		{FieldEmail, "jane@exa\u00a0mple.com", false},
		{FieldEmail, "a@b.c.d", true},
		{FieldPhone, "", true},
		{FieldPhone, "   ", true},
		{FieldPhone, "12", false},
		{FieldPhone, "+1 (555) 010-9999", true},
		{FieldPhone, "555-0100", true},
		{FieldPhone, "555x0100", false},
		{FieldPhone, "1234567890123456789", false},
		{FieldSubject, "H", false},
		{FieldSubject, "Hi", true},
		{FieldSubject, " 😀 ", true},
		{FieldMessage, "short", false},
		{FieldMessage, "   123456789   ", false},
		{FieldMessage, "I would like a quote please.", true},
		{FieldMessage, "😀😀😀😀😀", true},
		{FieldMessage, "😀😀😀😀", false},
	}

	for _, tc := range cases {
		field, ok := Lookup(tc.field)
		if !ok {
			t.Fatalf("lookup %s failed", tc.field)
		}
		if got := field.Check(tc.value); got != tc.want {
			t.Errorf("%s rule on %q: want %v, got %v", tc.field, tc.value, tc.want, got)
		}
	}
}

func TestLengthCountsUTF16Units(t *testing.T) {
	cases := map[string]int{
		"":      0,
		"abc":   3,
		"Zoë":   3,
		"😀":     2,
		"a😀b":   4,
		"\xff": 1,
	}
	for value, want := range cases {
		if got := Length(value); got != want {
			t.Errorf("Length(%q) = %d, want %d", value, got, want)
		}
	}
}

func TestTrimUsesBrowserWhitespace(t *testing.T) {
	if got := Trim("\ufeff\u00a0 hello \u2028\v"); got != "hello" {
		t.Fatalf("trim mismatch: %q", got)
	}
	if !Blank("\u2003\t\u3000") {
		t.Fatalf("expected unicode spaces to be blank")
	}
	if Blank(" x ") {
		t.Fatalf("expected content to be non-blank")
	}
}

func TestCheckReportsEveryFailureInOrder(t *testing.T) {
	report := Check(map[FieldID]string{
		FieldName:    "A",
		FieldEmail:   "bad-email",
		FieldSubject: "Hi",
		FieldMessage: "short",
	})

	want := Report{
		Valid: false,
		Failures: []Failure{
			{Field: FieldName, Message: MessageName},
			{Field: FieldEmail, Message: MessageEmail},
			{Field: FieldMessage, Message: MessageBody},
		},
	}
	if diff := cmp.Diff(want, report); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}
	if !report.Failed(FieldEmail) || report.Failed(FieldPhone) {
		t.Fatalf("unexpected Failed results: %+v", report)
	}
}

func TestParseFieldID(t *testing.T) {
	id, err := ParseFieldID("  Email ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if id != FieldEmail {
		t.Fatalf("want %q, got %q", FieldEmail, id)
	}
	if _, err := ParseFieldID("fax"); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestFieldsDeclarationOrder(t *testing.T) {
	want := []FieldID{FieldName, FieldEmail, FieldPhone, FieldSubject, FieldMessage}
	if diff := cmp.Diff(want, FieldIDs()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	for _, field := range Fields() {
		if field.ID == FieldPhone && field.Required {
			t.Fatalf("phone must be optional")
		}
		if field.ID != FieldPhone && !field.Required {
			t.Fatalf("%s must be required", field.ID)
		}
	}
}

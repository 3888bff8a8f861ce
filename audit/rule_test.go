package audit_test

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/m-lab/netlink-codec/audit"
)

func TestAuditRuleRoundTripWithStringField(t *testing.T) {
	r := audit.AuditRule{
		Flags:  1,
		Action: audit.AUDIT_ALWAYS,
		Fields: []audit.RuleField{
			{Field: audit.AUDIT_ARCH, Value: 0xc000003e, FieldFlags: audit.AUDIT_EQUAL},
			{Field: audit.AUDIT_FILTERKEY, FieldFlags: audit.AUDIT_EQUAL, Str: "rootkey"},
			{Field: audit.AUDIT_EXE, FieldFlags: audit.AUDIT_EQUAL | audit.AUDIT_NEGATE, Str: "/usr/bin/su"},
		},
	}
	r.Mask[0] = 0xffffffff

	if err := r.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	b := make([]byte, r.Len())
	r.Emit(b)

	got, err := audit.ParseAuditRule(b)
	if err != nil {
		t.Fatalf("ParseAuditRule: %v", err)
	}
	// Emit recomputes every string field's Value as len(Str), and parsing
	// returns that length.
	want := r
	want.Fields = append([]audit.RuleField(nil), r.Fields...)
	want.Fields[1].Value = uint32(len("rootkey"))
	want.Fields[2].Value = uint32(len("/usr/bin/su"))
	if diff := deep.Equal(got, want); diff != nil {
		t.Errorf("round-trip diff: %v", diff)
	}
}

func TestAuditRuleRejectsTooManyFields(t *testing.T) {
	r := audit.AuditRule{Fields: make([]audit.RuleField, audit.AUDIT_MAX_FIELDS+1)}
	if err := r.Validate(); err == nil {
		t.Fatal("Validate: want error for too many fields, got nil")
	}
}

func TestAuditRuleRejectsBadComparator(t *testing.T) {
	r := audit.AuditRule{
		Fields: []audit.RuleField{
			{Field: audit.AUDIT_PID, Value: 1, FieldFlags: audit.AUDIT_EQUAL | audit.AUDIT_NOT_EQUAL},
		},
	}
	if err := r.Validate(); err == nil {
		t.Fatal("Validate: want error for combined comparator, got nil")
	}
}

func TestParseAuditRuleRejectsBuflenMismatch(t *testing.T) {
	r := audit.AuditRule{
		Fields: []audit.RuleField{
			{Field: audit.AUDIT_FILTERKEY, FieldFlags: audit.AUDIT_EQUAL, Str: "key"},
		},
	}
	b := make([]byte, r.Len())
	r.Emit(b)
	// Truncate the trailing string buffer without updating buflen.
	truncated := b[:len(b)-1]
	if _, err := audit.ParseAuditRule(truncated); err == nil {
		t.Fatal("ParseAuditRule: want error for truncated buffer, got nil")
	}
}

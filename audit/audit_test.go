package audit_test

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/m-lab/netlink-codec/audit"
	"github.com/m-lab/netlink-codec/nlmsg"
)

// An AUDIT_SET command with a 56-byte audit_status payload parses to
// AuditStatus with Mask=AUDIT_STATUS_ENABLED|AUDIT_STATUS_PID, and the
// whole datagram is 72 bytes (16-byte header + 56-byte payload).
func TestAuditSetStatusRoundTrip(t *testing.T) {
	status := audit.AuditStatus{
		Mask:    audit.AUDIT_STATUS_ENABLED | audit.AUDIT_STATUS_PID,
		Enabled: 1,
		Pid:     4242,
	}
	if status.Len() != 56 {
		t.Fatalf("AuditStatus.Len() = %d, want 56", status.Len())
	}

	m := nlmsg.NewMessage(audit.NewSet(status))
	m.Finalize()
	if m.Header.Length != 72 {
		t.Fatalf("Header.Length = %d, want 72", m.Header.Length)
	}
	if m.Header.Type != audit.AUDIT_SET {
		t.Fatalf("Header.Type = %d, want AUDIT_SET", m.Header.Type)
	}

	out := make([]byte, m.Header.Length)
	if _, err := m.ToBytes(out); err != nil {
		t.Fatalf("ToBytes: %v", err)
	}

	parsed, err := nlmsg.ParseBytes(out)
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}
	am, ok := parsed.Payload.(audit.Message)
	if !ok {
		t.Fatalf("payload is %T, want audit.Message", parsed.Payload)
	}
	got, ok := am.Body.(audit.AuditStatus)
	if !ok {
		t.Fatalf("body is %T, want AuditStatus", am.Body)
	}
	if diff := deep.Equal(got, status); diff != nil {
		t.Errorf("AuditStatus diff: %v", diff)
	}
	if got.Mask != 5 {
		t.Errorf("Mask = %d, want 5 (AUDIT_STATUS_ENABLED|AUDIT_STATUS_PID)", got.Mask)
	}
}

func TestEventRecordUsesMessageTypeAsRecordType(t *testing.T) {
	text := []byte(`type=SYSCALL msg=audit(1234:5) success=yes pid=42`)
	datagram := make([]byte, nlmsg.HeaderLen+len(text))
	hdr := nlmsg.NetlinkHeader{Length: uint32(len(datagram)), Type: 1300}
	hdr.Emit(datagram)
	copy(datagram[nlmsg.HeaderLen:], text)

	m, err := nlmsg.ParseBytes(datagram)
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}
	am, ok := m.Payload.(audit.Message)
	if !ok {
		t.Fatalf("payload is %T, want audit.Message", m.Payload)
	}
	rec, ok := am.Body.(audit.EventRecord)
	if !ok {
		t.Fatalf("body is %T, want EventRecord", am.Body)
	}
	if rec.RecordType != 1300 {
		t.Errorf("RecordType = %d, want 1300", rec.RecordType)
	}
	fields := rec.Fields()
	if len(fields) != 4 || fields[0] != "type=SYSCALL" {
		t.Errorf("Fields() = %v, unexpected", fields)
	}
}

func TestUserMessageOpaqueRoundTrip(t *testing.T) {
	raw := []byte(`op=add-rule key=rootkey`)
	datagram := make([]byte, nlmsg.HeaderLen+len(raw))
	hdr := nlmsg.NetlinkHeader{Length: uint32(len(datagram)), Type: 1100}
	hdr.Emit(datagram)
	copy(datagram[nlmsg.HeaderLen:], raw)

	m, err := nlmsg.ParseBytes(datagram)
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}
	am := m.Payload.(audit.Message)
	um, ok := am.Body.(audit.UserMessage)
	if !ok {
		t.Fatalf("body is %T, want UserMessage", am.Body)
	}
	text, ok := um.Text()
	if !ok || text != string(raw) {
		t.Errorf("Text() = %q, %v; want %q, true", text, ok, raw)
	}
}

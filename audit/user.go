package audit

import (
	"strings"
	"unicode/utf8"
)

// UserMessage is an opaque AUDIT_USER-range payload (message_type 1100-1199
// or 2100-2999): userspace programs define their own formats here, so the
// codec carries the bytes without interpreting them.
type UserMessage struct {
	Raw []byte
}

func (m UserMessage) Len() int      { return len(m.Raw) }
func (m UserMessage) Emit(b []byte) { copy(b, m.Raw) }

// Text is an additive, best-effort helper: most user messages are a
// space-separated key="value" audit string, valid UTF-8. It returns false
// rather than an error when Raw is not valid UTF-8 or contains a control
// byte other than tab or NUL, since UserMessage's contract never promised
// text in the first place.
func (m UserMessage) Text() (string, bool) {
	if !utf8.Valid(m.Raw) {
		return "", false
	}
	for _, b := range m.Raw {
		if b == 0 {
			continue
		}
		if b < 0x20 && b != '\t' {
			return "", false
		}
	}
	return string(m.Raw), true
}

// EventRecord is a kernel-produced event record (message_type 1300+): the
// message_type itself is the record type, and the payload is a textual
// key=value record with no further structure imposed by the core codec.
type EventRecord struct {
	RecordType uint16
	Text       string
}

func (r EventRecord) Len() int      { return len(r.Text) }
func (r EventRecord) Emit(b []byte) { copy(b, r.Text) }

// Fields is an additive, non-authoritative helper that splits Text on
// whitespace into its space-separated key=value tokens, the common shape
// of kernel audit event records. It does no quoting-aware parsing: a
// value containing an embedded space (e.g. a quoted path) will split
// across two entries.
func (r EventRecord) Fields() []string {
	return strings.Fields(r.Text)
}

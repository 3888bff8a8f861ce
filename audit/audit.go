package audit

import (
	"github.com/m-lab/netlink-codec/nlenc"
	"github.com/m-lab/netlink-codec/nlmsg"
)

func init() {
	nlmsg.RegisterFamily("audit", isAuditType, decode)
}

func isAuditType(t uint16) bool {
	n := int(t)
	switch {
	case n >= commandRangeStart && n <= commandRangeEnd:
		return true
	case n >= userRange1Start && n <= userRange1End:
		return true
	case n >= userRange2Start && n <= userRange2End:
		return true
	case n >= eventRangeStart:
		return true
	}
	return false
}

// body is the minimal contract a family-message type needs to back a
// Message: its own Len/Emit.
type body interface {
	Len() int
	Emit(b []byte)
}

// Message is an audit-netlink payload: a command struct, a rule, an
// opaque user message, or an event record, paired with the message_type
// that selects its shape.
type Message struct {
	Type uint16
	Body body
}

func (m Message) Len() int            { return m.Body.Len() }
func (m Message) Emit(b []byte)       { m.Body.Emit(b) }
func (m Message) MessageType() uint16 { return m.Type }

type opaqueBody []byte

func (b opaqueBody) Len() int        { return len(b) }
func (b opaqueBody) Emit(dst []byte) { copy(dst, b) }

// NewGet, NewSet build the AUDIT_GET/AUDIT_SET status commands.
func NewGet() Message               { return Message{AUDIT_GET, opaqueBody(nil)} }
func NewSet(s AuditStatus) Message  { return Message{AUDIT_SET, s} }

// NewGetFeature, NewSetFeature build the feature-bitmap commands.
func NewGetFeature() Message                 { return Message{AUDIT_GET_FEATURE, opaqueBody(nil)} }
func NewSetFeature(f AuditFeatures) Message  { return Message{AUDIT_SET_FEATURE, f} }

// NewTtyGet, NewTtySet build the TTY echo-status commands.
func NewTtyGet() Message                  { return Message{AUDIT_TTY_GET, opaqueBody(nil)} }
func NewTtySet(s AuditTtyStatus) Message  { return Message{AUDIT_TTY_SET, s} }

// NewSignalInfo requests the audit daemon's last-signal sender info.
func NewSignalInfo() Message { return Message{AUDIT_SIGNAL_INFO, opaqueBody(nil)} }

// NewAddRule, NewDelRule, NewListRules build the three rule-management
// verbs; NewAddRule and NewDelRule validate the rule first.
func NewAddRule(r AuditRule) (Message, error) {
	if err := r.Validate(); err != nil {
		return Message{}, err
	}
	return Message{AUDIT_ADD_RULE, r}, nil
}

func NewDelRule(r AuditRule) (Message, error) {
	if err := r.Validate(); err != nil {
		return Message{}, err
	}
	return Message{AUDIT_DEL_RULE, r}, nil
}

func NewListRules() Message { return Message{AUDIT_LIST_RULES, opaqueBody(nil)} }

func decode(t uint16, payload []byte) (nlmsg.Payload, error) {
	n := int(t)
	switch {
	case n >= userRange1Start && n <= userRange1End, n >= userRange2Start && n <= userRange2End:
		return Message{t, UserMessage{Raw: append([]byte(nil), payload...)}}, nil
	case n >= eventRangeStart:
		text, ok := nlenc.String(payload)
		if !ok {
			text = string(payload)
		}
		return Message{t, EventRecord{RecordType: t, Text: text}}, nil
	case n >= commandRangeStart && n <= commandRangeEnd:
		return decodeCommand(t, payload)
	}
	return Message{t, opaqueBody(append([]byte(nil), payload...))}, nil
}

func decodeCommand(t uint16, payload []byte) (nlmsg.Payload, error) {
	switch t {
	case AUDIT_GET, AUDIT_SET:
		if len(payload) == 0 {
			return Message{t, opaqueBody(nil)}, nil
		}
		s, err := ParseAuditStatus(payload)
		if err != nil {
			return nil, err
		}
		return Message{t, s}, nil
	case AUDIT_GET_FEATURE, AUDIT_SET_FEATURE:
		if len(payload) == 0 {
			return Message{t, opaqueBody(nil)}, nil
		}
		f, err := ParseAuditFeatures(payload)
		if err != nil {
			return nil, err
		}
		return Message{t, f}, nil
	case AUDIT_TTY_GET, AUDIT_TTY_SET:
		if len(payload) == 0 {
			return Message{t, opaqueBody(nil)}, nil
		}
		s, err := ParseAuditTtyStatus(payload)
		if err != nil {
			return nil, err
		}
		return Message{t, s}, nil
	case AUDIT_SIGNAL_INFO:
		if len(payload) == 0 {
			return Message{t, opaqueBody(nil)}, nil
		}
		s, err := ParseAuditSigInfo(payload)
		if err != nil {
			return nil, err
		}
		return Message{t, s}, nil
	case AUDIT_ADD_RULE, AUDIT_DEL_RULE, AUDIT_LIST_RULES:
		if len(payload) == 0 {
			return Message{t, opaqueBody(nil)}, nil
		}
		r, err := ParseAuditRule(payload)
		if err != nil {
			return nil, err
		}
		return Message{t, r}, nil
	}
	return Message{t, opaqueBody(append([]byte(nil), payload...))}, nil
}

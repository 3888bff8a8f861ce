package nlmsg

// msgState is the Fresh/Finalized/Serialized lifecycle gate: an explicit
// type state rather than a shared mutable boolean flag.
type msgState int

const (
	stateFresh msgState = iota
	stateFinalized
	stateSerialized
)

// NetlinkMessage is the owned, typed tree a NetlinkBuffer parses into, or
// that a caller builds up to emit. Header and Payload may be read freely at
// any state. ToBytes rejects only a message that has never been finalized;
// it does not detect a mutation made after Finalize and emits Header as it
// stands.
type NetlinkMessage struct {
	Header  NetlinkHeader
	Payload Payload

	state msgState
}

// NewMessage wraps payload in a Fresh message. Header is zero until
// Finalize is called.
func NewMessage(payload Payload) *NetlinkMessage {
	return &NetlinkMessage{Payload: payload, state: stateFresh}
}

// NewDone builds a Fresh NLMSG_DONE message.
func NewDone() *NetlinkMessage { return NewMessage(DoneMessage{}) }

// NewNoop builds a Fresh NLMSG_NOOP message.
func NewNoop() *NetlinkMessage { return NewMessage(NoopMessage{}) }

// Len is the message's total on-wire length: header plus payload.
func (m *NetlinkMessage) Len() int { return HeaderLen + m.Payload.Len() }

// Finalize recomputes Header.Length and Header.Type from the current
// Payload and advances the message to Finalized. A later mutation of
// Payload is reflected in Header only after Finalize runs again.
func (m *NetlinkMessage) Finalize() {
	m.Header.Length = uint32(m.Len())
	m.Header.Type = m.Payload.MessageType()
	m.state = stateFinalized
}

// ToBytes writes the message into b, which must be at least Header.Length
// bytes, and advances the message to Serialized. It returns the number of
// bytes written. Calling it before Finalize returns Malformed; a
// too-small b returns Exhausted; neither case panics.
func (m *NetlinkMessage) ToBytes(b []byte) (int, error) {
	if m.state == stateFresh {
		return 0, malformedf("message has not been finalized")
	}
	if len(b) < int(m.Header.Length) {
		return 0, exhaustedf("destination has %d bytes, message needs %d", len(b), m.Header.Length)
	}
	m.Header.Emit(b)
	m.Payload.Emit(b[HeaderLen:])
	m.state = stateSerialized
	return int(m.Header.Length), nil
}

// ParseBytes is the package's primary entry point: bounds-check b, decode
// its header, and dispatch its payload to the generic NLMSG_* handling or
// a registered family decoder.
func ParseBytes(b []byte) (*NetlinkMessage, error) {
	buf, err := NewNetlinkBufferChecked(b)
	if err != nil {
		return nil, err
	}
	return buf.Parse()
}

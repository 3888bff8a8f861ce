package nlmsg

// Payload is the uniform contract for anything that can live in a
// NetlinkMessage's body: generic payloads (Done, Noop, ...) and every
// family payload (rtnl, audit) alike. MessageType returns the canonical
// wire type code finalize() should stamp into the header.
type Payload interface {
	Len() int
	Emit(b []byte)
	MessageType() uint16
}

// FamilyDecoder turns a message_type plus the bytes after the generic
// header into a family's own Payload. Families register one of these
// instead of nlmsg importing rtnl/audit directly, avoiding an import
// cycle the way image.RegisterFormat or database/sql.Register do for
// their respective plugin surfaces.
type FamilyDecoder func(messageType uint16, payload []byte) (Payload, error)

type family struct {
	name    string
	matches func(uint16) bool
	decode  FamilyDecoder
}

var families []family

// RegisterFamily adds a protocol family to the dispatch table consulted by
// NetlinkBuffer.Parse for any message_type not already claimed by the
// generic NLMSG_* codes. Families call this from an init() function; rtnl
// and audit both do.
func RegisterFamily(name string, matches func(uint16) bool, decode FamilyDecoder) {
	families = append(families, family{name, matches, decode})
}

// OtherMessage is the opaque fallback for a message_type that no generic
// code and no registered family recognises.
type OtherMessage struct {
	Type uint16
	Data []byte
}

func (m OtherMessage) Len() int          { return len(m.Data) }
func (m OtherMessage) Emit(b []byte)      { copy(b, m.Data) }
func (m OtherMessage) MessageType() uint16 { return m.Type }

func dispatch(messageType uint16, payload []byte) (Payload, error) {
	switch messageType {
	case NLMSG_NOOP:
		return NoopMessage{}, nil
	case NLMSG_DONE:
		return DoneMessage{}, nil
	case NLMSG_OVERRUN:
		return OverrunMessage{Data: append([]byte(nil), payload...)}, nil
	case NLMSG_ERROR:
		em, err := parseErrorMessage(payload)
		if err != nil {
			return nil, err
		}
		if em.Code >= 0 {
			return AckMessage{em}, nil
		}
		return ErrMessage{em}, nil
	}
	for _, fam := range families {
		if fam.matches(messageType) {
			return fam.decode(messageType, payload)
		}
	}
	return OtherMessage{Type: messageType, Data: append([]byte(nil), payload...)}, nil
}

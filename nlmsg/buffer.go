package nlmsg

// NetlinkBuffer is a bounds-checked, read-only view over a single netlink
// message's wire bytes: a 16-byte header followed by its payload. It
// borrows b; parsing it into a NetlinkMessage copies only what individual
// payload decoders choose to copy.
type NetlinkBuffer struct {
	b []byte
}

// NewNetlinkBufferChecked validates that b is at least HeaderLen bytes and
// that the declared length field does not exceed len(b).
func NewNetlinkBufferChecked(b []byte) (NetlinkBuffer, error) {
	if len(b) < HeaderLen {
		return NetlinkBuffer{}, truncatedf("netlink header needs %d bytes, got %d", HeaderLen, len(b))
	}
	buf := NetlinkBuffer{b}
	if buf.Length() < HeaderLen {
		return NetlinkBuffer{}, malformedf("netlink header declares length %d, less than the %d-byte header itself", buf.Length(), HeaderLen)
	}
	if int(buf.Length()) > len(b) {
		return NetlinkBuffer{}, truncatedf("netlink header declares length %d, only %d bytes available", buf.Length(), len(b))
	}
	return buf, nil
}

func (buf NetlinkBuffer) Length() uint32 { return parseHeader(buf.b).Length }
func (buf NetlinkBuffer) Type() uint16   { return parseHeader(buf.b).Type }
func (buf NetlinkBuffer) Flags() uint16  { return parseHeader(buf.b).Flags }

// Payload returns the bytes between the header and the declared length,
// excluding any trailing alignment padding present in b.
func (buf NetlinkBuffer) Payload() []byte {
	return buf.b[HeaderLen:buf.Length()]
}

// Parse decodes the header and delegates the payload to the generic
// NLMSG_* codes or a registered family decoder, producing an owned
// NetlinkMessage that is already in the Finalized state.
func (buf NetlinkBuffer) Parse() (*NetlinkMessage, error) {
	hdr := parseHeader(buf.b)
	payload, err := dispatch(hdr.Type, buf.Payload())
	if err != nil {
		return nil, err
	}
	return &NetlinkMessage{Header: hdr, Payload: payload, state: stateFinalized}, nil
}

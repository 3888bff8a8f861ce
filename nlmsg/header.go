package nlmsg

import "github.com/m-lab/netlink-codec/nlenc"

// HeaderLen is the fixed size of a NetlinkHeader on the wire.
const HeaderLen = 16

// Request flags (NLM_F_*), ORed into NetlinkHeader.Flags.
const (
	NLM_F_REQUEST       uint16 = 1
	NLM_F_MULTI         uint16 = 2
	NLM_F_ACK           uint16 = 4
	NLM_F_ECHO          uint16 = 8
	NLM_F_DUMP_INTR     uint16 = 16
	NLM_F_DUMP_FILTERED uint16 = 32

	NLM_F_ROOT   uint16 = 0x100
	NLM_F_MATCH  uint16 = 0x200
	NLM_F_ATOMIC uint16 = 0x400
	NLM_F_DUMP   uint16 = NLM_F_ROOT | NLM_F_MATCH

	NLM_F_REPLACE uint16 = 0x100
	NLM_F_EXCL    uint16 = 0x200
	NLM_F_CREATE  uint16 = 0x400
	NLM_F_APPEND  uint16 = 0x800
)

// Generic message types every family shares.
const (
	NLMSG_NOOP    uint16 = 1
	NLMSG_ERROR   uint16 = 2
	NLMSG_DONE    uint16 = 3
	NLMSG_OVERRUN uint16 = 4
)

// NetlinkHeader is the fixed 16-byte envelope that precedes every netlink
// message's payload: total length, message type, flags, sequence number,
// and port (socket) number, all host-endian.
type NetlinkHeader struct {
	Length   uint32
	Type     uint16
	Flags    uint16
	Sequence uint32
	Port     uint32
}

// Len returns the header's fixed wire size, HeaderLen.
func (h NetlinkHeader) Len() int { return HeaderLen }

// Emit writes the header into b. The caller must supply at least HeaderLen bytes.
func (h NetlinkHeader) Emit(b []byte) {
	nlenc.PutUint32(b[0:4], h.Length)
	nlenc.PutUint16(b[4:6], h.Type)
	nlenc.PutUint16(b[6:8], h.Flags)
	nlenc.PutUint32(b[8:12], h.Sequence)
	nlenc.PutUint32(b[12:16], h.Port)
}

// parseHeader decodes the fixed header from b, which must be at least
// HeaderLen bytes (the caller is expected to have already bounds-checked
// via NewNetlinkBufferChecked).
func parseHeader(b []byte) NetlinkHeader {
	return NetlinkHeader{
		Length:   nlenc.Uint32(b[0:4]),
		Type:     nlenc.Uint16(b[4:6]),
		Flags:    nlenc.Uint16(b[6:8]),
		Sequence: nlenc.Uint32(b[8:12]),
		Port:     nlenc.Uint32(b[12:16]),
	}
}

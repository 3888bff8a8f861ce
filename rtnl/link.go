package rtnl

import (
	"fmt"

	"github.com/m-lab/netlink-codec/nlenc"
	"github.com/m-lab/netlink-codec/nlmsg"
)

// LinkHeaderLen is the fixed size of a LinkHeader.
const LinkHeaderLen = 16

// LinkHeader precedes the NLA run of every RTM_*LINK message.
type LinkHeader struct {
	Family        uint8
	LinkLayerType uint16
	Index         int32
	Flags         LinkFlags
	Change        uint32
}

func (h LinkHeader) Len() int { return LinkHeaderLen }

func (h LinkHeader) Emit(b []byte) {
	b[0] = h.Family
	b[1] = 0
	nlenc.PutUint16(b[2:4], h.LinkLayerType)
	nlenc.PutUint32(b[4:8], uint32(h.Index))
	nlenc.PutUint32(b[8:12], uint32(h.Flags))
	nlenc.PutUint32(b[12:16], h.Change)
}

func parseLinkHeader(b []byte) (LinkHeader, error) {
	if len(b) < LinkHeaderLen {
		return LinkHeader{}, nlmsgTruncated("link header needs %d bytes, got %d", LinkHeaderLen, len(b))
	}
	return LinkHeader{
		Family:        b[0],
		LinkLayerType: nlenc.Uint16(b[2:4]),
		Index:         int32(nlenc.Uint32(b[4:8])),
		Flags:         LinkFlags(nlenc.Uint32(b[8:12])),
		Change:        nlenc.Uint32(b[12:16]),
	}, nil
}

// LinkFlags is the IFF_* bit set surfaced as named accessors instead of
// requiring callers to mask bits by hand.
type LinkFlags uint32

func (f LinkFlags) Up() bool        { return f&IFF_UP != 0 }
func (f LinkFlags) Broadcast() bool { return f&IFF_BROADCAST != 0 }
func (f LinkFlags) Loopback() bool  { return f&IFF_LOOPBACK != 0 }
func (f LinkFlags) Running() bool   { return f&IFF_RUNNING != 0 }
func (f LinkFlags) NoARP() bool     { return f&IFF_NOARP != 0 }
func (f LinkFlags) Multicast() bool { return f&IFF_MULTICAST != 0 }
func (f LinkFlags) LowerUp() bool   { return f&IFF_LOWER_UP != 0 }

// LinkOperState is the RFC 2863 operational state enum (IFLA_OPERSTATE),
// a closed set with an Unknown(u8) escape for values this package has not
// named.
type LinkOperState uint8

const (
	OperStateUnknown LinkOperState = iota
	OperStateNotPresent
	OperStateDown
	OperStateLowerLayerDown
	OperStateTesting
	OperStateDormant
	OperStateUp
)

func (s LinkOperState) String() string {
	switch s {
	case OperStateUnknown:
		return "unknown"
	case OperStateNotPresent:
		return "not-present"
	case OperStateDown:
		return "down"
	case OperStateLowerLayerDown:
		return "lower-layer-down"
	case OperStateTesting:
		return "testing"
	case OperStateDormant:
		return "dormant"
	case OperStateUp:
		return "up"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// LinkMessage is the body of a New/Del/Get/SetLink message: a fixed
// LinkHeader followed by a run of link NLAs.
type LinkMessage struct {
	Header LinkHeader
	Attrs  []nlmsg.Nla
}

func (m LinkMessage) Len() int { return m.Header.Len() + nlmsg.NlasLen(m.Attrs) }

func (m LinkMessage) Emit(b []byte) {
	m.Header.Emit(b[:LinkHeaderLen])
	nlmsg.EmitNlas(m.Attrs, b[LinkHeaderLen:])
}

// ParseLinkMessage decodes a LinkHeader and its NLA run from b.
func ParseLinkMessage(b []byte) (LinkMessage, error) {
	hdr, err := parseLinkHeader(b)
	if err != nil {
		return LinkMessage{}, err
	}
	attrs, err := parseLinkNlas(b[LinkHeaderLen:])
	if err != nil {
		return LinkMessage{}, err
	}
	return LinkMessage{Header: hdr, Attrs: attrs}, nil
}

func parseLinkNlas(b []byte) ([]nlmsg.Nla, error) {
	var attrs []nlmsg.Nla
	it := nlmsg.IterNlas(b)
	for {
		buf, ok, err := it.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		attr, err := parseLinkNla(buf)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, attr)
	}
	return attrs, nil
}

func parseLinkNla(buf nlmsg.NlaBuffer) (nlmsg.Nla, error) {
	v := buf.Value()
	switch buf.Kind() {
	case IFLA_IFNAME:
		s, ok := nlenc.String(v)
		if !ok {
			return nil, nlmsgMalformed("IFLA_IFNAME is not valid UTF-8")
		}
		return LinkIfName(s), nil
	case IFLA_MTU:
		n, err := parseU32(v, "IFLA_MTU")
		return LinkMtu(n), err
	case IFLA_TXQLEN:
		n, err := parseU32(v, "IFLA_TXQLEN")
		return LinkTxQueueLen(n), err
	case IFLA_OPERSTATE:
		if len(v) < 1 {
			return nil, nlmsgMalformed("IFLA_OPERSTATE needs 1 byte")
		}
		return LinkOperState(v[0]), nil
	case IFLA_LINKMODE:
		if len(v) < 1 {
			return nil, nlmsgMalformed("IFLA_LINKMODE needs 1 byte")
		}
		return LinkMode(v[0]), nil
	case IFLA_GROUP:
		n, err := parseU32(v, "IFLA_GROUP")
		return LinkGroup(n), err
	case IFLA_PROMISCUITY:
		n, err := parseU32(v, "IFLA_PROMISCUITY")
		return LinkPromiscuity(n), err
	case IFLA_NUM_TX_QUEUES:
		n, err := parseU32(v, "IFLA_NUM_TX_QUEUES")
		return LinkNumTxQueues(n), err
	case IFLA_GSO_MAX_SEGS:
		n, err := parseU32(v, "IFLA_GSO_MAX_SEGS")
		return LinkGsoMaxSegs(n), err
	case IFLA_GSO_MAX_SIZE:
		n, err := parseU32(v, "IFLA_GSO_MAX_SIZE")
		return LinkGsoMaxSize(n), err
	case IFLA_ADDRESS:
		return LinkAddress(append([]byte(nil), v...)), nil
	case IFLA_BROADCAST:
		return LinkBroadcast(append([]byte(nil), v...)), nil
	case IFLA_STATS:
		s, err := ParseLinkStats32(v)
		return LinkStatsAttr{s}, err
	case IFLA_STATS64:
		s, err := ParseLinkStats64(v)
		return LinkStats64Attr{s}, err
	case IFLA_LINKINFO:
		info, err := parseLinkInfo(v)
		return info, err
	default:
		return nlmsg.ParseRawAttr(buf), nil
	}
}

func parseU32(v []byte, field string) (uint32, error) {
	if len(v) < 4 {
		return 0, nlmsgMalformed("%s needs 4 bytes, got %d", field, len(v))
	}
	return nlenc.Uint32(v), nil
}

// Scalar link NLA types. Each is a named Go type over the decoded value
// that knows its own IFLA_* tag.

type LinkIfName string

func (n LinkIfName) Kind() uint16    { return IFLA_IFNAME }
func (n LinkIfName) ValueLen() int   { return len(n) + 1 }
func (n LinkIfName) EmitValue(b []byte) { copy(b, nlenc.Bytes(string(n))) }

type LinkMtu uint32

func (n LinkMtu) Kind() uint16       { return IFLA_MTU }
func (n LinkMtu) ValueLen() int      { return 4 }
func (n LinkMtu) EmitValue(b []byte) { nlenc.PutUint32(b, uint32(n)) }

type LinkTxQueueLen uint32

func (n LinkTxQueueLen) Kind() uint16       { return IFLA_TXQLEN }
func (n LinkTxQueueLen) ValueLen() int      { return 4 }
func (n LinkTxQueueLen) EmitValue(b []byte) { nlenc.PutUint32(b, uint32(n)) }

func (s LinkOperState) Kind() uint16       { return IFLA_OPERSTATE }
func (s LinkOperState) ValueLen() int      { return 1 }
func (s LinkOperState) EmitValue(b []byte) { b[0] = uint8(s) }

type LinkMode uint8

func (m LinkMode) Kind() uint16       { return IFLA_LINKMODE }
func (m LinkMode) ValueLen() int      { return 1 }
func (m LinkMode) EmitValue(b []byte) { b[0] = uint8(m) }

type LinkGroup uint32

func (n LinkGroup) Kind() uint16       { return IFLA_GROUP }
func (n LinkGroup) ValueLen() int      { return 4 }
func (n LinkGroup) EmitValue(b []byte) { nlenc.PutUint32(b, uint32(n)) }

type LinkPromiscuity uint32

func (n LinkPromiscuity) Kind() uint16       { return IFLA_PROMISCUITY }
func (n LinkPromiscuity) ValueLen() int      { return 4 }
func (n LinkPromiscuity) EmitValue(b []byte) { nlenc.PutUint32(b, uint32(n)) }

type LinkNumTxQueues uint32

func (n LinkNumTxQueues) Kind() uint16       { return IFLA_NUM_TX_QUEUES }
func (n LinkNumTxQueues) ValueLen() int      { return 4 }
func (n LinkNumTxQueues) EmitValue(b []byte) { nlenc.PutUint32(b, uint32(n)) }

type LinkGsoMaxSegs uint32

func (n LinkGsoMaxSegs) Kind() uint16       { return IFLA_GSO_MAX_SEGS }
func (n LinkGsoMaxSegs) ValueLen() int      { return 4 }
func (n LinkGsoMaxSegs) EmitValue(b []byte) { nlenc.PutUint32(b, uint32(n)) }

type LinkGsoMaxSize uint32

func (n LinkGsoMaxSize) Kind() uint16       { return IFLA_GSO_MAX_SIZE }
func (n LinkGsoMaxSize) ValueLen() int      { return 4 }
func (n LinkGsoMaxSize) EmitValue(b []byte) { nlenc.PutUint32(b, uint32(n)) }

type LinkAddress []byte

func (a LinkAddress) Kind() uint16       { return IFLA_ADDRESS }
func (a LinkAddress) ValueLen() int      { return len(a) }
func (a LinkAddress) EmitValue(b []byte) { copy(b, a) }

type LinkBroadcast []byte

func (a LinkBroadcast) Kind() uint16       { return IFLA_BROADCAST }
func (a LinkBroadcast) ValueLen() int      { return len(a) }
func (a LinkBroadcast) EmitValue(b []byte) { copy(b, a) }

// LinkStatsAttr wraps the 32-bit rtnl_link_stats struct as an IFLA_STATS
// attribute.
type LinkStatsAttr struct{ Stats LinkStats32 }

func (a LinkStatsAttr) Kind() uint16       { return IFLA_STATS }
func (a LinkStatsAttr) ValueLen() int      { return a.Stats.Len() }
func (a LinkStatsAttr) EmitValue(b []byte) { a.Stats.Emit(b) }

// LinkStats64Attr wraps the 64-bit rtnl_link_stats64 struct as an
// IFLA_STATS64 attribute.
type LinkStats64Attr struct{ Stats LinkStats64 }

func (a LinkStats64Attr) Kind() uint16       { return IFLA_STATS64 }
func (a LinkStats64Attr) ValueLen() int      { return a.Stats.Len() }
func (a LinkStats64Attr) EmitValue(b []byte) { a.Stats.Emit(b) }

package rtnl

import (
	"github.com/m-lab/netlink-codec/nlenc"
	"github.com/m-lab/netlink-codec/nlmsg"
)

// NeighbourHeaderLen is the fixed size of a NeighbourHeader.
const NeighbourHeaderLen = 12

// NeighbourHeader precedes the NLA run of every RTM_*NEIGH message.
type NeighbourHeader struct {
	Family  uint8
	IfIndex int32
	State   uint16
	Flags   uint8
	Type    uint8
}

func (h NeighbourHeader) Len() int { return NeighbourHeaderLen }

func (h NeighbourHeader) Emit(b []byte) {
	b[0] = h.Family
	b[1], b[2], b[3] = 0, 0, 0
	nlenc.PutUint32(b[4:8], uint32(h.IfIndex))
	nlenc.PutUint16(b[8:10], h.State)
	b[10] = h.Flags
	b[11] = h.Type
}

func parseNeighbourHeader(b []byte) (NeighbourHeader, error) {
	if len(b) < NeighbourHeaderLen {
		return NeighbourHeader{}, nlmsgTruncated("neighbour header needs %d bytes, got %d", NeighbourHeaderLen, len(b))
	}
	return NeighbourHeader{
		Family:  b[0],
		IfIndex: int32(nlenc.Uint32(b[4:8])),
		State:   nlenc.Uint16(b[8:10]),
		Flags:   b[10],
		Type:    b[11],
	}, nil
}

// NeighbourMessage is the body of a New/Del/GetNeighbour message.
type NeighbourMessage struct {
	Header NeighbourHeader
	Attrs  []nlmsg.Nla
}

func (m NeighbourMessage) Len() int { return m.Header.Len() + nlmsg.NlasLen(m.Attrs) }

func (m NeighbourMessage) Emit(b []byte) {
	m.Header.Emit(b[:NeighbourHeaderLen])
	nlmsg.EmitNlas(m.Attrs, b[NeighbourHeaderLen:])
}

// ParseNeighbourMessage decodes a NeighbourHeader and its NLA run from b.
func ParseNeighbourMessage(b []byte) (NeighbourMessage, error) {
	hdr, err := parseNeighbourHeader(b)
	if err != nil {
		return NeighbourMessage{}, err
	}
	attrs, err := parseNeighbourNlas(b[NeighbourHeaderLen:])
	if err != nil {
		return NeighbourMessage{}, err
	}
	return NeighbourMessage{Header: hdr, Attrs: attrs}, nil
}

func parseNeighbourNlas(b []byte) ([]nlmsg.Nla, error) {
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
		attr, err := parseNeighbourNla(buf)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, attr)
	}
	return attrs, nil
}

func parseNeighbourNla(buf nlmsg.NlaBuffer) (nlmsg.Nla, error) {
	v := buf.Value()
	switch buf.Kind() {
	case NDA_DST:
		return NeighDst(append([]byte(nil), v...)), nil
	case NDA_LLADDR:
		return NeighLLAddr(append([]byte(nil), v...)), nil
	case NDA_CACHEINFO:
		ci, err := ParseNeighbourCacheInfo(v)
		return NeighCacheInfoAttr{ci}, err
	case NDA_PROBES:
		return NeighProbes(append([]byte(nil), v...)), nil
	case NDA_VLAN:
		n, err := parseU16(v, "NDA_VLAN")
		return NeighVlan(n), err
	case NDA_VNI:
		n, err := parseU32(v, "NDA_VNI")
		return NeighVNI(n), err
	case NDA_IFINDEX:
		n, err := parseU32(v, "NDA_IFINDEX")
		return NeighIfIndex(n), err
	case NDA_SRC_VNI:
		n, err := parseU32(v, "NDA_SRC_VNI")
		return NeighSourceVNI(n), err
	default:
		return nlmsg.ParseRawAttr(buf), nil
	}
}

func parseU16(v []byte, field string) (uint16, error) {
	if len(v) < 2 {
		return 0, nlmsgMalformed("%s needs 2 bytes, got %d", field, len(v))
	}
	return nlenc.Uint16(v), nil
}

type NeighDst []byte

func (a NeighDst) Kind() uint16       { return NDA_DST }
func (a NeighDst) ValueLen() int      { return len(a) }
func (a NeighDst) EmitValue(b []byte) { copy(b, a) }

type NeighLLAddr []byte

func (a NeighLLAddr) Kind() uint16       { return NDA_LLADDR }
func (a NeighLLAddr) ValueLen() int      { return len(a) }
func (a NeighLLAddr) EmitValue(b []byte) { copy(b, a) }

type NeighProbes []byte

func (a NeighProbes) Kind() uint16       { return NDA_PROBES }
func (a NeighProbes) ValueLen() int      { return len(a) }
func (a NeighProbes) EmitValue(b []byte) { copy(b, a) }

type NeighVlan uint16

func (a NeighVlan) Kind() uint16       { return NDA_VLAN }
func (a NeighVlan) ValueLen() int      { return 2 }
func (a NeighVlan) EmitValue(b []byte) { nlenc.PutUint16(b, uint16(a)) }

type NeighVNI uint32

func (a NeighVNI) Kind() uint16       { return NDA_VNI }
func (a NeighVNI) ValueLen() int      { return 4 }
func (a NeighVNI) EmitValue(b []byte) { nlenc.PutUint32(b, uint32(a)) }

type NeighIfIndex uint32

func (a NeighIfIndex) Kind() uint16       { return NDA_IFINDEX }
func (a NeighIfIndex) ValueLen() int      { return 4 }
func (a NeighIfIndex) EmitValue(b []byte) { nlenc.PutUint32(b, uint32(a)) }

type NeighSourceVNI uint32

func (a NeighSourceVNI) Kind() uint16       { return NDA_SRC_VNI }
func (a NeighSourceVNI) ValueLen() int      { return 4 }
func (a NeighSourceVNI) EmitValue(b []byte) { nlenc.PutUint32(b, uint32(a)) }

// NeighbourCacheInfo is the kernel's nda_cacheinfo fixed struct, grounded
// directly on original_source's NeighbourCacheInfo (ndm_confirmed,
// ndm_used, ndm_updated, ndm_refcnt).
type NeighbourCacheInfo struct {
	Confirmed uint32
	Used      uint32
	Updated   uint32
	RefCnt    uint32
}

func (c NeighbourCacheInfo) Len() int { return 16 }

func (c NeighbourCacheInfo) Emit(b []byte) {
	nlenc.PutUint32(b[0:4], c.Confirmed)
	nlenc.PutUint32(b[4:8], c.Used)
	nlenc.PutUint32(b[8:12], c.Updated)
	nlenc.PutUint32(b[12:16], c.RefCnt)
}

// ParseNeighbourCacheInfo decodes an NDA_CACHEINFO payload.
func ParseNeighbourCacheInfo(b []byte) (NeighbourCacheInfo, error) {
	if len(b) != 16 {
		return NeighbourCacheInfo{}, nlmsgMalformed("nda_cacheinfo needs exactly 16 bytes, got %d", len(b))
	}
	return NeighbourCacheInfo{
		Confirmed: nlenc.Uint32(b[0:4]),
		Used:      nlenc.Uint32(b[4:8]),
		Updated:   nlenc.Uint32(b[8:12]),
		RefCnt:    nlenc.Uint32(b[12:16]),
	}, nil
}

type NeighCacheInfoAttr struct{ CacheInfo NeighbourCacheInfo }

func (a NeighCacheInfoAttr) Kind() uint16       { return NDA_CACHEINFO }
func (a NeighCacheInfoAttr) ValueLen() int      { return a.CacheInfo.Len() }
func (a NeighCacheInfoAttr) EmitValue(b []byte) { a.CacheInfo.Emit(b) }

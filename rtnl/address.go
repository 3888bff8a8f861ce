package rtnl

import (
	"github.com/m-lab/netlink-codec/nlenc"
	"github.com/m-lab/netlink-codec/nlmsg"
)

// AddressHeaderLen is the fixed size of an AddressHeader.
const AddressHeaderLen = 8

// AddressHeader precedes the NLA run of every RTM_*ADDR message.
type AddressHeader struct {
	Family    uint8
	PrefixLen uint8
	Flags     uint8
	Scope     uint8
	Index     uint32
}

func (h AddressHeader) Len() int { return AddressHeaderLen }

func (h AddressHeader) Emit(b []byte) {
	b[0] = h.Family
	b[1] = h.PrefixLen
	b[2] = h.Flags
	b[3] = h.Scope
	nlenc.PutUint32(b[4:8], h.Index)
}

func parseAddressHeader(b []byte) (AddressHeader, error) {
	if len(b) < AddressHeaderLen {
		return AddressHeader{}, nlmsgTruncated("address header needs %d bytes, got %d", AddressHeaderLen, len(b))
	}
	return AddressHeader{
		Family:    b[0],
		PrefixLen: b[1],
		Flags:     b[2],
		Scope:     b[3],
		Index:     nlenc.Uint32(b[4:8]),
	}, nil
}

// AddressMessage is the body of a New/Del/GetAddress message.
type AddressMessage struct {
	Header AddressHeader
	Attrs  []nlmsg.Nla
}

func (m AddressMessage) Len() int { return m.Header.Len() + nlmsg.NlasLen(m.Attrs) }

func (m AddressMessage) Emit(b []byte) {
	m.Header.Emit(b[:AddressHeaderLen])
	nlmsg.EmitNlas(m.Attrs, b[AddressHeaderLen:])
}

// ParseAddressMessage decodes an AddressHeader and its NLA run from b.
func ParseAddressMessage(b []byte) (AddressMessage, error) {
	hdr, err := parseAddressHeader(b)
	if err != nil {
		return AddressMessage{}, err
	}
	attrs, err := parseAddressNlas(b[AddressHeaderLen:])
	if err != nil {
		return AddressMessage{}, err
	}
	return AddressMessage{Header: hdr, Attrs: attrs}, nil
}

func parseAddressNlas(b []byte) ([]nlmsg.Nla, error) {
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
		attr, err := parseAddressNla(buf)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, attr)
	}
	return attrs, nil
}

func parseAddressNla(buf nlmsg.NlaBuffer) (nlmsg.Nla, error) {
	v := buf.Value()
	switch buf.Kind() {
	case IFA_ADDRESS:
		return AddrAddress(append([]byte(nil), v...)), nil
	case IFA_LOCAL:
		return AddrLocal(append([]byte(nil), v...)), nil
	case IFA_LABEL:
		s, ok := nlenc.String(v)
		if !ok {
			return nil, nlmsgMalformed("IFA_LABEL is not valid UTF-8")
		}
		return AddrLabel(s), nil
	case IFA_BROADCAST:
		return AddrBroadcast(append([]byte(nil), v...)), nil
	case IFA_CACHEINFO:
		ci, err := ParseIfaCacheInfo(v)
		return AddrCacheInfoAttr{ci}, err
	case IFA_FLAGS:
		n, err := parseU32(v, "IFA_FLAGS")
		return AddrFlags(n), err
	default:
		return nlmsg.ParseRawAttr(buf), nil
	}
}

type AddrAddress []byte

func (a AddrAddress) Kind() uint16       { return IFA_ADDRESS }
func (a AddrAddress) ValueLen() int      { return len(a) }
func (a AddrAddress) EmitValue(b []byte) { copy(b, a) }

type AddrLocal []byte

func (a AddrLocal) Kind() uint16       { return IFA_LOCAL }
func (a AddrLocal) ValueLen() int      { return len(a) }
func (a AddrLocal) EmitValue(b []byte) { copy(b, a) }

type AddrBroadcast []byte

func (a AddrBroadcast) Kind() uint16       { return IFA_BROADCAST }
func (a AddrBroadcast) ValueLen() int      { return len(a) }
func (a AddrBroadcast) EmitValue(b []byte) { copy(b, a) }

type AddrLabel string

func (a AddrLabel) Kind() uint16       { return IFA_LABEL }
func (a AddrLabel) ValueLen() int      { return len(a) + 1 }
func (a AddrLabel) EmitValue(b []byte) { copy(b, nlenc.Bytes(string(a))) }

type AddrFlags uint32

func (a AddrFlags) Kind() uint16       { return IFA_FLAGS }
func (a AddrFlags) ValueLen() int      { return 4 }
func (a AddrFlags) EmitValue(b []byte) { nlenc.PutUint32(b, uint32(a)) }

// IfaCacheInfo is the kernel's ifa_cacheinfo fixed struct, the IFA_CACHEINFO
// payload.
type IfaCacheInfo struct {
	Prefered uint32
	Valid    uint32
	Created  uint32 // cstamp: time created, in 1/100s since boot
	Updated  uint32 // tstamp: time updated
}

func (c IfaCacheInfo) Len() int { return 16 }

func (c IfaCacheInfo) Emit(b []byte) {
	nlenc.PutUint32(b[0:4], c.Prefered)
	nlenc.PutUint32(b[4:8], c.Valid)
	nlenc.PutUint32(b[8:12], c.Created)
	nlenc.PutUint32(b[12:16], c.Updated)
}

// ParseIfaCacheInfo decodes an IFA_CACHEINFO payload.
func ParseIfaCacheInfo(b []byte) (IfaCacheInfo, error) {
	if len(b) != 16 {
		return IfaCacheInfo{}, nlmsgMalformed("ifa_cacheinfo needs exactly 16 bytes, got %d", len(b))
	}
	return IfaCacheInfo{
		Prefered: nlenc.Uint32(b[0:4]),
		Valid:    nlenc.Uint32(b[4:8]),
		Created:  nlenc.Uint32(b[8:12]),
		Updated:  nlenc.Uint32(b[12:16]),
	}, nil
}

type AddrCacheInfoAttr struct{ CacheInfo IfaCacheInfo }

func (a AddrCacheInfoAttr) Kind() uint16       { return IFA_CACHEINFO }
func (a AddrCacheInfoAttr) ValueLen() int      { return a.CacheInfo.Len() }
func (a AddrCacheInfoAttr) EmitValue(b []byte) { a.CacheInfo.Emit(b) }

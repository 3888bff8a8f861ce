package rtnl

import (
	"github.com/m-lab/netlink-codec/nlenc"
	"github.com/m-lab/netlink-codec/nlmsg"
)

// RouteHeaderLen is the fixed size of a RouteHeader.
const RouteHeaderLen = 12

// RouteHeader precedes the NLA run of every RTM_*ROUTE message.
type RouteHeader struct {
	Family   uint8
	DstLen   uint8
	SrcLen   uint8
	Tos      uint8
	Table    uint8
	Protocol uint8
	Scope    uint8
	Kind     uint8
	Flags    uint32
}

func (h RouteHeader) Len() int { return RouteHeaderLen }

func (h RouteHeader) Emit(b []byte) {
	b[0] = h.Family
	b[1] = h.DstLen
	b[2] = h.SrcLen
	b[3] = h.Tos
	b[4] = h.Table
	b[5] = h.Protocol
	b[6] = h.Scope
	b[7] = h.Kind
	nlenc.PutUint32(b[8:12], h.Flags)
}

func parseRouteHeader(b []byte) (RouteHeader, error) {
	if len(b) < RouteHeaderLen {
		return RouteHeader{}, nlmsgTruncated("route header needs %d bytes, got %d", RouteHeaderLen, len(b))
	}
	return RouteHeader{
		Family: b[0], DstLen: b[1], SrcLen: b[2], Tos: b[3],
		Table: b[4], Protocol: b[5], Scope: b[6], Kind: b[7],
		Flags: nlenc.Uint32(b[8:12]),
	}, nil
}

// RouteMessage is the body of a New/Del/GetRoute message.
type RouteMessage struct {
	Header RouteHeader
	Attrs  []nlmsg.Nla
}

func (m RouteMessage) Len() int { return m.Header.Len() + nlmsg.NlasLen(m.Attrs) }

func (m RouteMessage) Emit(b []byte) {
	m.Header.Emit(b[:RouteHeaderLen])
	nlmsg.EmitNlas(m.Attrs, b[RouteHeaderLen:])
}

// ParseRouteMessage decodes a RouteHeader and its NLA run from b.
func ParseRouteMessage(b []byte) (RouteMessage, error) {
	hdr, err := parseRouteHeader(b)
	if err != nil {
		return RouteMessage{}, err
	}
	attrs, err := parseRouteNlas(b[RouteHeaderLen:])
	if err != nil {
		return RouteMessage{}, err
	}
	return RouteMessage{Header: hdr, Attrs: attrs}, nil
}

func parseRouteNlas(b []byte) ([]nlmsg.Nla, error) {
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
		attr, err := parseRouteNla(buf)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, attr)
	}
	return attrs, nil
}

func parseRouteNla(buf nlmsg.NlaBuffer) (nlmsg.Nla, error) {
	v := buf.Value()
	switch buf.Kind() {
	case RTA_DST:
		return RouteDst(append([]byte(nil), v...)), nil
	case RTA_SRC:
		return RouteSrc(append([]byte(nil), v...)), nil
	case RTA_GATEWAY:
		return RouteGateway(append([]byte(nil), v...)), nil
	case RTA_PREFSRC:
		return RoutePrefSrc(append([]byte(nil), v...)), nil
	case RTA_OIF:
		n, err := parseU32(v, "RTA_OIF")
		return RouteOif(n), err
	case RTA_IIF:
		n, err := parseU32(v, "RTA_IIF")
		return RouteIif(n), err
	case RTA_PRIORITY:
		n, err := parseU32(v, "RTA_PRIORITY")
		return RoutePriority(n), err
	case RTA_TABLE:
		n, err := parseU32(v, "RTA_TABLE")
		return RouteTable(n), err
	case RTA_MARK:
		n, err := parseU32(v, "RTA_MARK")
		return RouteMark(n), err
	case RTA_CACHEINFO:
		ci, err := ParseRtaCacheInfo(v)
		return RouteCacheInfoAttr{ci}, err
	case RTA_MULTIPATH:
		// Kept opaque for round-trip fidelity; NextHops offers an
		// additive typed view (see multipath.go).
		return RouteMultipath(append([]byte(nil), v...)), nil
	default:
		return nlmsg.ParseRawAttr(buf), nil
	}
}

type RouteDst []byte

func (a RouteDst) Kind() uint16       { return RTA_DST }
func (a RouteDst) ValueLen() int      { return len(a) }
func (a RouteDst) EmitValue(b []byte) { copy(b, a) }

type RouteSrc []byte

func (a RouteSrc) Kind() uint16       { return RTA_SRC }
func (a RouteSrc) ValueLen() int      { return len(a) }
func (a RouteSrc) EmitValue(b []byte) { copy(b, a) }

type RouteGateway []byte

func (a RouteGateway) Kind() uint16       { return RTA_GATEWAY }
func (a RouteGateway) ValueLen() int      { return len(a) }
func (a RouteGateway) EmitValue(b []byte) { copy(b, a) }

type RoutePrefSrc []byte

func (a RoutePrefSrc) Kind() uint16       { return RTA_PREFSRC }
func (a RoutePrefSrc) ValueLen() int      { return len(a) }
func (a RoutePrefSrc) EmitValue(b []byte) { copy(b, a) }

type RouteOif uint32

func (a RouteOif) Kind() uint16       { return RTA_OIF }
func (a RouteOif) ValueLen() int      { return 4 }
func (a RouteOif) EmitValue(b []byte) { nlenc.PutUint32(b, uint32(a)) }

type RouteIif uint32

func (a RouteIif) Kind() uint16       { return RTA_IIF }
func (a RouteIif) ValueLen() int      { return 4 }
func (a RouteIif) EmitValue(b []byte) { nlenc.PutUint32(b, uint32(a)) }

type RoutePriority uint32

func (a RoutePriority) Kind() uint16       { return RTA_PRIORITY }
func (a RoutePriority) ValueLen() int      { return 4 }
func (a RoutePriority) EmitValue(b []byte) { nlenc.PutUint32(b, uint32(a)) }

type RouteTable uint32

func (a RouteTable) Kind() uint16       { return RTA_TABLE }
func (a RouteTable) ValueLen() int      { return 4 }
func (a RouteTable) EmitValue(b []byte) { nlenc.PutUint32(b, uint32(a)) }

type RouteMark uint32

func (a RouteMark) Kind() uint16       { return RTA_MARK }
func (a RouteMark) ValueLen() int      { return 4 }
func (a RouteMark) EmitValue(b []byte) { nlenc.PutUint32(b, uint32(a)) }

// RouteMultipath is the opaque, verbatim round-trip of an RTA_MULTIPATH
// value. Use NextHops to get a best-effort typed view.
type RouteMultipath []byte

func (a RouteMultipath) Kind() uint16       { return RTA_MULTIPATH }
func (a RouteMultipath) ValueLen() int      { return len(a) }
func (a RouteMultipath) EmitValue(b []byte) { copy(b, a) }

// RtaCacheInfo is the kernel's rta_cacheinfo fixed struct, the
// RTA_CACHEINFO payload.
type RtaCacheInfo struct {
	Clntref uint32
	Lastuse uint32
	Expires int32
	Error   uint32
	Used    uint32
	Id      uint32
	Ts      uint32
	TsAge   uint32
}

func (c RtaCacheInfo) Len() int { return 32 }

func (c RtaCacheInfo) Emit(b []byte) {
	nlenc.PutUint32(b[0:4], c.Clntref)
	nlenc.PutUint32(b[4:8], c.Lastuse)
	nlenc.PutUint32(b[8:12], uint32(c.Expires))
	nlenc.PutUint32(b[12:16], c.Error)
	nlenc.PutUint32(b[16:20], c.Used)
	nlenc.PutUint32(b[20:24], c.Id)
	nlenc.PutUint32(b[24:28], c.Ts)
	nlenc.PutUint32(b[28:32], c.TsAge)
}

// ParseRtaCacheInfo decodes an RTA_CACHEINFO payload.
func ParseRtaCacheInfo(b []byte) (RtaCacheInfo, error) {
	if len(b) != 32 {
		return RtaCacheInfo{}, nlmsgMalformed("rta_cacheinfo needs exactly 32 bytes, got %d", len(b))
	}
	return RtaCacheInfo{
		Clntref: nlenc.Uint32(b[0:4]),
		Lastuse: nlenc.Uint32(b[4:8]),
		Expires: int32(nlenc.Uint32(b[8:12])),
		Error:   nlenc.Uint32(b[12:16]),
		Used:    nlenc.Uint32(b[16:20]),
		Id:      nlenc.Uint32(b[20:24]),
		Ts:      nlenc.Uint32(b[24:28]),
		TsAge:   nlenc.Uint32(b[28:32]),
	}, nil
}

type RouteCacheInfoAttr struct{ CacheInfo RtaCacheInfo }

func (a RouteCacheInfoAttr) Kind() uint16       { return RTA_CACHEINFO }
func (a RouteCacheInfoAttr) ValueLen() int      { return a.CacheInfo.Len() }
func (a RouteCacheInfoAttr) EmitValue(b []byte) { a.CacheInfo.Emit(b) }

package rtnl

import "github.com/m-lab/netlink-codec/nlenc"

// rtnexthopLen is the fixed size of struct rtnexthop that precedes each
// next hop's own NLA run inside an RTA_MULTIPATH value.
const rtnexthopLen = 8

// RTNextHop is one next hop of a multipath route: a fixed rtnexthop prefix
// plus that hop's own attribute run (typically RTA_GATEWAY).
type RTNextHop struct {
	Flags   uint8
	Hops    uint8
	IfIndex int32
	Attrs   []byte // that hop's NLA run, kept opaque
}

// NextHops is a best-effort, additive typed view over an RTA_MULTIPATH
// value; it is never consulted for round-trip (RouteMultipath carries the
// authoritative bytes) but lets a caller inspect multipath routes without
// hand-parsing rtnexthop structs.
func NextHops(raw []byte) ([]RTNextHop, error) {
	var hops []RTNextHop
	for len(raw) > 0 {
		if len(raw) < rtnexthopLen {
			return nil, nlmsgTruncated("rtnexthop needs %d bytes, got %d", rtnexthopLen, len(raw))
		}
		rtlen := nlenc.Uint16(raw[0:2])
		if int(rtlen) < rtnexthopLen || int(rtlen) > len(raw) {
			return nil, nlmsgMalformed("rtnexthop declares length %d in a %d-byte buffer", rtlen, len(raw))
		}
		hop := RTNextHop{
			Flags:   raw[2],
			Hops:    raw[3],
			IfIndex: int32(nlenc.Uint32(raw[4:8])),
			Attrs:   append([]byte(nil), raw[rtnexthopLen:rtlen]...),
		}
		hops = append(hops, hop)
		raw = raw[nlenc.Align4(int(rtlen)):]
	}
	return hops, nil
}

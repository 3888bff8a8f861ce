package rtnl

import "github.com/m-lab/netlink-codec/nlenc"

// linkStatsFieldCount is the number of uint32/uint64 counters in
// rtnl_link_stats / rtnl_link_stats64, in kernel-declared order. Both
// widths share the same field layout; only the counter width differs.
const linkStatsFieldCount = 23

// LinkStats32 is the kernel's rtnl_link_stats: 23 packed uint32 counters,
// the IFLA_STATS attribute payload. Fields are read/written by explicit
// host-endian offsets, with no reliance on host struct layout.
type LinkStats32 struct {
	RxPackets, TxPackets             uint32
	RxBytes, TxBytes                 uint32
	RxErrors, TxErrors               uint32
	RxDropped, TxDropped             uint32
	Multicast, Collisions            uint32
	RxLengthErrors, RxOverErrors     uint32
	RxCrcErrors, RxFrameErrors       uint32
	RxFifoErrors, RxMissedErrors     uint32
	TxAbortedErrors, TxCarrierErrors uint32
	TxFifoErrors, TxHeartbeatErrors  uint32
	TxWindowErrors                   uint32
	RxCompressed, TxCompressed       uint32
}

func (s LinkStats32) Len() int { return linkStatsFieldCount * 4 }

func (s LinkStats32) Emit(b []byte) {
	fields := []uint32{
		s.RxPackets, s.TxPackets, s.RxBytes, s.TxBytes, s.RxErrors, s.TxErrors,
		s.RxDropped, s.TxDropped, s.Multicast, s.Collisions, s.RxLengthErrors,
		s.RxOverErrors, s.RxCrcErrors, s.RxFrameErrors, s.RxFifoErrors,
		s.RxMissedErrors, s.TxAbortedErrors, s.TxCarrierErrors, s.TxFifoErrors,
		s.TxHeartbeatErrors, s.TxWindowErrors, s.RxCompressed, s.TxCompressed,
	}
	for i, f := range fields {
		nlenc.PutUint32(b[i*4:i*4+4], f)
	}
}

// ParseLinkStats32 decodes an IFLA_STATS payload. A width mismatch (e.g.
// receiving the 64-bit struct here) is reported as Malformed.
func ParseLinkStats32(b []byte) (LinkStats32, error) {
	want := linkStatsFieldCount * 4
	if len(b) != want {
		return LinkStats32{}, nlmsgMalformed("rtnl_link_stats needs exactly %d bytes, got %d", want, len(b))
	}
	f := make([]uint32, linkStatsFieldCount)
	for i := range f {
		f[i] = nlenc.Uint32(b[i*4 : i*4+4])
	}
	return LinkStats32{
		RxPackets: f[0], TxPackets: f[1], RxBytes: f[2], TxBytes: f[3],
		RxErrors: f[4], TxErrors: f[5], RxDropped: f[6], TxDropped: f[7],
		Multicast: f[8], Collisions: f[9], RxLengthErrors: f[10],
		RxOverErrors: f[11], RxCrcErrors: f[12], RxFrameErrors: f[13],
		RxFifoErrors: f[14], RxMissedErrors: f[15], TxAbortedErrors: f[16],
		TxCarrierErrors: f[17], TxFifoErrors: f[18], TxHeartbeatErrors: f[19],
		TxWindowErrors: f[20], RxCompressed: f[21], TxCompressed: f[22],
	}, nil
}

// LinkStats64 is the kernel's rtnl_link_stats64: the same 23 counters as
// LinkStats32, widened to uint64. IFLA_STATS64 payload.
type LinkStats64 struct {
	RxPackets, TxPackets             uint64
	RxBytes, TxBytes                 uint64
	RxErrors, TxErrors               uint64
	RxDropped, TxDropped             uint64
	Multicast, Collisions            uint64
	RxLengthErrors, RxOverErrors     uint64
	RxCrcErrors, RxFrameErrors       uint64
	RxFifoErrors, RxMissedErrors     uint64
	TxAbortedErrors, TxCarrierErrors uint64
	TxFifoErrors, TxHeartbeatErrors  uint64
	TxWindowErrors                   uint64
	RxCompressed, TxCompressed       uint64
}

func (s LinkStats64) Len() int { return linkStatsFieldCount * 8 }

func (s LinkStats64) Emit(b []byte) {
	fields := []uint64{
		s.RxPackets, s.TxPackets, s.RxBytes, s.TxBytes, s.RxErrors, s.TxErrors,
		s.RxDropped, s.TxDropped, s.Multicast, s.Collisions, s.RxLengthErrors,
		s.RxOverErrors, s.RxCrcErrors, s.RxFrameErrors, s.RxFifoErrors,
		s.RxMissedErrors, s.TxAbortedErrors, s.TxCarrierErrors, s.TxFifoErrors,
		s.TxHeartbeatErrors, s.TxWindowErrors, s.RxCompressed, s.TxCompressed,
	}
	for i, f := range fields {
		nlenc.PutUint64(b[i*8:i*8+8], f)
	}
}

// ParseLinkStats64 decodes an IFLA_STATS64 payload.
func ParseLinkStats64(b []byte) (LinkStats64, error) {
	want := linkStatsFieldCount * 8
	if len(b) != want {
		return LinkStats64{}, nlmsgMalformed("rtnl_link_stats64 needs exactly %d bytes, got %d", want, len(b))
	}
	f := make([]uint64, linkStatsFieldCount)
	for i := range f {
		f[i] = nlenc.Uint64(b[i*8 : i*8+8])
	}
	return LinkStats64{
		RxPackets: f[0], TxPackets: f[1], RxBytes: f[2], TxBytes: f[3],
		RxErrors: f[4], TxErrors: f[5], RxDropped: f[6], TxDropped: f[7],
		Multicast: f[8], Collisions: f[9], RxLengthErrors: f[10],
		RxOverErrors: f[11], RxCrcErrors: f[12], RxFrameErrors: f[13],
		RxFifoErrors: f[14], RxMissedErrors: f[15], TxAbortedErrors: f[16],
		TxCarrierErrors: f[17], TxFifoErrors: f[18], TxHeartbeatErrors: f[19],
		TxWindowErrors: f[20], RxCompressed: f[21], TxCompressed: f[22],
	}, nil
}

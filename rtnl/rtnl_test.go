package rtnl_test

import (
	"bytes"
	"testing"

	"github.com/go-test/deep"
	"github.com/m-lab/netlink-codec/nlmsg"
	"github.com/m-lab/netlink-codec/rtnl"
)

// Finalize on a GetLink(LinkMessage{}) request with
// NLM_F_REQUEST|NLM_F_DUMP produces a 32-byte datagram.
func TestGetLinkDumpRequest(t *testing.T) {
	m := rtnl.NewGetLinkDump()
	if m.Header.Length != 32 {
		t.Fatalf("Length = %d, want 32", m.Header.Length)
	}
	if m.Header.Type != rtnl.RTM_GETLINK {
		t.Fatalf("Type = %d, want RTM_GETLINK", m.Header.Type)
	}
	out := make([]byte, m.Header.Length)
	n, err := m.ToBytes(out)
	if err != nil {
		t.Fatalf("ToBytes: %v", err)
	}
	if n != 32 {
		t.Fatalf("wrote %d bytes, want 32", n)
	}
	// Header all zero except family=0 means the trailing 16 link-header
	// bytes are all zero too.
	for i, b := range out[16:32] {
		if b != 0 {
			t.Fatalf("link header byte %d = %#x, want 0", i, b)
		}
	}
}

// The 112-byte loopback link reply round-trips exactly; the fixture is
// lifted from a known-good real-world loopback link dump.
func loopbackLinkMessageBytes() []byte {
	return []byte{
		0x00,       // address family
		0x00,       // reserved
		0x04, 0x03, // link layer type 772 = loopback
		0x01, 0x00, 0x00, 0x00, // interface index = 1
		0x49, 0x00, 0x00, 0x00, // flags: UP, LOOPBACK, RUNNING
		0x00, 0x00, 0x00, 0x00, // change mask

		0x07, 0x00, 0x03, 0x00, 0x6c, 0x6f, 0x00, 0x00, // IFNAME="lo"
		0x08, 0x00, 0x0d, 0x00, 0xe8, 0x03, 0x00, 0x00, // TXQLEN=1000
		0x05, 0x00, 0x10, 0x00, 0x00, 0x00, 0x00, 0x00, // OperState=Unknown
		0x05, 0x00, 0x11, 0x00, 0x00, 0x00, 0x00, 0x00, // LinkMode=0
		0x08, 0x00, 0x04, 0x00, 0x00, 0x00, 0x01, 0x00, // MTU=65536
		0x08, 0x00, 0x1b, 0x00, 0x00, 0x00, 0x00, 0x00, // Group=0
		0x08, 0x00, 0x1e, 0x00, 0x00, 0x00, 0x00, 0x00, // Promiscuity=0
		0x08, 0x00, 0x1f, 0x00, 0x01, 0x00, 0x00, 0x00, // NumTxQueues=1
		0x08, 0x00, 0x28, 0x00, 0x00, 0x00, 0x01, 0x00, // GsoMaxSegs=65536
		0x08, 0x00, 0x29, 0x00, 0x00, 0x00, 0x01, 0x00, // GsoMaxSize=65536
	}
}

func TestLoopbackLinkRoundTrip(t *testing.T) {
	linkBytes := loopbackLinkMessageBytes()
	if len(linkBytes) != 96 {
		t.Fatalf("fixture is %d bytes, want 96", len(linkBytes))
	}

	datagram := make([]byte, 16+len(linkBytes))
	copy(datagram, []byte{
		0x70, 0, 0, 0, // length = 112
		0x10, 0, 0, 0, // type = RTM_NEWLINK
		0, 0, 0, 0,
		0, 0, 0, 0,
	})
	copy(datagram[16:], linkBytes)

	m, err := nlmsg.ParseBytes(datagram)
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}
	if int(m.Header.Length) != 112 {
		t.Fatalf("Length = %d, want 112", m.Header.Length)
	}
	rm, ok := m.Payload.(rtnl.Message)
	if !ok {
		t.Fatalf("payload is %T, want rtnl.Message", m.Payload)
	}
	lm, ok := rm.Body.(rtnl.LinkMessage)
	if !ok {
		t.Fatalf("body is %T, want LinkMessage", rm.Body)
	}
	if len(lm.Attrs) != 10 {
		t.Fatalf("got %d NLAs, want 10", len(lm.Attrs))
	}
	if diff := deep.Equal(lm.Attrs[0], rtnl.LinkIfName("lo")); diff != nil {
		t.Errorf("attr 0 diff: %v", diff)
	}
	if diff := deep.Equal(lm.Attrs[1], rtnl.LinkTxQueueLen(1000)); diff != nil {
		t.Errorf("attr 1 diff: %v", diff)
	}
	if diff := deep.Equal(lm.Attrs[4], rtnl.LinkMtu(65536)); diff != nil {
		t.Errorf("attr 4 diff: %v", diff)
	}

	out := make([]byte, m.Len())
	if _, err := m.ToBytes(out); err != nil {
		t.Fatalf("ToBytes: %v", err)
	}
	if !bytes.Equal(out, datagram) {
		t.Fatalf("re-emit mismatch:\n got % x\nwant % x", out, datagram)
	}
}

func TestLinkInfoVlanContextSensitiveDecode(t *testing.T) {
	info := rtnl.LinkInfo{
		InfoKind: "vlan",
		Data:     nil,
		Vlan:     nil,
	}
	// Build IFLA_INFO_DATA from an IFLA_VLAN_ID attribute by hand, since LinkInfo.Data
	// is authoritative for round-trip and LinkInfo's emit path does not
	// re-derive Data from Vlan.
	vlanData := make([]byte, 8)
	nlmsg.EmitNlas([]nlmsg.Nla{vlanIDAttr(100)}, vlanData)
	info.Data = vlanData[:8]

	attrs := []nlmsg.Nla{info}
	b := make([]byte, nlmsg.NlasLen(attrs))
	nlmsg.EmitNlas(attrs, b)

	it := nlmsg.IterNlas(b)
	buf, ok, err := it.Next()
	if err != nil || !ok {
		t.Fatalf("Next: ok=%v err=%v", ok, err)
	}
	if !buf.Nested() {
		t.Fatalf("IFLA_LINKINFO must be nested")
	}

	// Parsing it back resolves IFLA_INFO_KIND first, then decodes
	// IFLA_INFO_DATA as vlan attributes.
	lm, err := rtnl.ParseLinkMessage(append(make([]byte, rtnl.LinkHeaderLen), b...))
	if err != nil {
		t.Fatalf("ParseLinkMessage: %v", err)
	}
	got, ok := lm.Attrs[0].(rtnl.LinkInfo)
	if !ok {
		t.Fatalf("attr 0 is %T, want LinkInfo", lm.Attrs[0])
	}
	if got.Vlan == nil || got.Vlan.ID != 100 {
		t.Fatalf("Vlan = %+v, want ID 100", got.Vlan)
	}
}

type vlanIDAttr uint16

func (a vlanIDAttr) Kind() uint16       { return rtnl.IFLA_VLAN_ID }
func (a vlanIDAttr) ValueLen() int      { return 2 }
func (a vlanIDAttr) EmitValue(b []byte) { b[0] = byte(a); b[1] = byte(a >> 8) }

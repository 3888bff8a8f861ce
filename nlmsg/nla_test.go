package nlmsg_test

import (
	"bytes"
	"testing"

	"github.com/m-lab/netlink-codec/nlmsg"
)

func TestNlaLenAndEmit(t *testing.T) {
	a := nlmsg.RawAttr{Tag: 7, Value: []byte("lo\x00")}
	if got, want := nlmsg.NlaLen(a), 4+4; got != want { // 4 header + align4(3)=4
		t.Fatalf("NlaLen = %d, want %d", got, want)
	}
	b := make([]byte, nlmsg.NlaLen(a))
	nlmsg.EmitNla(a, b)
	want := []byte{0x07, 0, 0x07, 0, 'l', 'o', 0, 0}
	if !bytes.Equal(b, want) {
		t.Fatalf("Emit = % x, want % x", b, want)
	}
}

// An unrecognised tag, parsed and re-emitted, reproduces the original
// bytes including its flags.
func TestUnknownTagRoundTrip(t *testing.T) {
	raw := []byte{0x08, 0, 0x34, 0x80, 1, 2, 3, 0} // length=8, type=0x8034 (NESTED|0x34)
	buf := nlmsg.NewNlaBuffer(raw)
	if err := buf.CheckLen(); err != nil {
		t.Fatalf("CheckLen: %v", err)
	}
	attr := nlmsg.ParseRawAttr(buf)
	if attr.Tag != 0x34 || !attr.NestedFlag {
		t.Fatalf("unexpected parse: %+v", attr)
	}

	out := make([]byte, nlmsg.NlaLen(attr))
	nlmsg.EmitNla(attr, out)
	if !bytes.Equal(out, raw) {
		t.Fatalf("re-emit = % x, want % x", out, raw)
	}
}

func TestIterNlasStopsOnMalformedLength(t *testing.T) {
	// First attribute is well-formed (length=8); second declares an
	// impossible length of 2 (<4).
	b := []byte{
		0x08, 0, 0x01, 0, 'a', 'b', 'c', 0,
		0x02, 0, 0x02, 0,
	}
	it := nlmsg.IterNlas(b)

	buf, ok, err := it.Next()
	if err != nil || !ok {
		t.Fatalf("first Next() = %v, %v, %v", buf, ok, err)
	}
	if buf.Kind() != 1 {
		t.Fatalf("Kind = %d, want 1", buf.Kind())
	}

	_, ok, err = it.Next()
	if ok || err == nil {
		t.Fatalf("second Next() = ok=%v err=%v, want a Malformed error", ok, err)
	}
}

func TestAlignmentBetweenNlas(t *testing.T) {
	attrs := []nlmsg.Nla{
		nlmsg.RawAttr{Tag: 1, Value: []byte("ab")},  // len 2 -> buffer_len 8
		nlmsg.RawAttr{Tag: 2, Value: []byte("abcd")}, // len 4 -> buffer_len 8
	}
	total := nlmsg.NlasLen(attrs)
	b := make([]byte, total)
	nlmsg.EmitNlas(attrs, b)

	it := nlmsg.IterNlas(b)
	offset := 0
	for {
		if offset%4 != 0 {
			t.Fatalf("attribute at unaligned offset %d", offset)
		}
		buf, ok, err := it.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if !ok {
			break
		}
		offset += (4 + (int(buf.Length())-4+3)&^3)
	}
}

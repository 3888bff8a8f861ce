package nlenc_test

import (
	"testing"

	"github.com/m-lab/netlink-codec/nlenc"
)

func TestAlign4(t *testing.T) {
	cases := map[int]int{0: 0, 1: 4, 2: 4, 3: 4, 4: 4, 5: 8, 7: 8, 8: 8, 65: 68}
	for in, want := range cases {
		if got := nlenc.Align4(in); got != want {
			t.Errorf("Align4(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestUint32RoundTrip(t *testing.T) {
	b := make([]byte, 4)
	nlenc.PutUint32(b, 0xdeadbeef)
	if got := nlenc.Uint32(b); got != 0xdeadbeef {
		t.Fatalf("got %#x, want %#x", got, 0xdeadbeef)
	}
}

func TestString(t *testing.T) {
	s, ok := nlenc.String([]byte("lo\x00"))
	if !ok || s != "lo" {
		t.Fatalf("String(%q) = %q, %v", "lo\\x00", s, ok)
	}
	if _, ok := nlenc.String([]byte{0xff, 0xfe}); ok {
		t.Fatalf("expected invalid UTF-8 to fail")
	}
}

func TestBytes(t *testing.T) {
	b := nlenc.Bytes("lo")
	if string(b) != "lo\x00" {
		t.Fatalf("Bytes(%q) = %q", "lo", b)
	}
}

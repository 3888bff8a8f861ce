package nlmsg_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go-test/deep"
	"github.com/m-lab/netlink-codec/nlmsg"
)

// A minimal DONE message round-trips byte for byte.
func TestParseMinimalDone(t *testing.T) {
	in := []byte{
		0x10, 0, 0, 0, // length = 16
		0x03, 0, 0, 0, // type = NLMSG_DONE, flags = 0
		0, 0, 0, 0, // sequence
		0, 0, 0, 0, // port
	}
	m, err := nlmsg.ParseBytes(in)
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}
	if m.Header.Length != 16 || m.Header.Type != nlmsg.NLMSG_DONE {
		t.Fatalf("unexpected header: %+v", m.Header)
	}
	if _, ok := m.Payload.(nlmsg.DoneMessage); !ok {
		t.Fatalf("payload is %T, want DoneMessage", m.Payload)
	}

	out := make([]byte, m.Len())
	n, err := m.ToBytes(out)
	if err != nil {
		t.Fatalf("ToBytes: %v", err)
	}
	if n != 16 || !bytes.Equal(out, in) {
		t.Fatalf("re-emit = % x, want % x", out, in)
	}
}

// An ACK wraps an echoed DONE header.
func TestParseAck(t *testing.T) {
	in := []byte{
		0x24, 0, 0, 0, // length = 36
		0x02, 0, 0, 0, // type = NLMSG_ERROR
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0, // code = 0
		0x10, 0, 0, 0, // echoed header: length = 16
		0x03, 0, 0, 0, // echoed header: type = NLMSG_DONE
		0, 0, 0, 0,
		0, 0, 0, 0,
	}
	m, err := nlmsg.ParseBytes(in)
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}
	ack, ok := m.Payload.(nlmsg.AckMessage)
	if !ok {
		t.Fatalf("payload is %T, want AckMessage", m.Payload)
	}
	want := nlmsg.ErrorMessage{
		Code:   0,
		Header: nlmsg.NetlinkHeader{Length: 16, Type: nlmsg.NLMSG_DONE},
	}
	if diff := deep.Equal(ack.ErrorMessage, want); diff != nil {
		t.Errorf("ErrorMessage diff: %v", diff)
	}
}

func TestParseErrNegativeCode(t *testing.T) {
	in := make([]byte, 36)
	copy(in, []byte{0x24, 0, 0, 0, 0x02, 0, 0, 0})
	// code = -1 (EPERM-ish), little endian two's complement.
	copy(in[16:20], []byte{0xff, 0xff, 0xff, 0xff})
	m, err := nlmsg.ParseBytes(in)
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}
	errp, ok := m.Payload.(nlmsg.ErrMessage)
	if !ok {
		t.Fatalf("payload is %T, want ErrMessage", m.Payload)
	}
	if errp.Code != -1 {
		t.Fatalf("Code = %d, want -1", errp.Code)
	}
}

// Hostile input never panics, and is classified correctly.
func TestHostileInput(t *testing.T) {
	t.Run("truncated length", func(t *testing.T) {
		b := []byte{0xff, 0xff, 0xff, 0xff, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
		_, err := nlmsg.ParseBytes(b)
		if !errors.Is(err, nlmsg.ErrTruncated) {
			t.Fatalf("err = %v, want Truncated", err)
		}
	})

	t.Run("too short for header", func(t *testing.T) {
		_, err := nlmsg.ParseBytes([]byte{1, 2, 3})
		if !errors.Is(err, nlmsg.ErrTruncated) {
			t.Fatalf("err = %v, want Truncated", err)
		}
	})

	t.Run("declared length shorter than header", func(t *testing.T) {
		// 16 bytes available but length=0: must be rejected before
		// Payload() ever slices b[16:0].
		b := make([]byte, 16)
		_, err := nlmsg.ParseBytes(b)
		if !errors.Is(err, nlmsg.ErrMalformed) {
			t.Fatalf("err = %v, want Malformed", err)
		}
	})

	t.Run("error payload too short for echoed header", func(t *testing.T) {
		// A well-framed 20-byte NLMSG_ERROR with too-short a payload
		// (no room for the echoed header) must report Truncated, not
		// panic.
		b := make([]byte, 20)
		copy(b, []byte{0x14, 0, 0, 0, 0x02, 0, 0, 0})
		_, err := nlmsg.ParseBytes(b)
		if !errors.Is(err, nlmsg.ErrTruncated) {
			t.Fatalf("err = %v, want Truncated", err)
		}
	})

	t.Run("exhausted emit destination", func(t *testing.T) {
		m := nlmsg.NewDone()
		m.Header.Sequence = 7
		m.Finalize()
		_, err := m.ToBytes(make([]byte, 4))
		if !errors.Is(err, nlmsg.ErrExhausted) {
			t.Fatalf("err = %v, want Exhausted", err)
		}
	})

	t.Run("not finalized", func(t *testing.T) {
		m := nlmsg.NewDone()
		_, err := m.ToBytes(make([]byte, 16))
		if !errors.Is(err, nlmsg.ErrMalformed) {
			t.Fatalf("err = %v, want Malformed", err)
		}
	})
}

func TestFinalizeSetsLengthAndType(t *testing.T) {
	m := nlmsg.NewDone()
	m.Finalize()
	if m.Header.Length != 16 {
		t.Fatalf("Length = %d, want 16", m.Header.Length)
	}
	if m.Header.Type != nlmsg.NLMSG_DONE {
		t.Fatalf("Type = %d, want NLMSG_DONE", m.Header.Type)
	}
}

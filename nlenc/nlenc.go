// Package nlenc provides the byte-level primitives netlink framing is built
// on: host-endian integer codecs, 4-byte alignment, and NUL-terminated
// string conversion. There is no network-endian helper: the integer
// attribute decoders in rtnl read host order whether or not an attribute
// carries NLA_F_NET_BYTEORDER (nlmsg.NlaBuffer.NetByteOrder reports the flag).
package nlenc

import (
	"encoding/binary"
	"unicode/utf8"
	"unsafe"
)

// NativeEndian is the host's byte order, resolved once at init time the way
// mdlayher/netlink's nlenc package does it: netlink framing is defined in
// terms of whatever order the host CPU uses, not a fixed wire endianness.
var NativeEndian binary.ByteOrder

func init() {
	var x uint16 = 1
	if *(*byte)(unsafe.Pointer(&x)) == 0 {
		NativeEndian = binary.BigEndian
	} else {
		NativeEndian = binary.LittleEndian
	}
}

// Align4 rounds n up to the next multiple of 4, the netlink padding
// granularity applied between NLAs and after the header of a message.
func Align4(n int) int {
	return (n + 3) &^ 3
}

// Uint16 reads a host-endian uint16 at the start of b.
func Uint16(b []byte) uint16 { return NativeEndian.Uint16(b) }

// PutUint16 writes v in host-endian order at the start of b.
func PutUint16(b []byte, v uint16) { NativeEndian.PutUint16(b, v) }

// Uint32 reads a host-endian uint32 at the start of b.
func Uint32(b []byte) uint32 { return NativeEndian.Uint32(b) }

// PutUint32 writes v in host-endian order at the start of b.
func PutUint32(b []byte, v uint32) { NativeEndian.PutUint32(b, v) }

// Uint64 reads a host-endian uint64 at the start of b.
func Uint64(b []byte) uint64 { return NativeEndian.Uint64(b) }

// PutUint64 writes v in host-endian order at the start of b.
func PutUint64(b []byte, v uint64) { NativeEndian.PutUint64(b, v) }

// String decodes b as a NUL-terminated, UTF-8 string NLA value: a trailing
// NUL byte, if present, is stripped before validation. Invalid UTF-8 is
// reported so the caller can surface Malformed.
func String(b []byte) (string, bool) {
	if n := len(b); n > 0 && b[n-1] == 0 {
		b = b[:n-1]
	}
	if !utf8.Valid(b) {
		return "", false
	}
	return string(b), true
}

// Bytes encodes s as a NUL-terminated byte string, the inverse of String.
func Bytes(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}

package nlmsg

import "github.com/m-lab/netlink-codec/nlenc"

// Flag bits packed into the high two bits of an NLA's type field.
const (
	NLA_F_NESTED        uint16 = 1 << 15
	NLA_F_NET_BYTEORDER uint16 = 1 << 14
	NLA_TYPE_MASK       uint16 = ^(NLA_F_NESTED | NLA_F_NET_BYTEORDER)

	nlaHeaderLen = 4
)

// NlaBuffer is a bounds-checked view over one NLA's wire bytes: a 4-byte
// (length, type) header followed by length-4 bytes of value. It borrows b;
// it never copies.
type NlaBuffer struct {
	b []byte
}

// NewNlaBuffer wraps b without validating it; call CheckLen before reading.
func NewNlaBuffer(b []byte) NlaBuffer { return NlaBuffer{b} }

// Length is the raw 16-bit length field: header (4) plus value, excluding
// alignment padding.
func (n NlaBuffer) Length() uint16 { return nlenc.Uint16(n.b[0:2]) }

func (n NlaBuffer) rawType() uint16 { return nlenc.Uint16(n.b[2:4]) }

// Kind is the attribute tag with the flag bits masked out.
func (n NlaBuffer) Kind() uint16 { return n.rawType() & NLA_TYPE_MASK }

// Nested reports whether NLA_F_NESTED is set on this attribute's type.
func (n NlaBuffer) Nested() bool { return n.rawType()&NLA_F_NESTED != 0 }

// NetByteOrder reports whether NLA_F_NET_BYTEORDER is set.
func (n NlaBuffer) NetByteOrder() bool { return n.rawType()&NLA_F_NET_BYTEORDER != 0 }

// CheckLen validates that the buffer is at least as long as its own header
// and that the declared length is internally consistent.
func (n NlaBuffer) CheckLen() error {
	if len(n.b) < nlaHeaderLen {
		return truncatedf("nla header needs %d bytes, got %d", nlaHeaderLen, len(n.b))
	}
	if int(n.Length()) < nlaHeaderLen {
		return malformedf("nla length %d is shorter than the 4-byte header", n.Length())
	}
	if len(n.b) < int(n.Length()) {
		return truncatedf("nla declares length %d, only %d bytes available", n.Length(), len(n.b))
	}
	return nil
}

// Value returns the attribute's value bytes, excluding header and padding.
// The caller must have called CheckLen successfully first.
func (n NlaBuffer) Value() []byte { return n.b[nlaHeaderLen:n.Length()] }

// NlaIterator walks a run of NLAs packed back to back in a payload,
// honouring 4-byte alignment between items. It stops when fewer than 4
// bytes remain, since that is too little for another NLA header.
type NlaIterator struct {
	b []byte
}

// IterNlas begins iterating the NLAs packed in b.
func IterNlas(b []byte) *NlaIterator { return &NlaIterator{b} }

// Next returns the next attribute buffer, or ok=false once the run is
// exhausted. A malformed length mid-run yields one error and ends
// iteration: it does not panic and does not silently skip bytes.
func (it *NlaIterator) Next() (buf NlaBuffer, ok bool, err error) {
	if len(it.b) < nlaHeaderLen {
		return NlaBuffer{}, false, nil
	}
	cur := NlaBuffer{it.b}
	if err := cur.CheckLen(); err != nil {
		return NlaBuffer{}, false, err
	}
	adv := nlenc.Align4(int(cur.Length()))
	if adv > len(it.b) {
		adv = len(it.b)
	}
	it.b = it.b[adv:]
	return cur, true, nil
}

// Nla is the generic codec contract for a typed netlink attribute: it
// knows its own wire tag and how to encode its value. RawAttr and rtnl's
// concrete attribute types implement this, then go through EmitNla to
// produce their full (length, type, value, padding) encoding.
type Nla interface {
	// Kind is the attribute tag, without flag bits.
	Kind() uint16
	// ValueLen is the length of the value only (pre-alignment).
	ValueLen() int
	// EmitValue writes exactly ValueLen() bytes of value into b.
	EmitValue(b []byte)
}

// FlaggedNla is implemented by attributes that must round-trip the
// NLA_F_NESTED / NLA_F_NET_BYTEORDER bits on their type field — notably
// RawAttr, which preserves whatever flags an unrecognised tag arrived with.
type FlaggedNla interface {
	Nla
	Flags() uint16
}

func rawType(a Nla) uint16 {
	t := a.Kind()
	if fa, ok := a.(FlaggedNla); ok {
		t |= fa.Flags()
	}
	return t
}

// NlaLen returns the 4-byte-aligned, on-wire length of a.
func NlaLen(a Nla) int { return nlaHeaderLen + nlenc.Align4(a.ValueLen()) }

// EmitNla writes a's full wire encoding (header, value, zero-filled
// padding) into b, which must be at least NlaLen(a) bytes.
func EmitNla(a Nla, b []byte) {
	vl := a.ValueLen()
	nlenc.PutUint16(b[0:2], uint16(nlaHeaderLen+vl))
	nlenc.PutUint16(b[2:4], rawType(a))
	a.EmitValue(b[nlaHeaderLen : nlaHeaderLen+vl])
	for i := nlaHeaderLen + vl; i < len(b); i++ {
		b[i] = 0
	}
}

// NlasLen returns the total 4-byte-aligned wire length of a run of
// attributes emitted back to back.
func NlasLen(attrs []Nla) int {
	n := 0
	for _, a := range attrs {
		n += NlaLen(a)
	}
	return n
}

// EmitNlas writes attrs back to back into b, which must be at least
// NlasLen(attrs) bytes.
func EmitNlas(attrs []Nla, b []byte) {
	off := 0
	for _, a := range attrs {
		l := NlaLen(a)
		EmitNla(a, b[off:off+l])
		off += l
	}
}

// RawAttr is the generic, untyped representation of an attribute: a
// (kind, flags, value) triple that round-trips verbatim. It backs every
// family's fallback for an attribute tag it does not give a typed
// representation.
type RawAttr struct {
	Tag          uint16
	NestedFlag   bool
	NetByteOrder bool
	Value        []byte
}

func (a RawAttr) Kind() uint16    { return a.Tag }
func (a RawAttr) ValueLen() int   { return len(a.Value) }
func (a RawAttr) EmitValue(b []byte) { copy(b, a.Value) }

// Flags implements FlaggedNla.
func (a RawAttr) Flags() uint16 {
	var f uint16
	if a.NestedFlag {
		f |= NLA_F_NESTED
	}
	if a.NetByteOrder {
		f |= NLA_F_NET_BYTEORDER
	}
	return f
}

// ParseRawAttr copies buf's type flags and value into a RawAttr.
func ParseRawAttr(buf NlaBuffer) RawAttr {
	value := append([]byte(nil), buf.Value()...)
	return RawAttr{
		Tag:          buf.Kind(),
		NestedFlag:   buf.Nested(),
		NetByteOrder: buf.NetByteOrder(),
		Value:        value,
	}
}

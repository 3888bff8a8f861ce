package nlmsg

import "github.com/m-lab/netlink-codec/nlenc"

// DoneMessage is the empty payload of an NLMSG_DONE, the terminator of a
// multipart dump.
type DoneMessage struct{}

func (DoneMessage) Len() int           { return 0 }
func (DoneMessage) Emit(b []byte)      {}
func (DoneMessage) MessageType() uint16 { return NLMSG_DONE }

// NoopMessage is the empty payload of an NLMSG_NOOP.
type NoopMessage struct{}

func (NoopMessage) Len() int           { return 0 }
func (NoopMessage) Emit(b []byte)      {}
func (NoopMessage) MessageType() uint16 { return NLMSG_NOOP }

// OverrunMessage carries the raw bytes of an NLMSG_OVERRUN payload; the
// kernel never documents a structured shape for it.
type OverrunMessage struct {
	Data []byte
}

func (m OverrunMessage) Len() int           { return len(m.Data) }
func (m OverrunMessage) Emit(b []byte)      { copy(b, m.Data) }
func (m OverrunMessage) MessageType() uint16 { return NLMSG_OVERRUN }

// errorMessageLen is 4 bytes of signed code plus a verbatim 16-byte echoed
// header.
const errorMessageLen = 4 + HeaderLen

// ErrorMessage is the body of an NLMSG_ERROR: a negated errno (0 means ACK)
// and the header of the request that provoked it, echoed back verbatim.
type ErrorMessage struct {
	Code   int32
	Header NetlinkHeader
}

func (m ErrorMessage) Len() int { return errorMessageLen }

func (m ErrorMessage) Emit(b []byte) {
	nlenc.PutUint32(b[0:4], uint32(m.Code))
	m.Header.Emit(b[4:20])
}

func parseErrorMessage(b []byte) (ErrorMessage, error) {
	if len(b) < errorMessageLen {
		return ErrorMessage{}, truncatedf("NLMSG_ERROR payload needs %d bytes, got %d", errorMessageLen, len(b))
	}
	return ErrorMessage{
		Code:   int32(nlenc.Uint32(b[0:4])),
		Header: parseHeader(b[4:20]),
	}, nil
}

// AckMessage is an ErrorMessage classified, at parse time, as a positive
// acknowledgement (Code >= 0). It serialises identically to ErrMessage;
// only the parse-time classification differs.
type AckMessage struct{ ErrorMessage }

func (m AckMessage) MessageType() uint16 { return NLMSG_ERROR }

// ErrMessage is an ErrorMessage classified as a negative acknowledgement
// (Code < 0).
type ErrMessage struct{ ErrorMessage }

func (m ErrMessage) MessageType() uint16 { return NLMSG_ERROR }

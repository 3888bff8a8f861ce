package nlmsg

import "fmt"

// ErrorKind is the closed taxonomy of failures the codec can report. Every
// codec entry point returns one of these, wrapped in a *CodecError; none
// panic on malformed input once past a successful bounds check.
type ErrorKind int

const (
	// Exhausted means the caller-supplied destination buffer is smaller
	// than the value being emitted requires.
	Exhausted ErrorKind = iota + 1
	// Truncated means the source bytes ended before a declared length
	// was satisfied.
	Truncated
	// Malformed means a field has an internally inconsistent value:
	// a length shorter than a header, invalid UTF-8, an out-of-range
	// count, and so on.
	Malformed
	// Io wraps an upstream transport error verbatim. The codec itself
	// never constructs one; it exists for callers layering a transport
	// on top of this package.
	Io
)

func (k ErrorKind) String() string {
	switch k {
	case Exhausted:
		return "exhausted"
	case Truncated:
		return "truncated"
	case Malformed:
		return "malformed"
	case Io:
		return "io"
	default:
		return "unknown"
	}
}

// CodecError is the concrete error type every codec function returns. Kind
// is always one of the ErrorKind constants; Err is non-nil only for Io.
type CodecError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *CodecError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *CodecError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, nlmsg.ErrTruncated) (and the other sentinels below)
// match any CodecError of the same Kind, regardless of message.
func (e *CodecError) Is(target error) bool {
	t, ok := target.(*CodecError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels for errors.Is comparisons; the Msg field is irrelevant to Is.
var (
	ErrExhausted = &CodecError{Kind: Exhausted, Msg: "sentinel"}
	ErrTruncated = &CodecError{Kind: Truncated, Msg: "sentinel"}
	ErrMalformed = &CodecError{Kind: Malformed, Msg: "sentinel"}
	ErrIo        = &CodecError{Kind: Io, Msg: "sentinel"}
)

func exhaustedf(format string, args ...interface{}) error {
	return &CodecError{Kind: Exhausted, Msg: fmt.Sprintf(format, args...)}
}

func truncatedf(format string, args ...interface{}) error {
	return &CodecError{Kind: Truncated, Msg: fmt.Sprintf(format, args...)}
}

func malformedf(format string, args ...interface{}) error {
	return &CodecError{Kind: Malformed, Msg: fmt.Sprintf(format, args...)}
}

// Truncatedf builds a Truncated CodecError, for use by family packages
// (rtnl, audit) that need to report the same error kinds this package
// does without reaching into its unexported constructors.
func Truncatedf(format string, args ...interface{}) error { return truncatedf(format, args...) }

// Malformedf builds a Malformed CodecError.
func Malformedf(format string, args ...interface{}) error { return malformedf(format, args...) }

// Exhaustedf builds an Exhausted CodecError.
func Exhaustedf(format string, args ...interface{}) error { return exhaustedf(format, args...) }

// WrapIo wraps an upstream transport error as an Io-kind CodecError, for
// callers (the demo transport, integration tests) that layer I/O on top of
// this package's pure parse/emit functions.
func WrapIo(err error) error {
	if err == nil {
		return nil
	}
	return &CodecError{Kind: Io, Msg: err.Error(), Err: err}
}

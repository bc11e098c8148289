package support

import "fmt"

// Kind is the resolver's error taxonomy: Format, Transport, Resolution,
// Usage. Fatal errors (OOM, stack overflow) are not modeled; Go has no
// recoverable equivalent, and the process crashing on those is correct.
type Kind string

const (
	KindFormat     Kind = "Format"
	KindTransport  Kind = "Transport"
	KindResolution Kind = "Resolution"
	KindUsage      Kind = "Usage"
)

// Common sentinel errors, matched with errors.Is.
var (
	ErrEndOfStream          = &FormatError{Msg: "end of stream"}
	ErrUnsupportedLabelType = &FormatError{Msg: "unsupported label type"}
	ErrNameHasTooManyRefs   = &FormatError{Msg: "name has too many compression references"}
	ErrInvalidName          = &FormatError{Msg: "invalid name"}
	ErrNotASubdomain        = &FormatError{Msg: "not a subdomain of parent"}
	ErrDnsReplyExpected     = &FormatError{Msg: "expected a DNS reply, got a query"}
	ErrDnsQueryExpected     = &FormatError{Msg: "expected a DNS query, got a reply"}
	ErrDuplicateQuestion    = &UsageError{Msg: "question already present in collection"}

	ErrNoAnswerRecords             = &ResolutionError{Msg: "reply contained no matching answer records"}
	ErrNoEndPointsReplied          = &TransportError{Msg: "no endpoints replied"}
	ErrTransportReceivedEmptyMessage = &TransportError{Msg: "transport received an empty message"}
	ErrIncomingMessageTooLarge     = &TransportError{Msg: "incoming message exceeds maximum size"}
	ErrTransportFailed             = &TransportError{Msg: "transport failed"}

	ErrAsyncResultEndAlreadyCalled = &UsageError{Msg: "async result End already called"}
	ErrArgument                    = &UsageError{Msg: "invalid argument"}
)

// FormatError wraps wire-decoding failures: malformed labels, truncated
// streams, invalid headers.
type FormatError struct {
	Msg string
	Err error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Format - %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("Format - %s", e.Msg)
}

func (e *FormatError) Unwrap() error { return e.Err }

func (e *FormatError) Is(target error) bool {
	o, ok := target.(*FormatError)
	return ok && o.Msg == e.Msg
}

// Wrap returns a copy of the sentinel FormatError carrying the underlying
// cause, so callers can still match it with errors.Is(err, ErrEndOfStream).
func (e *FormatError) Wrap(cause error) *FormatError {
	return &FormatError{Msg: e.Msg, Err: cause}
}

// TransportError wraps socket failures, exhausted retries, and oversized
// or empty incoming messages.
type TransportError struct {
	Msg string
	Err error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Transport - %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("Transport - %s", e.Msg)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool {
	o, ok := target.(*TransportError)
	return ok && o.Msg == e.Msg
}

func (e *TransportError) Wrap(cause error) *TransportError {
	return &TransportError{Msg: e.Msg, Err: cause}
}

// ResolutionError carries a non-NoError RCODE back from a forwarder, or
// (when Msg is set instead) a resolution-level condition that isn't an
// RCODE at all, such as a reply with no record of the requested type.
type ResolutionError struct {
	Code uint8
	Msg  string
}

func (e *ResolutionError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("Resolution - %s", e.Msg)
	}
	return fmt.Sprintf("Resolution - upstream responded with rcode %d", e.Code)
}

func (e *ResolutionError) Is(target error) bool {
	o, ok := target.(*ResolutionError)
	return ok && o.Msg == e.Msg
}

// UsageError covers invalid arguments, double-End on an async result, and
// duplicate questions in a message.
type UsageError struct {
	Msg string
	Err error
}

func (e *UsageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Usage - %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("Usage - %s", e.Msg)
}

func (e *UsageError) Unwrap() error { return e.Err }

func (e *UsageError) Is(target error) bool {
	o, ok := target.(*UsageError)
	return ok && o.Msg == e.Msg
}

func (e *UsageError) Wrap(cause error) *UsageError {
	return &UsageError{Msg: e.Msg, Err: cause}
}

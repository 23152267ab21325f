package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/rfbench/ssgctl/internal/frame"
	"github.com/rfbench/ssgctl/internal/transport"
)

// ErrorType represents the category of session error that occurred.
type ErrorType int

const (
	// ErrTypeNotFound indicates no matching generator is attached.
	ErrTypeNotFound ErrorType = iota
	// ErrTypeTransport indicates a lower-level USB failure.
	ErrTypeTransport
	// ErrTypeTimeout indicates the generator did not reply in time. The
	// in-flight command may or may not have been applied; see Session.
	ErrTypeTimeout
	// ErrTypeProtocol indicates a malformed or rejected exchange.
	ErrTypeProtocol
	// ErrTypeOutOfRange indicates a requested value outside the
	// generator's reported operating envelope. Detected before any I/O.
	ErrTypeOutOfRange
	// ErrTypeCapability indicates the generator reported an inconsistent
	// operating envelope at open time.
	ErrTypeCapability
	// ErrTypeClosed indicates an operation on a closed session.
	ErrTypeClosed
)

// String returns a human-readable name for the error type.
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNotFound:
		return "Device Not Found"
	case ErrTypeTransport:
		return "Transport Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeProtocol:
		return "Protocol Error"
	case ErrTypeOutOfRange:
		return "Out Of Range"
	case ErrTypeCapability:
		return "Capability Mismatch"
	case ErrTypeClosed:
		return "Session Closed"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// SessionError represents an error from a session operation.
type SessionError struct {
	Type    ErrorType
	Message string // Human-readable error message
	Field   string // Violated field for out-of-range errors ("frequency" or "power")
	Err     error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *SessionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *SessionError) Unwrap() error {
	return e.Err
}

func newNotFoundError(query string) *SessionError {
	msg := "no generator attached"
	if query != "" {
		msg = fmt.Sprintf("no attached generator matches %q", query)
	}
	return &SessionError{Type: ErrTypeNotFound, Message: msg}
}

func newTransportError(stage string, err error) *SessionError {
	return &SessionError{Type: ErrTypeTransport, Message: stage, Err: err}
}

func newTimeoutError(op string, timeout time.Duration) *SessionError {
	return &SessionError{
		Type:    ErrTypeTimeout,
		Message: fmt.Sprintf("%s: no reply within %s (command effect unknown)", op, timeout),
		Err:     transport.ErrTimeout,
	}
}

func newProtocolError(err error) *SessionError {
	return &SessionError{Type: ErrTypeProtocol, Message: err.Error(), Err: err}
}

func newOutOfRangeError(field, format string, args ...interface{}) *SessionError {
	return &SessionError{
		Type:    ErrTypeOutOfRange,
		Message: fmt.Sprintf(format, args...),
		Field:   field,
	}
}

func newCapabilityError(format string, args ...interface{}) *SessionError {
	return &SessionError{Type: ErrTypeCapability, Message: fmt.Sprintf(format, args...)}
}

func newClosedError() *SessionError {
	return &SessionError{Type: ErrTypeClosed, Message: "session is closed"}
}

// classifyExchangeError maps transport and codec failures from one exchange
// into the session taxonomy.
func classifyExchangeError(op string, timeout time.Duration, err error) *SessionError {
	if errors.Is(err, transport.ErrTimeout) {
		return newTimeoutError(op, timeout)
	}
	if errors.Is(err, transport.ErrClosed) {
		return newClosedError()
	}
	var perr *frame.ProtocolError
	if errors.As(err, &perr) {
		return newProtocolError(perr)
	}
	return newTransportError(op, err)
}

// IsNotFound checks if an error is a device-not-found session error.
func IsNotFound(err error) bool { return hasType(err, ErrTypeNotFound) }

// IsTimeout checks if an error is a timeout session error.
func IsTimeout(err error) bool { return hasType(err, ErrTypeTimeout) }

// IsProtocol checks if an error is a protocol session error.
func IsProtocol(err error) bool { return hasType(err, ErrTypeProtocol) }

// IsOutOfRange checks if an error is an out-of-range session error.
func IsOutOfRange(err error) bool { return hasType(err, ErrTypeOutOfRange) }

// IsCapabilityMismatch checks if an error is a capability-mismatch session error.
func IsCapabilityMismatch(err error) bool { return hasType(err, ErrTypeCapability) }

// IsClosed checks if an error is a closed-session error.
func IsClosed(err error) bool { return hasType(err, ErrTypeClosed) }

func hasType(err error, et ErrorType) bool {
	var serr *SessionError
	if errors.As(err, &serr) {
		return serr.Type == et
	}
	return false
}

package frame

import "fmt"

// ErrorKind categorizes protocol failures.
type ErrorKind int

const (
	// KindTruncatedFrame indicates a reply shorter than the minimum report.
	KindTruncatedFrame ErrorKind = iota
	// KindOpcodeMismatch indicates a reply echoing a different opcode than
	// the request, i.e. a desynchronized session.
	KindOpcodeMismatch
	// KindDeviceRejected indicates a nonzero firmware status byte.
	KindDeviceRejected
	// KindFieldOutOfRange indicates a value that cannot be represented in
	// its wire field, caught at encode time.
	KindFieldOutOfRange
	// KindBadPayload indicates a structurally invalid payload, such as an
	// unterminated identity string.
	KindBadPayload
)

// String returns a human-readable name for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindTruncatedFrame:
		return "truncated frame"
	case KindOpcodeMismatch:
		return "opcode mismatch"
	case KindDeviceRejected:
		return "device rejected"
	case KindFieldOutOfRange:
		return "field out of range"
	case KindBadPayload:
		return "bad payload"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// Firmware rejection codes carried in the response status byte.
const (
	RejectUnsupportedOpcode byte = 0x01
	RejectInvalidValue      byte = 0x02
	RejectBusy              byte = 0x03
	RejectHardwareFault     byte = 0x04
)

// RejectCodeName returns a display name for a firmware rejection code.
// Unknown codes keep their raw value.
func RejectCodeName(code byte) string {
	switch code {
	case RejectUnsupportedOpcode:
		return "unsupported opcode"
	case RejectInvalidValue:
		return "invalid value"
	case RejectBusy:
		return "device busy"
	case RejectHardwareFault:
		return "hardware fault"
	default:
		return fmt.Sprintf("code 0x%02x", code)
	}
}

// ProtocolError is the error type for all codec failures.
type ProtocolError struct {
	Kind       ErrorKind
	Message    string
	WantOpcode byte   // populated for opcode mismatches
	GotOpcode  byte   // populated for opcode mismatches
	Code       byte   // populated for device rejections
	Field      string // populated for out-of-range fields
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newTruncated(got int) *ProtocolError {
	return &ProtocolError{
		Kind:    KindTruncatedFrame,
		Message: fmt.Sprintf("reply is %d bytes (minimum %d)", got, MinResponseLen),
	}
}

func newOpcodeMismatch(want, got byte) *ProtocolError {
	return &ProtocolError{
		Kind:       KindOpcodeMismatch,
		Message:    fmt.Sprintf("sent %s, reply echoes %s", OpcodeName(want), OpcodeName(got)),
		WantOpcode: want,
		GotOpcode:  got,
	}
}

func newDeviceRejected(op, code byte) *ProtocolError {
	return &ProtocolError{
		Kind:    KindDeviceRejected,
		Message: fmt.Sprintf("%s refused: %s", OpcodeName(op), RejectCodeName(code)),
		Code:    code,
	}
}

func newFieldOutOfRange(field, format string, args ...interface{}) *ProtocolError {
	return &ProtocolError{
		Kind:    KindFieldOutOfRange,
		Message: fmt.Sprintf("%s: ", field) + fmt.Sprintf(format, args...),
		Field:   field,
	}
}

func newBadPayload(format string, args ...interface{}) *ProtocolError {
	return &ProtocolError{
		Kind:    KindBadPayload,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsTruncatedFrame reports whether err is a truncated-frame protocol error.
func IsTruncatedFrame(err error) bool { return hasKind(err, KindTruncatedFrame) }

// IsOpcodeMismatch reports whether err is an opcode-mismatch protocol error.
func IsOpcodeMismatch(err error) bool { return hasKind(err, KindOpcodeMismatch) }

// IsDeviceRejected reports whether err is a device-rejection protocol error.
func IsDeviceRejected(err error) bool { return hasKind(err, KindDeviceRejected) }

// IsFieldOutOfRange reports whether err is an out-of-range field error.
func IsFieldOutOfRange(err error) bool { return hasKind(err, KindFieldOutOfRange) }

func hasKind(err error, kind ErrorKind) bool {
	if perr, ok := err.(*ProtocolError); ok {
		return perr.Kind == kind
	}
	return false
}

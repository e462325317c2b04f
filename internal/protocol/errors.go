package protocol

import (
	"errors"
	"fmt"
)

// ErrNotWireCommand is returned by Encode for commands that are resolved by
// the executor instead of being sent as-is (PowerToggle).
var ErrNotWireCommand = errors.New("command has no wire encoding")

// ErrorKind represents the category of error that occurred
type ErrorKind int

const (
	// ErrKindUnknownCommand indicates an unrecognized command token
	ErrKindUnknownCommand ErrorKind = iota
	// ErrKindInvalidVolume indicates a volume level outside 0-255 or not a number
	ErrKindInvalidVolume
	// ErrKindWriteCommand indicates the request frame could not be written
	ErrKindWriteCommand
	// ErrKindWriteChecksum indicates every request byte but the checksum was written
	ErrKindWriteChecksum
	// ErrKindReadResponse indicates the response header could not be read
	ErrKindReadResponse
	// ErrKindReadResponseData indicates the query payload could not be read
	ErrKindReadResponseData
	// ErrKindUnexpectedResponseHeader indicates the first response byte was not ResponseHeader
	ErrKindUnexpectedResponseHeader
	// ErrKindUnexpectedResponseAnswer indicates the device did not accept the command
	ErrKindUnexpectedResponseAnswer
	// ErrKindEmptyResponse indicates a query response with nothing after the header
	ErrKindEmptyResponse
	// ErrKindInvalidResponseChecksum indicates a response checksum mismatch
	ErrKindInvalidResponseChecksum
)

// String returns a human-readable name for the error kind
func (k ErrorKind) String() string {
	switch k {
	case ErrKindUnknownCommand:
		return "Unknown Command"
	case ErrKindInvalidVolume:
		return "Invalid Volume"
	case ErrKindWriteCommand:
		return "Write Command"
	case ErrKindWriteChecksum:
		return "Write Checksum"
	case ErrKindReadResponse:
		return "Read Response"
	case ErrKindReadResponseData:
		return "Read Response Data"
	case ErrKindUnexpectedResponseHeader:
		return "Unexpected Response Header"
	case ErrKindUnexpectedResponseAnswer:
		return "Unexpected Response Answer"
	case ErrKindEmptyResponse:
		return "Empty Response"
	case ErrKindInvalidResponseChecksum:
		return "Invalid Response Checksum"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// InputError is returned for command tokens rejected before any I/O happens
type InputError struct {
	Kind  ErrorKind // ErrKindUnknownCommand or ErrKindInvalidVolume
	Input string    // Offending token, or the level text for volume errors
	Err   error     // Underlying parse error (if any)
}

func (e *InputError) Error() string {
	switch e.Kind {
	case ErrKindInvalidVolume:
		return fmt.Sprintf("invalid volume level '%s'; must be an integer [0-255]", e.Input)
	default:
		return fmt.Sprintf("unknown command '%s'", e.Input)
	}
}

// Unwrap returns the underlying error for error chain inspection
func (e *InputError) Unwrap() error {
	return e.Err
}

// TransactionError is returned when a request/response exchange fails.
// Every TransactionError is fatal to the exchange; nothing is retried.
type TransactionError struct {
	Kind     ErrorKind // Category of failure
	Value    byte      // Offending byte (header, answer or received checksum)
	Expected byte      // Expected byte (for header, answer and checksum mismatches)
	Err      error     // Underlying I/O error (if any)
}

func (e *TransactionError) Error() string {
	switch e.Kind {
	case ErrKindWriteCommand:
		return fmt.Sprintf("failed to send command across serial port: %v", e.Err)
	case ErrKindWriteChecksum:
		return fmt.Sprintf("failed to send command checksum across serial port: %v", e.Err)
	case ErrKindReadResponse:
		return fmt.Sprintf("failed to read response from serial port: %v", e.Err)
	case ErrKindReadResponseData:
		return fmt.Sprintf("failed to read response data from serial port: %v", e.Err)
	case ErrKindUnexpectedResponseHeader:
		return fmt.Sprintf("unexpected response header: 0x%02x (expected 0x%02x)", e.Value, e.Expected)
	case ErrKindUnexpectedResponseAnswer:
		return fmt.Sprintf("unexpected response answer: 0x%02x (expected 0x%02x)", e.Value, e.Expected)
	case ErrKindEmptyResponse:
		return "empty response"
	case ErrKindInvalidResponseChecksum:
		return fmt.Sprintf("response checksum was not correct: got 0x%02x, expected 0x%02x", e.Value, e.Expected)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Kind, e.Err)
		}
		return e.Kind.String()
	}
}

// Unwrap returns the underlying error for error chain inspection
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err, or any error it wraps, is an *InputError or
// *TransactionError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var txErr *TransactionError
	if errors.As(err, &txErr) {
		return txErr.Kind == kind
	}
	var inErr *InputError
	if errors.As(err, &inErr) {
		return inErr.Kind == kind
	}
	return false
}

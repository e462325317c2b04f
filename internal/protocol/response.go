package protocol

import (
	"fmt"
	"io"
)

// Response represents a validated response frame
type Response struct {
	Header   byte   // Always ResponseHeader
	Answer   byte   // Always ResponseAnswerOK
	Length   byte   // Trailing length (query) or checksum (control)
	Payload  []byte // Query payload without checksum, nil for control responses
	Checksum byte   // Received checksum
	Raw      []byte // Original frame bytes
}

// CheckHeader validates the response header and answer bytes. It is called
// as soon as the 3-byte header arrives so that nothing more is read from a
// device that answered with garbage.
func CheckHeader(header []byte) error {
	if len(header) < ResponseHeaderLen {
		return &TransactionError{Kind: ErrKindReadResponse, Err: io.ErrUnexpectedEOF}
	}
	if header[0] != ResponseHeader {
		return &TransactionError{
			Kind:     ErrKindUnexpectedResponseHeader,
			Value:    header[0],
			Expected: ResponseHeader,
		}
	}
	if header[1] != ResponseAnswerOK {
		return &TransactionError{
			Kind:     ErrKindUnexpectedResponseAnswer,
			Value:    header[1],
			Expected: ResponseAnswerOK,
		}
	}
	return nil
}

// TrailingLength returns the number of bytes that follow the 3-byte header.
// Query responses announce it in the third header byte; control responses
// end with the header, whose third byte is the checksum.
func TrailingLength(header []byte, query bool) int {
	if !query || len(header) < ResponseHeaderLen {
		return 0
	}
	return int(header[2])
}

// ParseResponse validates a complete response frame (header plus trailing
// bytes) for a query or control request.
//
// Both response kinds are checked the same way: the last byte of the frame
// must equal the checksum of everything before it. For control responses
// that is the third header byte; for query responses it is the last byte
// after the payload.
func ParseResponse(frame []byte, query bool) (*Response, error) {
	if err := CheckHeader(frame); err != nil {
		return nil, err
	}

	want := ResponseHeaderLen + TrailingLength(frame, query)
	if len(frame) < want {
		return nil, &TransactionError{
			Kind: ErrKindReadResponseData,
			Err:  fmt.Errorf("got %d bytes, expected %d: %w", len(frame), want, io.ErrUnexpectedEOF),
		}
	}
	frame = frame[:want]

	if query && want == ResponseHeaderLen {
		return nil, &TransactionError{Kind: ErrKindEmptyResponse}
	}

	last := len(frame) - 1
	sum := Checksum(frame[:last])
	if frame[last] != sum {
		return nil, &TransactionError{
			Kind:     ErrKindInvalidResponseChecksum,
			Value:    frame[last],
			Expected: sum,
		}
	}

	resp := &Response{
		Header:   frame[0],
		Answer:   frame[1],
		Length:   frame[2],
		Checksum: frame[last],
		Raw:      frame,
	}
	if query {
		resp.Payload = frame[ResponseHeaderLen:last]
	}

	return resp, nil
}

// String returns a debug representation of the response
func (r *Response) String() string {
	return fmt.Sprintf("Response{header=0x%02x, answer=0x%02x, len=0x%02x, payload=% x, checksum=0x%02x}",
		r.Header, r.Answer, r.Length, r.Payload, r.Checksum)
}
